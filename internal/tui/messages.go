package tui

import (
	"github.com/un1queA/LETHIMCOOK/internal/geo"
	"github.com/un1queA/LETHIMCOOK/internal/listing"
)

type searchDoneMsg struct {
	origin   geo.Coordinates
	address  string
	listings []listing.Listing
	stats    listing.SearchStats
}

type searchErrMsg struct {
	err error
}

type openErrMsg struct {
	err error
}
