package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/un1queA/LETHIMCOOK/internal/listing"
)

func renderStatusBar(stats listing.SearchStats, pinnedName string, width int, searching bool) string {
	left := fmt.Sprintf(" %d results", stats.Final)
	if stats.Raw > 0 {
		left += fmt.Sprintf(" · %d raw · %d merged · %d filtered",
			stats.Raw, stats.Duplicates, stats.Filtered)
	}
	if n := len(stats.Warnings); n > 0 {
		left += " · " + warningStyle.Render(fmt.Sprintf("%d warning(s)", n))
	}
	if pinnedName != "" {
		left += " · ★ " + pinnedName
	}

	right := " s new search  d directions  ? help  q quit "
	if searching {
		left = " searching..."
		right = " ctrl+c quit "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
