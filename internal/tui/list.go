package tui

import (
	"fmt"
	"strings"

	"github.com/un1queA/LETHIMCOOK/internal/listing"
)

// sourceBadges renders the one-letter source markers for a fused listing,
// e.g. "[F][G]" for a venue confirmed by Foursquare and Google.
func sourceBadges(sources []listing.Source) string {
	var b strings.Builder
	for _, s := range sources {
		switch s {
		case listing.SourceFoursquare:
			b.WriteString("[F]")
		case listing.SourceGoogle:
			b.WriteString("[G]")
		case listing.SourceOSM:
			b.WriteString("[O]")
		}
	}
	return b.String()
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func renderListItem(rank int, l listing.Listing, selected, pinned bool, width int) string {
	if width < 10 {
		width = 30
	}

	label := fmt.Sprintf("%d. %s", rank, l.Name)
	if pinned {
		label = "★ " + label
	}
	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(label, width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(label, width-4))
	}

	meta := "  " + badgeStyle.Render(sourceBadges(l.Sources)) +
		" " + itemMetaStyle.Render(fmt.Sprintf("· %.2f km · %d", l.DistanceKm, l.Score))

	return title + "\n" + meta
}

func renderList(results []listing.Listing, cursor, pinned int, height int, width int) string {
	if len(results) == 0 {
		return lipglossCenter("No restaurants found", width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(results) {
		end = len(results)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(i+1, results[i], i == cursor, i == pinned, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func lipglossCenter(s string, width, height int) string {
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", max(0, (width-len(s))/2)) + s
}
