package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/un1queA/LETHIMCOOK/internal/listing"
)

func confidenceStyle(confidence string) lipgloss.Style {
	switch confidence {
	case "Very High", "High":
		return confidenceHighStyle
	case "Very Low", "Low":
		return confidenceLowStyle
	default:
		return detailBodyStyle
	}
}

func renderDetail(l *listing.Listing, width, height, scroll int) string {
	if l == nil {
		return lipglossCenter("Select a restaurant", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := detailTitleStyle.Width(contentWidth).Render(l.Name)

	header := badgeStyle.Render(sourceBadges(l.Sources)) + " " +
		confidenceStyle(l.Confidence).Render(fmt.Sprintf("%s (%d)", l.Confidence, l.Score))

	var rows []string
	rows = append(rows, detailLabelStyle.Render("Distance  ")+fmt.Sprintf("%.2f km", l.DistanceKm))
	rows = append(rows, detailLabelStyle.Render("Cuisine   ")+l.Cuisine)
	rows = append(rows, detailLabelStyle.Render("Address   ")+wrapText(l.Address, contentWidth-10))
	if l.Rating > 0 {
		rows = append(rows, detailLabelStyle.Render("Rating    ")+fmt.Sprintf("%.1f / 5", l.Rating))
	}
	if l.Price != "" {
		rows = append(rows, detailLabelStyle.Render("Price     ")+string(l.Price))
	}
	switch l.Open {
	case listing.OpenNow:
		rows = append(rows, detailLabelStyle.Render("Status    ")+confidenceHighStyle.Render("Open now"))
	case listing.ClosedNow:
		rows = append(rows, detailLabelStyle.Render("Status    ")+"Closed now")
	case listing.PermanentlyClosed:
		rows = append(rows, detailLabelStyle.Render("Status    ")+confidenceLowStyle.Render("Permanently closed"))
	}
	if l.Hours != "" {
		rows = append(rows, detailLabelStyle.Render("Hours     ")+wrapText(l.Hours, contentWidth-10))
	}
	if l.Phone != "" {
		rows = append(rows, detailLabelStyle.Render("Phone     ")+l.Phone)
	}
	if l.Website != "" {
		rows = append(rows, detailLabelStyle.Render("Website   ")+truncateStr(l.Website, contentWidth-10))
	}

	body := detailBodyStyle.Width(contentWidth).Render(strings.Join(rows, "\n"))

	var warnings string
	if len(l.Warnings) > 0 {
		var wb strings.Builder
		for _, w := range l.Warnings {
			wb.WriteString(warningStyle.Render("! " + wrapText(w, contentWidth-2)))
			wb.WriteString("\n")
		}
		warnings = strings.TrimRight(wb.String(), "\n")
	}

	hint := detailLinkStyle.Width(contentWidth).Render("d directions  enter pin")

	parts := []string{title, header, "", body}
	if warnings != "" {
		parts = append(parts, "", warnings)
	}
	parts = append(parts, "", hint)
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	// Apply scroll offset
	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
