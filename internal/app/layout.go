package app

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

const (
	dockedSidebarWidth  = 32
	overlaySidebarWidth = 26
)

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	if xansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return xansi.Truncate(text, width-1, "") + "…"
}

// fitLine pads or cuts a styled line to exactly width cells.
func fitLine(line string, width int) string {
	if width <= 0 {
		return ""
	}
	w := xansi.StringWidth(line)
	if w > width {
		return xansi.Truncate(line, width, "")
	}
	return line + strings.Repeat(" ", width-w)
}

// fitBlock splits text into exactly height lines of width cells.
func fitBlock(text string, width, height int) []string {
	lines := strings.Split(text, "\n")
	if text == "" {
		lines = nil
	}
	out := make([]string, height)
	for i := range out {
		if i < len(lines) {
			out[i] = fitLine(lines[i], width)
			continue
		}
		out[i] = strings.Repeat(" ", max(0, width))
	}
	return out
}

// overlayRight paints block over the right edge of base, starting at the
// first line.
func overlayRight(base, block []string, width int) []string {
	out := append([]string(nil), base...)
	for i, line := range block {
		if i >= len(out) {
			break
		}
		blockWidth := xansi.StringWidth(line)
		left := max(0, width-blockWidth)
		out[i] = fitLine(xansi.Truncate(out[i], left, ""), left) + line
	}
	return out
}

// backdropLine dims whatever sits behind the overlay sidebar. Styling is
// stripped so the dim color applies evenly.
func backdropLine(content string, from, width int) string {
	plain := xansi.Strip(content)
	visible := xansi.Cut(plain, from, width)
	return backdropStyle.Render(fitLine(visible, max(0, width-from)))
}

// sidebarWidthFor returns the rendered sidebar width for the current props,
// or zero when it is hidden.
func sidebarWidthFor(open, overlay bool, termWidth int) int {
	if !open {
		return 0
	}
	if overlay {
		return min(overlaySidebarWidth, max(0, termWidth-4))
	}
	return min(dockedSidebarWidth, max(0, termWidth-minContentWidth-1))
}
