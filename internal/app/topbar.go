package app

import (
	"fmt"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"crmdash/internal/shell"
)

const (
	burgerLabel = " ≡ "
	bellLabel   = " Inbox "
)

// topBar holds the pieces of the first screen line with their column spans.
// The same value drives rendering and click hit-testing.
type topBar struct {
	burger      bool
	burgerStart int
	burgerEnd   int
	bellStart   int
	bellEnd     int
	badge       string
	user        string
}

func (m *Model) topBarLayout(props shell.Props) topBar {
	bar := topBar{burgerStart: -1, burgerEnd: -1}
	if props.BurgerVisible {
		bar.burger = true
		bar.burgerStart = 0
		bar.burgerEnd = xansi.StringWidth(burgerLabel)
	}
	if unread := m.snapshot.Unread(); unread > 0 {
		bar.badge = fmt.Sprintf(" %d ", unread)
		if unread > 99 {
			bar.badge = " 99+ "
		}
	}
	if props.Breakpoint != shell.BreakpointMobile {
		bar.user = " " + m.userLabel + " "
	}
	bellWidth := xansi.StringWidth(bellLabel) + xansi.StringWidth(bar.badge)
	bar.bellEnd = max(0, m.width-xansi.StringWidth(bar.user))
	bar.bellStart = max(0, bar.bellEnd-bellWidth)
	return bar
}

func (b topBar) hitBurger(x int) bool {
	return b.burger && x >= b.burgerStart && x < b.burgerEnd
}

func (b topBar) hitBell(x int) bool {
	return x >= b.bellStart && x < b.bellEnd
}

func (m *Model) renderTopBar(props shell.Props) string {
	bar := m.topBarLayout(props)
	left := ""
	if bar.burger {
		left = topBarTitleStyle.Render(burgerLabel)
	} else {
		left = topBarStyle.Render(" ")
	}
	left += topBarTitleStyle.Render(m.pageTitle())
	right := topBarStyle.Render(bellLabel)
	if bar.badge != "" {
		right += badgeStyle.Render(bar.badge)
	}
	right += topBarStyle.Render(bar.user)

	gap := m.width - xansi.StringWidth(left) - xansi.StringWidth(right)
	if gap < 1 {
		room := max(0, m.width-xansi.StringWidth(right)-1)
		left = xansi.Truncate(left, room, "")
		gap = max(0, m.width-xansi.StringWidth(left)-xansi.StringWidth(right))
	}
	return fitLine(left+topBarStyle.Render(strings.Repeat(" ", gap))+right, m.width)
}

func (m *Model) pageTitle() string {
	entry := m.currentEntry()
	if m.detail != nil {
		return entry.Label + " / detail"
	}
	return entry.Label
}
