package app

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"crmdash/internal/types"
)

func TestFeedUpdateRefreshesBadgeAndAnnouncesFresh(t *testing.T) {
	feed := newFakeFeed(notification("n1", "Deal \"Acme\" created"), notification("n2", "Lead \"Bo\" created"))
	feed.fresh = []types.NotificationItem{notification("n2", "Lead \"Bo\" created")}
	m := newTestModel(t, feed, nil)
	resize(m, 160, 30)

	_, cmd := m.Update(feedUpdatedMsg{})
	if cmd == nil {
		t.Fatalf("expected the feed subscription to be renewed")
	}
	if m.snapshot.Unread() != 2 {
		t.Fatalf("expected 2 unread, got %d", m.snapshot.Unread())
	}
	if m.toastText != "1 new notification" {
		t.Fatalf("unexpected toast %q", m.toastText)
	}
	topBar := strings.Split(plainView(m), "\n")[0]
	if !strings.Contains(topBar, "Inbox") || !strings.Contains(topBar, " 2 ") {
		t.Fatalf("expected unread badge in top bar: %q", topBar)
	}

	m.clearToast()
	m.handleFeedUpdated()
	if m.toastText != "" {
		t.Fatalf("expected fresh items to be announced once, got %q", m.toastText)
	}
}

func TestFreshNotificationsText(t *testing.T) {
	if got := freshNotificationsText(1); got != "1 new notification" {
		t.Fatalf("unexpected text %q", got)
	}
	if got := freshNotificationsText(3); got != "3 new notifications" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestPopoverMarksSelectedRead(t *testing.T) {
	feed := newFakeFeed(notification("n1", "first"), notification("n2", "second"))
	m := newTestModel(t, feed, nil)
	resize(m, 160, 30)

	m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if !m.popover.open {
		t.Fatalf("expected popover to open")
	}
	m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if len(feed.markRead) != 1 || feed.markRead[0] != "n2" {
		t.Fatalf("expected n2 marked read, got %v", feed.markRead)
	}
	if m.snapshot.Unread() != 1 {
		t.Fatalf("expected 1 unread left, got %d", m.snapshot.Unread())
	}
	if m.popover.cursor != 0 {
		t.Fatalf("expected cursor clamped to remaining items, got %d", m.popover.cursor)
	}
}

func TestPopoverMarkAllRead(t *testing.T) {
	feed := newFakeFeed(notification("n1", "first"), notification("n2", "second"))
	m := newTestModel(t, feed, nil)
	resize(m, 160, 30)
	m.openPopover()

	m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("R")})
	if feed.markAll != 1 {
		t.Fatalf("expected mark all to be called once")
	}
	if !strings.Contains(plainView(m), "No notifications") {
		t.Fatalf("expected empty state after mark all:\n%s", plainView(m))
	}
}

func TestPopoverEmptyAndFailedStates(t *testing.T) {
	feed := newFakeFeed()
	m := newTestModel(t, feed, nil)
	resize(m, 160, 30)
	m.openPopover()
	if !strings.Contains(plainView(m), "No notifications") {
		t.Fatalf("expected empty state:\n%s", plainView(m))
	}

	feed.err = errors.New("boom")
	m.refreshSnapshot()
	view := plainView(m)
	if !strings.Contains(view, "Failed to fetch notifications") {
		t.Fatalf("expected failure state:\n%s", view)
	}
	if strings.Contains(view, "No notifications") {
		t.Fatalf("expected failure to replace empty state:\n%s", view)
	}
}

func TestPopoverClickOutsideCloses(t *testing.T) {
	feed := newFakeFeed(notification("n1", "first"))
	m := newTestModel(t, feed, nil)
	resize(m, 160, 30)
	m.openPopover()

	click(m, 5, 20)
	if m.popover.open {
		t.Fatalf("expected click outside to close the popover")
	}
}

func TestPopoverClickOnCheckMarksRead(t *testing.T) {
	feed := newFakeFeed(notification("n1", "first"), notification("n2", "second"))
	m := newTestModel(t, feed, nil)
	resize(m, 160, 30)
	m.openPopover()

	x, y, w, _ := m.popoverBounds()
	click(m, x+w-3, y+popoverItemTop+2)
	if len(feed.markRead) != 1 || feed.markRead[0] != "n2" {
		t.Fatalf("expected click on second check to mark n2, got %v", feed.markRead)
	}
	if !m.popover.open {
		t.Fatalf("expected popover to stay open")
	}
}

func TestBellClickTogglesPopover(t *testing.T) {
	feed := newFakeFeed(notification("n1", "first"))
	m := newTestModel(t, feed, nil)
	resize(m, 160, 30)
	bar := m.topBarLayout(m.shell.Props())

	click(m, bar.bellStart, 0)
	if !m.popover.open {
		t.Fatalf("expected bell click to open the popover")
	}
	click(m, bar.bellStart, 0)
	if m.popover.open {
		t.Fatalf("expected second bell click to close the popover")
	}
}

func TestUserLabelHiddenOnMobile(t *testing.T) {
	m := newTestModel(t, nil, nil)
	resize(m, 60, 24)
	if strings.Contains(strings.Split(plainView(m), "\n")[0], "Vyom") {
		t.Fatalf("expected user label hidden on mobile")
	}
	resize(m, 160, 24)
	if !strings.Contains(strings.Split(plainView(m), "\n")[0], "Vyom") {
		t.Fatalf("expected user label on desktop")
	}
}

func TestFeedSubscriptionEndsWhenUpdatesClose(t *testing.T) {
	updates := make(chan struct{}, 1)
	updates <- struct{}{}
	cmd := waitForFeedCmd(updates)
	if _, ok := cmd().(feedUpdatedMsg); !ok {
		t.Fatalf("expected a feed update for a pending signal")
	}

	close(updates)
	if msg := waitForFeedCmd(updates)(); msg != nil {
		t.Fatalf("expected no message after the feed closed, got %#v", msg)
	}
}
