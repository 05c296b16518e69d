// Package app is the terminal CRM dashboard: the responsive shell (sidebar,
// top bar, backdrop), the notification popover and the entity pages.
package app

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"crmdash/internal/logging"
	"crmdash/internal/notifications"
	"crmdash/internal/shell"
	"crmdash/internal/types"
)

const (
	defaultCellWidthPx    = 8
	defaultResizeDebounce = 50 * time.Millisecond
	minContentWidth       = 12
)

type focusArea int

const (
	focusContent focusArea = iota
	focusSidebar
)

type Options struct {
	Feed           NotificationFeed
	Records        RecordsAPI
	Breakpoints    shell.Breakpoints
	CellWidthPx    int
	ResizeDebounce time.Duration
	UserLabel      string
	Logger         logging.Logger
}

type pageState struct {
	loading bool
	loaded  bool
	err     error
	records []map[string]any
	table   tableView
}

type Model struct {
	feed    NotificationFeed
	records RecordsAPI
	logger  logging.Logger
	keys    keyMap

	shell          *shell.Controller
	cellWidthPx    int
	resizeDebounce time.Duration
	resizeSeq      int
	width          int
	height         int

	page      int
	navCursor int
	focus     focusArea
	pages     map[types.Resource]*pageState
	detail    map[string]any

	popover  notificationPopover
	snapshot notifications.Snapshot

	loader     spinner.Model
	userLabel  string
	status     string
	toastText  string
	toastLevel toastLevel
	toastUntil time.Time
	now        func() time.Time
}

func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	cellWidth := opts.CellWidthPx
	if cellWidth <= 0 {
		cellWidth = defaultCellWidthPx
	}
	debounce := opts.ResizeDebounce
	if debounce < 0 {
		debounce = 0
	}
	bp := opts.Breakpoints
	if bp == (shell.Breakpoints{}) {
		bp = shell.DefaultBreakpoints()
	}
	loader := spinner.New()
	loader.Spinner = spinner.Line
	loader.Style = lipgloss.NewStyle()

	pages := make(map[types.Resource]*pageState, len(resourceTables))
	for resource, spec := range resourceTables {
		pages[resource] = &pageState{table: tableView{columns: spec.columns}}
	}
	userLabel := strings.TrimSpace(opts.UserLabel)
	if userLabel == "" {
		userLabel = "Guest"
	}
	return Model{
		feed:           opts.Feed,
		records:        opts.Records,
		logger:         logger.With(logging.F("component", "ui")),
		keys:           defaultKeyMap(),
		shell:          shell.NewController(bp),
		cellWidthPx:    cellWidth,
		resizeDebounce: debounce,
		pages:          pages,
		loader:         loader,
		userLabel:      userLabel,
		now:            time.Now,
	}
}

// Run drives the dashboard until the user quits or ctx ends. Polling the
// feed is the caller's job.
func Run(ctx context.Context, opts Options) error {
	model := NewModel(opts)
	p := tea.NewProgram(&model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(), m.loadPage(m.page)}
	if m.feed != nil {
		cmds = append(cmds, waitForFeedCmd(m.feed.Updates()))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.handleWindowSize(msg)
	case viewportSettledMsg:
		m.handleViewportSettled(msg)
		return m, nil
	case feedUpdatedMsg:
		m.handleFeedUpdated()
		return m, waitForFeedCmd(m.feed.Updates())
	case recordsMsg:
		m.handleRecords(msg)
		return m, nil
	case recordsDeletedMsg:
		return m, m.handleRecordsDeleted(msg)
	case tickMsg:
		m.handleTick(msg)
		return m, tickCmd()
	case spinner.TickMsg:
		if !m.anyLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.loader, cmd = m.loader.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 || !m.shell.Initialized() {
		return ""
	}
	props := m.shell.Props()
	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderTopBar(props))
	body := m.renderBody(props, m.bodyHeight())
	if m.popover.open {
		body = overlayRight(body, m.renderPopover(), m.width)
	}
	lines = append(lines, body...)
	lines = append(lines, m.footerLine())
	return strings.Join(lines, "\n")
}

func (m *Model) bodyHeight() int {
	return max(1, m.height-2)
}

func (m *Model) handleTick(msg tickMsg) {
	at := time.Time(msg)
	if m.toastText != "" && !m.toastActive(at) {
		m.clearToast()
	}
}

func (m *Model) handleFeedUpdated() {
	if m.feed == nil {
		return
	}
	m.snapshot = m.feed.Snapshot()
	m.popover.clamp(len(m.snapshot.Items))
	if fresh := m.feed.TakeFresh(); len(fresh) > 0 {
		m.showInfoToast(freshNotificationsText(len(fresh)))
	}
}

func (m *Model) currentEntry() navEntry {
	return navEntries[clamp(m.page, 0, len(navEntries)-1)]
}

func (m *Model) anyLoading() bool {
	for _, ps := range m.pages {
		if ps.loading {
			return true
		}
	}
	return false
}

func clamp(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}
