package shell

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitialDesktopOpensAndLatches(t *testing.T) {
	c := NewController(DefaultBreakpoints())
	state := c.Init(1200)
	require.True(t, state.SidebarOpen)
	require.True(t, state.UserHasManuallyToggled)
	require.Equal(t, 1200, state.ViewportWidth)
}

func TestInitialMobileStaysClosed(t *testing.T) {
	state := Initial(320, DefaultBreakpoints())
	require.False(t, state.SidebarOpen)
	require.False(t, state.UserHasManuallyToggled)
}

func TestInitialBoundaryIsMobile(t *testing.T) {
	state := Initial(640, DefaultBreakpoints())
	require.False(t, state.SidebarOpen)
	state = Initial(641, DefaultBreakpoints())
	require.True(t, state.SidebarOpen)
}

func TestUnavailableViewportUsesDefaultWidth(t *testing.T) {
	state := Initial(0, DefaultBreakpoints())
	require.Equal(t, DefaultViewportWidth, state.ViewportWidth)
	require.True(t, state.SidebarOpen)

	next, _ := Resize(state, -1, DefaultBreakpoints())
	require.Equal(t, DefaultViewportWidth, next.ViewportWidth)
}

func TestMobileToDesktopCourtesyOpen(t *testing.T) {
	c := NewController(DefaultBreakpoints())
	c.Init(600)
	transition := c.Resize(700)
	require.Equal(t, TransitionCourtesyOpen, transition)
	require.True(t, c.State().SidebarOpen)
	require.True(t, c.State().UserHasManuallyToggled)
}

func TestDesktopToMobileAutoClose(t *testing.T) {
	prev := State{ViewportWidth: 800, SidebarOpen: true, UserHasManuallyToggled: true}
	next, transition := Resize(prev, 500, DefaultBreakpoints())
	require.Equal(t, TransitionAutoClose, transition)
	require.False(t, next.SidebarOpen)
	require.True(t, next.UserHasManuallyToggled)
	require.Equal(t, 500, next.ViewportWidth)
}

func TestLatchedResizeWithinNonMobileKeepsState(t *testing.T) {
	for _, open := range []bool{true, false} {
		prev := State{ViewportWidth: 700, SidebarOpen: open, UserHasManuallyToggled: true}
		next, transition := Resize(prev, 900, DefaultBreakpoints())
		require.Equal(t, TransitionNone, transition)
		require.Equal(t, open, next.SidebarOpen)
		require.Equal(t, 900, next.ViewportWidth)
	}
}

func TestUnlatchedMobileResizeDoesNothing(t *testing.T) {
	prev := State{ViewportWidth: 320}
	next, transition := Resize(prev, 600, DefaultBreakpoints())
	require.Equal(t, TransitionNone, transition)
	require.False(t, next.SidebarOpen)
	require.False(t, next.UserHasManuallyToggled)
	require.Equal(t, 600, next.ViewportWidth)
}

func TestLatchedGrowthDoesNotReopen(t *testing.T) {
	c := NewController(DefaultBreakpoints())
	c.Init(1200)
	c.Toggle()
	require.False(t, c.State().SidebarOpen)
	c.Resize(500)
	transition := c.Resize(1400)
	require.Equal(t, TransitionNone, transition)
	require.False(t, c.State().SidebarOpen)
}

func TestToggleLatchesIntent(t *testing.T) {
	c := NewController(DefaultBreakpoints())
	c.Init(320)
	state := c.Toggle()
	require.True(t, state.SidebarOpen)
	require.True(t, state.UserHasManuallyToggled)
	state = c.Toggle()
	require.False(t, state.SidebarOpen)
	require.True(t, state.UserHasManuallyToggled)
}

func TestManualToggleOnMobileThenGrowthKeepsUserChoice(t *testing.T) {
	c := NewController(DefaultBreakpoints())
	c.Init(320)
	c.Toggle()
	c.Toggle()
	transition := c.Resize(900)
	require.Equal(t, TransitionNone, transition)
	require.False(t, c.State().SidebarOpen)
}

func TestDismiss(t *testing.T) {
	c := NewController(DefaultBreakpoints())
	c.Init(320)
	require.False(t, c.Dismiss())
	c.Toggle()
	require.True(t, c.Dismiss())
	require.False(t, c.State().SidebarOpen)
}

func TestScenarioDesktopThenPhone(t *testing.T) {
	c := NewController(DefaultBreakpoints())
	state := c.Init(1200)
	require.True(t, state.SidebarOpen)
	require.True(t, state.UserHasManuallyToggled)

	require.Equal(t, TransitionAutoClose, c.Resize(320))
	require.False(t, c.State().SidebarOpen)
}

func TestScenarioPhoneThenDesktopThenPhone(t *testing.T) {
	c := NewController(DefaultBreakpoints())
	state := c.Init(320)
	require.False(t, state.SidebarOpen)
	require.False(t, state.UserHasManuallyToggled)

	require.Equal(t, TransitionCourtesyOpen, c.Resize(1024))
	require.True(t, c.State().SidebarOpen)
	require.True(t, c.State().UserHasManuallyToggled)

	require.Equal(t, TransitionAutoClose, c.Resize(320))
	require.False(t, c.State().SidebarOpen)
}

func TestIntentLatchIsMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for run := 0; run < 200; run++ {
		c := NewController(DefaultBreakpoints())
		c.Init(rng.Intn(1600))
		latched := c.State().UserHasManuallyToggled
		for step := 0; step < 40; step++ {
			if rng.Intn(4) == 0 {
				c.Toggle()
			} else {
				c.Resize(rng.Intn(1600))
			}
			now := c.State().UserHasManuallyToggled
			if latched && !now {
				t.Fatalf("run %d step %d: intent latch reset", run, step)
			}
			latched = now
		}
	}
}

func TestControllerResizeBeforeInitInitializes(t *testing.T) {
	c := NewController(DefaultBreakpoints())
	require.Equal(t, TransitionNone, c.Resize(1100))
	require.True(t, c.Initialized())
	require.True(t, c.State().SidebarOpen)
}
