package app

import (
	"strings"
	"testing"
	"testing/synctest"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunebrew/internal/playback"
)

func TestUpdate_WindowSizeMsg_ResizesComponents(t *testing.T) {
	e := newTestEnv()
	m := e.model(Options{})

	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.Width != 120 || m.Height != 40 {
		t.Errorf("size = %dx%d, want 120x40", m.Width, m.Height)
	}
	if m.lyrics.Width != 116 {
		t.Errorf("lyrics width = %d, want 116", m.lyrics.Width)
	}
	if m.help.Width != 120 {
		t.Errorf("help width = %d, want 120", m.help.Width)
	}
}

func TestNew_RestoresVolume(t *testing.T) {
	e := newTestEnv()
	if err := e.state.SaveVolume(0.4, true); err != nil {
		t.Fatal(err)
	}

	e.model(Options{})

	if e.mixer.volume != 0.4 || !e.mixer.muted {
		t.Errorf("mixer = %v muted=%v, want 0.4 muted", e.mixer.volume, e.mixer.muted)
	}
}

func TestNew_WithoutCatalogShowsHint(t *testing.T) {
	e := newTestEnv()
	m := New(Deps{Session: e.session, State: e.state}, Options{})
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 20})

	if !strings.Contains(m.View(), "api_url") {
		t.Error("view should tell how to configure the API")
	}
	if m.loadHomeCmd() != nil || m.loadMineCmd() != nil {
		t.Error("no catalog commands without a catalog")
	}
}

func TestWatchSessionEvents_ConvertsEvents(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		e := newTestEnv()
		defer e.session.Shutdown()
		m := e.model(Options{})

		d, _ := e.catalog.Descriptor(songOld, 1)
		e.session.LoadTrack(d, false)
		synctest.Wait()

		msg := m.WatchSessionEvents()()
		if _, ok := msg.(SessionMessage); !ok {
			t.Fatalf("msg = %T, want a session message", msg)
		}
	})
}

func TestWatchSessionEvents_ClosedAfterShutdown(t *testing.T) {
	e := newTestEnv()
	m := e.model(Options{})

	_ = e.session.Shutdown()
	// Drain anything buffered before the close.
	for {
		msg := m.WatchSessionEvents()()
		if _, ok := msg.(SessionClosedMsg); ok {
			break
		}
	}

	m, _ = update(m, SessionClosedMsg{})
	if m.WatchSessionEvents() != nil {
		t.Error("watching should stop once the session is closed")
	}
}

func TestTickMsg_RefreshesSnapshotAndReschedules(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		e := newTestEnv()
		defer e.session.Shutdown()
		m := e.model(Options{})

		d, _ := e.catalog.Descriptor(songOld, 1)
		e.session.LoadTrack(d, true)
		synctest.Wait()

		m, cmd := update(m, TickMsg{})
		if cmd == nil {
			t.Error("tick should reschedule itself")
		}
		if m.snapshot.Phase != playback.PhasePlaying {
			t.Errorf("snapshot phase = %v, want Playing", m.snapshot.Phase)
		}
	})
}

func TestView_ListAndMinimizedBar(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		e := newTestEnv()
		defer e.session.Shutdown()
		m := withHome(e.model(Options{}))

		view := m.View()
		if !strings.Contains(view, "New VER 1") {
			t.Errorf("view should list the newest song:\n%s", view)
		}

		m, _ = press(m, "enter")
		synctest.Wait()
		m, _ = update(m, SessionTrackMsg{})

		view = m.View()
		if got := strings.Count(view, "\n") + 1; got != m.Height {
			t.Errorf("view height = %d, want %d", got, m.Height)
		}
		if !strings.Contains(m.activeList().View(), "▶ New VER 1") {
			t.Error("list should mark the playing row")
		}
	})
}

func TestView_ExpandedShowsLyrics(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		e := newTestEnv()
		defer e.session.Shutdown()
		m := e.model(Options{})

		d, _ := e.catalog.Descriptor(songOld, 2)
		e.session.LoadTrack(d, false)
		e.session.SetViewMode(playback.ViewExpanded)
		synctest.Wait()
		m, _ = update(m, SessionTrackMsg{})
		m, _ = update(m, SessionViewMsg{})

		view := m.View()
		for _, want := range []string{"Old VER 2", "이수", "la la"} {
			if !strings.Contains(view, want) {
				t.Errorf("expanded view missing %q", want)
			}
		}
	})
}

func TestView_HelpOverlay(t *testing.T) {
	e := newTestEnv()
	m := e.model(Options{})

	m, _ = press(m, "?")
	if !strings.Contains(m.View(), "Play version 2") {
		t.Error("help overlay should list every binding")
	}

	m, _ = press(m, "j")
	if m.showHelp {
		t.Error("any key should close the help overlay")
	}
}

func TestQuit(t *testing.T) {
	e := newTestEnv()
	m := e.model(Options{})

	_, cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
