package app

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/tunebrew/internal/catalog"
	"github.com/llehouerou/tunebrew/internal/likes"
	"github.com/llehouerou/tunebrew/internal/playback"
	"github.com/llehouerou/tunebrew/internal/player"
	"github.com/llehouerou/tunebrew/internal/share"
	"github.com/llehouerou/tunebrew/internal/state"
	"github.com/llehouerou/tunebrew/internal/track"
)

const songLength = 100 * time.Second

var (
	songOld = catalog.Song{
		RequestID: "req-old", Title: "Old", Lyric: "la la", ModelName: "isu",
		CreatedAt: "2024-11-01T10:00:00", Status: catalog.StatusComplete,
		AudioLinks: []string{
			"https://cdn.example.com/req-old/[0]1_result.mp3",
			"https://cdn.example.com/req-old/[0]2_result.mp3",
		},
	}
	songNew = catalog.Song{
		RequestID: "req-new", Title: "New", ModelName: "ljb",
		CreatedAt: "2024-11-03T10:00:00", Status: catalog.StatusComplete,
		AudioLinks: []string{
			"https://cdn.example.com/req-new/[0]1_result.mp3",
			"https://cdn.example.com/req-new/[0]2_result.mp3",
		},
	}
	songWip = catalog.Song{
		RequestID: "req-wip", Title: "Soon", ModelName: "isu",
		CreatedAt: "2024-11-04T10:00:00", Status: catalog.StatusPending,
	}
)

// fakeCatalog serves fixed songs. Descriptors are built by a real client,
// which needs no network for that.
type fakeCatalog struct {
	*catalog.Client
	songs map[string]catalog.Song
	err   error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		Client: catalog.New(catalog.Config{
			ThumbnailBase: "https://thumbs.example.com",
			Artists:       map[string]string{"isu": "이수", "ljb": "임재범"},
		}),
		songs: map[string]catalog.Song{
			songOld.RequestID: songOld,
			songNew.RequestID: songNew,
			songWip.RequestID: songWip,
		},
	}
}

func (f *fakeCatalog) Recent(_ context.Context, limit int) ([]catalog.Song, error) {
	if f.err != nil {
		return nil, f.err
	}
	list := []catalog.Song{songNew, songOld}
	return list[:min(limit, len(list))], nil
}

func (f *fakeCatalog) Songs(_ context.Context, ids []string) (map[string]catalog.Song, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]catalog.Song{}
	for _, id := range ids {
		if s, ok := f.songs[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (f *fakeCatalog) Resolve(_ context.Context, id string, version int) (track.Descriptor, error) {
	if f.err != nil {
		return track.Descriptor{}, f.err
	}
	s, ok := f.songs[id]
	if !ok {
		return track.Descriptor{}, fmt.Errorf("%w: %s", catalog.ErrNotFound, id)
	}
	return f.Descriptor(s, version)
}

type fakeMixer struct {
	volume float64
	muted  bool
}

func (f *fakeMixer) SetVolume(v float64) { f.volume = min(max(v, 0), 1) }
func (f *fakeMixer) Volume() float64     { return f.volume }
func (f *fakeMixer) SetMuted(m bool)     { f.muted = m }
func (f *fakeMixer) Muted() bool         { return f.muted }

type testEnv struct {
	session *playback.Session
	player  *player.Mock
	state   *state.Mock
	catalog *fakeCatalog
	mixer   *fakeMixer
	qr      *QRBox
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// newTestEnv must be called inside a synctest bubble when the test lets the
// session load tracks.
func newTestEnv() *testEnv {
	p := player.NewMock()
	for _, s := range []catalog.Song{songOld, songNew} {
		for _, link := range s.AudioLinks {
			p.SetSourceDuration(link, songLength)
		}
	}
	st := state.NewMock()
	return &testEnv{
		session: playback.New(p, playback.WithLikes(likes.New(st)), playback.WithLogger(quietLogger())),
		player:  p,
		state:   st,
		catalog: newFakeCatalog(),
		mixer:   &fakeMixer{volume: 1},
		qr:      &QRBox{},
	}
}

func (e *testEnv) model(opts Options) Model {
	m := New(Deps{
		Session: e.session,
		State:   e.state,
		Catalog: e.catalog,
		Sharer:  share.NewSharer(share.QRCapability{Show: e.qr.Show}, "https://h.example.com"),
		Mixer:   e.mixer,
		QR:      e.qr,
	}, opts)
	m.log = quietLogger()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func press(m Model, key string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "pgdown":
		msg = tea.KeyMsg{Type: tea.KeyPgDown}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	return update(m, msg)
}

// withHome feeds the recent songs into the home list.
func withHome(m Model) Model {
	m, _ = update(m, HomeLoadedMsg{Songs: []catalog.Song{songNew, songOld}})
	return m
}

// withMine requests the given ids and feeds the "my songs" list.
func withMine(e *testEnv, m Model, ids ...string) (Model, tea.Cmd) {
	for _, id := range ids {
		_ = e.state.UpdateKV(MineKey, func(old string) string { return likes.Append(old, id) })
	}
	msg := m.loadMineCmd()()
	return update(m, msg)
}

func stateNowPlaying(id string, version int, view string) state.NowPlaying {
	return state.NowPlaying{SongID: id, Version: version, ViewMode: view}
}
