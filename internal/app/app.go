package app

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/tunebrew/internal/keymap"
	"github.com/llehouerou/tunebrew/internal/log"
	"github.com/llehouerou/tunebrew/internal/playback"
	"github.com/llehouerou/tunebrew/internal/share"
	"github.com/llehouerou/tunebrew/internal/state"
	"github.com/llehouerou/tunebrew/internal/ui/songlist"
)

const (
	volumeStep          = 0.05
	seekStep            = 5 * time.Second
	defaultPollInterval = 5 * time.Second
	defaultRecentLimit  = 3
)

type listID int

const (
	listHome listID = iota
	listMine
)

// Open is a track to load at startup instead of resuming the last one.
type Open struct {
	ID      string
	Version int
}

// Deps are the collaborators of the model. Catalog, Sharer, Mixer and QR
// may be nil.
type Deps struct {
	Session *playback.Session
	State   state.Interface
	Catalog Catalog
	Sharer  *share.Sharer
	Mixer   Mixer
	QR      *QRBox
}

// Options tune list behavior.
type Options struct {
	Autoplay     bool // picks from "my songs" start playing
	PollInterval time.Duration
	RecentLimit  int
	Open         *Open
}

// Model is the bubbletea model.
type Model struct {
	session *playback.Session
	sub     *playback.Subscription
	state   state.Interface
	catalog Catalog
	sharer  *share.Sharer
	mixer   Mixer
	qr      *QRBox
	log     *logrus.Entry

	keys   *keymap.Resolver
	help   help.Model
	lyrics viewport.Model
	lists  [2]songlist.Model
	active listID

	snapshot   playback.Snapshot
	lyricsOf   string // key of the track whose lyrics fill the viewport
	lyricsText string

	mineIDs []string
	polling bool

	status    string
	statusErr bool
	statusSeq int

	qrTitle  string
	qrCode   string
	showHelp bool

	autoplay     bool
	pollInterval time.Duration
	recentLimit  int
	open         *Open

	Width  int
	Height int
}

// New creates the model and subscribes to the session. Saved volume is
// applied to the mixer right away.
func New(deps Deps, opts Options) Model {
	m := Model{
		session:      deps.Session,
		state:        deps.State,
		catalog:      deps.Catalog,
		sharer:       deps.Sharer,
		mixer:        deps.Mixer,
		qr:           deps.QR,
		log:          log.For("app"),
		keys:         keymap.NewResolver(keymap.All),
		help:         help.New(),
		lyrics:       viewport.New(0, 0),
		lists:        [2]songlist.Model{songlist.New("Recent songs"), songlist.New("My songs")},
		autoplay:     opts.Autoplay,
		pollInterval: opts.PollInterval,
		recentLimit:  opts.RecentLimit,
		open:         opts.Open,
	}
	if m.pollInterval <= 0 {
		m.pollInterval = defaultPollInterval
	}
	if m.recentLimit <= 0 {
		m.recentLimit = defaultRecentLimit
	}

	m.sub = m.session.Subscribe()
	m.snapshot = m.session.Snapshot()

	hint := "Loading..."
	if m.catalog == nil {
		hint = "Set api_url in config.toml to list songs."
	}
	m.lists[listHome].SetStatus(hint)
	m.lists[listMine].SetStatus(hint)

	m.restoreVolume()
	return m
}

// Init starts event watching, the progress tick, list loading and resume.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.WatchSessionEvents(),
		TickCmd(),
		m.loadHomeCmd(),
		m.loadMineCmd(),
		m.startupTrackCmd(),
	)
}

func (m *Model) activeList() *songlist.Model {
	return &m.lists[m.active]
}
