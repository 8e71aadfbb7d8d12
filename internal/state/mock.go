package state

import "sync"

// Mock is an in-memory test double for Manager.
type Mock struct {
	mu         sync.Mutex
	kv         map[string]string
	nowPlaying *NowPlaying
	volume     VolumeState
	setErr     error
	closed     bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{kv: map[string]string{}, volume: VolumeState{Volume: 1.0}}
}

func (m *Mock) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.kv[key]
	return v, ok, nil
}

func (m *Mock) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.kv[key] = value
	return nil
}

func (m *Mock) UpdateKV(key string, fn func(old string) string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.kv[key] = fn(m.kv[key])
	return nil
}

func (m *Mock) SaveNowPlaying(np NowPlaying) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nowPlaying = &np
}

func (m *Mock) GetNowPlaying() (*NowPlaying, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nowPlaying == nil || m.nowPlaying.SongID == "" {
		return nil, nil //nolint:nilnil // nothing saved
	}
	np := *m.nowPlaying
	return &np, nil
}

func (m *Mock) GetVolume() (*VolumeState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.volume
	return &v, nil
}

func (m *Mock) SaveVolume(volume float64, muted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = VolumeState{Volume: volume, Muted: muted}
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErr = err
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
