package state

import "github.com/llehouerou/tunebrew/internal/likes"

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	likes.KV
	UpdateKV(key string, fn func(old string) string) error
	SaveNowPlaying(np NowPlaying)
	GetNowPlaying() (*NowPlaying, error)
	GetVolume() (*VolumeState, error)
	SaveVolume(volume float64, muted bool) error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
