package app

import (
	"context"

	"github.com/llehouerou/tunebrew/internal/catalog"
	"github.com/llehouerou/tunebrew/internal/player"
	"github.com/llehouerou/tunebrew/internal/track"
)

// Catalog is the song source the lists and deep links read from.
type Catalog interface {
	Recent(ctx context.Context, limit int) ([]catalog.Song, error)
	Songs(ctx context.Context, ids []string) (map[string]catalog.Song, error)
	Resolve(ctx context.Context, id string, version int) (track.Descriptor, error)
	Descriptor(s catalog.Song, version int) (track.Descriptor, error)
	ArtistName(model string) string
}

// Mixer controls the output level.
type Mixer interface {
	SetVolume(level float64)
	Volume() float64
	SetMuted(muted bool)
	Muted() bool
}

var (
	_ Catalog = (*catalog.Client)(nil)
	_ Mixer   = (*player.Player)(nil)
)
