// Package track defines the descriptor of one playable rendered song variant.
package track

import "fmt"

// Descriptor identifies one rendered variant of a generated song.
// It is a value: a track switch replaces it wholesale.
type Descriptor struct {
	ID           string // song request id
	Version      int    // rendered variant, 1 or 2
	Title        string
	Artist       string
	Lyric        string
	AudioURL     string
	ThumbnailURL string
}

// Key is the identity of a descriptor. Two versions of the same song share
// a title and an id but never an audio URL.
type Key struct {
	ID       string
	AudioURL string
}

// Key returns the identity of the descriptor.
func (d Descriptor) Key() Key {
	return Key{ID: d.ID, AudioURL: d.AudioURL}
}

// Same reports whether d and other designate the same playable variant.
func (d Descriptor) Same(other Descriptor) bool {
	return d.Key() == other.Key()
}

// ShareText is the "artist - title" line used when sharing.
func (d Descriptor) ShareText() string {
	if d.Artist == "" {
		return d.Title
	}
	return d.Artist + " - " + d.Title
}

func (k Key) String() string {
	return fmt.Sprintf("%s@%s", k.ID, k.AudioURL)
}

// IsZero reports whether the key designates no track.
func (k Key) IsZero() bool {
	return k == Key{}
}
