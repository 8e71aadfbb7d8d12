// Package catalog is a client for the song generation API: it lists songs
// and resolves a song request id and version to a playable track.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/samber/lo"

	"github.com/llehouerou/tunebrew/internal/track"
)

var (
	// ErrNotFound is returned when the API does not know the request id.
	ErrNotFound = errors.New("song not found")

	// ErrNotReady is returned for songs still in production.
	ErrNotReady = errors.New("song is still in production")

	// ErrNoAudio is returned when a completed song has no link for the version.
	ErrNoAudio = errors.New("no audio for version")
)

const (
	defaultTimeout  = 10 * time.Second
	defaultCacheTTL = 10 * time.Minute
	cacheSize       = 256
)

// Status is the production status of a song.
type Status string

const (
	StatusPending  Status = "pending"
	StatusComplete Status = "complete"
)

// Song is one song request as returned by the API. Each request renders two
// versions.
type Song struct {
	RequestID  string   `json:"-"`
	Title      string   `json:"title"`
	Lyric      string   `json:"lyric"`
	Style      string   `json:"style"`
	ModelName  string   `json:"model_name"`
	CreatedAt  string   `json:"created_at"`
	Status     Status   `json:"status"`
	AudioLinks []string `json:"audio_links"`
}

// Ready reports whether the song can be played.
func (s Song) Ready() bool {
	return s.Status == StatusComplete && len(s.AudioLinks) > 0
}

var createdLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
}

// Created parses CreatedAt; the zero time when it cannot be parsed.
func (s Song) Created() time.Time {
	for _, layout := range createdLayouts {
		if t, err := time.Parse(layout, s.CreatedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Config configures a Client.
type Config struct {
	APIURL        string
	ThumbnailBase string
	Artists       map[string]string // model_name -> display name
	CacheTTL      time.Duration
	HTTPClient    *http.Client
}

// Client talks to the song generation API. Completed songs are cached.
type Client struct {
	cfg   Config
	http  *http.Client
	cache *expirable.LRU[string, Song]
}

// New creates a client.
func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Client{
		cfg:   cfg,
		http:  hc,
		cache: expirable.NewLRU[string, Song](cacheSize, nil, ttl),
	}
}

// Songs fetches the given request ids. Unknown ids are absent from the map.
func (c *Client) Songs(ctx context.Context, ids []string) (map[string]Song, error) {
	if len(ids) == 0 {
		return map[string]Song{}, nil
	}
	body, err := json.Marshal(map[string]string{"song_ids": strings.Join(ids, ",")})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/songs"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doSongs(req)
}

// Completed fetches every completed song.
func (c *Client) Completed(ctx context.Context) (map[string]Song, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/all-completed-songs"), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.doSongs(req)
}

// Recent returns the newest completed songs, at most limit.
func (c *Client) Recent(ctx context.Context, limit int) ([]Song, error) {
	songs, err := c.Completed(ctx)
	if err != nil {
		return nil, err
	}
	list := lo.Filter(SortNewest(songs), func(s Song, _ int) bool { return s.Ready() })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// Lookup returns one song, from the cache when it was seen complete.
func (c *Client) Lookup(ctx context.Context, id string) (Song, error) {
	if s, ok := c.cache.Get(id); ok {
		return s, nil
	}
	songs, err := c.Songs(ctx, []string{id})
	if err != nil {
		return Song{}, err
	}
	s, ok := songs[id]
	if !ok {
		return Song{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// Resolve returns the playable track for version of request id.
func (c *Client) Resolve(ctx context.Context, id string, version int) (track.Descriptor, error) {
	s, err := c.Lookup(ctx, id)
	if err != nil {
		return track.Descriptor{}, err
	}
	return c.Descriptor(s, version)
}

// Descriptor builds the track for version of s.
func (c *Client) Descriptor(s Song, version int) (track.Descriptor, error) {
	if s.Status != StatusComplete {
		return track.Descriptor{}, fmt.Errorf("%w: %s", ErrNotReady, s.RequestID)
	}
	link, ok := AudioLink(s.AudioLinks, version)
	if !ok {
		return track.Descriptor{}, fmt.Errorf("%w %d: %s", ErrNoAudio, version, s.RequestID)
	}
	return track.Descriptor{
		ID:           s.RequestID,
		Version:      version,
		Title:        VersionTitle(s.Title, version),
		Artist:       c.ArtistName(s.ModelName),
		Lyric:        s.Lyric,
		AudioURL:     link,
		ThumbnailURL: c.ThumbnailURL(s.RequestID),
	}, nil
}

// ArtistName maps a model name to its display name, or returns it unchanged.
func (c *Client) ArtistName(model string) string {
	if name, ok := c.cfg.Artists[model]; ok {
		return name
	}
	return model
}

// ThumbnailURL returns the album cover of request id.
func (c *Client) ThumbnailURL(id string) string {
	if c.cfg.ThumbnailBase == "" {
		return ""
	}
	return strings.TrimRight(c.cfg.ThumbnailBase, "/") + "/album-covers/" + id + "/cover.png"
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.cfg.APIURL, "/") + path
}

func (c *Client) doSongs(req *http.Request) (map[string]Song, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var songs map[string]Song
	if err := json.NewDecoder(resp.Body).Decode(&songs); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	for id, s := range songs {
		s.RequestID = id
		songs[id] = s
		if s.Ready() {
			c.cache.Add(id, s)
		}
	}
	return songs, nil
}

// AudioLink picks the link rendering version. Version 1 falls back to the
// first link.
func AudioLink(links []string, version int) (string, bool) {
	suffix := fmt.Sprintf("[0]%d_result.mp3", version)
	if link, ok := lo.Find(links, func(l string) bool { return strings.Contains(l, suffix) }); ok {
		return link, true
	}
	if version == 1 && len(links) > 0 {
		return links[0], true
	}
	return "", false
}

// VersionTitle returns "<title> VER <n>".
func VersionTitle(title string, version int) string {
	return fmt.Sprintf("%s VER %d", title, version)
}

// SortNewest returns the songs ordered by creation time, newest first. Ties
// are ordered by request id.
func SortNewest(songs map[string]Song) []Song {
	list := lo.Values(songs)
	slices.SortFunc(list, func(a, b Song) int {
		if c := b.Created().Compare(a.Created()); c != 0 {
			return c
		}
		return strings.Compare(a.RequestID, b.RequestID)
	})
	return list
}
