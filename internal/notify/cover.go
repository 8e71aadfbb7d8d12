package notify

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/llehouerou/tunebrew/internal/track"
)

const maxCoverBytes = 8 << 20

// Covers keeps downloaded album covers on disk so notification servers,
// which only read local files, can show them.
type Covers struct {
	dir    string
	client *http.Client
}

// NewCovers stores covers under dir. An empty dir uses the XDG cache.
func NewCovers(dir string, client *http.Client) *Covers {
	if dir == "" {
		dir = filepath.Join(xdg.CacheHome, "tunebrew", "covers")
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Covers{dir: dir, client: client}
}

// Path returns the local file holding the cover of d, downloading it once.
func (c *Covers) Path(ctx context.Context, d track.Descriptor) (string, error) {
	if d.ThumbnailURL == "" {
		return "", nil
	}
	path := filepath.Join(c.dir, coverName(d.ThumbnailURL))
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	data, err := c.fetch(ctx, d.ThumbnailURL)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", err
	}
	tmp := path + ".part"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}
	return path, nil
}

func (c *Covers) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch cover: %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxCoverBytes))
}

// coverName keys the cache on the url: covers of different songs share the
// file name "cover.png".
func coverName(url string) string {
	h := fnv.New64a()
	h.Write([]byte(url))
	return fmt.Sprintf("%x%s", h.Sum64(), filepath.Ext(url))
}
