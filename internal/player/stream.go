package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"

	maxSourceBytes = 64 << 20
)

// Fetcher returns the raw bytes of a source.
type Fetcher func(ctx context.Context, src string) ([]byte, error)

// DefaultFetcher reads http(s) sources with client (a 30s-timeout client
// when nil) and everything else from the local filesystem.
func DefaultFetcher(client *http.Client) Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return func(ctx context.Context, src string) ([]byte, error) {
		if src == "" {
			return nil, errors.New("empty source")
		}
		if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
			return fetchHTTP(ctx, client, src)
		}
		return os.ReadFile(strings.TrimPrefix(src, "file://"))
	}
}

func fetchHTTP(ctx context.Context, client *http.Client, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxSourceBytes {
		return nil, fmt.Errorf("source larger than %d bytes", maxSourceBytes)
	}
	return data, nil
}

// sourceExt returns the lowercase extension of the source path, ignoring
// any query string.
func sourceExt(src string) string {
	p := src
	if u, err := url.Parse(src); err == nil && u.Path != "" {
		p = u.Path
	}
	return strings.ToLower(path.Ext(p))
}

// memFile keeps the Seeker of the in-memory reader visible to decoders
// that take an io.ReadCloser.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func decode(src string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	switch sourceExt(src) {
	case extFLAC:
		return flac.Decode(memFile{bytes.NewReader(skipID3v2(data))})
	case extWAV:
		return wav.Decode(memFile{bytes.NewReader(data)})
	default:
		// Generated songs are mp3; unknown extensions are tried as mp3.
		return mp3.Decode(memFile{bytes.NewReader(data)})
	}
}

// skipID3v2 strips an ID3v2 tag some taggers prepend to FLAC files.
func skipID3v2(data []byte) []byte {
	if len(data) < 10 || string(data[0:3]) != "ID3" {
		return data
	}
	// Syncsafe integer: 7 bits per byte.
	size := int(data[6])<<21 | int(data[7])<<14 | int(data[8])<<7 | int(data[9])
	if 10+size > len(data) {
		return data
	}
	return data[10+size:]
}
