package share

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/tunebrew/internal/log"
	"github.com/llehouerou/tunebrew/internal/track"
)

const maxImageBytes = 8 << 20

var (
	// ErrShareUnavailable is returned when no share capability is configured.
	ErrShareUnavailable = errors.New("sharing is not available")

	// ErrFilesUnsupported is returned by capabilities that cannot attach files.
	ErrFilesUnsupported = errors.New("capability cannot share files")
)

// File is an attachment.
type File struct {
	Name string
	MIME string
	Data []byte
}

// Payload is what gets shared.
type Payload struct {
	Title string
	Text  string
	URL   string
	Files []File
}

// Capability is a platform share target.
type Capability interface {
	// CanShareFiles reports whether Share accepts attachments.
	CanShareFiles() bool
	Share(ctx context.Context, p Payload) error
}

// Sharer shares tracks through a capability. The zero capability means
// sharing is unavailable.
type Sharer struct {
	target Capability
	base   string
	client *http.Client
	log    *logrus.Entry
}

// SharerOption configures a Sharer.
type SharerOption func(*Sharer)

// WithHTTPClient sets the client used to fetch thumbnails.
func WithHTTPClient(c *http.Client) SharerOption {
	return func(s *Sharer) { s.client = c }
}

// NewSharer creates a sharer building links under base.
func NewSharer(c Capability, base string, opts ...SharerOption) *Sharer {
	s := &Sharer{
		target: c,
		base:   base,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log.For("share"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available reports whether a capability is configured.
func (s *Sharer) Available() bool {
	return s.target != nil
}

// Link returns the canonical link for d.
func (s *Sharer) Link(d track.Descriptor) string {
	return BuildLink(s.base, d)
}

// Share shares d with its thumbnail attached when possible, and falls back
// to text and link only when the image cannot be fetched or attached.
func (s *Sharer) Share(ctx context.Context, d track.Descriptor) (Payload, error) {
	if s.target == nil {
		return Payload{}, ErrShareUnavailable
	}

	p := Payload{
		Title: d.Title,
		Text:  d.ShareText(),
		URL:   s.Link(d),
	}

	if s.target.CanShareFiles() && d.ThumbnailURL != "" {
		img, err := s.fetchImage(ctx, d.ThumbnailURL)
		if err != nil {
			s.log.WithError(err).WithField("url", d.ThumbnailURL).Debug("thumbnail not attached")
		} else {
			withImage := p
			withImage.Files = []File{img}
			err = s.target.Share(ctx, withImage)
			if err == nil {
				return withImage, nil
			}
			s.log.WithError(err).Debug("share with image failed, retrying without")
		}
	}

	if err := s.target.Share(ctx, p); err != nil {
		return Payload{}, fmt.Errorf("share: %w", err)
	}
	return p, nil
}

func (s *Sharer) fetchImage(ctx context.Context, rawURL string) (File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return File{}, fmt.Errorf("create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return File{}, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return File{}, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return File{}, fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxImageBytes {
		return File{}, fmt.Errorf("image larger than %d bytes", maxImageBytes)
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	return File{Name: path.Base(req.URL.Path), MIME: mime, Data: data}, nil
}
