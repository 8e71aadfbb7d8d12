// Package share builds canonical song links and hands them to whatever share
// capability the platform offers.
package share

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/llehouerou/tunebrew/internal/track"
)

const (
	linkPath     = "/large-player"
	paramID      = "song_request_id"
	paramVersion = "ver"
)

// ErrInvalidLink is returned by ParseLink for links it did not build.
var ErrInvalidLink = errors.New("invalid share link")

// BuildLink returns <base>/large-player?song_request_id=<id>&ver=<version>.
func BuildLink(base string, d track.Descriptor) string {
	v := url.Values{}
	v.Set(paramID, d.ID)
	v.Set(paramVersion, strconv.Itoa(d.Version))
	return strings.TrimRight(base, "/") + linkPath + "?" + v.Encode()
}

// ParseLink extracts the song id and version from a link built by BuildLink.
// A missing version means 1.
func ParseLink(raw string) (id string, version int, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrInvalidLink, err)
	}
	if !strings.HasSuffix(u.Path, linkPath) {
		return "", 0, fmt.Errorf("%w: path %q", ErrInvalidLink, u.Path)
	}

	q := u.Query()
	id = q.Get(paramID)
	if id == "" {
		return "", 0, fmt.Errorf("%w: missing %s", ErrInvalidLink, paramID)
	}

	version = 1
	if s := q.Get(paramVersion); s != "" {
		version, err = strconv.Atoi(s)
		if err != nil || version < 1 {
			return "", 0, fmt.Errorf("%w: version %q", ErrInvalidLink, s)
		}
	}
	return id, version, nil
}
