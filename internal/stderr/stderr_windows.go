//go:build windows

package stderr

import "github.com/sirupsen/logrus"

// Capture is a no-op on Windows, where the audio backend does not write to
// the console.
type Capture struct{}

// Start is a no-op on Windows.
func Start(_ *logrus.Entry) (*Capture, error) {
	return &Capture{}, nil
}

// Stop is a no-op on Windows.
func (c *Capture) Stop() {}
