//go:build !windows

// Package stderr captures output that C libraries (ALSA, the mp3 decoder)
// write straight to file descriptor 2 and forwards it to the log, so the
// terminal UI is never drawn over.
package stderr

import (
	"os"
	"syscall"

	"github.com/sirupsen/logrus"
)

// Capture owns the redirected descriptor.
type Capture struct {
	orig int
	r, w *os.File
	done chan struct{}
}

// Start redirects fd 2 into a pipe whose lines are logged on log at warn
// level. It must run before the audio device is opened. On error stderr is
// left untouched and the program can continue.
func Start(log *logrus.Entry) (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{orig: orig, r: r, w: w, done: make(chan struct{})}
	go func() {
		defer close(c.done)
		forward(r, func(line string) { log.Warn(line) })
	}()
	return c, nil
}

// Stop restores the original stderr and waits for buffered lines to be
// logged.
func (c *Capture) Stop() {
	if c == nil {
		return
	}
	_ = syscall.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = syscall.Close(c.orig)

	c.w.Close()
	<-c.done
	c.r.Close()
}
