package share

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/samber/lo"
	"github.com/skip2/go-qrcode"
)

// clipboardWriteAll is swapped in tests.
var clipboardWriteAll = clipboard.WriteAll

// ClipboardCapability copies the share text and link to the system clipboard.
type ClipboardCapability struct{}

func (ClipboardCapability) CanShareFiles() bool { return false }

func (ClipboardCapability) Share(_ context.Context, p Payload) error {
	if len(p.Files) > 0 {
		return ErrFilesUnsupported
	}
	return clipboardWriteAll(joinLines(p.Text, p.URL))
}

// QRCapability renders the link as a terminal QR code and hands it to Show.
type QRCapability struct {
	Show func(title, code string)
}

func (QRCapability) CanShareFiles() bool { return false }

func (c QRCapability) Share(_ context.Context, p Payload) error {
	if len(p.Files) > 0 {
		return ErrFilesUnsupported
	}
	code, err := RenderQR(p.URL)
	if err != nil {
		return err
	}
	if c.Show != nil {
		c.Show(joinLines(p.Title, p.Text), code)
	}
	return nil
}

// RenderQR returns a QR code of text drawn with half-block characters.
func RenderQR(text string) (string, error) {
	qr, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("generating qr code: %w", err)
	}
	return qr.ToSmallString(false), nil
}

// ForMethod returns the capability named by the share_method setting, or
// nil for "none" and unknown names.
func ForMethod(method string, showQR func(title, code string)) Capability {
	switch strings.ToLower(method) {
	case "clipboard":
		return ClipboardCapability{}
	case "qr":
		return QRCapability{Show: showQR}
	default:
		return nil
	}
}

func joinLines(lines ...string) string {
	return strings.Join(lo.Compact(lines), "\n")
}
