package playback

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorEvent_UnwrapsStartFailure(t *testing.T) {
	cause := errors.New("device busy")
	ev := ErrorEvent{Op: "play", Err: fmt.Errorf("%w: %w", ErrPlaybackStartFailed, cause)}

	if !errors.Is(ev, ErrPlaybackStartFailed) {
		t.Error("ErrorEvent should match ErrPlaybackStartFailed")
	}
	if !errors.Is(ev, cause) {
		t.Error("ErrorEvent should match the underlying cause")
	}
	if got, want := ev.Error(), "play: playback start failed: device busy"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorEvent_Cause(t *testing.T) {
	cause := errors.New("device busy")

	ev := ErrorEvent{Op: "play", Err: fmt.Errorf("%w: %w", ErrPlaybackStartFailed, cause)}
	if got := ev.Cause(); got != cause { //nolint:errorlint // identity check
		t.Errorf("Cause() = %v, want %v", got, cause)
	}

	plain := ErrorEvent{Op: "load", Err: cause}
	if got := plain.Cause(); got != cause { //nolint:errorlint // identity check
		t.Errorf("Cause() of unwrapped error = %v, want %v", got, cause)
	}
}
