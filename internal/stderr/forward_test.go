package stderr

import (
	"strings"
	"testing"
)

func TestForward(t *testing.T) {
	in := "ALSA lib pcm.c:8526: underrun occurred\n\n   \n  mp3: bad frame  \n"

	var got []string
	forward(strings.NewReader(in), func(line string) { got = append(got, line) })

	want := []string{"ALSA lib pcm.c:8526: underrun occurred", "mp3: bad frame"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}
