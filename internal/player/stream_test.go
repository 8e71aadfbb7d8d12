package player

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestSourceExt(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"https://cdn.example.com/songs/abc/[0]1_result.mp3", ".mp3"},
		{"https://cdn.example.com/a.FLAC?token=xyz", ".flac"},
		{"/home/user/music/song.wav", ".wav"},
		{"file:///tmp/song.mp3", ".mp3"},
		{"https://cdn.example.com/stream", ""},
	}

	for _, tt := range tests {
		if got := sourceExt(tt.src); got != tt.want {
			t.Errorf("sourceExt(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestSkipID3v2(t *testing.T) {
	t.Run("no tag", func(t *testing.T) {
		data := []byte("fLaC\x00\x00\x00\x22")
		if got := skipID3v2(data); string(got) != string(data) {
			t.Errorf("skipID3v2 modified untagged data")
		}
	})

	t.Run("tag stripped", func(t *testing.T) {
		// 10-byte header with syncsafe size 4, then 4 bytes of tag body.
		data := []byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 4, 1, 2, 3, 4, 'f', 'L', 'a', 'C'}
		got := skipID3v2(data)
		if string(got) != "fLaC" {
			t.Errorf("skipID3v2() = %q, want %q", got, "fLaC")
		}
	})

	t.Run("truncated tag", func(t *testing.T) {
		data := []byte{'I', 'D', '3', 4, 0, 0, 0, 0, 1, 0, 1, 2}
		if got := skipID3v2(data); len(got) != len(data) {
			t.Errorf("skipID3v2 should leave truncated data untouched")
		}
	})
}

func TestDefaultFetcher_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.mp3" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("audio-bytes"))
	}))
	defer srv.Close()

	fetch := DefaultFetcher(srv.Client())

	data, err := fetch(context.Background(), srv.URL+"/song.mp3")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(data) != "audio-bytes" {
		t.Errorf("data = %q, want %q", data, "audio-bytes")
	}

	if _, err := fetch(context.Background(), srv.URL+"/missing.mp3"); err == nil {
		t.Error("expected error for 404")
	}
}

func TestDefaultFetcher_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	if err := os.WriteFile(path, []byte("local"), 0o600); err != nil {
		t.Fatal(err)
	}

	fetch := DefaultFetcher(nil)
	for _, src := range []string{path, "file://" + path} {
		data, err := fetch(context.Background(), src)
		if err != nil {
			t.Fatalf("fetch(%q): %v", src, err)
		}
		if string(data) != "local" {
			t.Errorf("fetch(%q) = %q, want %q", src, data, "local")
		}
	}

	if _, err := fetch(context.Background(), ""); err == nil {
		t.Error("expected error for empty source")
	}
}

func TestLoad_StaleHandle(t *testing.T) {
	p := New(WithFetcher(func(context.Context, string) ([]byte, error) {
		return []byte("x"), nil
	}))
	defer p.Close()

	old := p.SetSource("a.mp3")
	p.SetSource("b.mp3")

	if _, err := p.Load(context.Background(), old); err != ErrSuperseded {
		t.Errorf("Load(stale) error = %v, want ErrSuperseded", err)
	}
	if err := p.Play(old); err != ErrSuperseded {
		t.Errorf("Play(stale) error = %v, want ErrSuperseded", err)
	}
}

func TestLoad_FetchErrorResetsState(t *testing.T) {
	p := New(WithFetcher(func(context.Context, string) ([]byte, error) {
		return nil, os.ErrNotExist
	}))
	defer p.Close()

	h := p.SetSource("a.mp3")
	if _, err := p.Load(context.Background(), h); err == nil {
		t.Fatal("expected load error")
	}
	if p.State() != Stopped {
		t.Errorf("State() = %v, want Stopped", p.State())
	}
	if err := p.Play(h); err != ErrNotLoaded {
		t.Errorf("Play() error = %v, want ErrNotLoaded", err)
	}
}
