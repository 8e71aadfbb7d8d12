package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tunebrew/internal/app"
	"github.com/llehouerou/tunebrew/internal/likes"
	"github.com/llehouerou/tunebrew/internal/state"
)

func useMockState(t *testing.T) *state.Mock {
	t.Helper()
	st := state.NewMock()
	orig := openState
	openState = func() (state.Interface, error) { return st, nil }
	t.Cleanup(func() { openState = orig })
	return st
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLink(t *testing.T) {
	cfg := writeConfig(t, `share_base = "https://homebrew.example.com/"`)

	out, err := run(t, "link", "req-1", "--ver", "2", "--qr=false", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://homebrew.example.com/large-player?song_request_id=req-1&ver=2\n", out)
}

func TestLink_QR(t *testing.T) {
	cfg := writeConfig(t, `share_base = "https://homebrew.example.com"`)

	out, err := run(t, "link", "req-1", "--ver", "1", "--qr", "--config", cfg)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Greater(t, len(lines), 5, "QR code printed above the link")
	assert.Equal(t, "https://homebrew.example.com/large-player?song_request_id=req-1&ver=1", lines[len(lines)-1])
}

func TestLink_Errors(t *testing.T) {
	noBase := writeConfig(t, `api_url = "https://api.example.com"`)

	_, err := run(t, "link", "req-1", "--ver", "1", "--qr=false", "--config", noBase)
	require.ErrorContains(t, err, "share_base")

	_, err = run(t, "link", "req-1", "--ver", "3", "--config", noBase)
	require.ErrorContains(t, err, "--ver")
}

func TestLike_ToggleAndList(t *testing.T) {
	st := useMockState(t)

	out, err := run(t, "like", "req-1")
	require.NoError(t, err)
	assert.Equal(t, "liked req-1\n", out)

	_, err = run(t, "like", "req-2")
	require.NoError(t, err)
	raw, _, _ := st.Get(likes.Key)
	assert.Equal(t, "req-1,req-2", raw)

	out, err = run(t, "like")
	require.NoError(t, err)
	assert.Equal(t, "req-1\nreq-2\n", out)

	out, err = run(t, "like", "req-1")
	require.NoError(t, err)
	assert.Equal(t, "unliked req-1\n", out)
	assert.True(t, st.IsClosed(), "state closed after the command")
}

func TestAdd(t *testing.T) {
	st := useMockState(t)

	out, err := run(t, "add", "req-1", "req-2", "req-1")
	require.NoError(t, err)
	assert.Equal(t, "added req-1\nadded req-2\nadded req-1\n", out)

	raw, _, _ := st.Get(app.MineKey)
	assert.Equal(t, "req-1,req-2", raw, "ids are kept once, in request order")
}

func TestAdd_RejectsInvalidIDs(t *testing.T) {
	st := useMockState(t)

	_, err := run(t, "add", "a,b")
	require.ErrorContains(t, err, "invalid request id")
	raw, _, _ := st.Get(app.MineKey)
	assert.Empty(t, raw)
}

func TestOpen_RejectsBadLink(t *testing.T) {
	_, err := run(t, "open", "https://homebrew.example.com/my?song_request_id=abc")
	require.Error(t, err)
}
