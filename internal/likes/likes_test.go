package likes

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingKV struct {
	getErr, setErr error
}

func (f failingKV) Get(string) (string, bool, error) { return "", false, f.getErr }
func (f failingKV) Set(string, string) error         { return f.setErr }

func TestToggle_PairRestoresMembership(t *testing.T) {
	kv := NewMemoryKV()
	s := New(kv)

	liked, err := s.IsLiked("a")
	require.NoError(t, err)
	assert.False(t, liked)

	liked, err = s.Toggle("a")
	require.NoError(t, err)
	assert.True(t, liked)

	raw, ok, _ := kv.Get(Key)
	require.True(t, ok)
	assert.Equal(t, "a", raw)

	liked, err = s.Toggle("a")
	require.NoError(t, err)
	assert.False(t, liked)

	liked, err = s.IsLiked("a")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestToggle_KeepsOtherIDs(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(Key, "x,y"))
	s := New(kv)

	_, err := s.Toggle("z")
	require.NoError(t, err)
	_, err = s.Toggle("x")
	require.NoError(t, err)

	ids, err := s.All()
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "z"}, ids)
}

func TestToggle_ConcurrentDistinctIDs(t *testing.T) {
	s := New(NewMemoryKV())
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Go(func() {
			_, _ = s.Toggle(id)
		})
	}
	wg.Wait()

	got, err := s.All()
	require.NoError(t, err)
	assert.ElementsMatch(t, ids, got)
}

func TestErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := New(failingKV{getErr: boom}).IsLiked("a")
	require.ErrorIs(t, err, boom)

	liked, err := New(failingKV{setErr: boom}).Toggle("a")
	require.ErrorIs(t, err, boom)
	assert.False(t, liked, "failed toggle reports the unchanged membership")
}

func TestSplit(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", []string{}},
		{"a", []string{"a"}},
		{"a, b,,a ,c", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Split(tt.raw), "Split(%q)", tt.raw)
	}
}

func TestAppend(t *testing.T) {
	assert.Equal(t, "a", Append("", "a"))
	assert.Equal(t, "a,b", Append("a", "b"))
	assert.Equal(t, "a,b", Append("a,b", "a"))
	assert.Equal(t, "a", Append("a", ""))
}
