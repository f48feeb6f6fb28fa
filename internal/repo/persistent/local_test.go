package persistent

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalArtifactRepoSave(t *testing.T) {
	dir := t.TempDir()
	r := NewLocalArtifactRepo(dir)

	err := r.Save(context.Background(), "processed/abc.png", []byte("png-bytes"), "image/png")
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "processed", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), got)

	entries, err := os.ReadDir(filepath.Join(dir, "processed"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestLocalArtifactRepoOverwrite(t *testing.T) {
	dir := t.TempDir()
	r := NewLocalArtifactRepo(dir)

	require.NoError(t, r.Save(context.Background(), "a.png", []byte("one"), ""))
	require.NoError(t, r.Save(context.Background(), "a.png", []byte("two"), ""))

	got, err := os.ReadFile(filepath.Join(dir, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
}

func TestLocalArtifactRepoRejectsEscapingKeys(t *testing.T) {
	r := NewLocalArtifactRepo(t.TempDir())

	for _, key := range []string{"", "..", "../x.png", "/etc/x.png", "a/../../x.png"} {
		err := r.Save(context.Background(), key, []byte("x"), "")
		assert.Error(t, err, key)
	}
}

func TestLocalArtifactRepoCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewLocalArtifactRepo(t.TempDir()).Save(ctx, "a.png", []byte("x"), "")
	assert.ErrorIs(t, err, context.Canceled)
}
