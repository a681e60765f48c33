package editor

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview_AcquireAndRelease(t *testing.T) {
	dir := t.TempDir()
	p, err := newPreview(dir, "photo.png", []byte("payload"))
	require.NoError(t, err)
	require.NotEmpty(t, p.Path())

	data, err := os.ReadFile(p.Path())
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	path := p.Path()
	require.NoError(t, p.Release())
	assert.True(t, p.Released())
	assert.Empty(t, p.Path())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestPreview_DoubleReleaseIsNoop(t *testing.T) {
	p, err := newPreview(t.TempDir(), "photo.png", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, p.Release())
	// Both the explicit-delete and disposal paths may hit the same handle.
	require.NoError(t, p.Release())
}

func TestPreview_NilSafe(t *testing.T) {
	var p *Preview
	assert.True(t, p.Released())
	assert.Empty(t, p.Path())
	assert.NoError(t, p.Release())
}
