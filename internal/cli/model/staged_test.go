package model

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader — минимальный валидный заголовок, который сниффер распознаёт как image/png.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func writeTempImage(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestStageFile(t *testing.T) {
	path := writeTempImage(t, "logo.png", pngHeader)

	f, err := StageFile(path)
	require.NoError(t, err)
	defer f.Release()

	assert.Equal(t, "logo.png", f.Name)
	assert.Equal(t, int64(len(pngHeader)), f.Size)
	assert.Equal(t, "image/png", f.ContentType)
	assert.Equal(t, pngHeader, f.Bytes())

	// preview copy exists until release
	_, err = os.Stat(f.PreviewPath())
	require.NoError(t, err)
}

func TestStageFile_RejectsNonImage(t *testing.T) {
	path := writeTempImage(t, "notes.txt", []byte("plain text, not an image"))
	_, err := StageFile(path)
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestStageFile_RejectsOversize(t *testing.T) {
	big := append(bytes.Clone(pngHeader), make([]byte, MaxImageSize)...)
	path := writeTempImage(t, "huge.png", big)
	_, err := StageFile(path)
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestRelease_ExactlyOnce(t *testing.T) {
	path := writeTempImage(t, "a.png", pngHeader)
	f, err := StageFile(path)
	require.NoError(t, err)

	preview := f.PreviewPath()
	f.Release()

	_, statErr := os.Stat(preview)
	assert.True(t, os.IsNotExist(statErr), "preview should be removed")
	assert.True(t, f.Released())
	assert.Empty(t, f.PreviewPath())

	// повторный Release безопасен
	f.Release()
}

func TestStagingReplacementReleasesPrevious(t *testing.T) {
	first, err := StageFile(writeTempImage(t, "a.png", pngHeader))
	require.NoError(t, err)
	second, err := StageFile(writeTempImage(t, "b.png", pngHeader))
	require.NoError(t, err)

	d := &NewsDraft{}
	d.StageImage(first)
	d.StageImage(second)

	assert.True(t, first.Released(), "replaced file must release its preview")
	assert.False(t, second.Released())

	d.Reset()
	assert.True(t, second.Released(), "reset must release the staged preview")
}
