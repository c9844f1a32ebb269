package model

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxImageSize is the upload ceiling enforced before any network call.
const MaxImageSize = 5 << 20 // 5 MB

var (
	ErrImageTooLarge = fmt.Errorf("image is larger than %d MB", MaxImageSize>>20)
	ErrNotAnImage    = errors.New("file is not an image")
)

// StagedFile is a user-selected image held in memory pending upload.
// Staging makes a preview copy in the temp dir so the file can be inspected
// before submit; the copy is removed exactly once via Release.
type StagedFile struct {
	Name        string
	Size        int64
	ContentType string

	data        []byte
	previewPath string
	released    bool
}

// StageFile reads and validates an image from disk. The content type is
// sniffed from the bytes, not trusted from the extension.
func StageFile(path string) (*StagedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxImageSize {
		return nil, ErrImageTooLarge
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("file is empty")
	}
	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return nil, ErrNotAnImage
	}

	preview := filepath.Join(os.TempDir(), "atlas-preview-"+uuid.NewString()+filepath.Ext(path))
	if err := os.WriteFile(preview, data, 0o600); err != nil {
		return nil, err
	}
	return &StagedFile{
		Name:        filepath.Base(path),
		Size:        int64(len(data)),
		ContentType: ct,
		data:        data,
		previewPath: preview,
	}, nil
}

// Bytes returns the raw file contents for upload.
func (f *StagedFile) Bytes() []byte { return f.data }

// PreviewPath returns the preview copy location, or "" after Release.
func (f *StagedFile) PreviewPath() string {
	if f.released {
		return ""
	}
	return f.previewPath
}

// Release removes the preview copy. Safe to call more than once;
// only the first call touches the filesystem.
func (f *StagedFile) Release() {
	if f == nil || f.released {
		return
	}
	f.released = true
	if f.previewPath != "" {
		_ = os.Remove(f.previewPath)
	}
}

// Released reports whether the preview has been released.
func (f *StagedFile) Released() bool {
	return f == nil || f.released
}

// replaceStaged releases the previous file (if any) and returns the new one.
// Drafts use it so a re-staged image never leaks its predecessor's preview.
func replaceStaged(old, next *StagedFile) *StagedFile {
	if old != nil && old != next {
		old.Release()
	}
	return next
}
