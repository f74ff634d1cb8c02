// Package upload stores report documents on local disk. Each write request
// carries at most one file; the stored relative path, not the file itself, is
// what the report record persists.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Store writes uploaded documents into a single flat directory.
type Store struct {
	dir        string
	publicPath string
	now        func() time.Time
}

// NewStore creates the upload directory if needed and returns a Store whose
// saved paths are rooted at publicPath (e.g. "/uploads").
func NewStore(dir, publicPath string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &Store{
		dir:        dir,
		publicPath: strings.TrimSuffix(publicPath, "/"),
		now:        time.Now,
	}, nil
}

// Dir returns the local directory documents are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the uploaded file under a generated name that preserves the
// original extension and returns the relative path to persist on the report.
// Names are nanosecond timestamps, which is collision-resistant enough for
// one file per request. Old files are never reclaimed when a document is
// replaced or its report deleted.
func (s *Store) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := fmt.Sprintf("%d%s", s.now().UnixNano(), ext)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create document file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write document file: %w", err)
	}

	return path.Join(s.publicPath, name), nil
}
