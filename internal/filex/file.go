// Package filex has small filesystem helpers for local state and uploads.
package filex

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (and parents) with owner-only permissions and
// returns its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}
	return abs, nil
}

// Upload describes a local file about to be sent to the backend.
type Upload struct {
	Name        string
	Size        int64
	ContentType string
	Reader      io.ReadSeekCloser
}

// OpenUpload opens path, sniffs its content type from the first 512 bytes
// and rewinds the reader. The caller closes Reader.
func OpenUpload(path string) (*Upload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%s is a directory", path)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		_ = f.Close()
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, err
	}

	return &Upload{
		Name:        filepath.Base(path),
		Size:        info.Size(),
		ContentType: http.DetectContentType(head[:n]),
		Reader:      f,
	}, nil
}
