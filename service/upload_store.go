package service

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/energy-billing/invoice-reader/dto"
)

// UploadStore keeps uploaded PDFs on local disk until they are processed.
type UploadStore struct {
	dir     string
	maxSize int64
	log     *slog.Logger
}

func NewUploadStore(dir string, maxSize int64, log *slog.Logger) *UploadStore {
	if log == nil {
		log = slog.Default()
	}
	return &UploadStore{dir: dir, maxSize: maxSize, log: log}
}

// Save copies r into the upload dir and returns the stored path. The name is
// prefixed with a uuid so concurrent uploads of the same file do not collide.
func (s *UploadStore) Save(filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := filepath.Base(filepath.Clean("/" + filename))
	if name == "/" || name == "." {
		name = "invoice.pdf"
	}
	path := filepath.Join(s.dir, uuid.NewString()+"-"+name)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	var src io.Reader = r
	if s.maxSize > 0 {
		src = io.LimitReader(r, s.maxSize+1)
	}
	n, err := io.Copy(out, src)
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if s.maxSize > 0 && n > s.maxSize {
		os.Remove(path)
		return "", dto.ErrFileTooLarge
	}

	s.log.Info("upload stored", "path", path, "bytes", n)
	return path, nil
}
