package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// localStorage keeps proofs on the local disk. Each prefix becomes a
// subdirectory, mirroring the S3 key layout, so a proof and its thumbnail
// never collide even when they share a file name. It backs development
// setups and tests; production uses the S3 backend.
type localStorage struct {
	dir string
}

func NewLocalStorage(dir string) (Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &localStorage{dir: dir}, nil
}

func (s *localStorage) Upload(ctx context.Context, object *UploadObject) (*UploadResponse, error) {
	fileName := filepath.Base(object.FileName)
	if object.Prefix != "" {
		fileName = fmt.Sprintf("%s/%s", object.Prefix, fileName)
	}

	path, err := s.resolve(fileName)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, object.Data, 0o644); err != nil {
		return nil, fmt.Errorf("cannot write %s: %w", fileName, err)
	}

	return &UploadResponse{
		Url:      fmt.Sprintf("/uploads/%s", fileName),
		FileName: fileName,
	}, nil
}

func (s *localStorage) Download(ctx context.Context, fileName string) ([]byte, error) {
	path, err := s.resolve(fileName)
	if err != nil {
		return nil, err
	}

	return os.ReadFile(path)
}

// resolve maps an object name to a path under the upload directory and
// rejects names escaping it.
func (s *localStorage) resolve(fileName string) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(fileName))
	if !strings.HasPrefix(path, filepath.Clean(s.dir)+string(filepath.Separator)) {
		return "", errors.New("invalid object name")
	}

	return path, nil
}
