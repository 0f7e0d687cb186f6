package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FSGateway keeps one <collection>.json file per collection under a base
// directory. Writes go through a temp file + rename so a crashed save never
// leaves a torn document behind.
type FSGateway struct{ base string }

func NewFSGateway(base string) (*FSGateway, error) {
	if base == "" {
		base = "./data"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSGateway{base: base}, nil
}

func (s *FSGateway) Load(_ context.Context, collection string) ([]byte, error) {
	raw, err := os.ReadFile(s.path(collection))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

func (s *FSGateway) Save(_ context.Context, collection string, data []byte) error {
	dst := s.path(collection)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, dst)
}

func (s *FSGateway) path(collection string) string {
	return filepath.Join(s.base, filepath.Clean(collection)+".json")
}
