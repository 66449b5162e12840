package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	clog "github.com/charmbracelet/log"
)

// Store persists the user's partial configuration.
type Store interface {
	// Load returns the stored record. A store that was never written returns
	// an empty Record and no error.
	Load(ctx context.Context) (Record, error)

	// Save replaces the stored record.
	Save(ctx context.Context, r Record) error
}

// FileStore is a Store backed by a single TOML file.
type FileStore struct {
	Path string
	log  *clog.Logger
}

var _ Store = &FileStore{}

// NewFileStore creates a FileStore for the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		Path: path,
		log:  clog.Default().WithPrefix("store"),
	}
}

// NewUserStore creates a FileStore for the per-user config file.
func NewUserStore() (*FileStore, error) {
	path, err := UserConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return NewFileStore(path), nil
}

func (s *FileStore) Load(ctx context.Context) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	if _, err := os.Stat(s.Path); errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("Store file does not exist yet", "path", s.Path)
		return Record{}, nil
	}

	return decodeRecordFile(s.Path, s.log)
}

// Save writes r to a temp file next to Path and renames it into place, so a
// failed write never leaves a truncated config behind.
func (s *FileStore) Save(ctx context.Context, r Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(r); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	if err := writeFileAtomic(s.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}

	s.log.Debug("Saved config", "path", s.Path, "bytes", buf.Len())
	return nil
}

// Update loads the stored record, applies fn and saves the result. Nothing is
// written when fn returns an error.
func Update(ctx context.Context, s Store, fn func(r *Record) error) (Record, error) {
	rec, err := s.Load(ctx)
	if err != nil {
		return Record{}, fmt.Errorf("failed to load stored config: %w", err)
	}

	if err := fn(&rec); err != nil {
		return Record{}, err
	}

	if err := ApplyDefaults(rec).Validate(); err != nil {
		return Record{}, fmt.Errorf("invalid config: %w", err)
	}

	if err := s.Save(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".branchr-tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}

	success = true
	return nil
}
