package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klokku/schedulekeeper/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

// FilesystemBackend keeps one JSON file per group under root. Writes are not
// coordinated: concurrent saves for the same group leave whichever rename landed last.
type FilesystemBackend struct {
	root string
}

func NewFilesystemBackend(root string) *FilesystemBackend {
	return &FilesystemBackend{root: root}
}

func (b *FilesystemBackend) path(groupId string) (string, error) {
	if err := os.MkdirAll(b.root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create schedule directory %s: %w", b.root, err)
	}
	return filepath.Join(b.root, fmt.Sprintf("schedule_%s.json", groupId)), nil
}

func (b *FilesystemBackend) Load(ctx context.Context, groupId string) (schedule.Schedule, error) {
	path, err := b.path(groupId)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read schedule file %s: %w", path, err)
	}
	return decode(data)
}

func (b *FilesystemBackend) Get(ctx context.Context, groupId string) (schedule.Schedule, bool) {
	return get(ctx, b, groupId)
}

func (b *FilesystemBackend) Set(ctx context.Context, groupId string, s schedule.Schedule) error {
	path, err := b.path(groupId)
	if err != nil {
		log.Error(err)
		return err
	}

	data, err := encode(s)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(b.root, path, data); err != nil {
		err := fmt.Errorf("failed to write schedule file %s: %w", path, err)
		log.Error(err)
		return err
	}
	return nil
}

// writeFileAtomic writes to a temporary file in dir and renames it over path, so a reader
// sees either the old or the new content.
func writeFileAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".schedule_*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
