package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aevon-lab/primstats/internal/core/summary"
	"gopkg.in/yaml.v3"
)

const snapshotExt = ".yaml"

// FileSystemStore keeps one YAML document per accumulator:
// root/{id}.yaml. Writes go to a temp file in the same directory and are
// renamed into place, so readers never see a half-written snapshot.
type FileSystemStore struct {
	rootDir string
}

// NewFileSystemStore creates the root directory if needed.
func NewFileSystemStore(rootDir string) (*FileSystemStore, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &FileSystemStore{rootDir: rootDir}, nil
}

func (s *FileSystemStore) Save(ctx context.Context, id string, snap summary.Snapshot) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}

	content, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(s.rootDir, "."+id+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

func (s *FileSystemStore) Get(ctx context.Context, id string) (summary.Snapshot, error) {
	path, err := s.path(id)
	if err != nil {
		return summary.Snapshot{}, err
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return summary.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return summary.Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap summary.Snapshot
	if err := yaml.Unmarshal(content, &snap); err != nil {
		return summary.Snapshot{}, fmt.Errorf("failed to parse snapshot %s: %w", id, err)
	}
	return snap, nil
}

func (s *FileSystemStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.rootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		// Skip directories, foreign files and in-flight temp files
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, snapshotExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, snapshotExt))
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *FileSystemStore) Delete(ctx context.Context, id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	slog.Debug("[SnapshotStore] Deleted snapshot file", "id", id)
	return nil
}

// path maps id to its file, rejecting ids that would escape rootDir.
func (s *FileSystemStore) path(id string) (string, error) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(s.rootDir, id+snapshotExt), nil
}
