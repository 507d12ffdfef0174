package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aevon-lab/primstats/internal/core/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStores(t *testing.T) map[string]SnapshotStore {
	t.Helper()

	fs, err := NewFileSystemStore(filepath.Join(t.TempDir(), "snapshots"))
	require.NoError(t, err)

	return map[string]SnapshotStore{
		"memory":     NewMemoryStore(),
		"filesystem": fs,
	}
}

func TestSnapshotStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	short := summary.Snapshot{Kind: summary.KindShort, Count: 4, Min: "-1", Max: "7", Sum: "11"}
	double := summary.Snapshot{
		Kind:         summary.KindDouble,
		Count:        2,
		Min:          "-Inf",
		Max:          "+Inf",
		Sum:          "NaN",
		Compensation: "NaN",
		SimpleSum:    "NaN",
	}

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			short := short

			ids, err := store.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, ids)

			require.NoError(t, store.Save(ctx, "b", short))
			require.NoError(t, store.Save(ctx, "a", double))

			got, err := store.Get(ctx, "b")
			require.NoError(t, err)
			assert.Equal(t, short, got)

			got, err = store.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, double, got)

			ids, err = store.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, ids)

			// Save replaces
			short.Count = 5
			require.NoError(t, store.Save(ctx, "b", short))
			got, err = store.Get(ctx, "b")
			require.NoError(t, err)
			assert.Equal(t, int64(5), got.Count)

			require.NoError(t, store.Delete(ctx, "a"))
			_, err = store.Get(ctx, "a")
			require.ErrorIs(t, err, ErrNotFound)
			require.ErrorIs(t, store.Delete(ctx, "a"), ErrNotFound)

			ids, err = store.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"b"}, ids)
		})
	}
}

func TestSnapshotStore_GetMissing(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(context.Background(), "missing")
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestSnapshotStore_RestoresAccumulator(t *testing.T) {
	ctx := context.Background()

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			acc, err := summary.New(summary.KindFloat)
			require.NoError(t, err)
			for _, tok := range []string{"0.1", "-0", "2.5"} {
				require.NoError(t, acc.RecordString(tok))
			}

			require.NoError(t, store.Save(ctx, "f", acc.Snapshot()))
			snap, err := store.Get(ctx, "f")
			require.NoError(t, err)

			restored, err := summary.Restore(snap)
			require.NoError(t, err)
			assert.Equal(t, acc.Report(), restored.Report())
		})
	}
}

func TestFileSystemStore_RejectsUnsafeIDs(t *testing.T) {
	store, err := NewFileSystemStore(t.TempDir())
	require.NoError(t, err)

	snap := summary.Snapshot{Kind: summary.KindBoolean}
	for _, id := range []string{"", "../escape", "a/b", ".hidden"} {
		require.ErrorIs(t, store.Save(context.Background(), id, snap), ErrInvalidID, id)
		_, err := store.Get(context.Background(), id)
		require.ErrorIs(t, err, ErrInvalidID, id)
	}
}

func TestFileSystemStore_ListSkipsForeignFiles(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileSystemStore(root)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".tmp-123"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "nested.yaml"), 0o755))
	require.NoError(t, store.Save(context.Background(), "kept", summary.Snapshot{Kind: summary.KindInt}))

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, ids)
}

func TestFileSystemStore_CorruptFile(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileSystemStore(root)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.yaml"), []byte("kind: [unterminated"), 0o644))

	_, err = store.Get(context.Background(), "bad")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}
