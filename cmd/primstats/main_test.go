package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	corecfg "github.com/aevon-lab/primstats/internal/core/config"
	"github.com/aevon-lab/primstats/internal/core/storage"
	"github.com/aevon-lab/primstats/internal/core/summary"
	"github.com/aevon-lab/primstats/internal/reduce"
	"github.com/stretchr/testify/require"
)

func TestReadTokens(t *testing.T) {
	tokens, err := readTokens(strings.NewReader("  3 -1\n7\t2\n\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"3", "-1", "7", "2"}, tokens)

	tokens, err = readTokens(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, tokens)
}

func TestRunOffline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.txt")
	require.NoError(t, os.WriteFile(path, []byte("3 -1\n7 2\n"), 0o644))

	var out bytes.Buffer
	err := runOffline(context.Background(), summary.KindShort, path, reduce.Options{Workers: 2, MinChunkSize: 1}, &out)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"kind": "short",
		"count": 4,
		"sum": "11",
		"min": "-1",
		"max": "7",
		"average": "2.75"
	}`, out.String())
}

func TestRunOffline_Errors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "values.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 2 banana"), 0o644))

	var out bytes.Buffer
	err := runOffline(context.Background(), summary.KindInt, path, reduce.DefaultOptions(), &out)
	require.ErrorIs(t, err, summary.ErrInvalidValue)
	require.Empty(t, out.String())

	err = runOffline(context.Background(), "decimal", path, reduce.DefaultOptions(), &out)
	require.ErrorIs(t, err, summary.ErrUnknownKind)

	err = runOffline(context.Background(), summary.KindInt, filepath.Join(dir, "absent.txt"), reduce.DefaultOptions(), &out)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenStore_LocalBackends(t *testing.T) {
	ctx := context.Background()

	store, health, closeStore, err := openStore(ctx, corecfg.StorageConfig{Type: corecfg.StorageMemory})
	require.NoError(t, err)
	require.IsType(t, &storage.MemoryStore{}, store)
	require.Nil(t, health)
	require.NoError(t, closeStore())

	store, health, closeStore, err = openStore(ctx, corecfg.StorageConfig{
		Type: corecfg.StorageFileSystem,
		Path: filepath.Join(t.TempDir(), "snapshots"),
	})
	require.NoError(t, err)
	require.IsType(t, &storage.FileSystemStore{}, store)
	require.Nil(t, health)
	require.NoError(t, closeStore())

	_, _, closeStore, err = openStore(ctx, corecfg.StorageConfig{Type: "redis"})
	require.Error(t, err)
	require.NoError(t, closeStore())
}
