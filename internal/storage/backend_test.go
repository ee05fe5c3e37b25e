package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	dir := t.TempDir()

	sqlite, err := OpenSQLite(filepath.Join(dir, "db", "taskboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	files, err := NewFileBackend(filepath.Join(dir, "slots"))
	require.NoError(t, err)

	return map[string]Backend{
		"sqlite": sqlite,
		"file":   files,
		"memory": NewMemoryBackend(),
	}
}

func TestBackendsGetPutDelete(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := b.Get(ctx, "savedTasks")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, b.Put(ctx, "savedTasks", []byte(`[1]`)))
			require.NoError(t, b.Put(ctx, "savedTasks", []byte(`[1,2]`)))

			got, err := b.Get(ctx, "savedTasks")
			require.NoError(t, err)
			assert.Equal(t, `[1,2]`, string(got))

			require.NoError(t, b.Delete(ctx, "savedTasks"))
			require.NoError(t, b.Delete(ctx, "savedTasks"))
			_, err = b.Get(ctx, "savedTasks")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestMemoryBackendCopiesValues(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	in := []byte("abc")
	require.NoError(t, b.Put(ctx, "k", in))
	in[0] = 'z'

	out, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))
	out[0] = 'y'

	again, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestFileBackendRejectsPathKeys(t *testing.T) {
	b, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, b.Put(context.Background(), "../escape", []byte("x")))
	assert.Error(t, b.Put(context.Background(), "", []byte("x")))
}

func TestFileBackendLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)
	require.NoError(t, b.Put(context.Background(), "savedTasks", []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "savedTasks.json", entries[0].Name())
}

func TestOpenByKind(t *testing.T) {
	b, err := Open(KindMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryBackend{}, b)

	_, err = Open(Kind("redis"), "")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestSQLiteUpdatedAt(t *testing.T) {
	ctx := context.Background()
	b, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer b.Close()

	_, err = b.UpdatedAt(ctx, "savedTasks")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Put(ctx, "savedTasks", []byte(`[]`)))
	ts, err := b.UpdatedAt(ctx, "savedTasks")
	require.NoError(t, err)
	assert.False(t, ts.IsZero())
}
