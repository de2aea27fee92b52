package state

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates an in-memory SQLite store with the schema initialized.
func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Get(context.Background(), SnapshotKey)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_LastWriteWins(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, SnapshotKey, []byte("first")))
	require.NoError(t, s.Put(ctx, SnapshotKey, []byte("second")))

	got, err := s.Get(ctx, SnapshotKey)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	var rows int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&rows))
	assert.Equal(t, 1, rows, "a slot is a single row")
}

func TestSQLiteStore_Delete(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "k", []byte("v")))
	require.NoError(t, s.Delete(ctx, "k"))

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	ctx := context.Background()

	s1, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s1.Put(ctx, SnapshotKey, []byte(`{"x":1}`)))
	require.NoError(t, s1.Close())

	s2, err := OpenSQLite(path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Get(ctx, SnapshotKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":1}`, string(got))
}

func TestInitSchema_Idempotent(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, initSchema(s.DB()))

	var version int
	require.NoError(t, s.DB().QueryRow(`SELECT version FROM schema_version`).Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestOpen_Backends(t *testing.T) {
	ctx := context.Background()

	mem, err := Open(ctx, Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, mem)

	sq, err := Open(ctx, Options{Backend: BackendSQLite, Path: ":memory:"})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, sq)
	sq.Close()

	_, err = Open(ctx, Options{Backend: "etcd"})
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, err := m.Get(ctx, "k")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Put(ctx, "k", []byte("a")))
	require.NoError(t, m.Put(ctx, "k", []byte("b")))
	assert.Equal(t, 2, m.Writes("k"))
	assert.Equal(t, "b", string(m.Raw("k")))

	boom := errors.New("disk full")
	m.SetPutError(boom)
	assert.ErrorIs(t, m.Put(ctx, "k", []byte("c")), boom)
	assert.Equal(t, 2, m.Writes("k"))

	require.NoError(t, m.Close())
	assert.True(t, m.Closed())
}

func TestVolume(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	v, err := GetVolume(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, VolumeState{Volume: 1.0}, v)

	require.NoError(t, SaveVolume(ctx, s, VolumeState{Volume: 0.4, Muted: true}))
	v, err = GetVolume(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, VolumeState{Volume: 0.4, Muted: true}, v)

	require.NoError(t, s.Put(ctx, volumeKey, []byte("not json")))
	v, err = GetVolume(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, VolumeState{Volume: 1.0}, v)
}

func TestLoadVolume_Fallback(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	v, err := LoadVolume(ctx, s, 0.5)
	require.NoError(t, err)
	assert.Equal(t, VolumeState{Volume: 0.5}, v)

	s.SetGetError(errors.New("io"))
	v, err = LoadVolume(ctx, s, 0.5)
	require.Error(t, err)
	assert.Equal(t, VolumeState{Volume: 0.5}, v)
}
