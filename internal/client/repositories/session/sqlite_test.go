package session

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:sessionrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestGet_MissingKey_ReturnsNilNoError(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	v, err := repo.Get(context.Background(), "token")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_ThenGet_RoundTrips(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "token", []byte("abc")))

	v, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), v)
}

func TestSet_Upserts(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "token", []byte("old")))
	require.NoError(t, repo.Set(ctx, "token", []byte("new")))

	v, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestClear_RemovesAllKeys(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "identity", []byte(`{"id":1}`)))
	require.NoError(t, repo.Set(ctx, "token", []byte("abc")))
	require.NoError(t, repo.Clear(ctx))

	for _, key := range []string{"identity", "token"} {
		v, err := repo.Get(ctx, key)
		require.NoError(t, err)
		require.Nil(t, v)
	}
}

func TestDelete_RemovesSingleKey(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "identity", []byte(`{"id":1}`)))
	require.NoError(t, repo.Set(ctx, "token", []byte("abc")))
	require.NoError(t, repo.Delete(ctx, "token"))

	v, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	require.Nil(t, v)

	v, err = repo.Get(ctx, "identity")
	require.NoError(t, err)
	require.NotNil(t, v)
}

func TestInitDatabase_AppliesMigrations(t *testing.T) {
	db, err := InitDatabase(context.Background(), "file:sessioninit?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.Set(context.Background(), "token", []byte("abc")))
}
