package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/cropcare/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

const kvSchema = `CREATE TABLE kv (key TEXT PRIMARY KEY, value BLOB NOT NULL);`

func setupDB(t *testing.T, schema string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(schema)
	require.NoError(t, err)
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t, kvSchema))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "cropcare_user", []byte(`{"id":"1"}`)))

	v, err := r.Get(ctx, "cropcare_user")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"id":"1"}`), v)
}

func TestGet_Missing_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t, kvSchema))

	v, err := r.Get(context.Background(), "cropcare_users")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_Overwrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t, kvSchema))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestDelete_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t, kvSchema))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{0x01}))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestRepository_InsideTransactionRollsBack(t *testing.T) {
	db := setupDB(t, kvSchema)
	ctx := context.Background()

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		require.NoError(t, repo.Set(ctx, "a", []byte("1")))
		require.NoError(t, repo.Set(ctx, "b", []byte("2")))
		return errors.New("abort")
	})
	require.Error(t, err)

	r := NewSQLiteRepository(db)
	for _, key := range []string{"a", "b"} {
		v, err := r.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, v)
	}
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t, kvSchema)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get kv[k]")

	err = r.Set(ctx, "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set kv[k]")

	err = r.Delete(ctx, "k")
	require.ErrorContains(t, err, "failed to delete kv[k]")
}
