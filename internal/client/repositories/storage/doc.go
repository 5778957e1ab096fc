// Package storage provides the client's local key/value persistence.
//
// Values are opaque byte slices stored in the SQLite table "kv" created by the
// embedded migrations (see internal/client/migrations). SQLiteRepository works
// over dbx.DBTX, so the same code runs against *sql.DB or inside a *sql.Tx
// when several keys must change together.
//
//	repo := storage.NewSQLiteRepository(db)
//	_ = repo.Set(ctx, "cropcare_user", b)
//	v, _ := repo.Get(ctx, "cropcare_user") // nil, nil when absent
package storage
