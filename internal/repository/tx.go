package repository

import "phonicsquest/internal/database"

// inTx runs fn in a new transaction when db is a connection pool. When db is
// already a transaction fn joins it, so the caller's commit covers both.
func inTx(db database.DBTX, fn func(tx database.DBTX) error) error {
	pool, ok := db.(*database.DB)
	if !ok {
		return fn(db)
	}
	return pool.WithTx(func(tx *database.Tx) error {
		return fn(tx)
	})
}
