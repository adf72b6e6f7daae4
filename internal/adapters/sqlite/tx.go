package sqlite

import "database/sql"

// snapshotTx wraps the write transaction
type snapshotTx struct {
	tx *sql.Tx
}

func begin(db *sql.DB) (*snapshotTx, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	return &snapshotTx{tx: tx}, nil
}

// upsert inserts or replaces the payload stored under key
func (t *snapshotTx) upsert(key string, payload []byte, writtenAt int64) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO snapshots (key, payload, written_at)
		VALUES (?, ?, ?)
	`, key, payload, writtenAt)
	return err
}

func (t *snapshotTx) commit() error {
	return t.tx.Commit()
}

func (t *snapshotTx) rollback() {
	_ = t.tx.Rollback()
}
