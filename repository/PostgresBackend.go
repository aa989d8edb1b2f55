package repository

import (
	"database/sql"
	"errors"
)

// PostgresBackend is the same one-row-per-key contract as SQLiteBackend,
// for deployments that already run Postgres.
type PostgresBackend struct {
	db *sql.DB
}

func NewPostgresBackend(conn *sql.DB) (*PostgresBackend, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	_, err = conn.Exec("CREATE TABLE IF NOT EXISTS Blobs (Key TEXT PRIMARY KEY, Data BYTEA NOT NULL)")
	if err != nil {
		return nil, err
	}
	return &PostgresBackend{db: conn}, nil
}

func (b *PostgresBackend) Load(key string) (data []byte, found bool, err error) {
	row := b.db.QueryRow("SELECT Data FROM Blobs WHERE Key = $1", key)
	err = row.Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
		}
		return
	}
	found = true
	return
}

func (b *PostgresBackend) Save(key string, data []byte) error {
	_, err := b.db.Exec("INSERT INTO Blobs (Key, Data) VALUES ($1, $2) ON CONFLICT (Key) DO UPDATE SET Data = excluded.Data", key, data)
	return err
}

func (b *PostgresBackend) Delete(key string) error {
	_, err := b.db.Exec("DELETE FROM Blobs WHERE Key = $1", key)
	return err
}
