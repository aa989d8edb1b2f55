package repository

import (
	"database/sql"
	"errors"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteBackend keeps blobs in a single two-column table of an embedded
// database file. Each Save overwrites the whole row for its key.
type SQLiteBackend struct {
	db *sql.DB
}

func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	if path == "" {
		return nil, errors.New("path must be non-empty")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	_, err = db.Exec("CREATE TABLE IF NOT EXISTS Blobs (Key TEXT PRIMARY KEY, Data BLOB NOT NULL)")
	if err != nil {
		return nil, err
	}
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Load(key string) (data []byte, found bool, err error) {
	row := b.db.QueryRow("SELECT Data FROM Blobs WHERE Key = ?", key)
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

func (b *SQLiteBackend) Save(key string, data []byte) error {
	_, err := b.db.Exec("INSERT INTO Blobs (Key, Data) VALUES (?, ?) ON CONFLICT(Key) DO UPDATE SET Data = excluded.Data", key, data)
	return err
}

func (b *SQLiteBackend) Delete(key string) error {
	_, err := b.db.Exec("DELETE FROM Blobs WHERE Key = ?", key)
	return err
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
