package credstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/docspace/internal/dbx"
	"github.com/dmitrijs2005/docspace/internal/logging"
)

// SQLiteStore keeps the credential in the credentials table, which is pinned
// to a single row.
type SQLiteStore struct {
	db  *sql.DB
	log logging.Logger
}

func NewSQLiteStore(db *sql.DB, log logging.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, log: log.With("component", "credstore")}
}

func (s *SQLiteStore) Get(ctx context.Context) (string, bool) {
	var token string
	err := s.db.QueryRowContext(ctx, `SELECT token FROM credentials WHERE id = 1`).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		s.log.Warn(ctx, "reading credential failed, treating as absent", "error", err)
		return "", false
	}
	return token, token != ""
}

func (s *SQLiteStore) Set(ctx context.Context, token string) {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO credentials (id, token) VALUES (1, ?)`, token)
		return err
	})
	if err != nil {
		s.log.Error(ctx, "persisting credential failed", "error", err)
	}
}

func (s *SQLiteStore) Clear(ctx context.Context) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		s.log.Error(ctx, "clearing credential failed", "error", err)
	}
}
