package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/fx-desk/internal/logger"
)

const (
	localStorageTable = "local_storage"
	colKey            = "storage_key"
	colValue          = "storage_value"
	colUpdatedAt      = "updated_at"

	upsertSuffix = "ON CONFLICT(" + colKey + ") DO UPDATE SET " +
		colValue + " = excluded." + colValue + ", " +
		colUpdatedAt + " = excluded." + colUpdatedAt
)

type sqliteLocalStorage struct {
	db     *sql.DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSQLiteLocalStorage returns a [LocalStorage] backed by the local_storage table.
func NewSQLiteLocalStorage(db *DB, log *logger.Logger) LocalStorage {
	return &sqliteLocalStorage{
		db:     db.DB,
		logger: log,
		now:    time.Now,
	}
}

func (s *sqliteLocalStorage) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	query, args, err := sq.Select(colValue).
		From(localStorageTable).
		Where(sq.Eq{colKey: key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildSQL, err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		s.logger.Err(err).Str("func", "sqliteLocalStorage.Get").Str("key", key).Msg("failed to read key")
		return "", fmt.Errorf("%w: %w", ErrExecSQL, err)
	}

	return value, nil
}

func (s *sqliteLocalStorage) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

func (s *sqliteLocalStorage) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "" {
			return ErrEmptyKey
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	now := s.now().UTC()
	insert := sq.Insert(localStorageTable).Columns(colKey, colValue, colUpdatedAt)
	for _, k := range keys {
		insert = insert.Values(k, values[k], now)
	}
	query, args, err := insert.Suffix(upsertSuffix).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildSQL, err)
	}

	return s.inTx(ctx, "sqliteLocalStorage.SetMany", query, args)
}

func (s *sqliteLocalStorage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := sq.Delete(localStorageTable).
		Where(sq.Eq{colKey: keys}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildSQL, err)
	}

	return s.inTx(ctx, "sqliteLocalStorage.Delete", query, args)
}

func (s *sqliteLocalStorage) inTx(ctx context.Context, fn, query string, args []any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Err(err).Str("func", fn).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		_ = tx.Rollback()
		s.logger.Err(err).Str("func", fn).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecSQL, err)
	}

	if err = tx.Commit(); err != nil {
		s.logger.Err(err).Str("func", fn).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}

	return nil
}
