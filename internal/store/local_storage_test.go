package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/fx-desk/internal/config"
	"github.com/MKhiriev/fx-desk/internal/logger"
)

func newMockStorage(t *testing.T) (*sqliteLocalStorage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewSQLiteLocalStorage(&DB{DB: db}, logger.Nop()).(*sqliteLocalStorage)
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s, mock
}

// ── sqlmock ──────────────────────────────────────────────────────────────────

func TestSQLiteLocalStorage_Get(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT storage_value FROM local_storage WHERE storage_key = ?")).
		WithArgs("clientToken").
		WillReturnRows(sqlmock.NewRows([]string{"storage_value"}).AddRow("tok"))

	v, err := s.Get(context.Background(), "clientToken")
	require.NoError(t, err)
	assert.Equal(t, "tok", v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteLocalStorage_Get_NotFound(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery("SELECT storage_value FROM local_storage").
		WillReturnError(sql.ErrNoRows)

	_, err := s.Get(context.Background(), "adminToken")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestSQLiteLocalStorage_Get_EmptyKey(t *testing.T) {
	s, _ := newMockStorage(t)

	_, err := s.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestSQLiteLocalStorage_SetMany_SingleStatementInTx(t *testing.T) {
	s, mock := newMockStorage(t)
	at := s.now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO local_storage (storage_key,storage_value,updated_at) VALUES (?,?,?),(?,?,?) ON CONFLICT(storage_key) DO UPDATE SET",
	)).
		WithArgs("clientToken", "tok", at, "clientUser", `{"id":"1"}`, at).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := s.SetMany(context.Background(), map[string]string{
		"clientUser":  `{"id":"1"}`,
		"clientToken": "tok",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteLocalStorage_SetMany_RollsBackOnError(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO local_storage").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := s.Set(context.Background(), "clientToken", "tok")
	assert.ErrorIs(t, err, ErrExecSQL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteLocalStorage_Delete_AllKeysInOneTx(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM local_storage WHERE storage_key IN (?,?,?)")).
		WithArgs("clientToken", "adminToken", "agentToken").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := s.Delete(context.Background(), "clientToken", "adminToken", "agentToken")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteLocalStorage_Delete_BeginFails(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin().WillReturnError(errors.New("locked"))

	err := s.Delete(context.Background(), "clientToken")
	assert.ErrorIs(t, err, ErrBeginTx)
}

func TestSQLiteLocalStorage_Delete_CommitFails(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM local_storage").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("busy"))

	err := s.Delete(context.Background(), "clientToken")
	assert.ErrorIs(t, err, ErrCommitTx)
}

func TestSQLiteLocalStorage_NoKeysIsNoop(t *testing.T) {
	s, mock := newMockStorage(t)

	require.NoError(t, s.Delete(context.Background()))
	require.NoError(t, s.SetMany(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── real SQLite file ─────────────────────────────────────────────────────────

func TestClientStorages_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "nested", "client.db")

	storages, err := NewClientStorages(ctx, config.ClientStorage{DB: config.ClientDB{DSN: dsn}}, logger.Nop())
	require.NoError(t, err)
	defer storages.Close()

	local := storages.Local
	require.NoError(t, local.SetMany(ctx, map[string]string{"clientToken": "a", "adminToken": "b"}))
	require.NoError(t, local.Set(ctx, "clientToken", "a2"))

	v, err := local.Get(ctx, "clientToken")
	require.NoError(t, err)
	assert.Equal(t, "a2", v)

	require.NoError(t, local.Delete(ctx, "clientToken", "adminToken", "missing"))
	_, err = local.Get(ctx, "adminToken")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

// ── memory ───────────────────────────────────────────────────────────────────

func TestMemoryLocalStorage(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryLocalStorage()

	_, err := m.Get(ctx, "clientToken")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, m.Set(ctx, "clientToken", "x"))
	v, err := m.Get(ctx, "clientToken")
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	assert.ErrorIs(t, m.Set(ctx, "", "x"), ErrEmptyKey)

	require.NoError(t, m.Delete(ctx, "clientToken"))
	_, err = m.Get(ctx, "clientToken")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryLocalStorage_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryLocalStorage()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = m.Set(ctx, "k", "v")
		}()
		go func() {
			defer wg.Done()
			_, _ = m.Get(ctx, "k")
		}()
	}
	wg.Wait()
}
