package store

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/migrations"
)

func exerciseKV(t *testing.T, kv KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "accessToken")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, kv.SetMany(ctx, map[string]string{"accessToken": "a1", "refreshToken": "r1"}))

	v, err := kv.Get(ctx, "accessToken")
	require.NoError(t, err)
	assert.Equal(t, "a1", v)

	// overwrite
	require.NoError(t, kv.SetMany(ctx, map[string]string{"accessToken": "a2", "refreshToken": "r2"}))
	v, err = kv.Get(ctx, "refreshToken")
	require.NoError(t, err)
	assert.Equal(t, "r2", v)

	require.NoError(t, kv.SetMany(ctx, nil))

	require.NoError(t, kv.Delete(ctx, "accessToken", "refreshToken", "missing"))
	_, err = kv.Get(ctx, "accessToken")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	_, err = kv.Get(ctx, "refreshToken")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, kv.Delete(ctx))
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemoryKV())
}

func TestSessionStorage_SQLite(t *testing.T) {
	s, err := NewSessionStorage(context.Background(), filepath.Join(t.TempDir(), "nested", "session.db"), logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	exerciseKV(t, s.KV)
}

func TestSessionStorage_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	s, err := NewSessionStorage(ctx, path, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, s.KV.SetMany(ctx, map[string]string{"accessToken": "persisted"}))
	require.NoError(t, s.Close())

	s, err = NewSessionStorage(ctx, path, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	v, err := s.KV.Get(ctx, "accessToken")
	require.NoError(t, err)
	assert.Equal(t, "persisted", v)
}

func newMockedKV(t *testing.T) (KeyValueStore, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db := newDB(conn, migrations.DialectSQLite, logger.Nop())
	return NewSessionKVRepository(db, logger.Nop()), mock
}

func TestSessionKV_SetManyRollsBackOnError(t *testing.T) {
	kv, mock := newMockedKV(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO session_kv")).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := kv.SetMany(context.Background(), map[string]string{"accessToken": "a", "refreshToken": "r"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingQuery)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionKV_SetManyCommits(t *testing.T) {
	kv, mock := newMockedKV(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO session_kv (key,value,updated_at) VALUES (?,?,?),(?,?,?)")).
		WithArgs("accessToken", "a", sqlmock.AnyArg(), "refreshToken", "r", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, kv.SetMany(context.Background(), map[string]string{"accessToken": "a", "refreshToken": "r"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionKV_GetDriverError(t *testing.T) {
	kv, mock := newMockedKV(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM session_kv WHERE key = ?")).
		WithArgs("accessToken").
		WillReturnError(errors.New("database is locked"))

	_, err := kv.Get(context.Background(), "accessToken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeyNotFound)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}
