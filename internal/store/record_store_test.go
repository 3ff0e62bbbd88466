package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ramp-client/internal/logger"
)

func newTestRecordStore(t *testing.T) RecordStore {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	rs, err := NewRecordStore(&DB{DB: conn, logger: logger.Nop()})
	require.NoError(t, err)

	return rs
}

func TestRecordStore_GetMissing(t *testing.T) {
	rs := newTestRecordStore(t)

	value, ok, err := rs.Get(context.Background(), RecordAccessToken)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestRecordStore_PutGetRoundTrip(t *testing.T) {
	rs := newTestRecordStore(t)
	ctx := context.Background()

	require.NoError(t, rs.Put(ctx, RecordAccessToken, "blob-1"))

	value, ok, err := rs.Get(ctx, RecordAccessToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "blob-1", value)
}

func TestRecordStore_PutReplacesExisting(t *testing.T) {
	rs := newTestRecordStore(t)
	ctx := context.Background()

	require.NoError(t, rs.Put(ctx, RecordUserProfile, "old"))
	require.NoError(t, rs.Put(ctx, RecordUserProfile, "new"))

	value, ok, err := rs.Get(ctx, RecordUserProfile)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", value)
}

func TestRecordStore_DeleteSeveral(t *testing.T) {
	rs := newTestRecordStore(t)
	ctx := context.Background()

	require.NoError(t, rs.Put(ctx, RecordAccessToken, "a"))
	require.NoError(t, rs.Put(ctx, RecordRefreshToken, "r"))
	require.NoError(t, rs.Put(ctx, RecordUserProfile, "u"))

	require.NoError(t, rs.Delete(ctx, RecordAccessToken, RecordRefreshToken, RecordUserProfile))

	for _, name := range []string{RecordAccessToken, RecordRefreshToken, RecordUserProfile} {
		_, ok, err := rs.Get(ctx, name)
		require.NoError(t, err)
		assert.False(t, ok, name)
	}
}

func TestRecordStore_DeleteMissingIsNoop(t *testing.T) {
	rs := newTestRecordStore(t)

	require.NoError(t, rs.Delete(context.Background(), RecordOrderSnapshot))
	require.NoError(t, rs.Delete(context.Background()))
}

func TestRecordStore_GetQueryError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT value FROM records").
		WillReturnError(sql.ErrConnDone)

	rs := &recordStore{db: &DB{DB: conn, logger: logger.Nop()}}

	_, _, err = rs.Get(context.Background(), RecordAccessToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get record")
}
