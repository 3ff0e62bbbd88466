package credstore

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ramp-client/internal/crypto"
	"github.com/MKhiriev/go-ramp-client/internal/logger"
	"github.com/MKhiriev/go-ramp-client/internal/store"
	"github.com/MKhiriev/go-ramp-client/models"
)

func newTestRecords(t *testing.T) store.RecordStore {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	rs, err := store.NewRecordStore(&store.DB{DB: conn})
	require.NoError(t, err)
	return rs
}

func TestGetTokens_EmptyOnFreshStore(t *testing.T) {
	cs := New(crypto.NewKeyChain(), newTestRecords(t), "secret", logger.Nop())

	pair, err := cs.GetTokens(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pair.AccessToken)
	assert.Empty(t, pair.RefreshToken)
}

func TestSetTokens_SurvivesRestart(t *testing.T) {
	records := newTestRecords(t)
	ctx := context.Background()

	first := New(crypto.NewKeyChain(), records, "secret", logger.Nop())
	require.NoError(t, first.SetTokens(ctx, "access-1", "refresh-1"))
	require.NoError(t, first.SetUser(ctx, &models.UserProfile{ID: "u1", Email: "a@b.c"}))

	// a second store over the same records simulates a process restart
	second := New(crypto.NewKeyChain(), records, "secret", logger.Nop())

	pair, err := second.GetTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-1", pair.AccessToken)
	assert.Equal(t, "refresh-1", pair.RefreshToken)

	user := second.GetUser()
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)
}

func TestGetTokens_DifferentSecretSeesNothing(t *testing.T) {
	records := newTestRecords(t)
	ctx := context.Background()

	first := New(crypto.NewKeyChain(), records, "secret-a", logger.Nop())
	require.NoError(t, first.SetTokens(ctx, "access-1", "refresh-1"))

	// wrong secret: records exist but fail to decrypt, treated as absent
	second := New(crypto.NewKeyChain(), records, "secret-b", logger.Nop())

	pair, err := second.GetTokens(ctx)
	require.NoError(t, err)
	assert.Empty(t, pair.AccessToken)
	assert.Empty(t, pair.RefreshToken)
}

func TestGetTokens_ConcurrentEarlyReadersAgree(t *testing.T) {
	records := newTestRecords(t)
	ctx := context.Background()

	seed := New(crypto.NewKeyChain(), records, "secret", logger.Nop())
	require.NoError(t, seed.SetTokens(ctx, "access-1", "refresh-1"))

	cs := New(crypto.NewKeyChain(), records, "secret", logger.Nop())

	const readers = 32
	results := make([]models.TokenPair, readers)
	errs := make([]error, readers)

	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cs.GetTokens(ctx)
		}(i)
	}
	wg.Wait()

	for i := 0; i < readers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "access-1", results[i].AccessToken, "reader %d", i)
		assert.Equal(t, "refresh-1", results[i].RefreshToken, "reader %d", i)
	}
}

func TestClear_WipesMemoryAndStorage(t *testing.T) {
	records := newTestRecords(t)
	ctx := context.Background()

	cs := New(crypto.NewKeyChain(), records, "secret", logger.Nop())
	require.NoError(t, cs.SetTokens(ctx, "access-1", "refresh-1"))
	require.NoError(t, cs.SetUser(ctx, &models.UserProfile{ID: "u1"}))

	cs.Clear(ctx)

	pair, err := cs.GetTokens(ctx)
	require.NoError(t, err)
	assert.Empty(t, pair.AccessToken)
	assert.Nil(t, cs.GetUser())

	for _, name := range []string{store.RecordAccessToken, store.RecordRefreshToken, store.RecordUserProfile} {
		_, ok, err := records.Get(ctx, name)
		require.NoError(t, err)
		assert.False(t, ok, name)
	}
}

func TestClear_IdempotentOnEmptyStore(t *testing.T) {
	cs := New(crypto.NewKeyChain(), newTestRecords(t), "secret", logger.Nop())

	cs.Clear(context.Background())
	cs.Clear(context.Background())
}

func TestMemoryOnlyMode_NilKeychain(t *testing.T) {
	ctx := context.Background()
	cs := New(nil, nil, "secret", logger.Nop())

	require.NoError(t, cs.SetTokens(ctx, "access-1", "refresh-1"))

	// in-memory value is visible within the process
	pair, err := cs.GetTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-1", pair.AccessToken)

	cs.Clear(ctx)
	pair, err = cs.GetTokens(ctx)
	require.NoError(t, err)
	assert.Empty(t, pair.AccessToken)
}

func TestGetUser_CopiesProfile(t *testing.T) {
	ctx := context.Background()
	cs := New(crypto.NewKeyChain(), newTestRecords(t), "secret", logger.Nop())

	require.NoError(t, cs.SetUser(ctx, &models.UserProfile{ID: "u1", FirstName: "Ada"}))

	got := cs.GetUser()
	require.NotNil(t, got)
	got.FirstName = "mutated"

	again := cs.GetUser()
	assert.Equal(t, "Ada", again.FirstName)
}
