package server_test

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	server "github.com/inference-gateway/adk/server"
	"github.com/inference-gateway/adk/types"
)

func newSQLPushConfigStoreForTest(t *testing.T, encryptionKey []byte) *server.SQLPushConfigStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := server.NewSQLPushConfigStore(db, "push_configs_test", encryptionKey, zap.NewNop())
	require.NoError(t, err)
	return store
}

// S5: a push config round trips through the encrypted SQL backend.
func TestSQLPushConfigStore_EncryptedRoundTrip(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	store := newSQLPushConfigStoreForTest(t, key)
	ctx := context.Background()

	id := "config-1"
	require.NoError(t, store.Set(ctx, "task-1", types.PushNotificationConfig{
		ID:  &id,
		URL: "https://example.com/webhook",
	}))

	got, err := store.Get(ctx, "task-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://example.com/webhook", got[0].URL)
	require.NotNil(t, got[0].ID)
	assert.Equal(t, id, *got[0].ID)
}

// A row written under one encryption key is unreadable (and skipped, not
// fatal) when read back with a different key.
func TestSQLPushConfigStore_RowsFromDifferentKeyAreSkipped(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	keyA := make([]byte, 32)
	_, err = rand.Read(keyA)
	require.NoError(t, err)
	storeA, err := server.NewSQLPushConfigStore(db, "push_configs_keytest", keyA, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, storeA.Set(ctx, "task-1", types.PushNotificationConfig{URL: "https://example.com/webhook"}))

	keyB := make([]byte, 32)
	_, err = rand.Read(keyB)
	require.NoError(t, err)
	storeB, err := server.NewSQLPushConfigStore(db, "push_configs_keytest", keyB, zap.NewNop())
	require.NoError(t, err)

	got, err := storeB.Get(ctx, "task-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

// Regression for comment (c): two anonymous (ID == nil) Set calls for the
// same task both persist as distinct rows rather than the second
// overwriting the first under a shared empty config_id key.
func TestSQLPushConfigStore_AnonymousConfigsAreAppendedNotReplaced(t *testing.T) {
	store := newSQLPushConfigStoreForTest(t, nil)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "task-1", types.PushNotificationConfig{URL: "https://example.com/webhook-a"}))
	require.NoError(t, store.Set(ctx, "task-1", types.PushNotificationConfig{URL: "https://example.com/webhook-b"}))

	got, err := store.Get(ctx, "task-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	urls := map[string]bool{}
	for _, cfg := range got {
		urls[cfg.URL] = true
	}
	assert.True(t, urls["https://example.com/webhook-a"])
	assert.True(t, urls["https://example.com/webhook-b"])
}

// An identified config (ID != nil) set twice replaces the prior row under
// the same config_id rather than appending a duplicate.
func TestSQLPushConfigStore_IdentifiedConfigReplacesPriorRow(t *testing.T) {
	store := newSQLPushConfigStoreForTest(t, nil)
	ctx := context.Background()

	id := "config-1"
	require.NoError(t, store.Set(ctx, "task-1", types.PushNotificationConfig{ID: &id, URL: "https://example.com/v1"}))
	require.NoError(t, store.Set(ctx, "task-1", types.PushNotificationConfig{ID: &id, URL: "https://example.com/v2"}))

	got, err := store.Get(ctx, "task-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://example.com/v2", got[0].URL)
}

func TestSQLPushConfigStore_Delete(t *testing.T) {
	store := newSQLPushConfigStoreForTest(t, nil)
	ctx := context.Background()

	id := "config-1"
	require.NoError(t, store.Set(ctx, "task-1", types.PushNotificationConfig{ID: &id, URL: "https://example.com/webhook"}))
	require.NoError(t, store.Delete(ctx, "task-1", &id))

	got, err := store.Get(ctx, "task-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}
