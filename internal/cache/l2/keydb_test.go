package l2

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"go-rpc-cache/internal/config"
	"go-rpc-cache/internal/interfaces/mock"
	"go-rpc-cache/internal/models"
)

func newTestKeyDBCache(t *testing.T) (*KeyDBCache, *mock.MockKeyDbClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockClient := mock.NewMockKeyDbClient(ctrl)
	return NewKeyDBCache(config.Default(), mockClient, zap.NewNop()), mockClient
}

func entryJSON(t *testing.T, staleOffset, expireOffset int64) string {
	t.Helper()
	now := time.Now().Unix()
	data, err := json.Marshal(models.CacheEntry{
		Data:      []byte("test-data"),
		CreatedAt: now - 100,
		StaleAt:   now + staleOffset,
		ExpiresAt: now + expireOffset,
	})
	require.NoError(t, err)
	return string(data)
}

func TestNewKeyDBCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mock.NewMockKeyDbClient(ctrl)
	cfg := config.Default()
	logger := zap.NewNop()

	cache := NewKeyDBCache(cfg, mockClient, logger)

	assert.Equal(t, mockClient, cache.client)
	assert.Equal(t, cfg, cache.config)
	assert.Equal(t, logger, cache.logger)
}

func TestKeyDBCache_Get_Success_Fresh(t *testing.T) {
	cache, mockClient := newTestKeyDBCache(t)

	mockClient.EXPECT().Get(gomock.Any(), "test-key").Return(redis.NewStringResult(entryJSON(t, 100, 200), nil))

	entry, found := cache.Get(context.Background(), "test-key")

	require.True(t, found)
	assert.True(t, entry.IsFresh())
	assert.Equal(t, []byte("test-data"), entry.Data)
}

func TestKeyDBCache_Get_Success_Stale(t *testing.T) {
	cache, mockClient := newTestKeyDBCache(t)

	mockClient.EXPECT().Get(gomock.Any(), "test-key").Return(redis.NewStringResult(entryJSON(t, -50, 100), nil))

	entry, found := cache.Get(context.Background(), "test-key")

	require.True(t, found)
	assert.False(t, entry.IsFresh())
}

func TestKeyDBCache_Get_NotFound(t *testing.T) {
	cache, mockClient := newTestKeyDBCache(t)

	mockClient.EXPECT().Get(gomock.Any(), "test-key").Return(redis.NewStringResult("", redis.Nil))

	entry, found := cache.Get(context.Background(), "test-key")

	assert.False(t, found)
	assert.Nil(t, entry)
}

func TestKeyDBCache_Get_Error(t *testing.T) {
	cache, mockClient := newTestKeyDBCache(t)

	mockClient.EXPECT().Get(gomock.Any(), "test-key").Return(redis.NewStringResult("", errors.New("connection error")))

	entry, found := cache.Get(context.Background(), "test-key")

	assert.False(t, found)
	assert.Nil(t, entry)
}

func TestKeyDBCache_Get_Expired(t *testing.T) {
	cache, mockClient := newTestKeyDBCache(t)

	mockClient.EXPECT().Get(gomock.Any(), "test-key").Return(redis.NewStringResult(entryJSON(t, -200, -100), nil))
	mockClient.EXPECT().Del(gomock.Any(), "test-key").Return(redis.NewIntResult(1, nil))

	entry, found := cache.Get(context.Background(), "test-key")

	assert.False(t, found)
	assert.Nil(t, entry)
}

func TestKeyDBCache_Get_CorruptedEntry(t *testing.T) {
	cache, mockClient := newTestKeyDBCache(t)

	mockClient.EXPECT().Get(gomock.Any(), "test-key").Return(redis.NewStringResult("invalid-json", nil))
	mockClient.EXPECT().Del(gomock.Any(), "test-key").Return(redis.NewIntResult(1, nil))

	entry, found := cache.Get(context.Background(), "test-key")

	assert.False(t, found)
	assert.Nil(t, entry)
}

func TestKeyDBCache_Set_Success(t *testing.T) {
	cache, mockClient := newTestKeyDBCache(t)

	ttl := models.TTL{Fresh: 60 * time.Second, Stale: 30 * time.Second}

	mockClient.EXPECT().
		Set(gomock.Any(), "test-key", gomock.Any(), 90*time.Second).
		DoAndReturn(func(_ context.Context, _ string, value interface{}, _ time.Duration) *redis.StatusCmd {
			var entry models.CacheEntry
			require.NoError(t, json.Unmarshal(value.([]byte), &entry))
			assert.Equal(t, []byte("test-data"), entry.Data)
			assert.Equal(t, int64(60), entry.StaleAt-entry.CreatedAt)
			assert.Equal(t, int64(90), entry.ExpiresAt-entry.CreatedAt)
			return redis.NewStatusResult("OK", nil)
		})

	cache.Set(context.Background(), "test-key", []byte("test-data"), ttl)
}

func TestKeyDBCache_Set_Error(t *testing.T) {
	cache, mockClient := newTestKeyDBCache(t)

	mockClient.EXPECT().
		Set(gomock.Any(), "test-key", gomock.Any(), 90*time.Second).
		Return(redis.NewStatusResult("", errors.New("set error")))

	// Errors are logged, never returned
	cache.Set(context.Background(), "test-key", []byte("test-data"), models.TTL{Fresh: 60 * time.Second, Stale: 30 * time.Second})
}

func TestKeyDBCache_Delete(t *testing.T) {
	cache, mockClient := newTestKeyDBCache(t)

	mockClient.EXPECT().Del(gomock.Any(), "test-key").Return(redis.NewIntResult(0, errors.New("delete error")))

	cache.Delete(context.Background(), "test-key")
}

func TestKeyDBCache_Close(t *testing.T) {
	cache, mockClient := newTestKeyDBCache(t)

	expectedErr := errors.New("close error")
	mockClient.EXPECT().Close().Return(expectedErr)

	assert.Equal(t, expectedErr, cache.Close())
}
