package multi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"go-rpc-cache/internal/interfaces"
	"go-rpc-cache/internal/interfaces/mock"
	"go-rpc-cache/internal/models"
)

func freshEntry() *models.CacheEntry {
	now := time.Now().Unix()
	return &models.CacheEntry{Data: []byte("test-value"), CreatedAt: now, StaleAt: now + 60, ExpiresAt: now + 90}
}

func TestNewMultiCache(t *testing.T) {
	ctrl := gomock.NewController(t)

	cache1 := mock.NewMockCache(ctrl)
	cache2 := mock.NewMockCache(ctrl)

	mc := NewMultiCache([]interfaces.Cache{cache1, cache2}, zap.NewNop(), false)

	assert.Equal(t, 2, mc.GetCacheCount())
	assert.Equal(t, cache1, mc.caches[0])
	assert.Equal(t, cache2, mc.caches[1])
}

func TestMultiCache_Get_FirstCacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	cache1 := mock.NewMockCache(ctrl)
	cache2 := mock.NewMockCache(ctrl)
	mc := NewMultiCache([]interfaces.Cache{cache1, cache2}, zap.NewNop(), true)

	entry := freshEntry()
	cache1.EXPECT().Get(ctx, "test-key").Return(entry, true).Times(1)
	// cache2.Get should not be called since cache1 has the value

	result := mc.GetWithLevel(ctx, "test-key")

	assert.True(t, result.Found)
	assert.Equal(t, models.CacheLevelL1, result.Level)
	assert.Equal(t, entry, result.Entry)
}

func TestMultiCache_Get_SecondCacheHitWithoutPropagation(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	cache1 := mock.NewMockCache(ctrl)
	cache2 := mock.NewMockCache(ctrl)
	mc := NewMultiCache([]interfaces.Cache{cache1, cache2}, zap.NewNop(), false)

	entry := freshEntry()
	cache1.EXPECT().Get(ctx, "test-key").Return(nil, false)
	cache2.EXPECT().Get(ctx, "test-key").Return(entry, true)

	result := mc.GetWithLevel(ctx, "test-key")

	assert.True(t, result.Found)
	assert.Equal(t, models.CacheLevelL2, result.Level)
}

func TestMultiCache_Get_SecondCacheHitPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	cache1 := mock.NewMockCache(ctrl)
	cache2 := mock.NewMockCache(ctrl)
	mc := NewMultiCache([]interfaces.Cache{cache1, cache2}, zap.NewNop(), true)

	entry := freshEntry()
	cache1.EXPECT().Get(ctx, "test-key").Return(nil, false)
	cache2.EXPECT().Get(ctx, "test-key").Return(entry, true)
	cache1.EXPECT().Set(ctx, "test-key", entry.Data, gomock.Any()).
		Do(func(_ context.Context, _ string, _ []byte, ttl models.TTL) {
			assert.InDelta(t, 60, ttl.Fresh.Seconds(), 1)
			assert.InDelta(t, 90, ttl.Total().Seconds(), 1)
		})

	val, found := mc.Get(ctx, "test-key")

	assert.True(t, found)
	assert.Equal(t, entry, val)
}

func TestMultiCache_Get_Miss(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	cache1 := mock.NewMockCache(ctrl)
	cache2 := mock.NewMockCache(ctrl)
	mc := NewMultiCache([]interfaces.Cache{cache1, cache2}, zap.NewNop(), true)

	cache1.EXPECT().Get(ctx, "test-key").Return(nil, false)
	cache2.EXPECT().Get(ctx, "test-key").Return(nil, false)

	result := mc.GetWithLevel(ctx, "test-key")

	assert.False(t, result.Found)
	assert.Equal(t, models.CacheLevelMiss, result.Level)
}

func TestMultiCache_NoCaches(t *testing.T) {
	mc := NewMultiCache(nil, zap.NewNop(), false)
	ctx := context.Background()

	_, found := mc.Get(ctx, "test-key")
	assert.False(t, found)
	assert.NotPanics(t, func() {
		mc.Set(ctx, "test-key", []byte("v"), models.TTL{Fresh: time.Second})
		mc.Delete(ctx, "test-key")
	})
}

func TestMultiCache_SetAndDeleteAllLevels(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	cache1 := mock.NewMockCache(ctrl)
	cache2 := mock.NewMockCache(ctrl)
	mc := NewMultiCache([]interfaces.Cache{cache1, cache2}, zap.NewNop(), false)

	ttl := models.TTL{Fresh: time.Minute, Stale: 6 * time.Second}
	cache1.EXPECT().Set(ctx, "test-key", []byte("v"), ttl)
	cache2.EXPECT().Set(ctx, "test-key", []byte("v"), ttl)
	cache1.EXPECT().Delete(ctx, "test-key")
	cache2.EXPECT().Delete(ctx, "test-key")

	mc.Set(ctx, "test-key", []byte("v"), ttl)
	mc.Delete(ctx, "test-key")
}
