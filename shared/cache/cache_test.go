package cache_test

import (
	"context"
	"testing"

	"bayleaf/infras/otel/mocks"
	"bayleaf/shared/cache"
	redisMocks "bayleaf/shared/cache/mocks"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestNewRedisCache_WithoutClient(t *testing.T) {
	c := cache.NewRedisCache(nil, mocks.NewOtel())
	ctx := context.Background()

	assert.NoError(t, c.Save(ctx, "menu:items", []string{"dal"}, 60))

	var items []string
	assert.ErrorIs(t, c.Get(ctx, "menu:items", &items), cache.Nil)
	assert.Empty(t, items)

	assert.NoError(t, c.Delete(ctx, "menu:items"))
	assert.NoError(t, c.Clear(ctx, "menu"))
}

func TestEnabled(t *testing.T) {
	assert.False(t, cache.Enabled(cache.NewRedisCache(nil, mocks.NewOtel())))
	assert.True(t, cache.Enabled(redisMocks.NewMockRedisCache(gomock.NewController(t))))
}
