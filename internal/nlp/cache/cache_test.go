package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nyaya/internal/nlp/cache"
	"nyaya/mocks"
)

type fakeRedis struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.data[key] = value.(string)
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func TestRedisCache_MissThenHit(t *testing.T) {
	rdb := newFakeRedis()
	c := cache.NewRedisCache(rdb, time.Hour)
	ctx := context.Background()

	_, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "k", "hello"))
	v, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "hello", v)
	assert.Equal(t, time.Hour, rdb.ttls["nyaya:translation:k"])
}

func TestRedisCache_Errors(t *testing.T) {
	rdb := newFakeRedis()
	rdb.getErr = errors.New("connection refused")
	rdb.setErr = errors.New("connection refused")
	c := cache.NewRedisCache(rdb, 0)

	_, _, err := c.Get(context.Background(), "k")
	assert.ErrorContains(t, err, "cache.Get")
	assert.ErrorContains(t, c.Set(context.Background(), "k", "v"), "cache.Set")
}

func TestCachedLanguageService_HitSkipsProvider(t *testing.T) {
	inner := new(mocks.MockLanguageService)
	store := new(mocks.MockTranslationCache)
	key := cache.Key("नमस्ते", "en")
	store.On("Get", mock.Anything, key).Return("hello", true, nil)

	svc := cache.NewCachedLanguageService(inner, store, nil)
	got, err := svc.Translate(context.Background(), "नमस्ते", "en")

	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	inner.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedLanguageService_MissStoresResult(t *testing.T) {
	inner := new(mocks.MockLanguageService)
	store := new(mocks.MockTranslationCache)
	key := cache.Key("नमस्ते", "en")
	store.On("Get", mock.Anything, key).Return("", false, nil)
	inner.On("Translate", mock.Anything, "नमस्ते", "en").Return("hello", nil)
	store.On("Set", mock.Anything, key, "hello").Return(nil)

	got, err := cache.NewCachedLanguageService(inner, store, nil).Translate(context.Background(), "नमस्ते", "en")

	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	store.AssertExpectations(t)
}

func TestCachedLanguageService_CacheFailureIsBypassed(t *testing.T) {
	inner := new(mocks.MockLanguageService)
	store := new(mocks.MockTranslationCache)
	store.On("Get", mock.Anything, mock.Anything).Return("", false, errors.New("redis down"))
	store.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))
	inner.On("Translate", mock.Anything, "text", "en").Return("translated", nil)

	got, err := cache.NewCachedLanguageService(inner, store, nil).Translate(context.Background(), "text", "en")

	require.NoError(t, err)
	assert.Equal(t, "translated", got)
}

func TestCachedLanguageService_ProviderErrorNotCached(t *testing.T) {
	inner := new(mocks.MockLanguageService)
	store := new(mocks.MockTranslationCache)
	store.On("Get", mock.Anything, mock.Anything).Return("", false, nil)
	inner.On("Translate", mock.Anything, "text", "en").Return("", errors.New("quota"))

	_, err := cache.NewCachedLanguageService(inner, store, nil).Translate(context.Background(), "text", "en")

	assert.Error(t, err)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedLanguageService_DetectDelegates(t *testing.T) {
	inner := new(mocks.MockLanguageService)
	inner.On("Detect", mock.Anything, "text").Return("mr", nil)

	got, err := cache.NewCachedLanguageService(inner, new(mocks.MockTranslationCache), nil).Detect(context.Background(), "text")

	require.NoError(t, err)
	assert.Equal(t, "mr", got)
}

func TestKey_DependsOnTarget(t *testing.T) {
	assert.NotEqual(t, cache.Key("text", "en"), cache.Key("text", "hi"))
	assert.Len(t, cache.Key("text", "en"), 64)
}
