package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRedis struct {
	data     map[string]string
	getErr   error
	setErr   error
	delErr   error
	setTTL   time.Duration
	delCalls []string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
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
	f.data[key] = string(value.([]byte))
	f.setTTL = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.delErr != nil {
		return redis.NewIntResult(0, f.delErr)
	}
	f.delCalls = append(f.delCalls, keys...)
	for _, k := range keys {
		delete(f.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

type payload struct {
	Name string `json:"name"`
	N    int    `json:"n"`
}

func TestGetMissingKeyIsAbsentNotError(t *testing.T) {
	c := New(newFakeRedis(), zap.NewNop().Sugar())

	var out payload
	ok, err := c.Get(context.Background(), "nope", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetThenGetRoundTrip(t *testing.T) {
	rdb := newFakeRedis()
	c := New(rdb, zap.NewNop().Sugar())
	ctx := context.Background()

	in := payload{Name: "post", N: 3}
	require.NoError(t, c.Set(ctx, "k", in, time.Hour))
	assert.Equal(t, time.Hour, rdb.setTTL)

	var out payload
	ok, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, in, out)
}

func TestGetBackendErrorSurfacesAsMiss(t *testing.T) {
	rdb := newFakeRedis()
	rdb.getErr = errors.New("connection refused")
	c := New(rdb, zap.NewNop().Sugar())

	var out payload
	ok, err := c.Get(context.Background(), "k", &out)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestGetCorruptValueIsMiss(t *testing.T) {
	rdb := newFakeRedis()
	rdb.data["k"] = "{not json"
	c := New(rdb, zap.NewNop().Sugar())

	var out payload
	ok, err := c.Get(context.Background(), "k", &out)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestDel(t *testing.T) {
	rdb := newFakeRedis()
	rdb.data[KeyAllBlogs] = "[]"
	c := New(rdb, zap.NewNop().Sugar())

	require.NoError(t, c.Del(context.Background(), KeyAllBlogs))
	assert.Equal(t, []string{KeyAllBlogs}, rdb.delCalls)
	assert.NotContains(t, rdb.data, KeyAllBlogs)
}

func TestDelBackendErrorReported(t *testing.T) {
	rdb := newFakeRedis()
	rdb.delErr = errors.New("down")
	c := New(rdb, zap.NewNop().Sugar())

	assert.Error(t, c.Del(context.Background(), "k"))
}
