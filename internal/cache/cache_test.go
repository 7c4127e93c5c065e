package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestDisabledCacheIsNil(t *testing.T) {
	c := New(Config{Enabled: false, Addr: "localhost:6379"})
	assert.Nil(t, c)

	ctx := context.Background()
	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	v, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, v)
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestUnreachableRedisBehavesAsMiss(t *testing.T) {
	// Nothing listens on port 1, so every command fails to connect.
	c := Wrap(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	}))
	defer c.Close()
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "item:1", []byte(`{"quantity":3}`), time.Minute))

	v, err := c.Get(ctx, "item:1")
	assert.NoError(t, err)
	assert.Nil(t, v)
	assert.NoError(t, c.Delete(ctx, "item:1"))
	assert.Error(t, c.Ping(ctx))
}
