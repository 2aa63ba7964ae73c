package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllowsUpToCapacity(t *testing.T) {
	rl := newRateLimiter(5)
	defer rl.close()

	for i := 0; i < 5; i++ {
		assert.True(t, rl.tryAcquire(), "token %d", i)
	}
	assert.False(t, rl.tryAcquire())
}

func TestRateLimiterWaitHonorsContext(t *testing.T) {
	rl := newRateLimiter(1)
	defer rl.close()

	require.NoError(t, rl.wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := rl.wait(ctx)
	assert.Error(t, err)
}

func TestRateLimiterDefaultsCapacity(t *testing.T) {
	rl := newRateLimiter(0)
	defer rl.close()
	assert.Equal(t, 30, rl.capacity)
}
