package gateway_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/coldreach/coldreach/internal/gateway"
)

func TestLimiter_WindowThreshold(t *testing.T) {
	l := gateway.NewLimiter(3, time.Minute)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		ok, _ := l.Allow("1.2.3.4", now)
		assert.True(t, ok, "request %d should pass", i+1)
	}

	ok, retryAfter := l.Allow("1.2.3.4", now.Add(30*time.Second))
	assert.False(t, ok)
	assert.Equal(t, 30*time.Second, retryAfter)
}

func TestLimiter_FreshWindowAcceptsAgain(t *testing.T) {
	l := gateway.NewLimiter(1, time.Minute)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	ok, _ := l.Allow("1.2.3.4", now)
	assert.True(t, ok)

	ok, _ = l.Allow("1.2.3.4", now.Add(time.Second))
	assert.False(t, ok)

	ok, _ = l.Allow("1.2.3.4", now.Add(time.Minute))
	assert.True(t, ok, "a fresh window resets the count")
}

func TestLimiter_IdentitiesAreIndependent(t *testing.T) {
	l := gateway.NewLimiter(1, time.Minute)
	now := time.Now()

	ok, _ := l.Allow("1.2.3.4", now)
	assert.True(t, ok)
	ok, _ = l.Allow("5.6.7.8", now)
	assert.True(t, ok)
	ok, _ = l.Allow("1.2.3.4", now)
	assert.False(t, ok)
}
