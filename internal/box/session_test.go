package box

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStateString(t *testing.T) {
	tests := []struct {
		state SessionState
		want  string
	}{
		{StateUnset, "unset"},
		{StatePending, "pending"},
		{StateReady, "ready"},
		{StateError, "error"},
		{SessionState(42), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}

func TestSessionInitialState(t *testing.T) {
	s := newSession("work")
	assert.Equal(t, "work", s.Account())
	assert.Equal(t, StateUnset, s.State())
	assert.Empty(t, s.AccessToken())
	assert.Empty(t, s.RefreshToken())
}

func TestSessionReadyImmediateOnTerminalState(t *testing.T) {
	s := newSession("default")
	s.setTokens("at-1", "rt-1")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Ready(ctx))

	failed := newSession("default")
	exchangeErr := errors.New("exchange rejected")
	failed.fail(exchangeErr)
	assert.ErrorIs(t, failed.Ready(ctx), exchangeErr)
}

func TestSessionReadyBlocksUntilTokens(t *testing.T) {
	s := newSession("default")
	require.True(t, s.beginExchange())

	done := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		done <- s.Ready(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("Ready returned %v before the exchange finished", err)
	case <-time.After(50 * time.Millisecond):
	}

	s.setTokens("at-1", "rt-1")

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Ready did not return after setTokens")
	}
}

func TestSessionReadyHonorsContext(t *testing.T) {
	s := newSession("default")
	require.True(t, s.beginExchange())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := s.Ready(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSessionConcurrentWaitersAllReleased(t *testing.T) {
	s := newSession("default")
	require.True(t, s.beginExchange())

	const waiters = 20
	var wg sync.WaitGroup
	results := make(chan error, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			results <- s.Ready(ctx)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	s.setTokens("at-1", "rt-1")
	wg.Wait()
	close(results)

	count := 0
	for err := range results {
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, waiters, count)
}

func TestSessionConcurrentWaitersReleasedWithError(t *testing.T) {
	s := newSession("default")
	require.True(t, s.beginExchange())

	exchangeErr := errors.New("provider rejected the code")
	const waiters = 10
	results := make(chan error, waiters)
	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			results <- s.Ready(ctx)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	s.fail(exchangeErr)
	wg.Wait()
	close(results)

	for err := range results {
		assert.ErrorIs(t, err, exchangeErr)
	}
}

func TestSessionBeginExchangeRejectsParallel(t *testing.T) {
	s := newSession("default")
	require.True(t, s.beginExchange())
	assert.False(t, s.beginExchange(), "a second exchange must not start while one is pending")

	s.setTokens("at-1", "rt-1")
	assert.True(t, s.beginExchange(), "a new exchange may start after the previous one finished")
}

func TestSessionBeginRefreshCapturesRotatedToken(t *testing.T) {
	s := newSession("default")
	s.setTokens("at-1", "rt-1")

	// A competing refresh rotates the token before this caller acquires
	// the exchange. The capture happens under the same lock as the
	// pending transition, so the consumed token is never handed out.
	s.setTokens("at-2", "rt-2")

	refreshToken, ok := s.beginRefresh()
	require.True(t, ok)
	assert.Equal(t, "rt-2", refreshToken)
	assert.Equal(t, StatePending, s.State())

	_, ok = s.beginRefresh()
	assert.False(t, ok, "a second refresh must not start while one is pending")
}

func TestSessionRefreshTokenRotation(t *testing.T) {
	s := newSession("default")
	s.setTokens("at-1", "rt-1")

	// A rotated refresh token replaces the stored one.
	s.setTokens("at-2", "rt-2")
	assert.Equal(t, "at-2", s.AccessToken())
	assert.Equal(t, "rt-2", s.RefreshToken())

	// A response without a refresh token keeps the previous one.
	s.setTokens("at-3", "")
	assert.Equal(t, "at-3", s.AccessToken())
	assert.Equal(t, "rt-2", s.RefreshToken())
}

func TestSessionRecoversFromError(t *testing.T) {
	s := newSession("default")
	s.fail(errors.New("first attempt failed"))
	require.Equal(t, StateError, s.State())

	require.True(t, s.beginExchange())
	s.setTokens("at-1", "rt-1")
	assert.Equal(t, StateReady, s.State())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Ready(ctx))
}
