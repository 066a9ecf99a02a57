package box

import (
	"context"
	"sync"
)

// SessionState describes the token lifecycle of a Session.
type SessionState int

const (
	// StateUnset means no tokens have been obtained yet.
	StateUnset SessionState = iota
	// StatePending means a token exchange is in flight.
	StatePending
	// StateReady means a usable access token is present.
	StateReady
	// StateError means the last token exchange failed.
	StateError
)

func (s SessionState) String() string {
	switch s {
	case StateUnset:
		return "unset"
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Session holds the token state for a single account. A Session is owned by
// exactly one Connection and is never shared across accounts.
//
// State transitions are strictly ordered: at most one exchange runs at a
// time, and every waiter registered via Ready is released exactly once on
// the next terminal transition (StateReady or StateError).
type Session struct {
	account string

	mu           sync.Mutex
	state        SessionState
	accessToken  string
	refreshToken string
	lastErr      error
	waiters      []chan error
}

func newSession(account string) *Session {
	return &Session{account: account}
}

// Account returns the account identifier this session belongs to.
func (s *Session) Account() string {
	return s.account
}

// State returns the current token state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// AccessToken returns the current access token, or "" if none is stored.
func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// RefreshToken returns the stored refresh token, or "" if none is stored.
func (s *Session) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshToken
}

// Ready blocks until the session reaches StateReady (returns nil) or
// StateError (returns the exchange error), or until ctx is done. A session
// that is already in a terminal state returns immediately.
func (s *Session) Ready(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateReady:
		s.mu.Unlock()
		return nil
	case StateError:
		err := s.lastErr
		s.mu.Unlock()
		return err
	}

	ch := make(chan error, 1)
	s.waiters = append(s.waiters, ch)
	s.mu.Unlock()

	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// beginExchange transitions the session to StatePending and reports whether
// the caller now owns the exchange. It returns false when another exchange
// is already in flight; the caller should wait on Ready instead of starting
// a parallel exchange.
func (s *Session) beginExchange() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StatePending {
		return false
	}
	s.state = StatePending
	return true
}

// beginRefresh transitions the session to StatePending and returns the
// refresh token captured under the same lock. Refresh tokens are single
// use: a caller that read the token before a competing refresh rotated it
// would otherwise send the consumed one. ok is false when another exchange
// is already in flight.
func (s *Session) beginRefresh() (refreshToken string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StatePending {
		return "", false
	}
	s.state = StatePending
	return s.refreshToken, true
}

// setTokens stores the exchange result and transitions to StateReady. The
// refresh token from the response is authoritative: when the provider
// rotates it, the stored one is overwritten; when the response omits it,
// the previous refresh token is kept.
func (s *Session) setTokens(accessToken, refreshToken string) {
	s.mu.Lock()
	s.accessToken = accessToken
	if refreshToken != "" {
		s.refreshToken = refreshToken
	}
	s.state = StateReady
	s.lastErr = nil
	waiters := s.waiters
	s.waiters = nil
	s.mu.Unlock()

	for _, ch := range waiters {
		ch <- nil
	}
}

// fail records a failed exchange, transitions to StateError and releases
// all waiters with the error.
func (s *Session) fail(err error) {
	s.mu.Lock()
	s.state = StateError
	s.lastErr = err
	waiters := s.waiters
	s.waiters = nil
	s.mu.Unlock()

	for _, ch := range waiters {
		ch <- err
	}
}
