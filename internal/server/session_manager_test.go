package server

import (
	"sync"
	"testing"
)

func TestSessionIDManagerRegisterAndLookup(t *testing.T) {
	m := NewSessionIDManager()

	id := m.Register("work@example.com")
	if id == "" {
		t.Fatal("expected a non-empty session id")
	}

	account, ok := m.Account(id)
	if !ok {
		t.Fatal("expected session to be registered")
	}
	if account != "work@example.com" {
		t.Errorf("expected work@example.com, got %s", account)
	}

	other := m.Register("personal@example.com")
	if other == id {
		t.Error("expected unique session ids")
	}
	if m.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", m.Len())
	}
}

func TestSessionIDManagerRemove(t *testing.T) {
	m := NewSessionIDManager()
	id := m.Register("work@example.com")

	m.Remove(id)
	if _, ok := m.Account(id); ok {
		t.Error("expected session to be removed")
	}
	if m.Len() != 0 {
		t.Errorf("expected 0 sessions, got %d", m.Len())
	}

	// Removing an unknown session is harmless.
	m.Remove("missing")
}

func TestSessionIDManagerConcurrentAccess(t *testing.T) {
	m := NewSessionIDManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := m.Register("account")
			if _, ok := m.Account(id); !ok {
				t.Error("registered session not found")
			}
			m.Remove(id)
		}()
	}
	wg.Wait()

	if m.Len() != 0 {
		t.Errorf("expected all sessions removed, got %d", m.Len())
	}
}

func TestLookupMissingSession(t *testing.T) {
	m := NewSessionIDManager()
	if _, ok := m.Account("nope"); ok {
		t.Error("expected lookup of unknown session to fail")
	}
}
