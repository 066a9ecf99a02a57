package cmd

import (
	"testing"

	"github.com/boxworks/gobox/internal/boxauth"
)

func TestNewTokenStore(t *testing.T) {
	orig := flagTokenStore
	defer func() { flagTokenStore = orig }()

	flagTokenStore = "memory"
	store, err := newTokenStore()
	if err != nil {
		t.Fatalf("memory store: %v", err)
	}
	if _, ok := store.(*boxauth.MemoryStore); !ok {
		t.Errorf("expected a MemoryStore, got %T", store)
	}

	flagTokenStore = "keyring"
	store, err = newTokenStore()
	if err != nil {
		t.Fatalf("keyring store: %v", err)
	}
	if _, ok := store.(*boxauth.KeyringStore); !ok {
		t.Errorf("expected a KeyringStore, got %T", store)
	}

	flagTokenStore = "etcd"
	if _, err := newTokenStore(); err == nil {
		t.Error("expected an error for an unknown token store backend")
	}
}

func TestRootCommandWiring(t *testing.T) {
	expected := map[string]bool{
		"auth":    false,
		"folders": false,
		"search":  false,
		"trash":   false,
		"serve":   false,
	}
	for _, sub := range rootCmd.Commands() {
		if _, ok := expected[sub.Name()]; ok {
			expected[sub.Name()] = true
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3")
	if rootCmd.Version != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %s", rootCmd.Version)
	}
}
