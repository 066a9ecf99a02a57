package boxauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"
)

// ErrTokenNotFound is returned by a TokenStore when no token is stored for
// the requested account.
var ErrTokenNotFound = errors.New("no token stored for account")

// TokenStore persists per-account tokens across process restarts.
type TokenStore interface {
	// Load returns the stored token for the account, or ErrTokenNotFound.
	Load(ctx context.Context, account string) (*Token, error)

	// Save persists the token for the account, overwriting any existing one.
	Save(ctx context.Context, account string, tok *Token) error

	// Delete removes the stored token for the account. Deleting a missing
	// token is not an error.
	Delete(ctx context.Context, account string) error
}

// MemoryStore keeps tokens in process memory. Used in tests and for
// delegated-authentication integrations that manage persistence themselves.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]Token
}

var _ TokenStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]Token)}
}

func (m *MemoryStore) Load(_ context.Context, account string) (*Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tok, ok := m.tokens[account]
	if !ok {
		return nil, ErrTokenNotFound
	}
	return &tok, nil
}

func (m *MemoryStore) Save(_ context.Context, account string, tok *Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[account] = *tok
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, account string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, account)
	return nil
}

// FileStore persists tokens as one JSON file per account with 0600
// permissions. Writes are atomic (temp file + rename).
type FileStore struct {
	dir string
}

var _ TokenStore = (*FileStore)(nil)

// NewFileStore creates a FileStore rooted at dir, creating it with 0700
// permissions if needed. An empty dir selects DefaultStoreDir.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = DefaultStoreDir()
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create token directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(account string) string {
	// Account ids are emails; flatten characters that are unsafe in
	// filenames.
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, account)
	return filepath.Join(f.dir, name+".token.json")
}

func (f *FileStore) Load(ctx context.Context, account string) (*Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path(account))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var tok Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, ErrTokenNotFound
	}
	return &tok, nil
}

func (f *FileStore) Save(ctx context.Context, account string, tok *Token) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, "*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp token file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close token file: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return fmt.Errorf("failed to set token file permissions: %w", err)
	}
	if err := os.Rename(tmpName, f.path(account)); err != nil {
		return fmt.Errorf("failed to persist token file: %w", err)
	}
	return nil
}

func (f *FileStore) Delete(ctx context.Context, account string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(f.path(account)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}

// KeyringStore persists tokens in the OS-native credential store
// (macOS Keychain, Windows Credential Manager, Linux Secret Service).
type KeyringStore struct {
	service string
}

var _ TokenStore = (*KeyringStore)(nil)

// NewKeyringStore creates a KeyringStore under the given service name.
func NewKeyringStore(service string) (*KeyringStore, error) {
	if service == "" {
		return nil, fmt.Errorf("service cannot be empty")
	}
	return &KeyringStore{service: service}, nil
}

func (k *KeyringStore) Load(ctx context.Context, account string) (*Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := keyring.Get(k.service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to read keyring: %w", err)
	}

	var tok Token
	if err := json.Unmarshal([]byte(data), &tok); err != nil {
		return nil, fmt.Errorf("failed to parse keyring entry: %w", err)
	}
	return &tok, nil
}

func (k *KeyringStore) Save(ctx context.Context, account string, tok *Token) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	return keyring.Set(k.service, account, string(data))
}

func (k *KeyringStore) Delete(ctx context.Context, account string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := keyring.Delete(k.service, account); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete keyring entry: %w", err)
	}
	return nil
}

// DefaultStoreDir returns the per-user directory for token files.
func DefaultStoreDir() string {
	return filepath.Join(userCacheDir(), "gobox")
}

func userCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return dir
	}
	if runtime.GOOS == "windows" {
		return os.Getenv("TEMP")
	}
	return filepath.Join(os.Getenv("HOME"), ".cache")
}
