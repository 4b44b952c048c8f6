package theme

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/richxcame/ride-hailing-web/pkg/redis"
)

// Storage is a string key-value medium the store persists into
type Storage interface {
	// GetItem returns the value under key and whether it exists
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// MemoryStorage keeps values in process memory
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryStorage creates an empty MemoryStorage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (m *MemoryStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.items[key]
	return value, ok, nil
}

func (m *MemoryStorage) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

// FileStorage keeps one file per key in a state directory. Writes go to a
// temp file that is renamed over the old value.
type FileStorage struct {
	dir string
}

// NewFileStorage creates the state directory if needed
func NewFileStorage(dir string) (*FileStorage, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("state directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	path, err := f.path(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

func (f *FileStorage) SetItem(_ context.Context, key, value string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, key+"-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

func (f *FileStorage) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

// RedisStorage keeps values in Redis without expiry
type RedisStorage struct {
	client redis.ClientInterface
	prefix string
}

// NewRedisStorage stores keys under prefix, e.g. "web:"
func NewRedisStorage(client redis.ClientInterface, prefix string) *RedisStorage {
	return &RedisStorage{client: client, prefix: prefix}
}

func (r *RedisStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.GetString(ctx, r.prefix+key)
	if err != nil {
		if redis.IsNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *RedisStorage) SetItem(ctx context.Context, key, value string) error {
	return r.client.SetWithExpiration(ctx, r.prefix+key, value, 0)
}
