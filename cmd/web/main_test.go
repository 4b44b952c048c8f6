package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richxcame/ride-hailing-web/internal/cart"
	"github.com/richxcame/ride-hailing-web/internal/theme"
	"github.com/richxcame/ride-hailing-web/pkg/config"
	"github.com/richxcame/ride-hailing-web/test/helpers"
)

func TestNewThemeStorage_Memory(t *testing.T) {
	cfg := &config.Config{Theme: config.ThemeConfig{Backend: config.ThemeBackendMemory}}
	checks := map[string]func() error{}

	storage, closeStorage, err := newThemeStorage(cfg, checks)
	require.NoError(t, err)
	defer closeStorage()

	assert.IsType(t, &theme.MemoryStorage{}, storage)
	assert.Empty(t, checks)
}

func TestNewThemeStorage_File(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	cfg := &config.Config{Theme: config.ThemeConfig{Backend: config.ThemeBackendFile, StateDir: dir}}

	storage, closeStorage, err := newThemeStorage(cfg, map[string]func() error{})
	require.NoError(t, err)
	defer closeStorage()

	store := theme.NewStore(context.Background(), storage)
	_, err = store.ToggleTheme(context.Background())
	require.NoError(t, err)

	reloaded := theme.NewStore(context.Background(), storage)
	assert.Equal(t, theme.Light, reloaded.Theme())
}

func TestNewThemeStorage_RedisUnavailable(t *testing.T) {
	cfg := &config.Config{
		Theme: config.ThemeConfig{Backend: config.ThemeBackendRedis},
		Redis: config.RedisConfig{Host: "127.0.0.1", Port: "1"},
	}
	checks := map[string]func() error{}

	_, _, err := newThemeStorage(cfg, checks)
	assert.Error(t, err)
	assert.NotContains(t, checks, "redis")
}

func TestNewGraphQLClient(t *testing.T) {
	api := helpers.NewFakeGraphQL(t, map[string]string{
		"MyCart": `{"data":{"myCart":{"id":"c1","totalItems":0,"totalPrice":0,"items":[]}}}`,
	})

	client := newGraphQLClient(config.GraphQLConfig{
		Endpoint:           api.URL,
		QueryRetryAttempts: 2,
	})

	got, err := cart.NewService(client).MyCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)
	assert.Len(t, api.Requests(), 1)
}
