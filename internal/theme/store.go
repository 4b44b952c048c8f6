package theme

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/richxcame/ride-hailing-web/pkg/logger"
)

// StorageKey is the key the preference is persisted under
const StorageKey = "theme-storage"

// persistVersion is the envelope version written with every value
const persistVersion = 0

var togglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "theme_toggles_total",
	Help: "Theme toggles by resulting theme",
}, []string{"theme"})

type persistedState struct {
	Theme Theme `json:"theme"`
}

type persisted struct {
	State   persistedState `json:"state"`
	Version int            `json:"version"`
}

// Encode returns the persisted form of t
func Encode(t Theme) (string, error) {
	b, err := json.Marshal(persisted{State: persistedState{Theme: t}, Version: persistVersion})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses a persisted value
func Decode(value string) (Theme, error) {
	var p persisted
	if err := json.Unmarshal([]byte(value), &p); err != nil {
		return "", fmt.Errorf("invalid persisted theme: %w", err)
	}
	return ParseTheme(string(p.State.Theme))
}

// Store holds the current theme and mirrors every change to storage
type Store struct {
	mu      sync.RWMutex
	theme   Theme
	storage Storage
}

// NewStore loads the persisted theme once. A missing or unreadable value
// leaves the store on DefaultTheme.
func NewStore(ctx context.Context, storage Storage) *Store {
	s := &Store{theme: DefaultTheme, storage: storage}

	value, ok, err := storage.GetItem(ctx, StorageKey)
	switch {
	case err != nil:
		logger.WithContext(ctx).Warn("failed to load theme, using default",
			zap.String("default", DefaultTheme.String()),
			zap.Error(err),
		)
	case !ok:
		logger.WithContext(ctx).Debug("no persisted theme, using default",
			zap.String("default", DefaultTheme.String()),
		)
	default:
		t, err := Decode(value)
		if err != nil {
			logger.WithContext(ctx).Warn("ignoring persisted theme",
				zap.String("value", value),
				zap.Error(err),
			)
			break
		}
		s.theme = t
	}

	return s
}

// Theme returns the current theme
func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// ToggleTheme flips the theme and persists it. The new theme is kept even
// when persisting fails; the error is returned so the caller can report it.
func (s *Store) ToggleTheme(ctx context.Context) (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = s.theme.Toggle()
	togglesTotal.WithLabelValues(s.theme.String()).Inc()

	value, err := Encode(s.theme)
	if err != nil {
		return s.theme, err
	}
	if err := s.storage.SetItem(ctx, StorageKey, value); err != nil {
		logger.WithContext(ctx).Error("failed to persist theme",
			zap.String("theme", s.theme.String()),
			zap.Error(err),
		)
		return s.theme, fmt.Errorf("failed to persist theme: %w", err)
	}
	return s.theme, nil
}
