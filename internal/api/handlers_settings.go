// handlers_settings.go - Robot profile handlers
package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/pedro-visualizer/backend/internal/models"
	"github.com/pedro-visualizer/backend/internal/parser"
	"github.com/pedro-visualizer/backend/internal/timeline"
)

// SettingsStore holds the active robot profile and persists it as YAML.
// An empty path keeps the profile in memory only.
type SettingsStore struct {
	mu      sync.RWMutex
	path    string
	current models.Settings
}

// NewSettingsStore loads the profile at path, falling back to defaults when
// the file does not exist yet.
func NewSettingsStore(path string) (*SettingsStore, error) {
	s := &SettingsStore{path: path, current: models.DefaultSettings()}
	if path == "" {
		return s, nil
	}

	loaded, err := parser.ParseSettings(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings %s: %w", path, err)
	}
	s.current = *loaded
	return s, nil
}

// Current returns a copy of the active profile
func (s *SettingsStore) Current() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update validates and stores a new profile
func (s *SettingsStore) Update(settings models.Settings) error {
	if err := timeline.ValidateSettings(settings); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path != "" {
		if err := parser.SaveSettings(s.path, settings); err != nil {
			return err
		}
	}
	s.current = settings
	return nil
}

// Reset restores the default profile
func (s *SettingsStore) Reset() (models.Settings, error) {
	def := models.DefaultSettings()
	if err := s.Update(def); err != nil {
		return models.Settings{}, err
	}
	return def, nil
}

// SettingsHandlerImpl implements the SettingsHandler interface
type SettingsHandlerImpl struct {
	store *SettingsStore
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(store *SettingsStore) SettingsHandler {
	return &SettingsHandlerImpl{store: store}
}

// HandleGetSettings returns the active profile
func (h *SettingsHandlerImpl) HandleGetSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Current())
}

// HandleUpdateSettings replaces the active profile
func (h *SettingsHandlerImpl) HandleUpdateSettings(c echo.Context) error {
	settings := h.store.Current()
	if err := c.Bind(&settings); err != nil {
		return NewBadRequestError("invalid settings", err)
	}

	if err := h.store.Update(settings); err != nil {
		return fromDomainError("failed to update settings", err)
	}
	return c.JSON(http.StatusOK, settings)
}

// HandleResetSettings restores defaults. The caller must pass confirm=true.
func (h *SettingsHandlerImpl) HandleResetSettings(c echo.Context) error {
	if c.QueryParam("confirm") != "true" {
		return NewPreconditionError("resetting settings requires confirm=true")
	}

	settings, err := h.store.Reset()
	if err != nil {
		return NewInternalError("failed to reset settings", err)
	}
	fmt.Println("[Settings] Profile reset to defaults")
	return c.JSON(http.StatusOK, settings)
}
