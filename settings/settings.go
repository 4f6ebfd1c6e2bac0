// Package settings persists viewer toggles across runs through gdata
package settings

import (
	"log"
	"sync"

	"github.com/pkg/errors"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	object   = "viewer"
	property = "toggles"
)

// Toggles are the user-facing switches the viewer remembers
type Toggles struct {
	DanceFloor bool `yaml:"dance_floor"`
	ClubLights bool `yaml:"club_lights"`
	Muted      bool `yaml:"muted"`
}

// Defaults returns every cosmetic on and audio unmuted
func Defaults() Toggles {
	return Toggles{DanceFloor: true, ClubLights: true}
}

// Manager holds the current toggles and their backing store
// A nil gdata manager keeps toggles in memory only
type Manager struct {
	mu      sync.Mutex
	store   *gdata.Manager
	toggles Toggles
	logger  *log.Logger
}

// Open creates a gdata-backed manager under appName
// Storage failures degrade to an in-memory manager, returned alongside the error
func Open(appName string, logger *log.Logger) (*Manager, error) {
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		m := NewManager(nil, logger)
		return m, errors.Wrap(err, "open settings storage")
	}
	m := NewManager(store, logger)
	if err := m.Load(); err != nil {
		return m, err
	}
	return m, nil
}

// NewManager wraps an opened store; store may be nil
func NewManager(store *gdata.Manager, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		store:   store,
		toggles: Defaults(),
		logger:  logger,
	}
}

// Persistent reports whether Save reaches storage
func (m *Manager) Persistent() bool {
	return m.store != nil
}

// Load replaces the toggles with the stored copy
// Missing data keeps defaults; undecodable data resets to defaults and errors
func (m *Manager) Load() error {
	if m.store == nil {
		return nil
	}
	if !m.store.ObjectPropExists(object, property) {
		return nil
	}

	data, err := m.store.LoadObjectProp(object, property)
	if err != nil {
		return errors.Wrap(err, "load settings")
	}

	loaded := Defaults()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		m.mu.Lock()
		m.toggles = Defaults()
		m.mu.Unlock()
		return errors.Wrap(err, "decode settings")
	}

	m.mu.Lock()
	m.toggles = loaded
	m.mu.Unlock()
	m.logger.Printf("[settings] loaded %+v", loaded)
	return nil
}

// Save writes the current toggles; no-op without storage
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}

	m.mu.Lock()
	data, err := yaml.Marshal(m.toggles)
	m.mu.Unlock()
	if err != nil {
		return errors.Wrap(err, "encode settings")
	}

	if err := m.store.SaveObjectProp(object, property, data); err != nil {
		return errors.Wrap(err, "save settings")
	}
	return nil
}

// Toggles returns a copy of the current toggles
func (m *Manager) Toggles() Toggles {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.toggles
}

// Update applies fn to the toggles and saves
// The in-memory change stands even when the save fails
func (m *Manager) Update(fn func(*Toggles)) (Toggles, error) {
	m.mu.Lock()
	fn(&m.toggles)
	t := m.toggles
	m.mu.Unlock()
	return t, m.Save()
}
