// Package settings remembers the front-end preferences (speed, mixing level,
// fit mode) between runs. Simulation state is never stored.
package settings

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"rps-ca/internal/config"
	"rps-ca/internal/sim"
)

const (
	objectName   = "preferences"
	propertyName = "ui"
)

// Preferences are the user-tunable knobs worth keeping across restarts.
type Preferences struct {
	Speed  int  `yaml:"speed"`
	Mixing int  `yaml:"mixing"`
	Fit    bool `yaml:"fit"`
}

// Clamp brings out-of-range values back to the driver bounds.
func (p Preferences) Clamp() Preferences {
	if p.Speed < sim.MinSpeed {
		p.Speed = sim.MinSpeed
	}
	if p.Speed > sim.MaxSpeed {
		p.Speed = sim.MaxSpeed
	}
	if p.Mixing < sim.MinMixing {
		p.Mixing = sim.MinMixing
	}
	if p.Mixing > sim.MaxMixing {
		p.Mixing = sim.MaxMixing
	}
	return p
}

// ApplyTo copies p into cfg for every knob not set by an explicit flag.
func (p Preferences) ApplyTo(cfg *config.Config) {
	if !cfg.Explicit("speed") {
		cfg.Speed = p.Speed
	}
	if !cfg.Explicit("mixing") {
		cfg.Mixing = p.Mixing
	}
	if !cfg.Explicit("fit") {
		cfg.Fit = p.Fit
	}
}

// Store loads and saves Preferences through gdata. A Store with a nil manager
// keeps preferences in memory only.
type Store struct {
	m *gdata.Manager
}

// Open creates a Store backed by the per-user data directory of appName.
// When the directory cannot be opened the Store degrades to memory only.
func Open(appName string) *Store {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[settings] storage unavailable: %v (preferences will not persist)", err)
		return &Store{}
	}
	return &Store{m: m}
}

// NewStore wraps an existing manager; m may be nil.
func NewStore(m *gdata.Manager) *Store {
	return &Store{m: m}
}

// Load returns the saved preferences, or fallback when none exist.
func (s *Store) Load(fallback Preferences) (Preferences, error) {
	if s == nil || s.m == nil {
		return fallback, nil
	}
	if !s.m.ObjectPropExists(objectName, propertyName) {
		return fallback, nil
	}
	data, err := s.m.LoadObjectProp(objectName, propertyName)
	if err != nil {
		return fallback, fmt.Errorf("load preferences: %w", err)
	}
	prefs := fallback
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return fallback, fmt.Errorf("decode preferences: %w", err)
	}
	return prefs.Clamp(), nil
}

// Save persists prefs. It is a no-op without a backing manager.
func (s *Store) Save(prefs Preferences) error {
	if s == nil || s.m == nil {
		return nil
	}
	data, err := yaml.Marshal(prefs.Clamp())
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.m.SaveObjectProp(objectName, propertyName, data); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
