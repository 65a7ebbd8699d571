package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths locates profile files under a base directory.
type Paths struct {
	BaseDir string // e.g., /opt/app/config
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "profiles", "default.yaml")
}
func (p Paths) ProfilePath(name string) string {
	return filepath.Join(p.BaseDir, "profiles", name+".yaml")
}

// Loader reads YAML tuning profiles and merges default → named.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawProfile // key: profile name or "$default"
}

// NewLoader creates a profile loader over the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawProfile),
	}
}

// LoadMerged loads default.yaml and overlays the named profile on top.
// An empty name returns the defaults alone. The merged result is not
// validated here; call ValidateRaw before using it.
func (l *Loader) LoadMerged(name string) (RawProfile, error) {
	key := name
	if key == "" {
		key = "$default"
	}
	l.mu.RLock()
	if cfg, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawProfile{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if name != "" {
		named, _ := readYAML(l.paths.ProfilePath(name)) // profile file optional
		merged = mergeRaw(defCfg, named)
	}

	l.mu.Lock()
	l.cache[key] = merged
	l.cache["$default"] = defCfg
	l.mu.Unlock()

	return merged, nil
}

// Invalidate clears the cache. Call after the watcher reports changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawProfile)
}

// readYAML loads one profile file. Missing files return a zero
// profile, no error, so overlays are optional.
func readYAML(path string) (RawProfile, error) {
	var cfg RawProfile
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawProfile{}, nil
		}
		return RawProfile{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawProfile{}, err
	}
	return cfg, nil
}

// mergeRaw overlays b onto a: fields b actually set win.
func mergeRaw(a, b RawProfile) RawProfile {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	if b.Physics.InitialSpeed != nil {
		out.Physics.InitialSpeed = b.Physics.InitialSpeed
	}
	if b.Physics.Deceleration != nil {
		out.Physics.Deceleration = b.Physics.Deceleration
	}

	switch {
	case out.Wheel == nil && b.Wheel != nil:
		c := *b.Wheel
		out.Wheel = &c
	case out.Wheel != nil && b.Wheel != nil:
		if b.Wheel.MinWeight != nil {
			out.Wheel.MinWeight = b.Wheel.MinWeight
		}
		if b.Wheel.MaxWeight != nil {
			out.Wheel.MaxWeight = b.Wheel.MaxWeight
		}
	}

	switch {
	case out.Fairness == nil && b.Fairness != nil:
		c := *b.Fairness
		out.Fairness = &c
	case out.Fairness != nil && b.Fairness != nil:
		if b.Fairness.Mode != "" {
			out.Fairness.Mode = b.Fairness.Mode
		}
		if b.Fairness.Jitter != nil {
			out.Fairness.Jitter = b.Fairness.Jitter
		}
		if b.Fairness.Turns != nil {
			out.Fairness.Turns = b.Fairness.Turns
		}
		if b.Fairness.Easing != "" {
			out.Fairness.Easing = b.Fairness.Easing
		}
	}

	return out
}
