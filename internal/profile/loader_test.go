package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xtding233/spinwheel/internal/wheel"
)

func writeProfile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, "profiles"), 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "profiles", name+".yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMergedOverlay(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "default", `
version: "1"
physics:
  initial_speed: 0.2
  deceleration: 0.0015
fairness:
  mode: jitter
  jitter: 0.02
`)
	writeProfile(t, dir, "turbo", `
physics:
  initial_speed: 0.5
fairness:
  mode: target
  turns: 5
`)

	l := NewLoader(dir)
	cfg, err := l.LoadMerged("turbo")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Physics.InitialSpeed == nil || *cfg.Physics.InitialSpeed != 0.5 {
		t.Fatalf("overlay initial_speed not applied: %+v", cfg.Physics)
	}
	if cfg.Physics.Deceleration == nil || *cfg.Physics.Deceleration != 0.0015 {
		t.Fatalf("default deceleration lost: %+v", cfg.Physics)
	}
	if cfg.Fairness == nil || cfg.Fairness.Mode != "target" {
		t.Fatalf("overlay mode not applied: %+v", cfg.Fairness)
	}
	if cfg.Fairness.Jitter == nil || *cfg.Fairness.Jitter != 0.02 {
		t.Fatalf("default jitter lost: %+v", cfg.Fairness)
	}

	// second load hits the cache and must agree
	again, err := l.LoadMerged("turbo")
	if err != nil {
		t.Fatal(err)
	}
	if *again.Physics.InitialSpeed != 0.5 {
		t.Fatal("cached load disagrees")
	}
}

func TestLoadMergedMissingProfile(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "default", `
physics:
  initial_speed: 0.2
`)
	l := NewLoader(dir)
	cfg, err := l.LoadMerged("nope")
	if err != nil {
		t.Fatal(err)
	}
	// absent overlay file falls back to defaults
	if cfg.Physics.InitialSpeed == nil || *cfg.Physics.InitialSpeed != 0.2 {
		t.Fatalf("defaults lost for missing profile: %+v", cfg.Physics)
	}
}

func TestValidateRaw(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	n := func(v int) *int { return &v }

	good := RawProfile{
		Physics:  PhysicsCfg{InitialSpeed: f(0.2), Deceleration: f(0.0015)},
		Wheel:    &WheelCfg{MinWeight: n(1), MaxWeight: n(9)},
		Fairness: &FairnessCfg{Mode: "target", Turns: n(3), Easing: "easeOutQuad"},
	}
	if err := ValidateRaw(good); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}

	cases := []struct {
		name string
		mut  func(*RawProfile)
		want string
	}{
		{"negative speed", func(c *RawProfile) { c.Physics.InitialSpeed = f(-1) }, "initial_speed"},
		{"decel above speed", func(c *RawProfile) { c.Physics.Deceleration = f(0.5) }, "deceleration"},
		{"zero min weight", func(c *RawProfile) { c.Wheel.MinWeight = n(0) }, "min_weight"},
		{"inverted bounds", func(c *RawProfile) { c.Wheel.MaxWeight = n(0) }, "max_weight"},
		{"bad mode", func(c *RawProfile) { c.Fairness.Mode = "chaotic" }, "fairness.mode"},
		{"bad easing", func(c *RawProfile) { c.Fairness.Easing = "bounce" }, "fairness.easing"},
		{"zero turns", func(c *RawProfile) { c.Fairness.Turns = n(0) }, "turns"},
	}
	for _, tc := range cases {
		cfg := good
		w := *good.Wheel
		fr := *good.Fairness
		cfg.Wheel, cfg.Fairness = &w, &fr
		tc.mut(&cfg)
		err := ValidateRaw(cfg)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

func TestOptionsOverridesWin(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	s := func(v string) *string { return &v }

	cfg := RawProfile{
		Physics:  PhysicsCfg{InitialSpeed: f(0.2), Deceleration: f(0.0015)},
		Fairness: &FairnessCfg{Mode: "jitter"},
	}
	opts := Options(cfg, Overrides{InitialSpeed: f(0.4), Mode: s("target")})
	if opts.Spin.Physics.InitialSpeed != 0.4 {
		t.Fatalf("override speed lost: %+v", opts.Spin.Physics)
	}
	if opts.Spin.Physics.Deceleration != 0.0015 {
		t.Fatalf("profile deceleration lost: %+v", opts.Spin.Physics)
	}
	if opts.Spin.Mode != wheel.ModeTarget {
		t.Fatalf("override mode lost: %v", opts.Spin.Mode)
	}
}
