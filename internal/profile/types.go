package profile

// RawProfile is the tuning schema as loaded from YAML, before
// normalization. Pointer fields distinguish "absent" from zero so the
// default → profile merge knows what a file actually set.
type RawProfile struct {
	Version  string       `yaml:"version"`
	Physics  PhysicsCfg   `yaml:"physics"`
	Wheel    *WheelCfg    `yaml:"wheel,omitempty"`
	Fairness *FairnessCfg `yaml:"fairness,omitempty"`
	Notes    string       `yaml:"notes,omitempty"`
}

// PhysicsCfg tunes the deceleration arithmetic, in radians per tick.
type PhysicsCfg struct {
	InitialSpeed *float64 `yaml:"initial_speed"`
	Deceleration *float64 `yaml:"deceleration"`
}

// WheelCfg bounds entry weights; out-of-range weights are clamped.
type WheelCfg struct {
	MinWeight *int `yaml:"min_weight,omitempty"`
	MaxWeight *int `yaml:"max_weight,omitempty"`
}

// FairnessCfg selects where spin randomness comes from.
type FairnessCfg struct {
	Mode   string   `yaml:"mode"` // "momentum" | "jitter" | "target"
	Jitter *float64 `yaml:"jitter,omitempty"`
	Turns  *int     `yaml:"turns,omitempty"`
	Easing string   `yaml:"easing,omitempty"` // linear, easeOutQuad, easeInOutCubic
}
