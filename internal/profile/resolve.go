package profile

import "github.com/xtding233/spinwheel/internal/wheel"

// Overrides carries per-request knobs (e.g. query parameters) that
// win over the merged profile.
type Overrides struct {
	InitialSpeed *float64
	Deceleration *float64
	Mode         *string
	Jitter       *float64
	Turns        *int
	Easing       *string
}

// Options flattens a merged profile plus overrides into the core's
// session options. Unset fields stay zero and pick up the core
// defaults; the RNG is left for the caller to inject.
func Options(cfg RawProfile, o Overrides) wheel.Options {
	var opts wheel.Options

	if cfg.Physics.InitialSpeed != nil {
		opts.Spin.Physics.InitialSpeed = *cfg.Physics.InitialSpeed
	}
	if cfg.Physics.Deceleration != nil {
		opts.Spin.Physics.Deceleration = *cfg.Physics.Deceleration
	}
	if o.InitialSpeed != nil {
		opts.Spin.Physics.InitialSpeed = *o.InitialSpeed
	}
	if o.Deceleration != nil {
		opts.Spin.Physics.Deceleration = *o.Deceleration
	}

	if cfg.Fairness != nil {
		opts.Spin.Mode = wheel.FairnessMode(cfg.Fairness.Mode)
		if cfg.Fairness.Jitter != nil {
			opts.Spin.Jitter = *cfg.Fairness.Jitter
		}
		if cfg.Fairness.Turns != nil {
			opts.Spin.Turns = *cfg.Fairness.Turns
		}
		opts.Spin.Easing = wheel.Easing(cfg.Fairness.Easing)
	}
	if o.Mode != nil {
		opts.Spin.Mode = wheel.FairnessMode(*o.Mode)
	}
	if o.Jitter != nil {
		opts.Spin.Jitter = *o.Jitter
	}
	if o.Turns != nil {
		opts.Spin.Turns = *o.Turns
	}
	if o.Easing != nil {
		opts.Spin.Easing = wheel.Easing(*o.Easing)
	}

	if cfg.Wheel != nil {
		if cfg.Wheel.MinWeight != nil {
			opts.Bounds.Min = *cfg.Wheel.MinWeight
		}
		if cfg.Wheel.MaxWeight != nil {
			opts.Bounds.Max = *cfg.Wheel.MaxWeight
		}
	}

	return opts
}
