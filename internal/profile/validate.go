package profile

import (
	"fmt"
	"strings"
)

// ValidateRaw checks semantic constraints of a merged profile.
func ValidateRaw(cfg RawProfile) error {
	var errs []string

	if cfg.Physics.InitialSpeed != nil && *cfg.Physics.InitialSpeed <= 0 {
		errs = append(errs, "physics.initial_speed must be > 0")
	}
	if cfg.Physics.Deceleration != nil && *cfg.Physics.Deceleration <= 0 {
		errs = append(errs, "physics.deceleration must be > 0")
	}
	if cfg.Physics.InitialSpeed != nil && cfg.Physics.Deceleration != nil &&
		*cfg.Physics.Deceleration >= *cfg.Physics.InitialSpeed {
		errs = append(errs, "physics.deceleration must be < physics.initial_speed (spin must last more than one tick)")
	}

	if cfg.Wheel != nil {
		if cfg.Wheel.MinWeight != nil && *cfg.Wheel.MinWeight < 1 {
			errs = append(errs, "wheel.min_weight must be >= 1")
		}
		if cfg.Wheel.MinWeight != nil && cfg.Wheel.MaxWeight != nil &&
			*cfg.Wheel.MaxWeight < *cfg.Wheel.MinWeight {
			errs = append(errs, "wheel.max_weight must be >= wheel.min_weight")
		}
	}

	if cfg.Fairness != nil {
		switch cfg.Fairness.Mode {
		case "", "momentum", "jitter", "target":
		default:
			errs = append(errs, "fairness.mode must be one of: momentum, jitter, target")
		}
		if cfg.Fairness.Jitter != nil && *cfg.Fairness.Jitter < 0 {
			errs = append(errs, "fairness.jitter must be >= 0")
		}
		if cfg.Fairness.Turns != nil && *cfg.Fairness.Turns < 1 {
			errs = append(errs, "fairness.turns must be >= 1")
		}
		switch cfg.Fairness.Easing {
		case "", "linear", "easeOutQuad", "easeInOutCubic":
		default:
			errs = append(errs, "fairness.easing must be one of: linear, easeOutQuad, easeInOutCubic")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("profile validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
