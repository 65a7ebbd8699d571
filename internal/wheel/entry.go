package wheel

import "errors"

var ErrNoEntries = errors.New("wheel needs at least one entry")

// Entry is one selectable option on the wheel. ID is opaque to this
// package; callers use it to recognize the result.
type Entry struct {
	ID          string
	Label       string
	Description string
	Weight      int
}

// WeightBounds is the allowed weight range. Out-of-range weights are
// clamped, never rejected.
type WeightBounds struct {
	Min int
	Max int
}

// DefaultWeightBounds matches the historical widget range.
var DefaultWeightBounds = WeightBounds{Min: 1, Max: 9}

func (b WeightBounds) normalize() WeightBounds {
	if b.Min <= 0 {
		b.Min = DefaultWeightBounds.Min
	}
	if b.Max < b.Min {
		b.Max = b.Min
	}
	return b
}

// Clamp forces w into the bounds.
func (b WeightBounds) Clamp(w int) int {
	nb := b.normalize()
	if w < nb.Min {
		return nb.Min
	}
	if w > nb.Max {
		return nb.Max
	}
	return w
}
