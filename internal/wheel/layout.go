package wheel

import "math"

// Section is the angular slice assigned to one entry. Angles are
// radians in [0, 2π), half-open [Start, End), contiguous in entry
// order: sections[i].End == sections[i+1].Start.
type Section struct {
	Entry Entry
	Start float64
	End   float64
}

// Span returns the angular width of the section.
func (s Section) Span() float64 { return s.End - s.Start }

// BuildSections partitions the circle proportionally to entry weights.
// Weights are clamped into bounds first, so the total is always >= 1
// and the division below is safe. The layout itself is deterministic;
// only the spin outcome is random.
//
// Angles accumulate as a running sum rather than being recomputed per
// section, so rounding error does not compound across many entries.
// The residue that can still land at the 2π boundary is absorbed by
// Resolve's last-section fallback.
func BuildSections(entries []Entry, bounds WeightBounds) ([]Section, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	total := 0
	clamped := make([]Entry, len(entries))
	for i, e := range entries {
		e.Weight = bounds.Clamp(e.Weight)
		clamped[i] = e
		total += e.Weight
	}

	sections := make([]Section, len(clamped))
	angle := 0.0
	for i, e := range clamped {
		span := float64(e.Weight) / float64(total) * 2 * math.Pi
		sections[i] = Section{Entry: e, Start: angle, End: angle + span}
		angle += span
	}
	return sections, nil
}
