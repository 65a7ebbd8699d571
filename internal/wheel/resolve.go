package wheel

// Resolve maps a normalized angle in [0, 2π) to the entry whose
// section contains it. Sections are sorted and contiguous, so a linear
// cumulative scan suffices for the handful of entries a wheel holds.
//
// The second return is false when no half-open interval matched and
// the last section was used instead. That can only happen from
// floating-point residue at the 2π boundary; falling back to the last
// section keeps the mapping total without corrupting the result.
func Resolve(angle float64, sections []Section) (Entry, bool) {
	for _, s := range sections {
		if angle >= s.Start && angle < s.End {
			return s.Entry, true
		}
	}
	return sections[len(sections)-1].Entry, false
}
