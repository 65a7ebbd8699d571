package sim

import (
	"errors"
	"math"
	"sort"

	"github.com/xtding233/spinwheel/internal/wheel"
)

// Params describes the wheel being simulated. Options.RNG is ignored;
// every run uses its own seeded source so results are replayable.
type Params struct {
	Entries []wheel.Entry
	Options wheel.Options
	Seed    uint64
}

// EntryReport compares one entry's observed hit share against the
// share its weight promises.
type EntryReport struct {
	ID       string  `json:"id"`
	Label    string  `json:"label,omitempty"`
	Weight   int     `json:"weight"`
	Hits     int     `json:"hits"`
	Share    float64 `json:"share"`
	Expected float64 `json:"expected"`
}

// Report is the outcome of one simulation run.
type Report struct {
	Spins   int           `json:"spins"`
	Entries []EntryReport `json:"entries"`
	Ticks   Stats         `json:"ticks"` // ticks-to-settle distribution
}

// Stats summarizes integer samples.
type Stats struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
	// raw samples for callers that build histograms
	Samples []int `json:"-"`
}

// Run spins a fresh session per trial and tallies where the wheel
// lands. Useful for checking how close a fairness mode gets to the
// weighted-probability model (momentum mode, by design, gets nowhere).
func Run(p Params, spins int) (Report, error) {
	if spins <= 0 {
		return Report{}, errors.New("spins must be > 0")
	}

	sections, err := wheel.BuildSections(p.Entries, p.Options.Bounds)
	if err != nil {
		return Report{}, err
	}

	opts := p.Options
	opts.RNG = wheel.NewSeededRNG(p.Seed)

	// bound each spin in case a caller hands in degenerate physics
	maxTicks := int(opts.Spin.MaxTicks()) + 2

	hits := make(map[string]int, len(sections))
	ticks := make([]int, 0, spins)
	for i := 0; i < spins; i++ {
		var got wheel.Entry
		s, err := wheel.NewSession(p.Entries, "sim", opts, func(e wheel.Entry) { got = e })
		if err != nil {
			return Report{}, err
		}
		s.RequestSpin()
		n := 0
		for s.Phase() == wheel.PhaseSpinning && n < maxTicks {
			s.HandleTick(1)
			n++
		}
		if s.Phase() != wheel.PhaseSettled {
			return Report{}, errors.New("spin did not settle within its tick bound")
		}
		hits[got.ID]++
		ticks = append(ticks, n)
	}

	rep := Report{Spins: spins, Ticks: calcStats(ticks)}
	for _, sec := range sections {
		e := sec.Entry
		h := hits[e.ID]
		rep.Entries = append(rep.Entries, EntryReport{
			ID:       e.ID,
			Label:    e.Label,
			Weight:   e.Weight,
			Hits:     h,
			Share:    float64(h) / float64(spins),
			Expected: sec.Span() / (2 * math.Pi),
		})
	}
	return rep, nil
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n) // population
	stddev := math.Sqrt(variance)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  stddev,
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}
