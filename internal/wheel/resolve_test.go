package wheel

import (
	"math"
	"testing"
)

func TestResolveTotal(t *testing.T) {
	sections, err := BuildSections([]Entry{
		{ID: "a", Weight: 2},
		{ID: "b", Weight: 5},
		{ID: "c", Weight: 1},
	}, DefaultWeightBounds)
	if err != nil {
		t.Fatal(err)
	}
	// every valid angle maps to exactly one section
	for angle := 0.0; angle < 2*math.Pi; angle += 0.001 {
		e, exact := Resolve(angle, sections)
		if e.ID == "" {
			t.Fatalf("angle %f resolved to nothing", angle)
		}
		if !exact {
			t.Fatalf("angle %f needed the fallback", angle)
		}
	}
}

func TestResolveBoundaries(t *testing.T) {
	sections, err := BuildSections([]Entry{
		{ID: "a", Weight: 1},
		{ID: "b", Weight: 1},
	}, DefaultWeightBounds)
	if err != nil {
		t.Fatal(err)
	}
	// half-open intervals: a boundary angle belongs to the section it starts
	if e, _ := Resolve(0, sections); e.ID != "a" {
		t.Fatalf("angle 0 -> %q, want a", e.ID)
	}
	if e, _ := Resolve(sections[1].Start, sections); e.ID != "b" {
		t.Fatalf("boundary angle -> %q, want b", e.ID)
	}
}

func TestResolveFallback(t *testing.T) {
	// hand-built layout whose last End falls just short of 2π,
	// mimicking accumulated rounding
	sections := []Section{
		{Entry: Entry{ID: "a"}, Start: 0, End: math.Pi},
		{Entry: Entry{ID: "b"}, Start: math.Pi, End: 2*math.Pi - 1e-12},
	}
	e, exact := Resolve(2*math.Pi-1e-13, sections)
	if e.ID != "b" {
		t.Fatalf("residue angle -> %q, want last section", e.ID)
	}
	if exact {
		t.Fatal("residue angle should report the fallback")
	}
}

func TestResolveSingleEntry(t *testing.T) {
	sections, err := BuildSections([]Entry{{ID: "x", Weight: 5}}, DefaultWeightBounds)
	if err != nil {
		t.Fatal(err)
	}
	for _, angle := range []float64{0, 1, math.Pi, 6.28} {
		if e, _ := Resolve(angle, sections); e.ID != "x" {
			t.Fatalf("angle %f -> %q, want x", angle, e.ID)
		}
	}
}
