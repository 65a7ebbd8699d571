package wheel

import (
	"errors"
	"testing"
)

func settleSession(t *testing.T, s *Session) {
	t.Helper()
	limit := 1000
	for i := 0; i < limit && s.Phase() == PhaseSpinning; i++ {
		s.HandleTick(1)
	}
	if s.Phase() != PhaseSettled {
		t.Fatalf("session did not settle, phase=%v", s.Phase())
	}
}

func fastOptions(seed uint64) Options {
	// short spins keep the tests quick
	return Options{
		Spin: SpinConfig{
			Physics: Physics{InitialSpeed: 0.3, Deceleration: 0.01},
			Mode:    ModeTarget,
		},
		RNG: NewSeededRNG(seed),
	}
}

func TestSessionEmptyEntries(t *testing.T) {
	s, err := NewSession(nil, "Empty", Options{}, nil)
	if !errors.Is(err, ErrNoEntries) {
		t.Fatalf("expected ErrNoEntries, got %v", err)
	}
	if s != nil {
		t.Fatal("session created despite empty entries")
	}
}

func TestCallbackExactlyOnce(t *testing.T) {
	calls := 0
	var got Entry
	s, err := NewSession([]Entry{{ID: "a", Weight: 1}, {ID: "b", Weight: 9}},
		"Once", fastOptions(3), func(e Entry) { calls++; got = e })
	if err != nil {
		t.Fatal(err)
	}

	s.RequestSpin()
	settleSession(t, s)
	if calls != 1 {
		t.Fatalf("callback fired %d times, want 1", calls)
	}
	if sel, ok := s.Selected(); !ok || sel.ID != got.ID {
		t.Fatalf("Selected()=%v,%v disagrees with callback entry %q", sel, ok, got.ID)
	}

	// extra ticks and spin requests after settle must not refire
	for i := 0; i < 10; i++ {
		s.HandleTick(1)
	}
	s.RequestSpin()
	s.HandleTick(1)
	if calls != 1 {
		t.Fatalf("callback refired, total %d", calls)
	}
}

func TestSingleEntryAlwaysWins(t *testing.T) {
	for seed := uint64(0); seed < 5; seed++ {
		won := ""
		s, err := NewSession([]Entry{{ID: "x", Weight: 5}}, "Solo",
			fastOptions(seed), func(e Entry) { won = e.ID })
		if err != nil {
			t.Fatal(err)
		}
		s.RequestSpin()
		settleSession(t, s)
		if won != "x" {
			t.Fatalf("seed %d: single-entry wheel picked %q", seed, won)
		}
	}
}

func TestCloseSuppressesCallback(t *testing.T) {
	calls := 0
	s, err := NewSession([]Entry{{ID: "a", Weight: 1}}, "Cancel",
		fastOptions(1), func(Entry) { calls++ })
	if err != nil {
		t.Fatal(err)
	}

	s.RequestSpin()
	s.Close()
	if s.Active() {
		t.Fatal("session still active after close")
	}
	// ticks after close must be dropped on the floor
	for i := 0; i < 100; i++ {
		s.HandleTick(1)
	}
	if calls != 0 {
		t.Fatalf("callback fired %d times on a closed session", calls)
	}

	s.Close() // idempotent
	if s.Active() {
		t.Fatal("second close changed state")
	}
}

func TestCloseBeforeAnyTick(t *testing.T) {
	calls := 0
	s, err := NewSession([]Entry{{ID: "a", Weight: 1}}, "Cancel",
		fastOptions(1), func(Entry) { calls++ })
	if err != nil {
		t.Fatal(err)
	}
	s.Close()
	if calls != 0 || s.Active() {
		t.Fatalf("close before tick: calls=%d active=%v", calls, s.Active())
	}
}

func TestManagerReplacesActive(t *testing.T) {
	m := NewManager()
	entries := []Entry{{ID: "a", Weight: 1}}

	firstCalls := 0
	s1, err := m.Start(entries, "first", fastOptions(1), func(Entry) { firstCalls++ })
	if err != nil {
		t.Fatal(err)
	}
	s1.RequestSpin()

	s2, err := m.Start(entries, "second", fastOptions(2), nil)
	if err != nil {
		t.Fatal(err)
	}
	if s1.Active() {
		t.Fatal("first session survived a replacing Start")
	}
	if m.Active() != s2 {
		t.Fatal("manager does not report the new session")
	}

	// the replaced session's spin must never deliver a result
	for i := 0; i < 100; i++ {
		s1.HandleTick(1)
	}
	if firstCalls != 0 {
		t.Fatalf("replaced session fired its callback %d times", firstCalls)
	}
}

func TestManagerKeepsPriorOnError(t *testing.T) {
	m := NewManager()
	s1, err := m.Start([]Entry{{ID: "a", Weight: 1}}, "ok", fastOptions(1), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Start(nil, "bad", Options{}, nil); err == nil {
		t.Fatal("empty entries must fail")
	}
	if m.Active() != s1 || !s1.Active() {
		t.Fatal("failed Start disturbed the prior session")
	}
}

func TestManagerClose(t *testing.T) {
	m := NewManager()
	if m.Active() != nil {
		t.Fatal("fresh manager has an active session")
	}
	m.Close() // safe with nothing open

	s, err := m.Start([]Entry{{ID: "a", Weight: 1}}, "t", fastOptions(1), nil)
	if err != nil {
		t.Fatal(err)
	}
	m.Close()
	if s.Active() || m.Active() != nil {
		t.Fatal("manager close did not cancel the session")
	}
}
