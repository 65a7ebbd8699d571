package wheel

import (
	"log"

	"github.com/google/uuid"
)

// ResultFunc receives the winning entry. It is called synchronously
// from the HandleTick that settles the wheel, at most once per
// session, and never after Close. It must not start a new session
// reentrantly; queue that for the next frame instead.
type ResultFunc func(Entry)

// Options tunes a session. The zero value uses the default physics,
// jitter fairness, [1,9] weights and the crypto RNG.
type Options struct {
	Spin   SpinConfig
	Bounds WeightBounds
	RNG    RandomSource
}

// Session owns one wheel instance: a frozen section layout, one spin
// controller and one result callback. Entries are fixed at creation;
// a new wheel means a new session.
type Session struct {
	id       string
	title    string
	sections []Section
	ctrl     *Controller
	onResult ResultFunc
	fired    bool
	closed   bool
}

// NewSession validates entries, builds the layout and starts idle.
// Empty entries yield ErrNoEntries and no session.
func NewSession(entries []Entry, title string, opts Options, onResult ResultFunc) (*Session, error) {
	sections, err := BuildSections(entries, opts.Bounds)
	if err != nil {
		return nil, err
	}
	return &Session{
		id:       uuid.New().String(),
		title:    title,
		sections: sections,
		ctrl:     NewController(sections, opts.Spin, opts.RNG),
		onResult: onResult,
	}, nil
}

func (s *Session) ID() string          { return s.id }
func (s *Session) Title() string       { return s.title }
func (s *Session) Sections() []Section { return s.sections }
func (s *Session) Phase() Phase        { return s.ctrl.Phase() }
func (s *Session) Rotation() float64   { return s.ctrl.Rotation() }
func (s *Session) Velocity() float64   { return s.ctrl.Velocity() }

// Selected reports the winning entry once the spin has settled.
func (s *Session) Selected() (Entry, bool) { return s.ctrl.Selected() }

// Active reports whether the session still accepts input. A settled
// session stays active (its result remains readable) until closed.
func (s *Session) Active() bool { return !s.closed }

// RequestSpin forwards the host's click to the controller. Ignored
// after Close, and by the controller outside the idle phase.
func (s *Session) RequestSpin() {
	if s.closed {
		return
	}
	s.ctrl.Trigger()
}

// HandleTick advances the spin by dt nominal ticks and fires the
// result callback on the tick that settles. No-op unless spinning.
func (s *Session) HandleTick(dt float64) {
	if s.closed {
		return
	}
	entry, settled := s.ctrl.Tick(dt)
	if !settled {
		return
	}
	if !s.ctrl.exact {
		// float residue at the 2π boundary; Resolve already fell back
		log.Printf("wheel: session %s landed outside all sections, kept last", s.id)
	}
	if !s.fired {
		s.fired = true
		if s.onResult != nil {
			s.onResult(entry)
		}
	}
}

// Close cancels the session: no further ticks are processed and the
// callback will never fire. Idempotent.
func (s *Session) Close() { s.closed = true }

// Manager owns at most one live session per host context. The legacy
// widget kept this in a global registry; callers now hold a Manager
// and inject it wherever sessions are started.
type Manager struct {
	active *Session
}

func NewManager() *Manager { return &Manager{} }

// Start opens a new session, implicitly closing any prior one without
// firing its callback. On invalid input the prior session is kept.
func (m *Manager) Start(entries []Entry, title string, opts Options, onResult ResultFunc) (*Session, error) {
	s, err := NewSession(entries, title, opts, onResult)
	if err != nil {
		return nil, err
	}
	if m.active != nil {
		m.active.Close()
	}
	m.active = s
	return s, nil
}

// Active returns the live session, or nil if none is open.
func (m *Manager) Active() *Session {
	if m.active == nil || !m.active.Active() {
		return nil
	}
	return m.active
}

// Close cancels the live session, if any. Idempotent.
func (m *Manager) Close() {
	if m.active != nil {
		m.active.Close()
		m.active = nil
	}
}
