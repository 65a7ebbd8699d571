package wheel

import "math"

// Phase is the spin lifecycle. A controller moves Idle → Spinning →
// Settled exactly once; a fresh session gets a fresh controller.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSpinning
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSpinning:
		return "spinning"
	case PhaseSettled:
		return "settled"
	}
	return "unknown"
}

// Easing shapes how rotation approaches the target in target mode.
type Easing string

const (
	EaseLinear     Easing = "linear"
	EaseOutQuad    Easing = "easeOutQuad"
	EaseInOutCubic Easing = "easeInOutCubic"
)

// apply maps progress t in [0,1] onto the eased curve.
func (e Easing) apply(t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	switch e {
	case EaseOutQuad:
		// f(t) = 1 - (1 - t)^2; derivative hits 0 at t=1
		return 1 - (1-t)*(1-t)
	case EaseInOutCubic:
		if t < 0.5 {
			return 4 * t * t * t
		}
		return 1 - (-2*t+2)*(-2*t+2)*(-2*t+2)/2
	default:
		return t
	}
}

// FairnessMode selects where a spin's randomness comes from.
//
// The legacy widget had none: with fixed physics constants every spin
// from idle travelled the same distance, so weights changed section
// size but not the odds of the deterministic curve stopping there.
// jitter and target fix that by drawing from the RandomSource at
// trigger time.
type FairnessMode string

const (
	// ModeMomentum reproduces the legacy behavior: fixed launch
	// velocity, no random draw. Outcome is a pure function of the
	// physics constants and the rotation at trigger time.
	ModeMomentum FairnessMode = "momentum"
	// ModeJitter perturbs the launch velocity by ±Jitter/2.
	ModeJitter FairnessMode = "jitter"
	// ModeTarget draws a uniform target angle and eases the rotation
	// onto it, which makes the landing angle uniform and the outcome
	// weighted exactly by section size.
	ModeTarget FairnessMode = "target"
)

// Physics are the deceleration constants, in radians per nominal tick.
// Tick(dt) scales by dt so hosts with variable frame times can pass
// dt in tick units and keep the total spin duration.
type Physics struct {
	InitialSpeed float64 // rad/tick at launch
	Deceleration float64 // rad/tick^2
}

var DefaultPhysics = Physics{InitialSpeed: 0.2, Deceleration: 0.0015}

func (p Physics) normalize() Physics {
	if p.InitialSpeed <= 0 {
		p.InitialSpeed = DefaultPhysics.InitialSpeed
	}
	if p.Deceleration <= 0 {
		p.Deceleration = DefaultPhysics.Deceleration
	}
	return p
}

// SpinTicks is the deterministic upper bound on spin length.
func (p Physics) SpinTicks() float64 {
	np := p.normalize()
	return np.InitialSpeed / np.Deceleration
}

// SpinConfig bundles physics and fairness tuning for one controller.
type SpinConfig struct {
	Physics Physics
	Mode    FairnessMode
	Jitter  float64 // rad/tick, width of the jitter-mode perturbation
	Turns   int     // whole extra revolutions in target mode
	Easing  Easing  // deceleration profile in target mode
}

var DefaultSpinConfig = SpinConfig{
	Physics: DefaultPhysics,
	Mode:    ModeJitter,
	Jitter:  0.02,
	Turns:   3,
	Easing:  EaseOutQuad,
}

func (c SpinConfig) normalize() SpinConfig {
	c.Physics = c.Physics.normalize()
	switch c.Mode {
	case ModeMomentum, ModeJitter, ModeTarget:
	default:
		c.Mode = DefaultSpinConfig.Mode
	}
	if c.Jitter <= 0 {
		c.Jitter = DefaultSpinConfig.Jitter
	}
	if c.Turns <= 0 {
		c.Turns = DefaultSpinConfig.Turns
	}
	switch c.Easing {
	case EaseLinear, EaseOutQuad, EaseInOutCubic:
	default:
		c.Easing = DefaultSpinConfig.Easing
	}
	return c
}

// MaxTicks bounds how long any spin under this config can run. Jitter
// mode can launch faster than the nominal initial speed, so its bound
// is wider than Physics.SpinTicks.
func (c SpinConfig) MaxTicks() float64 {
	c = c.normalize()
	if c.Mode == ModeJitter {
		return (c.Physics.InitialSpeed + c.Jitter/2) / c.Physics.Deceleration
	}
	return c.Physics.SpinTicks()
}

// Controller is the spin state machine. Not safe for concurrent use;
// the host's main loop is the only expected caller.
type Controller struct {
	sections []Section
	cfg      SpinConfig
	rng      RandomSource

	phase    Phase
	rotation float64 // unbounded accumulator, radians
	velocity float64 // rad/tick

	// target-mode bookkeeping
	origin   float64 // rotation at trigger
	travel   float64 // total radians this spin will cover
	elapsed  float64 // ticks since trigger
	duration float64 // total ticks this spin will take

	selected Entry
	exact    bool
	done     bool
}

// NewController builds an idle controller over a fixed section layout.
// A nil rng falls back to the crypto source.
func NewController(sections []Section, cfg SpinConfig, rng RandomSource) *Controller {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Controller{
		sections: sections,
		cfg:      cfg.normalize(),
		rng:      rng,
	}
}

func (c *Controller) Phase() Phase      { return c.phase }
func (c *Controller) Rotation() float64 { return c.rotation }
func (c *Controller) Velocity() float64 { return c.velocity }

// Selected returns the winning entry once the spin has settled.
func (c *Controller) Selected() (Entry, bool) {
	if !c.done {
		return Entry{}, false
	}
	return c.selected, true
}

// FinalAngle returns the normalized landing angle once settled.
func (c *Controller) FinalAngle() (float64, bool) {
	if !c.done {
		return 0, false
	}
	return normalizeAngle(c.rotation), true
}

// Trigger launches the spin. Only valid while idle; repeated clicks
// during a spin, or clicks after settling, are silently ignored so
// they can neither restart nor accelerate the wheel.
func (c *Controller) Trigger() {
	if c.phase != PhaseIdle {
		return
	}

	switch c.cfg.Mode {
	case ModeTarget:
		target := c.rng.Float64() * 2 * math.Pi
		current := normalizeAngle(c.rotation)
		offset := normalizeAngle(target - current)
		c.origin = c.rotation
		c.travel = float64(c.cfg.Turns)*2*math.Pi + offset
		c.duration = c.cfg.Physics.SpinTicks()
		c.elapsed = 0
		c.velocity = c.travel / c.duration // nominal; updated per tick
	case ModeJitter:
		c.velocity = c.cfg.Physics.InitialSpeed + (c.rng.Float64()-0.5)*c.cfg.Jitter
		if c.velocity < c.cfg.Physics.Deceleration {
			c.velocity = c.cfg.Physics.Deceleration
		}
	default: // ModeMomentum
		c.velocity = c.cfg.Physics.InitialSpeed
	}
	c.phase = PhaseSpinning
}

// Tick advances the spin by dt nominal ticks. Returns the winning
// entry, and true, on exactly the call that settles the wheel. Calls
// outside the Spinning phase are no-ops.
func (c *Controller) Tick(dt float64) (Entry, bool) {
	if c.phase != PhaseSpinning || dt <= 0 {
		return Entry{}, false
	}

	if c.cfg.Mode == ModeTarget {
		c.elapsed += dt
		t := c.elapsed / c.duration
		prev := c.rotation
		c.rotation = c.origin + c.travel*c.cfg.Easing.apply(t)
		c.velocity = (c.rotation - prev) / dt
		if t >= 1 {
			c.settle()
			return c.selected, true
		}
		return Entry{}, false
	}

	c.rotation += c.velocity * dt
	c.velocity -= c.cfg.Physics.Deceleration * dt
	if c.velocity <= 0 {
		c.settle()
		return c.selected, true
	}
	return Entry{}, false
}

// settle freezes the outcome. Runs exactly once per controller.
func (c *Controller) settle() {
	c.velocity = 0
	c.phase = PhaseSettled
	c.selected, c.exact = Resolve(normalizeAngle(c.rotation), c.sections)
	c.done = true
}

// normalizeAngle wraps an unbounded rotation into [0, 2π).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
