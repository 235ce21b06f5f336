package envelope

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

const (
	// DefaultOvershoot is the overshoot used when WithOvershoot is not given.
	DefaultOvershoot = 1e-3

	// MinOvershoot and MaxOvershoot bound the stored overshoot.
	MinOvershoot = 1e-9
	MaxOvershoot = 1e9
)

// Option configures an Envelope at construction.
type Option func(*config)

type config struct {
	overshoot float64
	retrigger bool
	loop      bool
}

// WithOvershoot sets the overshoot margin. Negative values are rejected by
// New; others are clamped to [MinOvershoot, MaxOvershoot].
func WithOvershoot(overshoot float64) Option {
	return func(c *config) {
		c.overshoot = overshoot
	}
}

// WithRetrigger restarts the attack on every gate-on, even mid-envelope.
func WithRetrigger(retrigger bool) Option {
	return func(c *config) {
		c.retrigger = retrigger
	}
}

// WithLoop makes the envelope cycle through its stages without gating.
func WithLoop(loop bool) Option {
	return func(c *config) {
		c.loop = loop
	}
}

// Envelope is an ADSR envelope generator.
type Envelope struct {
	attack    float64
	decay     float64
	sustain   float64
	release   float64
	dt        float64
	overshoot float64
	retrigger bool
	loop      bool

	stage Stage
	value float64
	shape shape
}

// New returns an envelope with stage durations in seconds, a sustain level in
// [0, 1] and the sample period dt in seconds.
func New(attack, decay, sustain, release, dt float64, opts ...Option) (*Envelope, error) {
	cfg := config{overshoot: DefaultOvershoot}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := validateDuration("attack", attack); err != nil {
		return nil, err
	}
	if err := validateDuration("decay", decay); err != nil {
		return nil, err
	}
	if err := validateSustain(sustain); err != nil {
		return nil, err
	}
	if err := validateDuration("release", release); err != nil {
		return nil, err
	}
	if dt <= 0 || !core.IsFinite(dt) {
		return nil, fmt.Errorf("%w: envelope dt must be > 0: %f", core.ErrInvalidArgument, dt)
	}
	if err := validateOvershoot(cfg.overshoot); err != nil {
		return nil, err
	}

	e := &Envelope{
		attack:    attack,
		decay:     decay,
		sustain:   sustain,
		release:   release,
		dt:        dt,
		overshoot: core.Clamp(cfg.overshoot, MinOvershoot, MaxOvershoot),
		retrigger: cfg.retrigger,
		loop:      cfg.loop,
	}
	e.recompute()
	if e.loop {
		e.stage = Attacking
	}
	return e, nil
}

// SetAttack sets the attack time in seconds.
func (e *Envelope) SetAttack(seconds float64) error {
	if err := validateDuration("attack", seconds); err != nil {
		return err
	}
	e.attack = seconds
	e.recompute()
	return nil
}

// SetDecay sets the decay time in seconds.
func (e *Envelope) SetDecay(seconds float64) error {
	if err := validateDuration("decay", seconds); err != nil {
		return err
	}
	e.decay = seconds
	e.recompute()
	return nil
}

// SetSustain sets the sustain level in [0, 1].
func (e *Envelope) SetSustain(level float64) error {
	if err := validateSustain(level); err != nil {
		return err
	}
	e.sustain = level
	e.recompute()
	return nil
}

// SetRelease sets the release time in seconds.
func (e *Envelope) SetRelease(seconds float64) error {
	if err := validateDuration("release", seconds); err != nil {
		return err
	}
	e.release = seconds
	e.recompute()
	return nil
}

// SetOvershoot sets the overshoot margin, clamped to [MinOvershoot, MaxOvershoot].
func (e *Envelope) SetOvershoot(overshoot float64) error {
	if err := validateOvershoot(overshoot); err != nil {
		return err
	}
	e.overshoot = core.Clamp(overshoot, MinOvershoot, MaxOvershoot)
	e.recompute()
	return nil
}

// SetRetrigger enables or disables retriggering.
func (e *Envelope) SetRetrigger(retrigger bool) { e.retrigger = retrigger }

// SetLoop enables or disables loop mode. The current stage is kept; a
// looping envelope that is Off starts its attack on the next sample.
func (e *Envelope) SetLoop(loop bool) { e.loop = loop }

// Attack returns the attack time in seconds.
func (e *Envelope) Attack() float64 { return e.attack }

// Decay returns the decay time in seconds.
func (e *Envelope) Decay() float64 { return e.decay }

// Sustain returns the sustain level.
func (e *Envelope) Sustain() float64 { return e.sustain }

// Release returns the release time in seconds.
func (e *Envelope) Release() float64 { return e.release }

// Overshoot returns the clamped overshoot margin.
func (e *Envelope) Overshoot() float64 { return e.overshoot }

// DT returns the sample period in seconds.
func (e *Envelope) DT() float64 { return e.dt }

// Retrigger reports whether retriggering is enabled.
func (e *Envelope) Retrigger() bool { return e.retrigger }

// Loop reports whether loop mode is enabled.
func (e *Envelope) Loop() bool { return e.loop }

// Stage returns the current stage.
func (e *Envelope) Stage() Stage { return e.stage }

// Value returns the last emitted sample.
func (e *Envelope) Value() float64 { return e.value }

// Active reports whether the envelope is in any stage other than Off.
func (e *Envelope) Active() bool { return e.stage != Off }

// Gate switches the envelope on (trigger) or into its release. It has no
// effect in loop mode.
func (e *Envelope) Gate(trigger bool) {
	if e.loop {
		return
	}

	if trigger {
		if e.retrigger || e.stage == Off || e.stage == Releasing {
			e.stage = Attacking
		}
		return
	}

	switch e.stage {
	case Attacking, Decaying, Sustaining:
		e.stage = Releasing
	}
}

// Next advances the envelope by one sample and returns it.
func (e *Envelope) Next() float64 {
	e.stage, e.value = step(e.stage, e.value, &e.shape, e.loop)
	return e.value
}

// Sample returns the next n envelope samples.
func (e *Envelope) Sample(n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: envelope sample count must be >= 0: %d", core.ErrInvalidArgument, n)
	}
	out := make([]float64, n)
	e.SampleInto(out)
	return out, nil
}

// SampleInto fills dst with the next len(dst) envelope samples.
func (e *Envelope) SampleInto(dst []float64) {
	stage, value := e.stage, e.value
	for i := range dst {
		stage, value = step(stage, value, &e.shape, e.loop)
		dst[i] = value
	}
	e.stage, e.value = stage, value
}

// Reset returns the envelope to Off at value 0, or to the start of the
// attack in loop mode. Parameters are kept.
func (e *Envelope) Reset() {
	e.value = lower
	e.stage = Off
	if e.loop {
		e.stage = Attacking
	}
}

// recompute derives all coefficient/base pairs. Every path that changes a
// shape parameter calls it before returning.
func (e *Envelope) recompute() {
	e.shape = computeShape(e.attack, e.decay, e.sustain, e.release, e.dt, e.overshoot)
}

func validateDuration(name string, seconds float64) error {
	if seconds < 0 || !core.IsFinite(seconds) {
		return fmt.Errorf("%w: envelope %s must be >= 0: %f", core.ErrInvalidArgument, name, seconds)
	}
	return nil
}

func validateSustain(level float64) error {
	if !(level >= lower && level <= upper) {
		return fmt.Errorf("%w: envelope sustain must be in [0, 1]: %f", core.ErrInvalidArgument, level)
	}
	return nil
}

func validateOvershoot(overshoot float64) error {
	if overshoot < 0 || math.IsNaN(overshoot) {
		return fmt.Errorf("%w: envelope overshoot must be >= 0: %f", core.ErrInvalidArgument, overshoot)
	}
	return nil
}
