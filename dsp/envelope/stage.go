package envelope

import "strconv"

// Stage is the envelope state.
type Stage int

const (
	// Off holds the output at 0.
	Off Stage = iota
	// Attacking rises towards 1.
	Attacking
	// Decaying falls towards the sustain level.
	Decaying
	// Sustaining holds the sustain level while the gate is on.
	Sustaining
	// Releasing falls towards 0.
	Releasing
)

const (
	upper = 1.0
	lower = 0.0
)

func (s Stage) String() string {
	switch s {
	case Off:
		return "off"
	case Attacking:
		return "attacking"
	case Decaying:
		return "decaying"
	case Sustaining:
		return "sustaining"
	case Releasing:
		return "releasing"
	default:
		return "Stage(" + strconv.Itoa(int(s)) + ")"
	}
}

// step advances the state machine by one sample and returns the next stage
// and the emitted value. value is the previously emitted sample.
func step(stage Stage, value float64, sh *shape, loop bool) (Stage, float64) {
	switch stage {
	case Off:
		if loop {
			return Attacking, lower
		}
		return Off, lower

	case Attacking:
		v := sh.attackBase + value*sh.attackCoef
		if v >= upper {
			return Decaying, upper
		}
		return Attacking, v

	case Decaying:
		v := sh.decayBase + value*sh.decayCoef
		if v <= sh.sustain {
			return Sustaining, sh.sustain
		}
		return Decaying, v

	case Sustaining:
		if loop {
			return Releasing, sh.sustain
		}
		return Sustaining, sh.sustain

	case Releasing:
		v := sh.releaseBase + value*sh.releaseCoef
		if v <= lower {
			if loop {
				return Attacking, lower
			}
			return Off, lower
		}
		return Releasing, v
	}

	return Off, lower
}
