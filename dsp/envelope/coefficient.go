package envelope

// shape holds the derived one-pole parameters of all three ramped stages.
type shape struct {
	attackCoef  float64
	attackBase  float64
	decayCoef   float64
	decayBase   float64
	releaseCoef float64
	releaseBase float64
	sustain     float64
}

// Coefficient returns the one-pole feedback coefficient that traverses a
// stage in rate samples with the given overshoot. It returns 0 for rate <= 0,
// which makes the stage complete in a single sample.
func Coefficient(rate, overshoot float64) float64 {
	if rate <= 0 {
		return 0
	}
	return mathExp(-mathLog((1+overshoot)/overshoot) / rate)
}

func computeShape(attack, decay, sustain, release, dt, overshoot float64) shape {
	var sh shape
	sh.sustain = sustain

	sh.attackCoef = Coefficient(attack/dt, overshoot)
	sh.attackBase = (upper + overshoot) * (1 - sh.attackCoef)

	sh.decayCoef = Coefficient(decay/dt, overshoot)
	sh.decayBase = (sustain - overshoot) * (1 - sh.decayCoef)

	sh.releaseCoef = Coefficient(release/dt, overshoot)
	sh.releaseBase = (lower - overshoot) * (1 - sh.releaseCoef)

	return sh
}
