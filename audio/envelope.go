package audio

// applyEnvelope scales samples by an attack/decay amplitude envelope.
// Sample i sits at absolute position elapsed+i within a note of total
// samples: positions inside the attack window ramp up linearly, positions
// inside the decay window ramp down linearly, everything in between plays
// at full amplitude. A zero attack or decay disables that ramp.
//
// The attack check runs first, so when attack+decay exceed total the
// attack ramp wins even past the nominal decay start. That produces a
// non-monotonic envelope for pathologically short notes; accepted.
func applyEnvelope(samples []float64, elapsed, attack, decay, total int) {
	for i := range samples {
		pos := elapsed + i
		factor := 1.0
		switch {
		case pos < attack:
			factor = float64(pos) / float64(attack)
		case decay > 0 && pos > total-decay:
			factor = float64(total-pos) / float64(decay)
		}
		if factor < 0 {
			factor = 0
		}
		if factor > 1 {
			factor = 1
		}
		samples[i] *= factor
	}
}
