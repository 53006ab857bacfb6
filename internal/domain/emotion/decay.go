package emotion

import "math"

// decayRate is the fraction of the distance to the neutral midpoint removed
// per idle hour.
const decayRate = 0.1

// Decayed returns s with every dimension moved toward the neutral midpoint by
// (value-50) * 0.1 * hours. The step never overshoots the midpoint, so a
// state already at all-50 is a fixed point for any elapsed duration.
func (s State) Decayed(hours float64) State {
	if hours <= 0 {
		return s
	}
	out := s
	for _, d := range Dimensions {
		v := out.Get(d)
		step := float64(v-DimNeutral) * decayRate * hours
		nv := int(math.Round(float64(v) - step))
		if (v > DimNeutral && nv < DimNeutral) || (v < DimNeutral && nv > DimNeutral) {
			nv = DimNeutral
		}
		out.set(d, nv)
	}
	return out
}
