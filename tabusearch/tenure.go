package tabusearch

import "math/rand"

// randomizeTenure samples the effective tenure uniformly from
// [tenure*(1-rate), tenure*(1+rate)], clamped to [1, mutableCount], per
// the tenure-randomization rule applied once at pass start.
func randomizeTenure(tenure int, rate float64, mutableCount int, r *rand.Rand) int {
	if mutableCount <= 0 {
		return 1
	}
	lo := float64(tenure) * (1 - rate)
	hi := float64(tenure) * (1 + rate)
	if hi < lo {
		lo, hi = hi, lo
	}
	span := hi - lo
	var sampled float64
	if span <= 0 {
		sampled = lo
	} else {
		sampled = lo + r.Float64()*span
	}
	t := int(sampled + 0.5)
	if t < 1 {
		t = 1
	}
	if t > mutableCount {
		t = mutableCount
	}
	return t
}

// adjustTenure shifts the tenure one step, clamped to
// [max(1, initialTenure/2), min(mutableCount, 2*initialTenure)] (a fixed
// band that does not depend on the randomize rate), used by the adaptive
// control in loop step 8. direction
// >0 widens tenure (more conservative, fewer repeats allowed), <0 narrows
// it.
func adjustTenure(current, initialTenure int, direction int, mutableCount int) int {
	next := current + direction
	lo := initialTenure / 2
	if lo < 1 {
		lo = 1
	}
	hi := initialTenure * 2
	if hi > mutableCount {
		hi = mutableCount
	}
	if hi < 1 {
		hi = 1
	}
	if next < lo {
		next = lo
	}
	if next > hi {
		next = hi
	}
	return next
}
