package domain

import (
	"math"
	"strings"
)

// splitLoadOrHits decodes the PA load column. A non-negative value is a load
// in kN; a negative value means the rod was hammered and its magnitude is
// the hit count. An undecodable token is kept as a Fallback load.
func splitLoadOrHits(params []string, i int) (load Field[float64], hits Field[int]) {
	f := column(params, i, DecodeFloat)
	v, ok := f.Get()
	switch {
	case !ok:
		return f, Field[int]{}
	case v >= 0:
		return f, Field[int]{}
	default:
		return Field[float64]{}, ParsedValue(int(math.Abs(v)))
	}
}

// HP mode flags.
const (
	hpModeHits     = "H"
	hpModePressure = "P"
)

// splitHitsOrPressure decodes the HP value column according to the mode
// flag at modeIdx. Any other flag, or none, leaves both unset.
func splitHitsOrPressure(params []string, valueIdx, modeIdx int) (hits Field[int], pressure Field[float64]) {
	if modeIdx >= len(params) {
		return hits, pressure
	}
	switch strings.ToUpper(params[modeIdx]) {
	case hpModeHits:
		hits = column(params, valueIdx, DecodeInt)
	case hpModePressure:
		pressure = column(params, valueIdx, DecodeFloat)
	}
	return hits, pressure
}
