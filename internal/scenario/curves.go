package scenario

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/popsim/internal/sim"
)

// Curve is a full per-age mortality table.
type Curve = [sim.MaxCurveAge + 1]float64

// CurveStop anchors a piecewise-linear mortality ramp: the death probability
// at a given age.
type CurveStop struct {
	Age  uint32
	Prob float64
}

// FlatCurve returns a curve with the same death probability at every age.
func FlatCurve(prob float64) Curve {
	var c Curve
	for i := range c {
		c[i] = prob
	}
	return c
}

// RampCurve interpolates linearly between stops and holds the last stop's
// value to age 127. Stops must be in ascending age order; ages before the
// first stop use the first stop's value.
func RampCurve(stops ...CurveStop) Curve {
	var c Curve
	if len(stops) == 0 {
		return c
	}
	for age := 0; age < len(c); age++ {
		c[age] = rampAt(uint32(age), stops)
	}
	return c
}

func rampAt(age uint32, stops []CurveStop) float64 {
	if age <= stops[0].Age {
		return stops[0].Prob
	}
	for i := 1; i < len(stops); i++ {
		if age > stops[i].Age {
			continue
		}
		lo, hi := stops[i-1], stops[i]
		span := float64(hi.Age - lo.Age)
		t := float64(age-lo.Age) / span
		return lo.Prob + t*(hi.Prob-lo.Prob)
	}
	return stops[len(stops)-1].Prob
}

// NoisyCurve perturbs a base curve with smooth opensimplex noise, keeping
// every entry in [0, 1]. Amplitude is the maximum absolute perturbation and
// frequency controls how quickly the perturbation drifts across ages. The
// same seed always yields the same curve.
func NoisyCurve(base Curve, seed int64, amplitude, frequency float64) Curve {
	noise := opensimplex.NewNormalized(seed)
	var c Curve
	for age := range base {
		// NewNormalized yields [0, 1]; recenter to [-1, 1].
		n := noise.Eval2(float64(age)*frequency, 0)*2 - 1
		v := base[age] + n*amplitude
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		c[age] = v
	}
	return c
}
