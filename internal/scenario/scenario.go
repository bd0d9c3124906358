// Package scenario provides named simulation setups: an environment plus the
// run parameters that go with it. Presets replace config-file parsing — a
// scenario is code, picked by name from the command line.
package scenario

import (
	"fmt"
	"sort"

	"github.com/talgya/popsim/internal/sim"
)

// Scenario bundles an environment with run parameters.
type Scenario struct {
	Name        string
	Seed        uint64
	InitialSize int
	MaxStartAge uint32
	Years       uint32
	Env         sim.Environment
}

// Baseline is a stable monogamous population: generous resources, low
// mortality until old age, modest consanguinity tolerance.
func Baseline() Scenario {
	env := sim.DefaultEnvironment()
	env.Resources = 12500
	env.IncestThreshold = 50
	env.Polygamy = false
	env.MarriageProbability = 0.9
	env.ConceivingProbability = 0.8
	env.AgeOfConsent = 18
	env.MutationBits = 2
	env.DyingCurve = RampCurve(
		CurveStop{Age: 0, Prob: 0.01},
		CurveStop{Age: 5, Prob: 0.002},
		CurveStop{Age: 18, Prob: 0.005},
		CurveStop{Age: 60, Prob: 0.02},
		CurveStop{Age: 90, Prob: 0.2},
		CurveStop{Age: 120, Prob: 0.99},
	)

	return Scenario{
		Name:        "baseline",
		Seed:        12345,
		InitialSize: 8192,
		MaxStartAge: 60,
		Years:       150,
		Env:         env,
	}
}

// Frontier is a scarce world: few resources, harsh early mortality with a
// noisy year-to-year texture, and little tolerance for inbreeding.
func Frontier() Scenario {
	s := Baseline()
	s.Name = "frontier"
	s.InitialSize = 1000
	s.Env.Resources = 2000
	s.Env.IncestThreshold = 80
	s.Env.MarriageProbability = 0.8
	s.Env.ConceivingProbability = 0.5
	s.Env.DyingCurve = NoisyCurve(RampCurve(
		CurveStop{Age: 0, Prob: 0.05},
		CurveStop{Age: 10, Prob: 0.01},
		CurveStop{Age: 50, Prob: 0.04},
		CurveStop{Age: 80, Prob: 0.4},
		CurveStop{Age: 110, Prob: 1},
	), int64(s.Seed), 0.01, 0.15)
	return s
}

// Polygamous mirrors Baseline but with the polygamous conception policy;
// no marriages form.
func Polygamous() Scenario {
	s := Baseline()
	s.Name = "polygamous"
	s.Env.Polygamy = true
	return s
}

// registry of available presets.
var presets = map[string]func() Scenario{
	"baseline":   Baseline,
	"frontier":   Frontier,
	"polygamous": Polygamous,
}

// ByName returns the preset registered under name.
func ByName(name string) (Scenario, error) {
	fn, ok := presets[name]
	if !ok {
		return Scenario{}, fmt.Errorf("unknown scenario %q (have: %v)", name, Names())
	}
	return fn(), nil
}

// Names lists registered presets in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
