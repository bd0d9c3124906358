package sim

// MaxCurveAge is the last age with its own mortality entry; older persons
// reuse the final entry.
const MaxCurveAge = 127

// FertilityWindow is an inclusive range of ages within which a person of the
// corresponding sex can parent a child.
type FertilityWindow struct {
	Min uint32
	Max uint32
}

// Contains reports whether age falls inside the window.
func (w FertilityWindow) Contains(age uint32) bool {
	return age >= w.Min && age <= w.Max
}

// Environment holds the simulation parameters for a run. It is replaced
// wholesale via Population.SetEnvironment and treated as immutable within a
// simulated year.
type Environment struct {
	// Resources is the capacity denominator for crowding pressure.
	// Values <= 0 mean maximum scarcity (pressure 1), never a division
	// by zero.
	Resources float64

	// IncestThreshold is the maximum number of equal genome bits (out of
	// 128) permitted between mates; above it pairing and conception are
	// blocked.
	IncestThreshold uint32

	// DyingCurve holds the per-age-year death probability, indexed by age
	// clamped to [0, 127]. Entries are clamped to [0, 1] at use time.
	DyingCurve [MaxCurveAge + 1]float64

	// Polygamy selects the conception policy: false runs pairing plus
	// monogamous conception, true runs polygamous conception with no
	// marriages.
	Polygamy bool

	MarriageProbability   float64
	ConceivingProbability float64

	// AgeOfConsent is the minimum age for pairing and for either parent
	// at conception.
	AgeOfConsent uint32

	// MutationBits is the number of distinct genome positions flipped in
	// every newborn.
	MutationBits uint32

	// Fertile windows per sex, consulted in addition to AgeOfConsent.
	FemaleFertility FertilityWindow
	MaleFertility   FertilityWindow
}

// DefaultEnvironment returns a neutral environment: no resources, no
// marriage or conception probability, flat zero mortality. Callers overwrite
// the fields they care about.
func DefaultEnvironment() Environment {
	return Environment{
		Resources:       0,
		IncestThreshold: 64,
		AgeOfConsent:    18,
		FemaleFertility: FertilityWindow{Min: 15, Max: 45},
		MaleFertility:   FertilityWindow{Min: 15, Max: 90},
	}
}

// clamp01 bounds v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// matingPressure is the crowding factor for the monogamous policy:
// 1 - population/resources, clamped to [0, 1]. An empty roster contributes
// nothing to crowding; resources at or below zero mean maximum scarcity.
func (e *Environment) matingPressure(population int) float64 {
	if population == 0 {
		return 1
	}
	if e.Resources <= 0 {
		return 1
	}
	return clamp01(1 - float64(population)/e.Resources)
}

// polygamousPressure is the crowding factor for the polygamous policy,
// with the inverted ratio: 1 - resources/population, clamped to [0, 1].
func (e *Environment) polygamousPressure(population int) float64 {
	if population == 0 {
		return 1
	}
	if e.Resources <= 0 {
		return 1
	}
	return clamp01(1 - e.Resources/float64(population))
}

// deathProbability looks up the mortality for a given age, clamping both the
// age index and the stored value.
func (e *Environment) deathProbability(age uint32) float64 {
	idx := age
	if idx > MaxCurveAge {
		idx = MaxCurveAge
	}
	return clamp01(e.DyingCurve[idx])
}
