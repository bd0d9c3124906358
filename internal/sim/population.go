package sim

import (
	"log/slog"

	"github.com/talgya/popsim/internal/entropy"
)

// Population owns the live roster, the environment, the random stream, and
// the per-year metric histories. All state is mutated only by Step and
// InitializeRandom; the engine is single-threaded and every year runs to
// completion before Step returns.
type Population struct {
	env    Environment
	people []Person
	rng    *entropy.Stream
	nextID PersonID

	birthsThisYear int
	deathsThisYear int

	meanAgeHist []float64
	popHist     []int
	birthsHist  []int
	deathsHist  []int
}

// New creates an empty population with the given seed and a default
// environment.
func New(seed uint64) *Population {
	return &Population{
		env:    DefaultEnvironment(),
		rng:    entropy.NewStream(seed),
		nextID: 1,
	}
}

// Reseed replaces the random stream, discarding prior stream state. The
// roster, histories, and id counter are untouched.
func (p *Population) Reseed(seed uint64) {
	p.rng.Reseed(seed)
}

// SetEnvironment replaces the environment wholesale, taking effect from the
// next processed year.
func (p *Population) SetEnvironment(env Environment) {
	p.env = env
}

// Environment returns a snapshot of the current environment.
func (p *Population) Environment() Environment {
	return p.env
}

// InitializeRandom clears the roster and all histories, then creates n
// persons with random genomes, random ages in [0, maxStartAge], random sex,
// all unmarried. The id counter continues monotonically across repeated
// calls and is never reset.
func (p *Population) InitializeRandom(n int, maxStartAge uint32) {
	p.people = make([]Person, 0, n)
	for i := 0; i < n; i++ {
		p.people = append(p.people, Person{
			ID:      p.issueID(),
			Genome:  Genome{W0: p.rng.Uint64(), W1: p.rng.Uint64()},
			Age:     p.rng.Uint32N(maxStartAge),
			Sex:     Sex(p.rng.Uint32N(1)),
			Marital: Unmarried(),
		})
	}
	p.meanAgeHist = nil
	p.popHist = nil
	p.birthsHist = nil
	p.deathsHist = nil

	slog.Debug("population initialized", "count", n, "max_start_age", maxStartAge)
}

// Step advances the simulation by the given number of years. Each year runs
// pairing and conception (policy-dependent), then aging and mortality, then
// metrics, in that fixed order.
func (p *Population) Step(years uint32) {
	for i := uint32(0); i < years; i++ {
		p.doYear()
	}
}

// doYear executes one full simulated year. Mating runs before aging so
// newly married couples may conceive the same year, and newborns are aged
// and mortality-checked in the same tick they are born.
func (p *Population) doYear() {
	p.birthsThisYear = 0
	p.deathsThisYear = 0

	if !p.env.Polygamy {
		p.marriages()
		p.conceiving()
	} else {
		p.polygamousConceiving()
	}

	p.ageAndDie()
	p.recordYear()
}

// Persons returns the current roster in insertion/survivor order. The slice
// is owned by the population; callers must not modify it.
func (p *Population) Persons() []Person {
	return p.people
}

// MeanAgeHistory returns the per-year mean age of survivors, one entry per
// simulated year.
func (p *Population) MeanAgeHistory() []float64 {
	return p.meanAgeHist
}

// PopulationHistory returns the per-year population size after mortality.
func (p *Population) PopulationHistory() []int {
	return p.popHist
}

// BirthsHistory returns the per-year birth counts.
func (p *Population) BirthsHistory() []int {
	return p.birthsHist
}

// DeathsHistory returns the per-year death counts.
func (p *Population) DeathsHistory() []int {
	return p.deathsHist
}

// issueID hands out the next person id. Monotonic, never reused, never
// reset; stays below 2^63 by construction.
func (p *Population) issueID() PersonID {
	id := p.nextID
	p.nextID++
	return id
}

// findByID locates a person in the roster by id. Linear scan, first match;
// returns -1 when absent (e.g. the partner died earlier this year).
func (p *Population) findByID(id PersonID) int {
	for i := range p.people {
		if p.people[i].ID == id {
			return i
		}
	}
	return -1
}

// blocked applies the incest predicate for two roster members under the
// current environment.
func (p *Population) blocked(a, b *Person) bool {
	return incestBlocked(a.Genome, b.Genome, p.env.IncestThreshold)
}
