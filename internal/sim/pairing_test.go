package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// matingEnv is a permissive monogamous environment: certain marriage,
// no conception, no mortality, no incest blocking.
func matingEnv() Environment {
	env := DefaultEnvironment()
	env.Resources = 1e9
	env.IncestThreshold = 128
	env.MarriageProbability = 1
	env.AgeOfConsent = 18
	return env
}

// person builds a roster entry with a distinctive genome so incest checks
// are controllable per test.
func person(id PersonID, sex Sex, age uint32, g Genome) Person {
	return Person{ID: id, Sex: sex, Age: age, Genome: g, Marital: Unmarried()}
}

func distinctGenome(i int) Genome {
	// Alternating words keep any two genomes near 50% similarity.
	return Genome{
		W0: 0xAAAAAAAAAAAAAAAA ^ uint64(i)*0x9E3779B97F4A7C15,
		W1: uint64(i) * 0xBF58476D1CE4E5B9,
	}
}

func TestMarriages_MutualSymmetry(t *testing.T) {
	pop := New(7)
	pop.SetEnvironment(matingEnv())
	for i := 0; i < 40; i++ {
		sex := SexFemale
		if i%2 == 0 {
			sex = SexMale
		}
		pop.people = append(pop.people, person(PersonID(i+1), sex, 30, distinctGenome(i)))
	}

	pop.marriages()

	married := 0
	for i := range pop.people {
		p := &pop.people[i]
		partnerID, ok := p.Marital.Partner()
		if !ok {
			continue
		}
		married++
		idx := pop.findByID(partnerID)
		require.GreaterOrEqual(t, idx, 0, "partner of %d must be in the roster", p.ID)
		back, ok := pop.people[idx].Marital.Partner()
		require.True(t, ok, "partner of %d must be married back", p.ID)
		assert.Equal(t, p.ID, back, "marriage must be mutual")
	}
	assert.Greater(t, married, 0, "certain probability with eligible pools must marry someone")
	assert.Zero(t, married%2, "married persons come in pairs")
}

func TestMarriages_RespectsAgeOfConsent(t *testing.T) {
	pop := New(3)
	pop.SetEnvironment(matingEnv())
	pop.people = []Person{
		person(1, SexFemale, 17, distinctGenome(1)),
		person(2, SexMale, 30, distinctGenome(2)),
	}

	pop.marriages()

	for i := range pop.people {
		assert.False(t, pop.people[i].Marital.Married(), "underage candidates must not pair")
	}
}

func TestMarriages_IncestPredicateBlocks(t *testing.T) {
	pop := New(3)
	env := matingEnv()
	env.IncestThreshold = 0 // any shared bit blocks; all pairs share bits
	pop.SetEnvironment(env)
	pop.people = []Person{
		person(1, SexFemale, 30, distinctGenome(1)),
		person(2, SexMale, 30, distinctGenome(2)),
	}

	pop.marriages()

	assert.False(t, pop.people[0].Marital.Married())
	assert.False(t, pop.people[1].Marital.Married())
}

func TestMarriages_MarriedCandidatesExcluded(t *testing.T) {
	pop := New(11)
	pop.SetEnvironment(matingEnv())
	pop.people = []Person{
		person(1, SexFemale, 30, distinctGenome(1)),
		person(2, SexMale, 30, distinctGenome(2)),
		person(3, SexMale, 40, distinctGenome(3)),
	}
	pop.people[0].Marital = MarriedTo(3)
	pop.people[2].Marital = MarriedTo(1)

	pop.marriages()

	// The only unmarried female is taken; the single male stays single.
	got, _ := pop.people[0].Marital.Partner()
	assert.Equal(t, PersonID(3), got, "existing marriage must survive the pass")
	assert.False(t, pop.people[1].Marital.Married())
}

func TestMarriages_ZeroProbabilityMarriesNoOne(t *testing.T) {
	pop := New(5)
	env := matingEnv()
	env.MarriageProbability = 0
	pop.SetEnvironment(env)
	pop.people = []Person{
		person(1, SexFemale, 30, distinctGenome(1)),
		person(2, SexMale, 30, distinctGenome(2)),
	}

	pop.marriages()

	assert.False(t, pop.people[0].Marital.Married())
}

func TestMarriages_FullCrowdingSuppressesMarriage(t *testing.T) {
	pop := New(5)
	env := matingEnv()
	env.Resources = 2 // population equals capacity: pressure 0
	pop.SetEnvironment(env)
	pop.people = []Person{
		person(1, SexFemale, 30, distinctGenome(1)),
		person(2, SexMale, 30, distinctGenome(2)),
	}

	pop.marriages()

	assert.False(t, pop.people[0].Marital.Married(),
		"pressure 0 must zero out the marriage probability")
}
