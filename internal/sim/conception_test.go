package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fertileEnv guarantees conception for any eligible couple.
func fertileEnv() Environment {
	env := DefaultEnvironment()
	env.Resources = 1e9
	env.IncestThreshold = 128
	env.ConceivingProbability = 1
	env.AgeOfConsent = 18
	return env
}

func marriedCouple(wifeAge, husbandAge uint32) []Person {
	wife := person(1, SexFemale, wifeAge, distinctGenome(1))
	husband := person(2, SexMale, husbandAge, distinctGenome(2))
	wife.Marital = MarriedTo(2)
	husband.Marital = MarriedTo(1)
	return []Person{wife, husband}
}

func TestConceiving_CoupleProducesChild(t *testing.T) {
	pop := New(17)
	pop.SetEnvironment(fertileEnv())
	pop.people = marriedCouple(25, 28)
	pop.nextID = 3

	pop.conceiving()

	require.Len(t, pop.people, 3)
	child := pop.people[2]
	assert.Equal(t, PersonID(3), child.ID)
	assert.Equal(t, uint32(0), child.Age)
	assert.False(t, child.Marital.Married())
	assert.Equal(t, 1, pop.birthsThisYear)

	// Without mutation every child bit must come from one of the parents.
	mother, father := pop.people[0].Genome, pop.people[1].Genome
	for pos := 0; pos < GenomeBits; pos++ {
		bit := child.Genome.Bit(pos)
		require.True(t, bit == mother.Bit(pos) || bit == father.Bit(pos),
			"bit %d from neither parent", pos)
	}
}

func TestConceiving_MutationChangesExactlyKBits(t *testing.T) {
	pop := New(17)
	env := fertileEnv()
	env.MutationBits = 2
	pop.SetEnvironment(env)
	// Identical parent genomes pin the pre-mutation child genome exactly.
	shared := distinctGenome(9)
	couple := marriedCouple(25, 28)
	couple[0].Genome = shared
	couple[1].Genome = shared
	pop.people = couple
	pop.nextID = 3

	pop.conceiving()

	require.Len(t, pop.people, 3)
	diff := GenomeBits - shared.SimilarBits(pop.people[2].Genome)
	assert.Equal(t, 2, diff)
}

func TestConceiving_FertilityWindowsGate(t *testing.T) {
	cases := []struct {
		name       string
		wifeAge    uint32
		husbandAge uint32
		child      bool
	}{
		{"both fertile", 30, 40, true},
		{"mother too old", 46, 40, false},
		{"father too old", 30, 91, false},
		{"mother below consent", 16, 40, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pop := New(17)
			pop.SetEnvironment(fertileEnv())
			pop.people = marriedCouple(tc.wifeAge, tc.husbandAge)
			pop.nextID = 3

			pop.conceiving()

			if tc.child {
				assert.Len(t, pop.people, 3)
			} else {
				assert.Len(t, pop.people, 2)
			}
		})
	}
}

func TestConceiving_MissingPartnerSkipsMother(t *testing.T) {
	pop := New(17)
	pop.SetEnvironment(fertileEnv())
	wife := person(1, SexFemale, 25, distinctGenome(1))
	wife.Marital = MarriedTo(99) // partner not in the roster
	pop.people = []Person{wife}

	pop.conceiving()

	assert.Len(t, pop.people, 1, "absent partner silently excludes the mother")
}

func TestConceiving_IncestBlocked(t *testing.T) {
	pop := New(17)
	env := fertileEnv()
	env.IncestThreshold = 0
	pop.SetEnvironment(env)
	pop.people = marriedCouple(25, 28)

	pop.conceiving()

	assert.Len(t, pop.people, 2)
}

func TestPolygamousConceiving_NoMales(t *testing.T) {
	pop := New(23)
	env := fertileEnv()
	env.Polygamy = true
	pop.SetEnvironment(env)
	for i := 0; i < 5; i++ {
		pop.people = append(pop.people, person(PersonID(i+1), SexFemale, 30, distinctGenome(i)))
	}

	pop.polygamousConceiving()

	assert.Len(t, pop.people, 5, "no eligible males means no conceptions")
	assert.Zero(t, pop.birthsThisYear)
}

func TestPolygamousConceiving_EveryFertileMotherDraws(t *testing.T) {
	pop := New(23)
	env := fertileEnv()
	env.Polygamy = true
	env.Resources = 0 // exhausted resources: maximum scarcity, pressure 1
	pop.SetEnvironment(env)
	pop.people = []Person{
		person(1, SexMale, 30, distinctGenome(1)),
		person(2, SexFemale, 25, distinctGenome(2)),
		person(3, SexFemale, 28, distinctGenome(3)),
		person(4, SexFemale, 70, distinctGenome(4)), // beyond the female window
	}

	pop.polygamousConceiving()

	assert.Len(t, pop.people, 6, "both fertile mothers conceive at probability 1")
	assert.Equal(t, 2, pop.birthsThisYear)
}

func TestPolygamousConceiving_IgnoresMarriages(t *testing.T) {
	pop := New(23)
	env := fertileEnv()
	env.Polygamy = true
	env.Resources = 0
	pop.SetEnvironment(env)
	couple := marriedCouple(25, 28)
	pop.people = couple

	pop.polygamousConceiving()

	// The married mother conceives via the male pool, not her partner field.
	assert.Len(t, pop.people, 3)
}
