// Package sim provides the year-update population engine: pairing,
// conception, recombination with mutation, aging and mortality, and the
// per-year metric histories.
package sim

import "math"

// PersonID is a unique identifier for a person. IDs are assigned
// monotonically starting at 1 and are never reused; by construction they
// stay below 2^63.
type PersonID uint64

// Sex represents biological sex for demographic simulation.
type Sex uint8

const (
	SexFemale Sex = 0
	SexMale   Sex = 1
)

// MaritalStatus is a tagged union: either unmarried, or married to a
// specific partner.
type MaritalStatus struct {
	married bool
	partner PersonID
}

// Unmarried is the zero MaritalStatus.
func Unmarried() MaritalStatus {
	return MaritalStatus{}
}

// MarriedTo returns the status of being married to the given partner.
func MarriedTo(partner PersonID) MaritalStatus {
	return MaritalStatus{married: true, partner: partner}
}

// Married reports whether the person is married.
func (m MaritalStatus) Married() bool {
	return m.married
}

// Partner returns the partner id and whether one exists.
func (m MaritalStatus) Partner() (PersonID, bool) {
	if !m.married {
		return 0, false
	}
	return m.partner, true
}

// Person is a single member of the population.
type Person struct {
	ID      PersonID
	Genome  Genome
	Age     uint32 // years
	Sex     Sex
	Marital MaritalStatus
}

// growOlder increments age by one year, saturating instead of wrapping.
func (p *Person) growOlder() {
	if p.Age < math.MaxUint32 {
		p.Age++
	}
}
