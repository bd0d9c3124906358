package sim

// ageAndDie advances every person by one year (including newborns from this
// year's conception pass) and applies the stochastic mortality roll. Deaths
// are marked first and marriages dissolved in place before the roster is
// filtered, so a surviving partner is always reset to unmarried no matter
// which side of the roster the death fell on.
func (p *Population) ageAndDie() {
	dead := make([]bool, len(p.people))
	for i := range p.people {
		person := &p.people[i]
		person.growOlder()
		if p.rng.Float64() < p.env.deathProbability(person.Age) {
			dead[i] = true
			p.deathsThisYear++
		}
	}

	for i := range p.people {
		if dead[i] {
			p.widowPartner(&p.people[i])
		}
	}

	survivors := make([]Person, 0, len(p.people))
	for i := range p.people {
		if !dead[i] {
			survivors = append(survivors, p.people[i])
		}
	}
	p.people = survivors
}

// widowPartner dissolves the marriage of a person who just died. The partner
// is located by linear id scan; the reset only applies while the marriage is
// still mutual, so nothing happens if the partner's own death already
// cleared it.
func (p *Population) widowPartner(deceased *Person) {
	partnerID, married := deceased.Marital.Partner()
	if !married {
		return
	}
	for i := range p.people {
		q := &p.people[i]
		if q.ID != partnerID {
			continue
		}
		if back, ok := q.Marital.Partner(); ok && back == deceased.ID {
			q.Marital = Unmarried()
		}
		return
	}
}
