package sim

// marriages matches eligible unmarried adults into couples. Only used in the
// monogamous policy; the polygamous policy forms no marriages at all.
func (p *Population) marriages() {
	// Candidate pools: unmarried, of age, split by sex.
	var fem, male []int
	for i := range p.people {
		person := &p.people[i]
		if person.Marital.Married() {
			continue
		}
		if person.Age < p.env.AgeOfConsent {
			continue
		}
		if person.Sex == SexFemale {
			fem = append(fem, i)
		} else {
			male = append(male, i)
		}
	}

	p.rng.Shuffle(len(fem), func(i, j int) { fem[i], fem[j] = fem[j], fem[i] })
	p.rng.Shuffle(len(male), func(i, j int) { male[i], male[j] = male[j], male[i] })

	pMarry := clamp01(p.env.MarriageProbability * p.env.matingPressure(len(p.people)))

	pairs := len(fem)
	if len(male) < pairs {
		pairs = len(male)
	}
	for k := 0; k < pairs; k++ {
		bride := &p.people[fem[k]]
		groom := &p.people[male[k]]
		// The pools are disjoint by sex, but re-check anyway so no one
		// can ever receive two commitments in one pass.
		if bride.Marital.Married() || groom.Marital.Married() {
			continue
		}
		if p.blocked(bride, groom) {
			continue
		}
		if p.rng.Float64() < pMarry {
			bride.Marital = MarriedTo(groom.ID)
			groom.Marital = MarriedTo(bride.ID)
		}
	}
}
