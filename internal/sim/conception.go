package sim

// conceiving runs monogamous conception: every married female of
// consenting, fertile age may conceive with her partner, subject to the
// incest predicate and the crowding-scaled probability. Newborns are
// appended to the roster during the pass and are therefore part of the
// same year's aging and mortality.
func (p *Population) conceiving() {
	pChild := clamp01(p.env.ConceivingProbability * p.env.matingPressure(len(p.people)))

	for i := 0; i < len(p.people); i++ {
		mother := &p.people[i]
		if mother.Sex != SexFemale {
			continue
		}
		partnerID, married := mother.Marital.Partner()
		if !married {
			continue
		}
		if mother.Age < p.env.AgeOfConsent {
			continue
		}
		if !p.env.FemaleFertility.Contains(mother.Age) {
			continue
		}
		// Partner lookup may fail if the partner left the roster; that
		// simply excludes the mother this year.
		fatherIdx := p.findByID(partnerID)
		if fatherIdx < 0 {
			continue
		}
		father := &p.people[fatherIdx]
		if father.Sex != SexMale {
			continue
		}
		if father.Age < p.env.AgeOfConsent {
			continue
		}
		if p.blocked(mother, father) {
			continue
		}
		if !p.env.MaleFertility.Contains(father.Age) {
			continue
		}
		if p.rng.Float64() < pChild {
			p.addChild(i, fatherIdx)
		}
	}
}

// polygamousConceiving replaces pairing and monogamous conception when the
// polygamy flag is set. No marriages are consulted: every fertile female of
// consenting age draws a uniformly random father from the pool of eligible
// males. Note the inverted pressure ratio relative to the monogamous policy.
func (p *Population) polygamousConceiving() {
	pChild := clamp01(p.env.ConceivingProbability * p.env.polygamousPressure(len(p.people)))

	var males []int
	for i := range p.people {
		person := &p.people[i]
		if person.Sex == SexMale &&
			person.Age >= p.env.AgeOfConsent &&
			p.env.MaleFertility.Contains(person.Age) {
			males = append(males, i)
		}
	}
	if len(males) == 0 {
		return
	}

	for i := 0; i < len(p.people); i++ {
		mother := &p.people[i]
		if mother.Sex != SexFemale {
			continue
		}
		if mother.Age < p.env.AgeOfConsent {
			continue
		}
		if !p.env.FemaleFertility.Contains(mother.Age) {
			continue
		}
		fatherIdx := males[p.rng.IntN(len(males))]
		if p.blocked(mother, &p.people[fatherIdx]) {
			continue
		}
		if p.rng.Float64() < pChild {
			p.addChild(i, fatherIdx)
		}
	}
}

// addChild creates a newborn from the parents at the given roster indices:
// per-bit recombination, sex drawn 50/50, then exactly MutationBits distinct
// genome positions flipped. The child joins the roster unmarried at age 0.
func (p *Population) addChild(motherIdx, fatherIdx int) {
	m0 := p.rng.Uint64()
	m1 := p.rng.Uint64()

	mother := &p.people[motherIdx]
	father := &p.people[fatherIdx]

	child := Person{
		ID:      p.issueID(),
		Genome:  recombine(mother.Genome, father.Genome, m0, m1),
		Age:     0,
		Marital: Unmarried(),
	}
	if p.rng.Coin() {
		child.Sex = SexMale
	} else {
		child.Sex = SexFemale
	}
	p.mutate(&child.Genome)

	p.birthsThisYear++
	p.people = append(p.people, child)
}

// mutate flips exactly MutationBits distinct positions, sampled uniformly
// without replacement. Counts above 128 flip every position once.
func (p *Population) mutate(g *Genome) {
	k := int(p.env.MutationBits)
	if k == 0 {
		return
	}
	if k > GenomeBits {
		k = GenomeBits
	}
	for _, pos := range p.rng.Perm(GenomeBits)[:k] {
		g.flip(pos)
	}
}
