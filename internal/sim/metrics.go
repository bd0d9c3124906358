package sim

import "log/slog"

// recordYear appends one entry per history after the mortality pass: births,
// deaths, surviving population, and mean survivor age (0 for an empty
// roster). Histories are append-only and grow by exactly one entry per
// simulated year.
func (p *Population) recordYear() {
	p.birthsHist = append(p.birthsHist, p.birthsThisYear)
	p.deathsHist = append(p.deathsHist, p.deathsThisYear)
	p.popHist = append(p.popHist, len(p.people))

	meanAge := 0.0
	if len(p.people) > 0 {
		sum := 0.0
		for i := range p.people {
			sum += float64(p.people[i].Age)
		}
		meanAge = sum / float64(len(p.people))
	}
	p.meanAgeHist = append(p.meanAgeHist, meanAge)

	slog.Debug("year complete",
		"year", len(p.popHist),
		"population", len(p.people),
		"births", p.birthsThisYear,
		"deaths", p.deathsThisYear,
		"mean_age", meanAge,
	)
}

// Year returns the number of simulated years recorded so far.
func (p *Population) Year() int {
	return len(p.popHist)
}
