package prediction

// SafeDiv divides numerator by denominator, substituting 1 for a zero or
// negative denominator so season-start rows (zero games played) yield the
// raw numerator instead of a division error.
func SafeDiv(numerator, denominator float64) float64 {
	if denominator <= 0 {
		denominator = 1
	}
	return numerator / denominator
}

// TeamSeasonStats is a team's season-to-date aggregate, as derivable from
// its cached standings row.
type TeamSeasonStats struct {
	Played       int
	GoalsFor     int
	GoalsAgainst int
}

func (s TeamSeasonStats) scoredPerGame() float64 {
	return SafeDiv(float64(s.GoalsFor), float64(s.Played))
}

func (s TeamSeasonStats) concededPerGame() float64 {
	return SafeDiv(float64(s.GoalsAgainst), float64(s.Played))
}

// ExpectedGoals estimates total goals for a pairing as the average of the
// four per-game rates: home scored, home conceded, away scored, away
// conceded.
func ExpectedGoals(home, away TeamSeasonStats) float64 {
	return (home.scoredPerGame() + home.concededPerGame() +
		away.scoredPerGame() + away.concededPerGame()) / 4
}
