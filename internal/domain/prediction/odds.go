package prediction

import "math"

// Odds holds decimal odds for the three match outcomes.
type Odds struct {
	Home float64
	Draw float64
	Away float64
}

// MatchOdds converts outcome probabilities to decimal odds (1/p), rounded
// to two decimals. Non-positive probabilities fall back to even odds via
// the guarded division default.
func MatchOdds(pHome, pDraw, pAway float64) Odds {
	return Odds{
		Home: roundOdds(SafeDiv(1, pHome)),
		Draw: roundOdds(SafeDiv(1, pDraw)),
		Away: roundOdds(SafeDiv(1, pAway)),
	}
}

func roundOdds(v float64) float64 {
	return math.Round(v*100) / 100
}
