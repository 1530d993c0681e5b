package prediction

import (
	"math"
	"strings"
)

// Result is one match outcome from a team's perspective.
type Result string

const (
	ResultWin  Result = "W"
	ResultDraw Result = "D"
	ResultLoss Result = "L"
)

const (
	// FormWindow is the number of recent results a form score considers.
	FormWindow = 5

	// NeutralFormScore is returned when no results are available.
	NeutralFormScore = 50
)

func resultPoints(r Result) (float64, bool) {
	switch r {
	case ResultWin:
		return 3, true
	case ResultDraw:
		return 1, true
	case ResultLoss:
		return 0, true
	default:
		return 0, false
	}
}

// ParseForm reads an upstream form string ("W,L,D,W,W" or "WLDWW"),
// ordered oldest to most recent. Unknown letters are dropped.
func ParseForm(form string) []Result {
	cleaned := strings.ToUpper(strings.TrimSpace(form))
	if cleaned == "" {
		return nil
	}

	out := make([]Result, 0, FormWindow)
	for _, r := range cleaned {
		switch Result(r) {
		case ResultWin, ResultDraw, ResultLoss:
			out = append(out, Result(r))
		}
	}
	return out
}

// FormScore normalizes the last five results to a 0-100 scale. Wins count
// 3, draws 1, losses 0, weighted 1 + 0.2*i so the most recent result (last
// in the slice) carries the highest weight. The score is the weighted sum
// divided by the maximum attainable weighted sum, rounded. No results at
// all yields NeutralFormScore.
func FormScore(results []Result) int {
	if len(results) > FormWindow {
		results = results[len(results)-FormWindow:]
	}

	var sum, max float64
	counted := 0
	for _, r := range results {
		points, ok := resultPoints(r)
		if !ok {
			continue
		}
		weight := 1 + 0.2*float64(counted)
		sum += points * weight
		max += 3 * weight
		counted++
	}
	if counted == 0 {
		return NeutralFormScore
	}

	return int(math.Round(SafeDiv(100*sum, max)))
}

// FormScoreFromString is FormScore over a parsed upstream form string.
func FormScoreFromString(form string) int {
	return FormScore(ParseForm(form))
}
