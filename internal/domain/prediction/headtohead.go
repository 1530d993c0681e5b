package prediction

import "github.com/matchpulse/football-sync/internal/domain/match"

// HeadToHeadRecord aggregates prior meetings from one team's perspective.
type HeadToHeadRecord struct {
	Wins   int
	Draws  int
	Losses int
}

func (r HeadToHeadRecord) Total() int {
	return r.Wins + r.Draws + r.Losses
}

// HeadToHead counts wins, draws and losses for teamID across the given
// matches. Matches without a recorded score, or not involving teamID, are
// skipped.
func HeadToHead(teamID int64, matches []match.Match) HeadToHeadRecord {
	var record HeadToHeadRecord
	for _, m := range matches {
		if m.HomeScore == nil || m.AwayScore == nil {
			continue
		}

		var forTeam, against int
		switch teamID {
		case m.HomeTeamID:
			forTeam, against = *m.HomeScore, *m.AwayScore
		case m.AwayTeamID:
			forTeam, against = *m.AwayScore, *m.HomeScore
		default:
			continue
		}

		switch {
		case forTeam > against:
			record.Wins++
		case forTeam < against:
			record.Losses++
		default:
			record.Draws++
		}
	}
	return record
}
