package prediction

import (
	"testing"

	"github.com/matchpulse/football-sync/internal/domain/match"
)

func intPtr(v int) *int { return &v }

func TestHeadToHead(t *testing.T) {
	t.Parallel()

	const teamID = int64(57)
	matches := []match.Match{
		// win at home
		{HomeTeamID: teamID, AwayTeamID: 61, HomeScore: intPtr(2), AwayScore: intPtr(0)},
		// loss away
		{HomeTeamID: 61, AwayTeamID: teamID, HomeScore: intPtr(3), AwayScore: intPtr(1)},
		// draw away
		{HomeTeamID: 61, AwayTeamID: teamID, HomeScore: intPtr(1), AwayScore: intPtr(1)},
		// unplayed, skipped
		{HomeTeamID: teamID, AwayTeamID: 61},
		// does not involve the team, skipped
		{HomeTeamID: 61, AwayTeamID: 64, HomeScore: intPtr(1), AwayScore: intPtr(0)},
	}

	record := HeadToHead(teamID, matches)
	if record.Wins != 1 || record.Draws != 1 || record.Losses != 1 {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.Total() != 3 {
		t.Fatalf("unexpected total: %d", record.Total())
	}
}

func TestHeadToHead_EmptyInput(t *testing.T) {
	t.Parallel()

	record := HeadToHead(57, nil)
	if record.Total() != 0 {
		t.Fatalf("expected empty record, got %+v", record)
	}
}
