package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matchpulse/football-sync/internal/domain/match"
	"github.com/matchpulse/football-sync/internal/domain/standing"
	"github.com/matchpulse/football-sync/internal/platform/logging"
)

func finishedMatch(id, homeID, awayID int64, homeGoals, awayGoals int, playedAt time.Time) match.Match {
	return match.Match{
		ExternalID: id,
		HomeTeamID: homeID,
		HomeTeamName: "Home",
		AwayTeamID: awayID,
		AwayTeamName: "Away",
		UTCDate:    playedAt,
		Status:     match.StatusFinished,
		HomeScore:  &homeGoals,
		AwayScore:  &awayGoals,
	}
}

func TestTeamForm_FromCachedHistory(t *testing.T) {
	t.Parallel()

	// Newest first, as the history repository returns them.
	history := &stubHistoryRepo{
		listByTeam: func(_ context.Context, teamID int64, limit int) ([]match.Match, error) {
			if teamID != 57 {
				t.Fatalf("unexpected team id: %d", teamID)
			}
			return []match.Match{
				finishedMatch(3, 57, 61, 2, 0, testClock.AddDate(0, 0, -2)),
				finishedMatch(2, 61, 57, 1, 1, testClock.AddDate(0, 0, -9)),
				finishedMatch(1, 57, 61, 0, 3, testClock.AddDate(0, 0, -16)),
			}, nil
		},
	}
	svc := NewInsightsService(&stubProvider{}, history, &stubStandingRepo{}, logging.NewNop())

	insight, err := svc.TeamForm(context.Background(), "PL", 57)
	if err != nil {
		t.Fatalf("TeamForm: %v", err)
	}

	// Oldest to newest: L, D, W with weights 1, 1.2, 1.4.
	// (0*1 + 1*1.2 + 3*1.4) / (3*1 + 3*1.2 + 3*1.4) = 5.4/10.8.
	if insight.FormScore != 50 {
		t.Fatalf("unexpected form score: %d", insight.FormScore)
	}
	if insight.SampleSize != 3 {
		t.Fatalf("unexpected sample size: %d", insight.SampleSize)
	}
	if insight.Form != "W,D,L" {
		t.Fatalf("unexpected form string: %s", insight.Form)
	}
}

func TestTeamForm_FallsBackToStandingsForm(t *testing.T) {
	t.Parallel()

	standings := &stubStandingRepo{
		listByCompetition: func(_ context.Context, code string) ([]standing.Standing, error) {
			return []standing.Standing{
				{CompetitionCode: code, TeamID: 57, TeamName: "Arsenal", Form: "W,W,W,W,W"},
			}, nil
		},
	}
	svc := NewInsightsService(&stubProvider{}, &stubHistoryRepo{}, standings, logging.NewNop())

	insight, err := svc.TeamForm(context.Background(), "PL", 57)
	if err != nil {
		t.Fatalf("TeamForm: %v", err)
	}
	if insight.FormScore != 100 {
		t.Fatalf("unexpected form score: %d", insight.FormScore)
	}
	if insight.TeamName != "Arsenal" {
		t.Fatalf("unexpected team name: %s", insight.TeamName)
	}
}

func TestTeamForm_NoDataIsNeutral(t *testing.T) {
	t.Parallel()

	svc := NewInsightsService(&stubProvider{}, &stubHistoryRepo{}, &stubStandingRepo{}, logging.NewNop())

	insight, err := svc.TeamForm(context.Background(), "PL", 57)
	if err != nil {
		t.Fatalf("TeamForm: %v", err)
	}
	if insight.FormScore != 50 || insight.SampleSize != 0 {
		t.Fatalf("expected neutral insight, got %+v", insight)
	}
}

func TestTeamForm_RequiresTeamID(t *testing.T) {
	t.Parallel()

	svc := NewInsightsService(&stubProvider{}, &stubHistoryRepo{}, &stubStandingRepo{}, logging.NewNop())

	_, err := svc.TeamForm(context.Background(), "PL", 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestMatchOutlook_CombinesCachedSources(t *testing.T) {
	t.Parallel()

	standings := &stubStandingRepo{
		listByCompetition: func(_ context.Context, code string) ([]standing.Standing, error) {
			return []standing.Standing{
				{CompetitionCode: code, TeamID: 57, TeamName: "Arsenal", Played: 4, GoalsFor: 8, GoalsAgainst: 2, Form: "W,W,W,W"},
				{CompetitionCode: code, TeamID: 61, TeamName: "Chelsea", Played: 4, GoalsFor: 4, GoalsAgainst: 6, Form: "L,L,D,W"},
			}, nil
		},
	}
	provider := &stubProvider{
		getHeadToHead: func(_ context.Context, matchID int64, limit int) ([]ExternalMatch, error) {
			if matchID != 900 {
				t.Fatalf("unexpected match id: %d", matchID)
			}
			homeGoals, awayGoals := 2, 1
			item := externalFixture(800, "PL", testClock.AddDate(0, -6, 0))
			item.HomeTeamID = 57
			item.AwayTeamID = 61
			item.Status = match.StatusFinished
			item.HomeScore = &homeGoals
			item.AwayScore = &awayGoals
			return []ExternalMatch{item}, nil
		},
	}
	svc := NewInsightsService(provider, &stubHistoryRepo{}, standings, logging.NewNop())

	outlook, err := svc.MatchOutlook(context.Background(), MatchOutlookInput{
		CompetitionCode: "PL",
		MatchID:         900,
		HomeTeamID:      57,
		AwayTeamID:      61,
	})
	if err != nil {
		t.Fatalf("MatchOutlook: %v", err)
	}

	// (8/4 + 2/4 + 4/4 + 6/4) / 4 = 1.25.
	if outlook.ExpectedGoals != 1.25 {
		t.Fatalf("unexpected expected goals: %f", outlook.ExpectedGoals)
	}
	if outlook.HomeTeam.FormScore <= outlook.AwayTeam.FormScore {
		t.Fatalf("expected the in-form home side to score higher: %+v", outlook)
	}
	if outlook.HeadToHead == nil || outlook.HeadToHead.Wins != 1 || outlook.HeadToHead.Total() != 1 {
		t.Fatalf("unexpected head-to-head: %+v", outlook.HeadToHead)
	}
	if outlook.Odds.Home <= 1 || outlook.Odds.Draw <= 1 || outlook.Odds.Away <= 1 {
		t.Fatalf("odds must exceed 1: %+v", outlook.Odds)
	}
	if outlook.Confidence <= 0 || outlook.Confidence > 1 {
		t.Fatalf("confidence out of range: %f", outlook.Confidence)
	}
}

func TestMatchOutlook_HeadToHeadFailureDegrades(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		getHeadToHead: func(context.Context, int64, int) ([]ExternalMatch, error) {
			return nil, &TransportError{Err: errors.New("connection reset")}
		},
	}
	svc := NewInsightsService(provider, &stubHistoryRepo{}, &stubStandingRepo{}, logging.NewNop())

	outlook, err := svc.MatchOutlook(context.Background(), MatchOutlookInput{
		CompetitionCode: "PL",
		MatchID:         900,
		HomeTeamID:      57,
		AwayTeamID:      61,
	})
	if err != nil {
		t.Fatalf("MatchOutlook: %v", err)
	}
	if outlook.HeadToHead != nil {
		t.Fatal("head-to-head must be omitted on fetch failure")
	}
}

func TestMatchOutlook_RejectsSameTeam(t *testing.T) {
	t.Parallel()

	svc := NewInsightsService(&stubProvider{}, &stubHistoryRepo{}, &stubStandingRepo{}, logging.NewNop())

	_, err := svc.MatchOutlook(context.Background(), MatchOutlookInput{HomeTeamID: 57, AwayTeamID: 57})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}
