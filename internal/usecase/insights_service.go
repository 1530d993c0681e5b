package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/matchpulse/football-sync/internal/domain/match"
	"github.com/matchpulse/football-sync/internal/domain/prediction"
	"github.com/matchpulse/football-sync/internal/domain/standing"
	"github.com/matchpulse/football-sync/internal/platform/logging"
)

const headToHeadLimit = 10

type TeamFormInsight struct {
	TeamID     int64  `json:"team_id"`
	TeamName   string `json:"team_name,omitempty"`
	FormScore  int    `json:"form_score"`
	Form       string `json:"form,omitempty"`
	SampleSize int    `json:"sample_size"`
}

type MatchOutlookInput struct {
	CompetitionCode string
	MatchID         int64
	HomeTeamID      int64
	AwayTeamID      int64
	// AIConfidence is an externally supplied model score in [0,1]; nil
	// means no model input and the prior carries its weight.
	AIConfidence *float64
}

type MatchOutlook struct {
	CompetitionCode string                      `json:"competition_code"`
	HomeTeam        TeamFormInsight             `json:"home_team"`
	AwayTeam        TeamFormInsight             `json:"away_team"`
	ExpectedGoals   float64                     `json:"expected_goals"`
	Confidence      float64                     `json:"confidence"`
	Odds            prediction.Odds             `json:"odds"`
	HeadToHead      *prediction.HeadToHeadRecord `json:"head_to_head,omitempty"`
	Timestamp       time.Time                   `json:"timestamp"`
}

// InsightsService derives statistics from cached data. It reads the
// cache tables and, for head-to-head, the upstream provider; it never
// writes.
type InsightsService struct {
	provider  SourceProvider
	history   match.HistoryRepository
	standings standing.Repository
	logger    *logging.Logger
	now       func() time.Time
}

func NewInsightsService(
	provider SourceProvider,
	history match.HistoryRepository,
	standings standing.Repository,
	logger *logging.Logger,
) *InsightsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &InsightsService{
		provider:  provider,
		history:   history,
		standings: standings,
		logger:    logger,
		now:       time.Now,
	}
}

// TeamForm scores a team's recent form from cached finished matches,
// falling back to the cached standings form string when no history rows
// exist yet.
func (s *InsightsService) TeamForm(ctx context.Context, competitionCode string, teamID int64) (TeamFormInsight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InsightsService.TeamForm")
	defer span.End()

	if teamID <= 0 {
		return TeamFormInsight{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	insight := TeamFormInsight{TeamID: teamID}

	recent, err := s.history.ListByTeam(ctx, teamID, prediction.FormWindow)
	if err != nil {
		return TeamFormInsight{}, fmt.Errorf("list recent matches for team %d: %w", teamID, err)
	}

	if len(recent) > 0 {
		results := resultsForTeam(teamID, recent)
		insight.FormScore = prediction.FormScore(results)
		insight.SampleSize = len(results)
		insight.Form = formString(results)
		insight.TeamName = teamNameFromMatches(teamID, recent)
		return insight, nil
	}

	row, ok, err := s.standingRow(ctx, competitionCode, teamID)
	if err != nil {
		return TeamFormInsight{}, err
	}
	if ok {
		insight.FormScore = prediction.FormScoreFromString(row.Form)
		insight.SampleSize = len(prediction.ParseForm(row.Form))
		insight.Form = row.Form
		insight.TeamName = row.TeamName
		return insight, nil
	}

	insight.FormScore = prediction.NeutralFormScore
	return insight, nil
}

// MatchOutlook combines cached standings, cached history and the
// upstream head-to-head listing into one derived pre-match summary.
func (s *InsightsService) MatchOutlook(ctx context.Context, input MatchOutlookInput) (MatchOutlook, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InsightsService.MatchOutlook")
	defer span.End()

	if input.HomeTeamID <= 0 || input.AwayTeamID <= 0 {
		return MatchOutlook{}, fmt.Errorf("%w: both team ids are required", ErrInvalidInput)
	}
	if input.HomeTeamID == input.AwayTeamID {
		return MatchOutlook{}, fmt.Errorf("%w: a team cannot face itself", ErrInvalidInput)
	}

	homeForm, err := s.TeamForm(ctx, input.CompetitionCode, input.HomeTeamID)
	if err != nil {
		return MatchOutlook{}, err
	}
	awayForm, err := s.TeamForm(ctx, input.CompetitionCode, input.AwayTeamID)
	if err != nil {
		return MatchOutlook{}, err
	}

	outlook := MatchOutlook{
		CompetitionCode: input.CompetitionCode,
		HomeTeam:        homeForm,
		AwayTeam:        awayForm,
		Timestamp:       s.now().UTC(),
	}

	homeStats, awayStats := prediction.TeamSeasonStats{}, prediction.TeamSeasonStats{}
	if row, ok, err := s.standingRow(ctx, input.CompetitionCode, input.HomeTeamID); err != nil {
		return MatchOutlook{}, err
	} else if ok {
		homeStats = seasonStats(row)
	}
	if row, ok, err := s.standingRow(ctx, input.CompetitionCode, input.AwayTeamID); err != nil {
		return MatchOutlook{}, err
	} else if ok {
		awayStats = seasonStats(row)
	}
	outlook.ExpectedGoals = prediction.ExpectedGoals(homeStats, awayStats)

	pHome, pDraw, pAway := outcomeProbabilities(homeForm.FormScore, awayForm.FormScore)
	outlook.Odds = prediction.MatchOdds(pHome, pDraw, pAway)

	aiConfidence := 0.0
	if input.AIConfidence != nil {
		aiConfidence = *input.AIConfidence
	}
	outlook.Confidence = prediction.HybridConfidence(aiConfidence, mathConfidence(homeForm.FormScore, awayForm.FormScore))

	if input.MatchID > 0 {
		items, err := s.provider.GetHeadToHead(ctx, input.MatchID, headToHeadLimit)
		if err != nil {
			// Head-to-head is decoration on top of cached data; an
			// upstream failure degrades the outlook instead of failing it.
			s.logger.WarnContext(ctx, "head-to-head fetch failed", "match_id", input.MatchID, "error", err)
		} else {
			record := prediction.HeadToHead(input.HomeTeamID, mapExternalMatchesToDomain(items, s.now().UTC()))
			outlook.HeadToHead = &record
		}
	}

	return outlook, nil
}

func (s *InsightsService) standingRow(ctx context.Context, competitionCode string, teamID int64) (standing.Standing, bool, error) {
	if competitionCode == "" {
		return standing.Standing{}, false, nil
	}
	rows, err := s.standings.ListByCompetition(ctx, competitionCode)
	if err != nil {
		return standing.Standing{}, false, fmt.Errorf("list standings for %s: %w", competitionCode, err)
	}
	for _, row := range rows {
		if row.TeamID == teamID {
			return row, true, nil
		}
	}
	return standing.Standing{}, false, nil
}

// resultsForTeam converts finished matches into W/D/L from the team's
// perspective, ordered oldest first so the most recent result carries
// the highest weight.
func resultsForTeam(teamID int64, recent []match.Match) []prediction.Result {
	results := make([]prediction.Result, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		m := recent[i]
		if m.HomeScore == nil || m.AwayScore == nil {
			continue
		}
		switch {
		case *m.HomeScore == *m.AwayScore:
			results = append(results, prediction.ResultDraw)
		case (m.HomeTeamID == teamID) == (*m.HomeScore > *m.AwayScore):
			results = append(results, prediction.ResultWin)
		default:
			results = append(results, prediction.ResultLoss)
		}
	}
	return results
}

func formString(results []prediction.Result) string {
	out := ""
	for i := len(results) - 1; i >= 0; i-- {
		if out != "" {
			out += ","
		}
		out += string(results[i])
	}
	return out
}

func teamNameFromMatches(teamID int64, rows []match.Match) string {
	for _, m := range rows {
		if m.HomeTeamID == teamID {
			return m.HomeTeamName
		}
		if m.AwayTeamID == teamID {
			return m.AwayTeamName
		}
	}
	return ""
}

func seasonStats(row standing.Standing) prediction.TeamSeasonStats {
	return prediction.TeamSeasonStats{
		Played:       row.Played,
		GoalsFor:     row.GoalsFor,
		GoalsAgainst: row.GoalsAgainst,
	}
}

// outcomeProbabilities spreads win probability by the form gap around a
// home-advantage baseline, leaving a fixed draw share.
func outcomeProbabilities(homeForm, awayForm int) (pHome, pDraw, pAway float64) {
	const drawShare = 0.26
	const homeAdvantage = 0.06

	remaining := 1 - drawShare
	share := 0.5 + homeAdvantage + float64(homeForm-awayForm)/400
	if share < 0.1 {
		share = 0.1
	}
	if share > 0.9 {
		share = 0.9
	}
	return remaining * share, drawShare, remaining * (1 - share)
}

func mathConfidence(homeForm, awayForm int) float64 {
	gap := float64(homeForm - awayForm)
	if gap < 0 {
		gap = -gap
	}
	return 0.5 + gap/200
}
