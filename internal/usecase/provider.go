package usecase

import (
	"context"
	"time"
)

// SourceProvider is the outbound port to the football-data API. One call
// per method; retry and throttling policy belong to the caller.
type SourceProvider interface {
	ListCompetitions(ctx context.Context) ([]ExternalCompetition, error)
	ListMatches(ctx context.Context, competitionCode string, filter MatchFilter) ([]ExternalMatch, error)
	// ListLiveMatches issues one aggregate call with a multi-status filter
	// covering every tracked competition.
	ListLiveMatches(ctx context.Context, competitionCodes []string) ([]ExternalMatch, error)
	GetStandings(ctx context.Context, competitionCode string) ([]ExternalStanding, error)
	ListTeams(ctx context.Context, competitionCode string) ([]ExternalTeam, error)
	GetHeadToHead(ctx context.Context, matchID int64, limit int) ([]ExternalMatch, error)
}

// MatchFilter narrows a match listing. Nil dates mean no date bound.
type MatchFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Statuses []string
}

type ExternalCompetition struct {
	Code   string
	Name   string
	Emblem string
}

type ExternalTeam struct {
	ExternalID int64
	Name       string
	ShortName  string
	Crest      string
}

type ExternalMatch struct {
	ExternalID      int64
	CompetitionCode string
	CompetitionName string
	HomeTeamID      int64
	HomeTeamName    string
	HomeTeamCrest   string
	AwayTeamID      int64
	AwayTeamName    string
	AwayTeamCrest   string
	KickoffAt       time.Time
	Status          string
	Matchday        int
	Minute          *int
	HomeScore       *int
	AwayScore       *int
	HalfTimeHome    *int
	HalfTimeAway    *int
	Winner          string
	RawPayload      []byte
}

type ExternalStanding struct {
	CompetitionCode string
	TeamExternalID  int64
	TeamName        string
	ShortName       string
	Crest           string
	Position        int
	Played          int
	Won             int
	Draw            int
	Lost            int
	Points          int
	GoalsFor        int
	GoalsAgainst    int
	GoalDifference  int
	Form            string
}
