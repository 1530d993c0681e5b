package footballdata

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/matchpulse/football-sync/internal/usecase"
)

type competitionsEnvelope struct {
	Competitions []struct {
		ID     int64  `json:"id"`
		Code   string `json:"code"`
		Name   string `json:"name"`
		Emblem string `json:"emblem"`
	} `json:"competitions"`
}

type matchesEnvelope struct {
	Matches []json.RawMessage `json:"matches"`
}

type teamRef struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
	Crest     string `json:"crest"`
}

type scorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type matchItem struct {
	ID          int64  `json:"id"`
	UTCDate     string `json:"utcDate"`
	Status      string `json:"status"`
	Matchday    int    `json:"matchday"`
	Minute      *int   `json:"minute"`
	Competition struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"competition"`
	HomeTeam teamRef `json:"homeTeam"`
	AwayTeam teamRef `json:"awayTeam"`
	Score    struct {
		Winner   string    `json:"winner"`
		FullTime scorePair `json:"fullTime"`
		HalfTime scorePair `json:"halfTime"`
	} `json:"score"`
}

type standingsEnvelope struct {
	Competition struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"competition"`
	Standings []struct {
		Type  string        `json:"type"`
		Table []standingRow `json:"table"`
	} `json:"standings"`
}

type standingRow struct {
	Position       int     `json:"position"`
	Team           teamRef `json:"team"`
	PlayedGames    int     `json:"playedGames"`
	Form           string  `json:"form"`
	Won            int     `json:"won"`
	Draw           int     `json:"draw"`
	Lost           int     `json:"lost"`
	Points         int     `json:"points"`
	GoalsFor       int     `json:"goalsFor"`
	GoalsAgainst   int     `json:"goalsAgainst"`
	GoalDifference int     `json:"goalDifference"`
}

type teamsEnvelope struct {
	Teams []teamRef `json:"teams"`
}

func mapMatchItem(item matchItem, raw []byte) usecase.ExternalMatch {
	return usecase.ExternalMatch{
		ExternalID:      item.ID,
		CompetitionCode: strings.TrimSpace(item.Competition.Code),
		CompetitionName: strings.TrimSpace(item.Competition.Name),
		HomeTeamID:      item.HomeTeam.ID,
		HomeTeamName:    strings.TrimSpace(item.HomeTeam.Name),
		HomeTeamCrest:   strings.TrimSpace(item.HomeTeam.Crest),
		AwayTeamID:      item.AwayTeam.ID,
		AwayTeamName:    strings.TrimSpace(item.AwayTeam.Name),
		AwayTeamCrest:   strings.TrimSpace(item.AwayTeam.Crest),
		KickoffAt:       parseUTCDate(item.UTCDate),
		Status:          strings.TrimSpace(item.Status),
		Matchday:        item.Matchday,
		Minute:          item.Minute,
		HomeScore:       item.Score.FullTime.Home,
		AwayScore:       item.Score.FullTime.Away,
		HalfTimeHome:    item.Score.HalfTime.Home,
		HalfTimeAway:    item.Score.HalfTime.Away,
		Winner:          strings.TrimSpace(item.Score.Winner),
		RawPayload:      raw,
	}
}

func mapStandingRow(code string, row standingRow) usecase.ExternalStanding {
	return usecase.ExternalStanding{
		CompetitionCode: strings.TrimSpace(code),
		TeamExternalID:  row.Team.ID,
		TeamName:        strings.TrimSpace(row.Team.Name),
		ShortName:       firstNonEmpty(strings.TrimSpace(row.Team.ShortName), strings.TrimSpace(row.Team.TLA)),
		Crest:           strings.TrimSpace(row.Team.Crest),
		Position:        row.Position,
		Played:          row.PlayedGames,
		Won:             row.Won,
		Draw:            row.Draw,
		Lost:            row.Lost,
		Points:          row.Points,
		GoalsFor:        row.GoalsFor,
		GoalsAgainst:    row.GoalsAgainst,
		GoalDifference:  row.GoalDifference,
		Form:            strings.TrimSpace(row.Form),
	}
}

func parseUTCDate(raw string) time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z07:00", "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
