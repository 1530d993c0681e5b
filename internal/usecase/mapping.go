package usecase

import (
	"sort"
	"strings"
	"time"

	"github.com/matchpulse/football-sync/internal/domain/livematch"
	"github.com/matchpulse/football-sync/internal/domain/match"
	"github.com/matchpulse/football-sync/internal/domain/standing"
)

// mapExternalMatchesToDomain validates and normalizes fetched matches.
// Duplicate external ids within one batch collapse last-wins; output
// ordering is deterministic (kickoff, then id).
func mapExternalMatchesToDomain(items []ExternalMatch, now time.Time) []match.Match {
	byID := make(map[int64]match.Match, len(items))
	for _, item := range items {
		if item.ExternalID <= 0 || item.KickoffAt.IsZero() {
			continue
		}
		byID[item.ExternalID] = match.Match{
			ExternalID:      item.ExternalID,
			CompetitionCode: strings.TrimSpace(item.CompetitionCode),
			CompetitionName: strings.TrimSpace(item.CompetitionName),
			HomeTeamID:      item.HomeTeamID,
			HomeTeamName:    strings.TrimSpace(item.HomeTeamName),
			HomeTeamCrest:   strings.TrimSpace(item.HomeTeamCrest),
			AwayTeamID:      item.AwayTeamID,
			AwayTeamName:    strings.TrimSpace(item.AwayTeamName),
			AwayTeamCrest:   strings.TrimSpace(item.AwayTeamCrest),
			UTCDate:         item.KickoffAt.UTC(),
			Status:          match.NormalizeStatus(item.Status),
			Matchday:        maxInt(item.Matchday, 0),
			HomeScore:       cloneIntPtr(item.HomeScore),
			AwayScore:       cloneIntPtr(item.AwayScore),
			Winner:          strings.ToUpper(strings.TrimSpace(item.Winner)),
			RawPayload:      item.RawPayload,
			UpdatedAt:       now,
		}
	}

	out := make([]match.Match, 0, len(byID))
	for _, item := range byID {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].UTCDate.Equal(out[j].UTCDate) {
			return out[i].UTCDate.Before(out[j].UTCDate)
		}
		return out[i].ExternalID < out[j].ExternalID
	})
	return out
}

// mapExternalMatchesToLive keeps only matches in a live status and shapes
// them for the live cache table.
func mapExternalMatchesToLive(items []ExternalMatch, now time.Time) []livematch.LiveMatch {
	byID := make(map[int64]livematch.LiveMatch, len(items))
	for _, item := range items {
		if item.ExternalID <= 0 {
			continue
		}
		status := match.NormalizeStatus(item.Status)
		if !match.IsLiveStatus(status) {
			continue
		}
		byID[item.ExternalID] = livematch.LiveMatch{
			ExternalID:      item.ExternalID,
			CompetitionCode: strings.TrimSpace(item.CompetitionCode),
			HomeTeamID:      item.HomeTeamID,
			HomeTeamName:    strings.TrimSpace(item.HomeTeamName),
			AwayTeamID:      item.AwayTeamID,
			AwayTeamName:    strings.TrimSpace(item.AwayTeamName),
			UTCDate:         item.KickoffAt.UTC(),
			Status:          status,
			Minute:          cloneIntPtr(item.Minute),
			HomeScore:       cloneIntPtr(item.HomeScore),
			AwayScore:       cloneIntPtr(item.AwayScore),
			HalfTimeHome:    cloneIntPtr(item.HalfTimeHome),
			HalfTimeAway:    cloneIntPtr(item.HalfTimeAway),
			LastUpdatedAt:   now,
		}
	}

	out := make([]livematch.LiveMatch, 0, len(byID))
	for _, item := range byID {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExternalID < out[j].ExternalID
	})
	return out
}

func mapExternalStandingsToDomain(code string, items []ExternalStanding, now time.Time) []standing.Standing {
	out := make([]standing.Standing, 0, len(items))
	for _, item := range items {
		if item.Position <= 0 || item.TeamExternalID <= 0 {
			continue
		}
		row := standing.Standing{
			CompetitionCode: strings.TrimSpace(code),
			TeamID:          item.TeamExternalID,
			TeamName:        strings.TrimSpace(item.TeamName),
			ShortName:       strings.TrimSpace(item.ShortName),
			Crest:           strings.TrimSpace(item.Crest),
			Position:        item.Position,
			Played:          maxInt(item.Played, 0),
			Won:             maxInt(item.Won, 0),
			Draw:            maxInt(item.Draw, 0),
			Lost:            maxInt(item.Lost, 0),
			Points:          maxInt(item.Points, 0),
			GoalsFor:        maxInt(item.GoalsFor, 0),
			GoalsAgainst:    maxInt(item.GoalsAgainst, 0),
			GoalDifference:  item.GoalDifference,
			Form:            strings.ToUpper(strings.TrimSpace(item.Form)),
			UpdatedAt:       now,
		}
		if row.GoalDifference == 0 && (row.GoalsFor != 0 || row.GoalsAgainst != 0) {
			row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func cloneIntPtr(value *int) *int {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}
