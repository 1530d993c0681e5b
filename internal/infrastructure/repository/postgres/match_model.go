package postgres

import (
	"database/sql"
	"time"

	"github.com/matchpulse/football-sync/internal/domain/match"
)

// matchTableModel backs both the matches and match_history tables; the
// two share one row shape and differ only in retention policy.
type matchTableModel struct {
	ID              int64          `db:"id"`
	ExternalID      int64          `db:"external_id"`
	CompetitionCode string         `db:"competition_code"`
	CompetitionName string         `db:"competition_name"`
	HomeTeamID      int64          `db:"home_team_id"`
	HomeTeamName    string         `db:"home_team_name"`
	HomeTeamCrest   string         `db:"home_team_crest"`
	AwayTeamID      int64          `db:"away_team_id"`
	AwayTeamName    string         `db:"away_team_name"`
	AwayTeamCrest   string         `db:"away_team_crest"`
	UTCDate         time.Time      `db:"utc_date"`
	Status          string         `db:"status"`
	Matchday        int            `db:"matchday"`
	HomeScore       sql.NullInt64  `db:"home_score"`
	AwayScore       sql.NullInt64  `db:"away_score"`
	Winner          sql.NullString `db:"winner"`
	RawPayload      []byte         `db:"raw_payload"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

type matchInsertModel struct {
	ExternalID      int64          `db:"external_id"`
	CompetitionCode string         `db:"competition_code"`
	CompetitionName string         `db:"competition_name"`
	HomeTeamID      int64          `db:"home_team_id"`
	HomeTeamName    string         `db:"home_team_name"`
	HomeTeamCrest   string         `db:"home_team_crest"`
	AwayTeamID      int64          `db:"away_team_id"`
	AwayTeamName    string         `db:"away_team_name"`
	AwayTeamCrest   string         `db:"away_team_crest"`
	UTCDate         time.Time      `db:"utc_date"`
	Status          string         `db:"status"`
	Matchday        int            `db:"matchday"`
	HomeScore       *int           `db:"home_score"`
	AwayScore       *int           `db:"away_score"`
	Winner          sql.NullString `db:"winner"`
	RawPayload      []byte         `db:"raw_payload"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func newMatchInsertModel(item match.Match) matchInsertModel {
	return matchInsertModel{
		ExternalID:      item.ExternalID,
		CompetitionCode: item.CompetitionCode,
		CompetitionName: item.CompetitionName,
		HomeTeamID:      item.HomeTeamID,
		HomeTeamName:    item.HomeTeamName,
		HomeTeamCrest:   item.HomeTeamCrest,
		AwayTeamID:      item.AwayTeamID,
		AwayTeamName:    item.AwayTeamName,
		AwayTeamCrest:   item.AwayTeamCrest,
		UTCDate:         item.UTCDate.UTC(),
		Status:          item.Status,
		Matchday:        item.Matchday,
		HomeScore:       item.HomeScore,
		AwayScore:       item.AwayScore,
		Winner:          stringToNullString(item.Winner),
		RawPayload:      item.RawPayload,
		UpdatedAt:       item.UpdatedAt.UTC(),
	}
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ExternalID:      m.ExternalID,
		CompetitionCode: m.CompetitionCode,
		CompetitionName: m.CompetitionName,
		HomeTeamID:      m.HomeTeamID,
		HomeTeamName:    m.HomeTeamName,
		HomeTeamCrest:   m.HomeTeamCrest,
		AwayTeamID:      m.AwayTeamID,
		AwayTeamName:    m.AwayTeamName,
		AwayTeamCrest:   m.AwayTeamCrest,
		UTCDate:         m.UTCDate,
		Status:          m.Status,
		Matchday:        m.Matchday,
		HomeScore:       nullInt64ToIntPtr(m.HomeScore),
		AwayScore:       nullInt64ToIntPtr(m.AwayScore),
		Winner:          m.Winner.String,
		RawPayload:      m.RawPayload,
		UpdatedAt:       m.UpdatedAt,
	}
}

const matchUpsertSuffix = `ON CONFLICT (external_id)
DO UPDATE SET
    competition_code = EXCLUDED.competition_code,
    competition_name = EXCLUDED.competition_name,
    home_team_id = EXCLUDED.home_team_id,
    home_team_name = EXCLUDED.home_team_name,
    home_team_crest = EXCLUDED.home_team_crest,
    away_team_id = EXCLUDED.away_team_id,
    away_team_name = EXCLUDED.away_team_name,
    away_team_crest = EXCLUDED.away_team_crest,
    utc_date = EXCLUDED.utc_date,
    status = EXCLUDED.status,
    matchday = EXCLUDED.matchday,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    winner = EXCLUDED.winner,
    raw_payload = EXCLUDED.raw_payload,
    updated_at = EXCLUDED.updated_at`
