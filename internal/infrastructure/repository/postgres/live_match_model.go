package postgres

import (
	"database/sql"
	"time"

	"github.com/matchpulse/football-sync/internal/domain/livematch"
)

type liveMatchTableModel struct {
	ID              int64         `db:"id"`
	ExternalID      int64         `db:"external_id"`
	CompetitionCode string        `db:"competition_code"`
	HomeTeamID      int64         `db:"home_team_id"`
	HomeTeamName    string        `db:"home_team_name"`
	AwayTeamID      int64         `db:"away_team_id"`
	AwayTeamName    string        `db:"away_team_name"`
	UTCDate         time.Time     `db:"utc_date"`
	Status          string        `db:"status"`
	Minute          sql.NullInt64 `db:"minute"`
	HomeScore       sql.NullInt64 `db:"home_score"`
	AwayScore       sql.NullInt64 `db:"away_score"`
	HalfTimeHome    sql.NullInt64 `db:"half_time_home"`
	HalfTimeAway    sql.NullInt64 `db:"half_time_away"`
	CreatedAt       time.Time     `db:"created_at"`
	LastUpdatedAt   time.Time     `db:"last_updated_at"`
}

type liveMatchInsertModel struct {
	ExternalID      int64     `db:"external_id"`
	CompetitionCode string    `db:"competition_code"`
	HomeTeamID      int64     `db:"home_team_id"`
	HomeTeamName    string    `db:"home_team_name"`
	AwayTeamID      int64     `db:"away_team_id"`
	AwayTeamName    string    `db:"away_team_name"`
	UTCDate         time.Time `db:"utc_date"`
	Status          string    `db:"status"`
	Minute          *int      `db:"minute"`
	HomeScore       *int      `db:"home_score"`
	AwayScore       *int      `db:"away_score"`
	HalfTimeHome    *int      `db:"half_time_home"`
	HalfTimeAway    *int      `db:"half_time_away"`
	LastUpdatedAt   time.Time `db:"last_updated_at"`
}

func newLiveMatchInsertModel(item livematch.LiveMatch) liveMatchInsertModel {
	return liveMatchInsertModel{
		ExternalID:      item.ExternalID,
		CompetitionCode: item.CompetitionCode,
		HomeTeamID:      item.HomeTeamID,
		HomeTeamName:    item.HomeTeamName,
		AwayTeamID:      item.AwayTeamID,
		AwayTeamName:    item.AwayTeamName,
		UTCDate:         item.UTCDate.UTC(),
		Status:          item.Status,
		Minute:          item.Minute,
		HomeScore:       item.HomeScore,
		AwayScore:       item.AwayScore,
		HalfTimeHome:    item.HalfTimeHome,
		HalfTimeAway:    item.HalfTimeAway,
		LastUpdatedAt:   item.LastUpdatedAt.UTC(),
	}
}

func (m liveMatchTableModel) toDomain() livematch.LiveMatch {
	return livematch.LiveMatch{
		ExternalID:      m.ExternalID,
		CompetitionCode: m.CompetitionCode,
		HomeTeamID:      m.HomeTeamID,
		HomeTeamName:    m.HomeTeamName,
		AwayTeamID:      m.AwayTeamID,
		AwayTeamName:    m.AwayTeamName,
		UTCDate:         m.UTCDate,
		Status:          m.Status,
		Minute:          nullInt64ToIntPtr(m.Minute),
		HomeScore:       nullInt64ToIntPtr(m.HomeScore),
		AwayScore:       nullInt64ToIntPtr(m.AwayScore),
		HalfTimeHome:    nullInt64ToIntPtr(m.HalfTimeHome),
		HalfTimeAway:    nullInt64ToIntPtr(m.HalfTimeAway),
		LastUpdatedAt:   m.LastUpdatedAt,
	}
}

const liveMatchUpsertSuffix = `ON CONFLICT (external_id)
DO UPDATE SET
    competition_code = EXCLUDED.competition_code,
    home_team_id = EXCLUDED.home_team_id,
    home_team_name = EXCLUDED.home_team_name,
    away_team_id = EXCLUDED.away_team_id,
    away_team_name = EXCLUDED.away_team_name,
    utc_date = EXCLUDED.utc_date,
    status = EXCLUDED.status,
    minute = EXCLUDED.minute,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    half_time_home = EXCLUDED.half_time_home,
    half_time_away = EXCLUDED.half_time_away,
    last_updated_at = EXCLUDED.last_updated_at`
