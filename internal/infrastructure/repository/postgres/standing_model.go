package postgres

import (
	"time"

	"github.com/matchpulse/football-sync/internal/domain/standing"
)

type standingTableModel struct {
	ID              int64     `db:"id"`
	CompetitionCode string    `db:"competition_code"`
	TeamID          int64     `db:"team_id"`
	TeamName        string    `db:"team_name"`
	ShortName       string    `db:"short_name"`
	Crest           string    `db:"crest"`
	Position        int       `db:"position"`
	Played          int       `db:"played"`
	Won             int       `db:"won"`
	Draw            int       `db:"draw"`
	Lost            int       `db:"lost"`
	Points          int       `db:"points"`
	GoalsFor        int       `db:"goals_for"`
	GoalsAgainst    int       `db:"goals_against"`
	GoalDifference  int       `db:"goal_difference"`
	Form            string    `db:"form"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type standingInsertModel struct {
	CompetitionCode string    `db:"competition_code"`
	TeamID          int64     `db:"team_id"`
	TeamName        string    `db:"team_name"`
	ShortName       string    `db:"short_name"`
	Crest           string    `db:"crest"`
	Position        int       `db:"position"`
	Played          int       `db:"played"`
	Won             int       `db:"won"`
	Draw            int       `db:"draw"`
	Lost            int       `db:"lost"`
	Points          int       `db:"points"`
	GoalsFor        int       `db:"goals_for"`
	GoalsAgainst    int       `db:"goals_against"`
	GoalDifference  int       `db:"goal_difference"`
	Form            string    `db:"form"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func newStandingInsertModel(item standing.Standing) standingInsertModel {
	return standingInsertModel{
		CompetitionCode: item.CompetitionCode,
		TeamID:          item.TeamID,
		TeamName:        item.TeamName,
		ShortName:       item.ShortName,
		Crest:           item.Crest,
		Position:        item.Position,
		Played:          item.Played,
		Won:             item.Won,
		Draw:            item.Draw,
		Lost:            item.Lost,
		Points:          item.Points,
		GoalsFor:        item.GoalsFor,
		GoalsAgainst:    item.GoalsAgainst,
		GoalDifference:  item.GoalDifference,
		Form:            item.Form,
		UpdatedAt:       item.UpdatedAt.UTC(),
	}
}

func (m standingTableModel) toDomain() standing.Standing {
	return standing.Standing{
		CompetitionCode: m.CompetitionCode,
		TeamID:          m.TeamID,
		TeamName:        m.TeamName,
		ShortName:       m.ShortName,
		Crest:           m.Crest,
		Position:        m.Position,
		Played:          m.Played,
		Won:             m.Won,
		Draw:            m.Draw,
		Lost:            m.Lost,
		Points:          m.Points,
		GoalsFor:        m.GoalsFor,
		GoalsAgainst:    m.GoalsAgainst,
		GoalDifference:  m.GoalDifference,
		Form:            m.Form,
		UpdatedAt:       m.UpdatedAt,
	}
}
