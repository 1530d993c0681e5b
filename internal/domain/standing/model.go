package standing

import "time"

// Standing is one team's table row within one competition, keyed by
// (competition code, team id). Rows are replaced wholesale per competition
// on each standings sync.
type Standing struct {
	CompetitionCode string
	TeamID          int64
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
	UpdatedAt       time.Time
}
