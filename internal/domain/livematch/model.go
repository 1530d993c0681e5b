package livematch

import "time"

// LiveMatch is one match currently in a live status. Rows are refreshed on
// every live sync tick and purged once no longer reported live or not
// refreshed within the freshness window.
type LiveMatch struct {
	ExternalID      int64
	CompetitionCode string
	HomeTeamID      int64
	HomeTeamName    string
	AwayTeamID      int64
	AwayTeamName    string
	UTCDate         time.Time
	Status          string
	Minute          *int
	HomeScore       *int
	AwayScore       *int
	HalfTimeHome    *int
	HalfTimeAway    *int
	LastUpdatedAt   time.Time
}

// Freshness window after which an unrefreshed live row is considered stale.
const StaleAfter = 3 * time.Hour
