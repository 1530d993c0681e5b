package match

import (
	"strings"
	"time"
)

// Match statuses as reported by the upstream feed.
const (
	StatusScheduled = "SCHEDULED"
	StatusTimed     = "TIMED"
	StatusLive      = "LIVE"
	StatusInPlay    = "IN_PLAY"
	StatusPaused    = "PAUSED"
	StatusFinished  = "FINISHED"
	StatusPostponed = "POSTPONED"
	StatusCancelled = "CANCELLED"
)

// Winner indicator values on finished matches.
const (
	WinnerHome = "HOME_TEAM"
	WinnerAway = "AWAY_TEAM"
	WinnerDraw = "DRAW"
)

// Match is one cached fixture keyed by the upstream match id. The same
// shape backs the history table, which holds only finished matches inside
// the trailing retention window.
type Match struct {
	ExternalID      int64
	CompetitionCode string
	CompetitionName string
	HomeTeamID      int64
	HomeTeamName    string
	HomeTeamCrest   string
	AwayTeamID      int64
	AwayTeamName    string
	AwayTeamCrest   string
	UTCDate         time.Time
	Status          string
	Matchday        int
	HomeScore       *int
	AwayScore       *int
	Winner          string
	RawPayload      []byte
	UpdatedAt       time.Time
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsLiveStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusLive, StatusInPlay, StatusPaused:
		return true
	default:
		return false
	}
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, "AWARDED":
		return true
	default:
		return false
	}
}

// LiveStatuses returns the status filter used by the aggregate live-match
// fetch, ordered as the upstream API expects them.
func LiveStatuses() []string {
	return []string{StatusLive, StatusInPlay, StatusPaused}
}
