package jobrun

import "time"

// Sync job kinds.
const (
	KindFixtures  = "fixtures"
	KindLive      = "live"
	KindStandings = "standings"
	KindHistory   = "history"
)

func Kinds() []string {
	return []string{KindFixtures, KindLive, KindStandings, KindHistory}
}

func IsValidKind(kind string) bool {
	switch kind {
	case KindFixtures, KindLive, KindStandings, KindHistory:
		return true
	default:
		return false
	}
}

// Run is the audit record of one sync job execution, kept as the latest
// run per kind for the admin status surface.
type Run struct {
	RunID        string
	Kind         string
	Success      bool
	Synced       int
	TotalFetched int
	UpsertErrors int
	CleanedUp    int
	FetchErrors  []string
	DateFrom     *time.Time
	DateTo       *time.Time
	StartedAt    time.Time
	FinishedAt   time.Time
	TraceID      string
	SpanID       string
}
