package match

// UpsertFailure records one row that could not be written.
type UpsertFailure struct {
	ExternalID int64
	Err        error
}

// UpsertOutcome is the fold over a best-effort batch upsert: failures are
// collected per row instead of aborting the remaining rows.
type UpsertOutcome struct {
	Succeeded []int64
	Failed    []UpsertFailure
}

func (o UpsertOutcome) SucceededCount() int {
	return len(o.Succeeded)
}

func (o UpsertOutcome) FailedCount() int {
	return len(o.Failed)
}
