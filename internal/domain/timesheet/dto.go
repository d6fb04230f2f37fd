package timesheet

import "time"

// Window is the [Start, End) range of attendance events processed by one
// reconciliation run.
type Window struct {
	Start time.Time
	End   time.Time
}

// Validate checks the window is well-formed.
func (w Window) Validate() error {
	if !w.Start.Before(w.End) {
		return ErrInvalidWindow
	}
	return nil
}

// ReconcileResult reports what one run did with each event in the window.
// Skips are counted, never raised: one malformed event must not abort the
// rest of the window.
type ReconcileResult struct {
	Created          int `json:"created"`
	SkippedDuplicate int `json:"skipped_duplicate"`
	SkippedNoMatch   int `json:"skipped_no_match"`
	SkippedNoRate    int `json:"skipped_no_rate"`
	Total            int `json:"total"`
}

// Skipped is the sum of all skip buckets.
func (r ReconcileResult) Skipped() int {
	return r.SkippedDuplicate + r.SkippedNoMatch + r.SkippedNoRate
}
