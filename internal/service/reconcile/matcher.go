package reconcile

import (
	"github.com/fieldops/payroll-backend-go/internal/domain/attendance"
	"github.com/fieldops/payroll-backend-go/internal/domain/job"
)

// MatchStrategy pairs an attendance event with the job assignment it most
// likely belongs to. Candidates are the employee's assignments on the event's
// work day, in schedule arrival order. Returning false skips the event.
type MatchStrategy interface {
	Match(event attendance.Event, candidates []job.Assignment) (job.Assignment, bool)
}

// LocationFirstMatcher is the default strategy: prefer assignments at the
// event's location, and among ties take the first by arrival order. Events
// without a location (or without a location match) fall back to the first
// assignment of the day. Proximity in time is deliberately not considered; a
// same-day pair of assignments at one location is indistinguishable to this
// strategy.
type LocationFirstMatcher struct{}

func NewLocationFirstMatcher() MatchStrategy {
	return LocationFirstMatcher{}
}

func (LocationFirstMatcher) Match(event attendance.Event, candidates []job.Assignment) (job.Assignment, bool) {
	if len(candidates) == 0 {
		return job.Assignment{}, false
	}

	if event.LocationID != nil {
		for _, cand := range candidates {
			if cand.LocationID != nil && *cand.LocationID == *event.LocationID {
				return cand, true
			}
		}
	}

	return candidates[0], true
}
