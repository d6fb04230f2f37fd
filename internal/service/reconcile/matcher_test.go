package reconcile

import (
	"testing"
	"time"

	"github.com/fieldops/payroll-backend-go/internal/domain/attendance"
	"github.com/fieldops/payroll-backend-go/internal/domain/job"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locPtr(s string) *string { return &s }

func assignment(jobID string, locationID *string) job.Assignment {
	return job.Assignment{
		JobID:       jobID,
		EmployeeID:  "emp-1",
		LocationID:  locationID,
		ServiceDate: time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC),
	}
}

func TestLocationFirstMatcher_PrefersEventLocation(t *testing.T) {
	t.Parallel()
	m := NewLocationFirstMatcher()
	candidates := []job.Assignment{
		assignment("job-a", locPtr("loc-1")),
		assignment("job-b", locPtr("loc-2")),
		assignment("job-c", locPtr("loc-2")),
	}
	ev := attendance.Event{EmployeeID: "emp-1", LocationID: locPtr("loc-2")}

	match, ok := m.Match(ev, candidates)
	require.True(t, ok)
	assert.Equal(t, "job-b", match.JobID, "first arrival at the event's location wins")
}

func TestLocationFirstMatcher_FallsBackToFirstOfDay(t *testing.T) {
	t.Parallel()
	m := NewLocationFirstMatcher()
	candidates := []job.Assignment{
		assignment("job-a", locPtr("loc-1")),
		assignment("job-b", nil),
	}

	// Event at a location with no matching assignment.
	ev := attendance.Event{EmployeeID: "emp-1", LocationID: locPtr("loc-9")}
	match, ok := m.Match(ev, candidates)
	require.True(t, ok)
	assert.Equal(t, "job-a", match.JobID)

	// Event with no location at all.
	ev = attendance.Event{EmployeeID: "emp-1"}
	match, ok = m.Match(ev, candidates)
	require.True(t, ok)
	assert.Equal(t, "job-a", match.JobID)
}

func TestLocationFirstMatcher_NoCandidates(t *testing.T) {
	t.Parallel()
	m := NewLocationFirstMatcher()

	_, ok := m.Match(attendance.Event{EmployeeID: "emp-1"}, nil)
	assert.False(t, ok)
}
