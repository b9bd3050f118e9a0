package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jobblox/crm-api/internal/domain/entity"
)

// TestCanTransitionJob recorre la tabla de transiciones del ciclo de vida:
// draft → scheduled → in_progress → completed, con cancelled y on_hold como
// estados laterales. completed y cancelled son terminales.
func TestCanTransitionJob(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{entity.JobStatusDraft, entity.JobStatusScheduled, true},
		{entity.JobStatusDraft, entity.JobStatusCancelled, true},
		{entity.JobStatusDraft, entity.JobStatusInProgress, false},
		{entity.JobStatusDraft, entity.JobStatusCompleted, false},
		{entity.JobStatusScheduled, entity.JobStatusInProgress, true},
		{entity.JobStatusScheduled, entity.JobStatusOnHold, true},
		{entity.JobStatusScheduled, entity.JobStatusCompleted, false},
		{entity.JobStatusInProgress, entity.JobStatusCompleted, true},
		{entity.JobStatusInProgress, entity.JobStatusOnHold, true},
		{entity.JobStatusInProgress, entity.JobStatusDraft, false},
		{entity.JobStatusOnHold, entity.JobStatusScheduled, true},
		{entity.JobStatusOnHold, entity.JobStatusInProgress, true},
		{entity.JobStatusOnHold, entity.JobStatusCompleted, false},
		{entity.JobStatusCompleted, entity.JobStatusInProgress, false},
		{entity.JobStatusCompleted, entity.JobStatusCancelled, false},
		{entity.JobStatusCancelled, entity.JobStatusScheduled, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, entity.CanTransitionJob(tc.from, tc.to),
			"%s → %s", tc.from, tc.to)
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range entity.ValidRoles {
		assert.True(t, entity.IsValidRole(role))
	}
	assert.False(t, entity.IsValidRole("superuser"))
	assert.False(t, entity.IsValidRole(""))
}
