package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarion/backend/internal/app/models"
)

func TestComputeSubscriptionWindowFreePlan(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	start, end := ComputeSubscriptionWindow(models.PlanFree, now)

	assert.Equal(t, now, start)
	assert.Nil(t, end)
}

func TestComputeSubscriptionWindowPaidPlans(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	for _, plan := range []models.Plan{models.PlanExplorer, models.PlanCosmos} {
		start, end := ComputeSubscriptionWindow(plan, now)
		assert.Equal(t, now, start)
		require.NotNil(t, end, "plan %s", plan)
		assert.Equal(t, time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC), *end)
	}
}

func TestComputeSubscriptionWindowMonthEndNormalization(t *testing.T) {
	// AddDate normalizes Jan 31 + 1 month to Mar 3 in a non-leap year
	// pattern; 2026 Jan 31 + 1 month lands on Mar 3.
	now := time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)

	_, end := ComputeSubscriptionWindow(models.PlanExplorer, now)

	require.NotNil(t, end)
	assert.Equal(t, time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC), *end)
}
