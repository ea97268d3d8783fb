package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stellarion/backend/internal/app/models"
)

func TestEffectiveUsageSameDay(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	user := &models.User{
		Plan:                      models.PlanFree,
		ChatbotQuestionsUsed:      4,
		ChatbotQuestionsResetDate: "2026-03-02",
	}

	assert.Equal(t, 4, EffectiveUsage(user, now))
}

func TestEffectiveUsageResetsOnNewDay(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 1, 0, time.UTC)
	user := &models.User{
		Plan:                      models.PlanFree,
		ChatbotQuestionsUsed:      5,
		ChatbotQuestionsResetDate: "2026-03-01",
	}

	assert.Equal(t, 0, EffectiveUsage(user, now))
}

func TestEffectiveUsageUsesUTCBoundary(t *testing.T) {
	// 03:00 on the 2nd in Colombo is still late on the 1st in UTC, so a
	// counter stamped 2026-03-01 has not reset yet.
	colombo := time.FixedZone("UTC+5:30", 5*3600+1800)
	now := time.Date(2026, 3, 2, 3, 0, 0, 0, colombo)
	user := &models.User{
		Plan:                      models.PlanFree,
		ChatbotQuestionsUsed:      3,
		ChatbotQuestionsResetDate: "2026-03-01",
	}

	assert.Equal(t, 3, EffectiveUsage(user, now))
}
