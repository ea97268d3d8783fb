package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanDailyChatbotQuota(t *testing.T) {
	assert.Equal(t, 5, PlanFree.DailyChatbotQuota())
	assert.Equal(t, 25, PlanExplorer.DailyChatbotQuota())
	assert.Equal(t, UnlimitedQuota, PlanCosmos.DailyChatbotQuota())
	assert.Equal(t, 0, Plan("bogus").DailyChatbotQuota())
}

func TestPlanHasFeature(t *testing.T) {
	assert.True(t, PlanFree.HasFeature(FeatureChatbot))
	assert.False(t, PlanFree.HasFeature(FeatureNightCamps))
	assert.False(t, PlanFree.HasFeature(FeatureDataExport))
	assert.False(t, PlanFree.HasFeature(FeatureAdvancedChatbot))

	assert.True(t, PlanExplorer.HasFeature(FeatureChatbot))
	assert.True(t, PlanExplorer.HasFeature(FeatureNightCamps))
	assert.True(t, PlanExplorer.HasFeature(FeatureDataExport))
	assert.False(t, PlanExplorer.HasFeature(FeatureAdvancedChatbot))

	assert.True(t, PlanCosmos.HasFeature(FeatureChatbot))
	assert.True(t, PlanCosmos.HasFeature(FeatureAdvancedChatbot))
	assert.True(t, PlanCosmos.HasFeature(FeatureNightCamps))
	assert.True(t, PlanCosmos.HasFeature(FeatureDataExport))
}

func TestPlanIsPaid(t *testing.T) {
	assert.False(t, PlanFree.IsPaid())
	assert.True(t, PlanExplorer.IsPaid())
	assert.True(t, PlanCosmos.IsPaid())
}

func TestParsePlan(t *testing.T) {
	p, ok := ParsePlan("explorer")
	assert.True(t, ok)
	assert.Equal(t, PlanExplorer, p)

	_, ok = ParsePlan("premium")
	assert.False(t, ok)
}

func TestRoleIsElevated(t *testing.T) {
	elevated := map[Role]bool{RoleAdmin: true, RoleModerator: true}
	for _, r := range AllRoles {
		assert.Equal(t, elevated[r], r.IsElevated(), "role %s", r)
	}
}

func TestParseRoleCoversAllRoles(t *testing.T) {
	for _, r := range AllRoles {
		parsed, ok := ParseRole(string(r))
		assert.True(t, ok, "role %s", r)
		assert.Equal(t, r, parsed)
	}
	_, ok := ParseRole("superuser")
	assert.False(t, ok)
}
