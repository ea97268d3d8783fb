package models

// Plan is the closed set of subscription tiers.
type Plan string

const (
	PlanFree     Plan = "free"
	PlanExplorer Plan = "explorer"
	PlanCosmos   Plan = "cosmos"
)

// UnlimitedQuota is the sentinel for plans without a daily chatbot cap.
const UnlimitedQuota = -1

// Feature is a named capability unlocked by one or more plans.
type Feature string

const (
	FeatureChatbot         Feature = "chatbot"
	FeatureAdvancedChatbot Feature = "advanced_chatbot"
	FeatureNightCamps      Feature = "night_camps"
	FeatureDataExport      Feature = "data_export"
)

// SubscriptionStatus tracks the lifecycle of a paid plan on an account.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionPending   SubscriptionStatus = "pending"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

// IsValid reports whether p is a known plan.
func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanExplorer, PlanCosmos:
		return true
	}
	return false
}

// IsPaid reports whether p requires an active subscription.
func (p Plan) IsPaid() bool {
	switch p {
	case PlanFree:
		return false
	case PlanExplorer, PlanCosmos:
		return true
	}
	return false
}

// DailyChatbotQuota returns the number of chatbot questions per calendar
// day, or UnlimitedQuota.
func (p Plan) DailyChatbotQuota() int {
	switch p {
	case PlanFree:
		return 5
	case PlanExplorer:
		return 25
	case PlanCosmos:
		return UnlimitedQuota
	}
	return 0
}

// HasFeature reports whether p unlocks the named feature.
func (p Plan) HasFeature(f Feature) bool {
	switch p {
	case PlanFree:
		return f == FeatureChatbot
	case PlanExplorer:
		return f == FeatureChatbot || f == FeatureNightCamps || f == FeatureDataExport
	case PlanCosmos:
		switch f {
		case FeatureChatbot, FeatureAdvancedChatbot, FeatureNightCamps, FeatureDataExport:
			return true
		}
		return false
	}
	return false
}

// ParsePlan converts a string into a Plan, reporting whether it is valid.
func ParsePlan(s string) (Plan, bool) {
	p := Plan(s)
	return p, p.IsValid()
}
