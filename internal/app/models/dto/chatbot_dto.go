package dto

// ChatRequest is one question for the chatbot.
type ChatRequest struct {
	Message string `json:"message" binding:"required,min=1,max=4000"`
}

// ChatResponse is the model's reply plus the caller's quota state.
type ChatResponse struct {
	Reply string      `json:"reply"`
	Quota QuotaStatus `json:"quota"`
}

// QuotaStatus exposes the caller's daily question budget. Limit is -1 for
// unlimited plans.
type QuotaStatus struct {
	Used  int    `json:"used"`
	Limit int    `json:"limit"`
	Plan  string `json:"plan"`
}
