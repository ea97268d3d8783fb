package dto

// APIResponse is the envelope every JSON endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success wraps data in a successful envelope.
func Success(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// SuccessMessage wraps a message-only success.
func SuccessMessage(message string) APIResponse {
	return APIResponse{Success: true, Message: message}
}

// Failure wraps an error message.
func Failure(message string) APIResponse {
	return APIResponse{Success: false, Error: message}
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// PagedResponse couples list items with their pagination envelope.
type PagedResponse struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}
