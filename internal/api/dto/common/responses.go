package common

// StatusResponse is the wire shape for successful submissions
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the wire shape for every failure class
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewOKResponse creates a success response, optionally with a message
func NewOKResponse(message string) StatusResponse {
	return StatusResponse{
		Status:  "ok",
		Message: message,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{
		Error: message,
	}
}
