package models

// ErrorResponse is the body of every failed analysis request.
// The error key is read by the client; type lets it pick a message.
type ErrorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type,omitempty"`
}

// HealthResponse is returned by the health check endpoint
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Model     string `json:"model,omitempty"`
}
