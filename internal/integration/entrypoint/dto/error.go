package dto

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// MessageResponse represents a plain informational response.
type MessageResponse struct {
	Message string `json:"message"`
	Version string `json:"version,omitempty"`
	Docs    string `json:"docs,omitempty"`
}
