package rest

// ErrorResponse is the JSON shape returned for request-level failures.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
