// Package responses holds the JSON error envelopes shared by the
// middlewares and the boundary error handler.
package responses

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
	Error   string   `json:"error,omitempty"`
}
