// Package dto defines the HTTP request and response payloads.
package dto

import "github.com/soundprediction/faqmatch/pkg/types"

// MatchRequest is the POST /match payload. Threshold optionally overrides
// the server's configured confidence threshold for this request.
type MatchRequest struct {
	Query     string   `json:"query" binding:"required"`
	Threshold *float64 `json:"threshold,omitempty"`
}

// MatchResponse wraps a match result with the request id assigned by the
// server.
type MatchResponse struct {
	RequestID string             `json:"request_id"`
	Result    *types.MatchResult `json:"result"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
