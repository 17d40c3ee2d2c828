// Package handlers implements the HTTP endpoint handlers.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/faqmatch"
	"github.com/soundprediction/faqmatch/pkg/server/dto"
	"github.com/soundprediction/faqmatch/pkg/types"
)

// MatchHandler handles match requests.
type MatchHandler struct {
	matcher faqmatch.QueryMatcher
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(matcher faqmatch.QueryMatcher) *MatchHandler {
	return &MatchHandler{matcher: matcher}
}

// Match handles POST /match. Abstain is a successful response with nil
// match fields, never an error status.
func (h *MatchHandler) Match(c *gin.Context) {
	var req dto.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	result, err := h.match(c, req)
	if err != nil {
		if errors.Is(err, faqmatch.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "invalid_request",
				Message: "query field must contain text",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "match_failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.MatchResponse{
		RequestID: c.GetString(RequestIDKey),
		Result:    result,
	})
}

func (h *MatchHandler) match(c *gin.Context, req dto.MatchRequest) (*types.MatchResult, error) {
	if req.Threshold != nil {
		return h.matcher.MatchWithThreshold(c.Request.Context(), req.Query, *req.Threshold)
	}
	return h.matcher.Match(c.Request.Context(), req.Query)
}
