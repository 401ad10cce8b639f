package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	entrydomain "github.com/HenryKun55/ponto/internal/timeentry/domain"
)

type punchRequest struct {
	Employee string  `json:"employee"`
	Time     string  `json:"time"`
	Period   *string `json:"period"`
}

// Accepted punch time layouts. Bare clock times are combined with the
// server's current date.
var punchTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"15:04:05",
	"15:04",
}

func (s *Server) ClockIn(c *gin.Context) {
	s.punch(c, s.clockSvc.ClockIn)
}

func (s *Server) ClockOut(c *gin.Context) {
	s.punch(c, s.clockSvc.ClockOut)
}

func (s *Server) punch(c *gin.Context, apply func(context.Context, entrydomain.ClockRequest) (entrydomain.Result, error)) {
	if s.clockSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	var req punchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	employee := strings.TrimSpace(req.Employee)
	if employee == "" {
		AbortWithError(c, newValidationError("employee", "invalid_employee", "employee is required"))
		return
	}
	if !s.punchRate.Allow(employee) {
		AbortWithError(c, &APIError{Status: http.StatusTooManyRequests, Code: "too_many_punches", Message: "too many punches, slow down"})
		return
	}

	submitted, err := parsePunchTime(req.Time, time.Now().UTC())
	if err != nil {
		AbortWithError(c, newValidationError("time", "invalid_time", "time must be HH:MM or RFC3339"))
		return
	}

	var period *entrydomain.Period
	if req.Period != nil && strings.TrimSpace(*req.Period) != "" {
		parsed, err := entrydomain.ParsePeriod(*req.Period)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		period = &parsed
	}

	result, err := apply(c.Request.Context(), entrydomain.ClockRequest{
		Employee:  employee,
		Submitted: submitted,
		Period:    period,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// parsePunchTime parses a submitted punch time. A bare clock time keeps
// the employee's picked hour and minute on today's date.
func parsePunchTime(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now, nil
	}

	var lastErr error
	for _, layout := range punchTimeLayouts {
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			lastErr = err
			continue
		}
		if layout == "15:04" || layout == "15:04:05" {
			year, month, day := now.Date()
			return time.Date(year, month, day, parsed.Hour(), parsed.Minute(), parsed.Second(), 0, time.UTC), nil
		}
		return parsed.UTC(), nil
	}
	return time.Time{}, lastErr
}
