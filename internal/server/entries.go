package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HenryKun55/ponto/internal/datekey"
	entrydomain "github.com/HenryKun55/ponto/internal/timeentry/domain"
)

// A punch whose submitted time drifts more than this from the capture
// time is flagged as adjusted in the admin tables.
const adjustedThreshold = 2 * time.Minute

type adjustedFlags struct {
	MorningIn    bool `json:"morning_clock_in"`
	MorningOut   bool `json:"morning_clock_out"`
	AfternoonIn  bool `json:"afternoon_clock_in"`
	AfternoonOut bool `json:"afternoon_clock_out"`
}

type entryView struct {
	entrydomain.Entry
	Worked   string        `json:"worked"`
	Hours    float64       `json:"hours"`
	Adjusted adjustedFlags `json:"adjusted"`
}

func newEntryView(entry entrydomain.Entry) entryView {
	total := entrydomain.DailyTotal(entry)
	return entryView{
		Entry:  entry,
		Worked: total.String(),
		Hours:  total.Hours(),
		Adjusted: adjustedFlags{
			MorningIn:    isAdjusted(entry.MorningIn, entry.MorningInReal),
			MorningOut:   isAdjusted(entry.MorningOut, entry.MorningOutReal),
			AfternoonIn:  isAdjusted(entry.AfternoonIn, entry.AfternoonInReal),
			AfternoonOut: isAdjusted(entry.AfternoonOut, entry.AfternoonOutReal),
		},
	}
}

func isAdjusted(submitted, real *time.Time) bool {
	if submitted == nil || real == nil {
		return false
	}
	drift := submitted.Sub(*real)
	if drift < 0 {
		drift = -drift
	}
	return drift > adjustedThreshold
}

func (s *Server) TodayEntry(c *gin.Context) {
	employee := strings.TrimSpace(c.Query("employee"))
	if employee == "" {
		AbortWithError(c, newValidationError("employee", "invalid_employee", "employee is required"))
		return
	}

	entry, err := s.clockSvc.Today(c.Request.Context(), employee)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if entry == nil {
		// No punch yet today; the form renders an empty day.
		c.JSON(http.StatusOK, gin.H{"entry": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": newEntryView(*entry)})
}

func (s *Server) ListEntries(c *gin.Context) {
	filter := entrydomain.ListFilter{}
	if employee := strings.TrimSpace(c.Query("employee")); employee != "" {
		filter.EmployeeIn = strings.Split(employee, ",")
	}

	for _, bound := range []struct {
		param string
		dest  *string
	}{
		{"from", &filter.DateFrom},
		{"to", &filter.DateTo},
	} {
		raw := strings.TrimSpace(c.Query(bound.param))
		if raw == "" {
			continue
		}
		key, err := datekey.Normalize(raw)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		*bound.dest = key.String()
	}

	entries, err := s.clockSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	views := make([]entryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, newEntryView(entry))
	}
	c.JSON(http.StatusOK, gin.H{"entries": views})
}
