package server

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HenryKun55/ponto/internal/datekey"
	reportdomain "github.com/HenryKun55/ponto/internal/report/domain"
)

func (s *Server) ReportSummary(c *gin.Context) {
	if s.reportSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	employee := strings.TrimSpace(c.Query("employee"))
	if employee == "" {
		AbortWithError(c, newValidationError("employee", "invalid_employee", "employee is required"))
		return
	}

	rng, err := parseReportRange(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	report, err := s.reportSvc.Summary(c.Request.Context(), employee, rng)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if c.Query("format") == "csv" {
		writeCSV(c, fmt.Sprintf("hours_%s.csv", employee), &report)
		return
	}

	c.JSON(http.StatusOK, report)
}

func parseReportRange(c *gin.Context) (reportdomain.Range, error) {
	var rng reportdomain.Range
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		key, err := datekey.Normalize(raw)
		if err != nil {
			return reportdomain.Range{}, newValidationError("from", "invalid_date", "from must be YYYY-MM-DD or DD/MM/YYYY")
		}
		rng.From = key
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		key, err := datekey.Normalize(raw)
		if err != nil {
			return reportdomain.Range{}, newValidationError("to", "invalid_date", "to must be YYYY-MM-DD or DD/MM/YYYY")
		}
		rng.To = key
	}
	if !rng.From.IsZero() && !rng.To.IsZero() && rng.To.Before(rng.From) {
		return reportdomain.Range{}, newValidationError("range", "invalid_range", "from must be before to")
	}
	return rng, nil
}

func writeCSV(c *gin.Context, filename string, data interface{}) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	switch v := data.(type) {
	case *reportdomain.Report:
		_ = writer.Write([]string{"Date", "Hours", "Worked", "First Clock In", "Last Clock Out"})
		for _, day := range v.Series {
			_ = writer.Write([]string{
				day.DateKey,
				strconv.FormatFloat(day.Hours, 'f', 2, 64),
				day.Worked,
				formatClock(day.FirstClockIn),
				formatClock(day.LastClockOut),
			})
		}
		_ = writer.Write([]string{})
		_ = writer.Write([]string{"Total Hours", strconv.FormatFloat(v.Stats.TotalHours, 'f', 2, 64)})
		_ = writer.Write([]string{"Average Hours", strconv.FormatFloat(v.Stats.AverageHours, 'f', 2, 64)})
		_ = writer.Write([]string{"Days", fmt.Sprintf("%d", v.Stats.Days)})
	default:
		// Fallback for unknown types or just empty CSV
	}
}

func formatClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04")
}
