package domain

import (
	"sort"

	"github.com/HenryKun55/ponto/internal/datekey"
	entrydomain "github.com/HenryKun55/ponto/internal/timeentry/domain"
)

type validEntry struct {
	key   datekey.Key
	total entrydomain.Duration
	entry entrydomain.Entry
}

// Build aggregates a loaded entry slice into a report. The transform is
// pure: it never touches the store or the wall clock, so the default
// window is derived from the data itself, not from today.
func Build(employee string, entries []entrydomain.Entry, rng Range) Report {
	valid := filterValid(entries)
	rng = resolveRange(rng, valid)

	var series []DayRecord
	for _, v := range valid {
		if !rng.Contains(v.key) {
			continue
		}
		series = append(series, DayRecord{
			Date:         v.key,
			DateKey:      v.key.String(),
			Hours:        v.total.Hours(),
			Worked:       v.total.String(),
			FirstClockIn: v.entry.FirstClockIn(),
			LastClockOut: v.entry.LastClockOut(),
			Total:        v.total,
		})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })

	report := Report{
		Employee:  employee,
		Series:    series,
		Stats:     summarize(series),
		Histogram: bucketize(series),
	}
	if !rng.From.IsZero() {
		report.From = rng.From.String()
	}
	if !rng.To.IsZero() {
		report.To = rng.To.String()
	}
	return report
}

// filterValid keeps records with at least one clock-in, at least one
// clock-out and a positive daily total. Records whose stored date does
// not normalize are dropped rather than failing the whole report.
func filterValid(entries []entrydomain.Entry) []validEntry {
	valid := make([]validEntry, 0, len(entries))
	for _, entry := range entries {
		if !entry.HasAnyClockIn() || !entry.HasAnyClockOut() {
			continue
		}
		total := entrydomain.DailyTotal(entry)
		if total.IsZero() {
			continue
		}
		key, err := datekey.Normalize(entry.Date)
		if err != nil {
			continue
		}
		valid = append(valid, validEntry{key: key, total: total, entry: entry})
	}
	return valid
}

// resolveRange substitutes the calendar month of the latest valid
// record when no bound was supplied.
func resolveRange(rng Range, valid []validEntry) Range {
	if !rng.IsZero() {
		return rng
	}
	var latest datekey.Key
	for _, v := range valid {
		if latest.IsZero() || v.key.After(latest) {
			latest = v.key
		}
	}
	if latest.IsZero() {
		return rng
	}
	from, to := latest.MonthBounds()
	return Range{From: from, To: to}
}

func summarize(series []DayRecord) Stats {
	stats := Stats{Days: len(series)}
	if len(series) == 0 {
		return stats
	}
	stats.MinHours = series[0].Hours
	for _, day := range series {
		stats.TotalHours += day.Hours
		if day.Hours < stats.MinHours {
			stats.MinHours = day.Hours
		}
		if day.Hours > stats.MaxHours {
			stats.MaxHours = day.Hours
		}
	}
	stats.AverageHours = stats.TotalHours / float64(stats.Days)
	return stats
}

func bucketize(series []DayRecord) Histogram {
	var h Histogram
	for _, day := range series {
		switch {
		case day.Hours < 6:
			h.UnderSixHours++
		case day.Hours <= 8:
			h.SixToEightHours++
		default:
			h.OverEightHours++
		}
	}
	return h
}
