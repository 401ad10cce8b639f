package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HenryKun55/ponto/internal/datekey"
	entrydomain "github.com/HenryKun55/ponto/internal/timeentry/domain"
)

func at(date string, hour, min int) *time.Time {
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}
	t := day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
	return &t
}

func workedDay(date string, morningIn, morningOut, afternoonIn, afternoonOut *time.Time) entrydomain.Entry {
	return entrydomain.Entry{
		Employee:     "thalia",
		Date:         date,
		MorningIn:    morningIn,
		MorningOut:   morningOut,
		AfternoonIn:  afternoonIn,
		AfternoonOut: afternoonOut,
	}
}

func fullDay(date string, afternoonEndHour, afternoonEndMin int) entrydomain.Entry {
	return workedDay(date,
		at(date, 8, 0), at(date, 12, 0),
		at(date, 13, 0), at(date, afternoonEndHour, afternoonEndMin),
	)
}

func key(t *testing.T, value string) datekey.Key {
	t.Helper()
	k, err := datekey.Normalize(value)
	require.NoError(t, err)
	return k
}

func TestBuildDefaultsToMonthOfLatestValidRecord(t *testing.T) {
	entries := []entrydomain.Entry{
		fullDay("2025-02-10", 17, 0),
		fullDay("2025-03-05", 17, 0),
		fullDay("2025-03-18", 17, 0),
		// A bare clock-in after the latest valid day must not drag the
		// default window into April.
		workedDay("2025-04-02", at("2025-04-02", 8, 0), nil, nil, nil),
	}

	report := Build("thalia", entries, Range{})

	assert.Equal(t, "2025-03-01", report.From)
	assert.Equal(t, "2025-03-31", report.To)
	require.Len(t, report.Series, 2)
	assert.Equal(t, "2025-03-05", report.Series[0].DateKey)
	assert.Equal(t, "2025-03-18", report.Series[1].DateKey)
}

func TestBuildValidityFilter(t *testing.T) {
	entries := []entrydomain.Entry{
		// In without out.
		workedDay("2025-03-10", at("2025-03-10", 8, 0), nil, nil, nil),
		// Out without in.
		workedDay("2025-03-11", nil, at("2025-03-11", 12, 0), nil, nil),
		// Inverted span totals zero.
		workedDay("2025-03-12", at("2025-03-12", 12, 0), at("2025-03-12", 8, 0), nil, nil),
		// Unparseable stored date.
		workedDay("not-a-date", at("2025-03-13", 8, 0), at("2025-03-13", 12, 0), nil, nil),
		// The one valid record.
		workedDay("2025-03-14", at("2025-03-14", 8, 0), at("2025-03-14", 12, 0), nil, nil),
	}

	report := Build("thalia", entries, Range{From: key(t, "2025-03-01"), To: key(t, "2025-03-31")})

	require.Len(t, report.Series, 1)
	assert.Equal(t, "2025-03-14", report.Series[0].DateKey)
	assert.Equal(t, 4.0, report.Series[0].Hours)
	assert.Equal(t, "4h 0m", report.Series[0].Worked)
}

func TestBuildRangeBoundsAreInclusive(t *testing.T) {
	entries := []entrydomain.Entry{
		fullDay("2025-03-01", 17, 0),
		fullDay("2025-03-15", 17, 0),
		fullDay("2025-03-31", 17, 0),
		fullDay("2025-04-01", 17, 0),
	}

	report := Build("thalia", entries, Range{From: key(t, "2025-03-01"), To: key(t, "2025-03-31")})

	require.Len(t, report.Series, 3)
	assert.Equal(t, "2025-03-01", report.Series[0].DateKey)
	assert.Equal(t, "2025-03-31", report.Series[2].DateKey)
}

func TestBuildOpenEndedRange(t *testing.T) {
	entries := []entrydomain.Entry{
		fullDay("2025-02-28", 17, 0),
		fullDay("2025-03-15", 17, 0),
	}

	report := Build("thalia", entries, Range{From: key(t, "2025-03-01")})

	require.Len(t, report.Series, 1)
	assert.Equal(t, "2025-03-15", report.Series[0].DateKey)
	assert.Equal(t, "2025-03-01", report.From)
	assert.Empty(t, report.To)
}

func TestBuildMixedDateLayoutsShareOneBucketSpace(t *testing.T) {
	entries := []entrydomain.Entry{
		fullDay("2025-01-05", 17, 0),
		workedDay("06/01/2025",
			at("2025-01-06", 8, 0), at("2025-01-06", 12, 0), nil, nil),
	}

	report := Build("thalia", entries, Range{})

	require.Len(t, report.Series, 2)
	assert.Equal(t, "2025-01-05", report.Series[0].DateKey)
	assert.Equal(t, "2025-01-06", report.Series[1].DateKey)
}

func TestBuildSeriesOuterBounds(t *testing.T) {
	entry := fullDay("2025-03-18", 17, 30)
	report := Build("thalia", []entrydomain.Entry{entry}, Range{})

	require.Len(t, report.Series, 1)
	day := report.Series[0]
	require.NotNil(t, day.FirstClockIn)
	require.NotNil(t, day.LastClockOut)
	assert.True(t, day.FirstClockIn.Equal(*entry.MorningIn))
	assert.True(t, day.LastClockOut.Equal(*entry.AfternoonOut))
	assert.Equal(t, 8.5, day.Hours)
	assert.Equal(t, "8h 30m", day.Worked)
}

func TestBuildStatsAndHistogram(t *testing.T) {
	entries := []entrydomain.Entry{
		// 5h30m, 7h, 8h, 9h across four days.
		workedDay("2025-03-03", at("2025-03-03", 8, 0), at("2025-03-03", 13, 30), nil, nil),
		fullDay("2025-03-04", 16, 0),
		fullDay("2025-03-05", 17, 0),
		fullDay("2025-03-06", 18, 0),
	}

	report := Build("thalia", entries, Range{})

	assert.Equal(t, 4, report.Stats.Days)
	assert.InDelta(t, 29.5, report.Stats.TotalHours, 1e-9)
	assert.InDelta(t, 7.375, report.Stats.AverageHours, 1e-9)
	assert.Equal(t, 5.5, report.Stats.MinHours)
	assert.Equal(t, 9.0, report.Stats.MaxHours)

	assert.Equal(t, 1, report.Histogram.UnderSixHours)
	assert.Equal(t, 2, report.Histogram.SixToEightHours)
	assert.Equal(t, 1, report.Histogram.OverEightHours)
}

func TestBuildNarrowWindowOverLongHistory(t *testing.T) {
	start, err := time.Parse(time.DateOnly, "2025-02-01")
	require.NoError(t, err)

	entries := make([]entrydomain.Entry, 0, 40)
	for i := 0; i < 40; i++ {
		date := start.AddDate(0, 0, i).Format(time.DateOnly)
		entries = append(entries, fullDay(date, 17, 0))
	}

	report := Build("thalia", entries, Range{From: key(t, "2025-02-10"), To: key(t, "2025-02-19")})

	require.Len(t, report.Series, 10)
	assert.Equal(t, "2025-02-10", report.Series[0].DateKey)
	assert.Equal(t, "2025-02-19", report.Series[9].DateKey)

	var manual float64
	for _, day := range report.Series {
		manual += day.Hours
	}
	assert.Equal(t, manual, report.Stats.TotalHours)
	assert.Equal(t, 10*8.0, report.Stats.TotalHours)
}

func TestBuildEmptyInput(t *testing.T) {
	report := Build("thalia", nil, Range{})

	assert.Empty(t, report.Series)
	assert.Empty(t, report.From)
	assert.Empty(t, report.To)
	assert.Equal(t, Stats{}, report.Stats)
	assert.Equal(t, Histogram{}, report.Histogram)
}
