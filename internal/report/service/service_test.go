package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/HenryKun55/ponto/internal/config"
	"github.com/HenryKun55/ponto/internal/datekey"
	"github.com/HenryKun55/ponto/internal/events"
	"github.com/HenryKun55/ponto/internal/report/domain"
	entrydomain "github.com/HenryKun55/ponto/internal/timeentry/domain"
)

type countingStore struct {
	entries []entrydomain.Entry
	calls   int
	err     error
}

func (s *countingStore) GetEntry(context.Context, string, string) (*entrydomain.Entry, error) {
	return nil, entrydomain.ErrEntryNotFound
}

func (s *countingStore) ListEntries(context.Context, entrydomain.ListFilter) ([]entrydomain.Entry, error) {
	s.calls++
	return s.entries, s.err
}

func (s *countingStore) UpsertEntry(context.Context, *entrydomain.Entry) error { return nil }

func marchEntry(day int) entrydomain.Entry {
	in := time.Date(2025, 3, day, 8, 0, 0, 0, time.UTC)
	out := time.Date(2025, 3, day, 12, 0, 0, 0, time.UTC)
	return entrydomain.Entry{
		Employee:   "thalia",
		Date:       in.Format(time.DateOnly),
		MorningIn:  &in,
		MorningOut: &out,
	}
}

func newService(store *countingStore, bus *events.Bus) Service {
	return NewService(ServiceParam{
		Log:   zap.NewNop(),
		Cfg:   config.Config{Report: config.ReportConfig{CacheTTL: time.Minute}},
		Store: store,
		Bus:   bus,
	})
}

func TestSummaryBuildsAndCaches(t *testing.T) {
	store := &countingStore{entries: []entrydomain.Entry{marchEntry(17), marchEntry(18)}}
	svc := newService(store, events.NewBus())
	ctx := context.Background()

	report, err := svc.Summary(ctx, "thalia", domain.Range{})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if report.From != "2025-03-01" || report.To != "2025-03-31" {
		t.Fatalf("expected month default, got [%s, %s]", report.From, report.To)
	}
	if report.Stats.Days != 2 {
		t.Fatalf("expected 2 days, got %d", report.Stats.Days)
	}

	if _, err := svc.Summary(ctx, "thalia", domain.Range{}); err != nil {
		t.Fatalf("cached summary: %v", err)
	}
	if store.calls != 1 {
		t.Fatalf("expected second read to hit the cache, store hit %d times", store.calls)
	}
}

func TestSummaryCacheFlushesOnPunch(t *testing.T) {
	store := &countingStore{entries: []entrydomain.Entry{marchEntry(17)}}
	bus := events.NewBus()
	svc := newService(store, bus)
	ctx := context.Background()

	if _, err := svc.Summary(ctx, "thalia", domain.Range{}); err != nil {
		t.Fatalf("summary: %v", err)
	}

	store.entries = append(store.entries, marchEntry(18))
	bus.Publish(events.EventEntryUpserted, map[string]any{"employee": "thalia"})

	report, err := svc.Summary(ctx, "thalia", domain.Range{})
	if err != nil {
		t.Fatalf("summary after punch: %v", err)
	}
	if report.Stats.Days != 2 {
		t.Fatalf("expected rebuilt report with 2 days, got %d", report.Stats.Days)
	}
	if store.calls != 2 {
		t.Fatalf("expected reload after flush, store hit %d times", store.calls)
	}
}

func TestSummaryDistinctRangesCacheSeparately(t *testing.T) {
	store := &countingStore{entries: []entrydomain.Entry{marchEntry(17)}}
	svc := newService(store, events.NewBus())
	ctx := context.Background()

	if _, err := svc.Summary(ctx, "thalia", domain.Range{}); err != nil {
		t.Fatalf("default range: %v", err)
	}
	if _, err := svc.Summary(ctx, "thalia", domain.Range{From: keyOf(t, "2025-03-10")}); err != nil {
		t.Fatalf("explicit range: %v", err)
	}
	if store.calls != 2 {
		t.Fatalf("expected separate cache slots, store hit %d times", store.calls)
	}
}

func TestSummaryValidation(t *testing.T) {
	svc := newService(&countingStore{}, events.NewBus())

	if _, err := svc.Summary(context.Background(), "  ", domain.Range{}); !errors.Is(err, entrydomain.ErrInvalidEmployee) {
		t.Fatalf("expected ErrInvalidEmployee, got %v", err)
	}
}

func TestSummaryStoreFailure(t *testing.T) {
	store := &countingStore{err: errors.New("store unreachable")}
	svc := newService(store, events.NewBus())

	if _, err := svc.Summary(context.Background(), "thalia", domain.Range{}); err == nil {
		t.Fatalf("expected store failure to propagate")
	}
}

func keyOf(t *testing.T, value string) datekey.Key {
	t.Helper()
	key, err := datekey.Normalize(value)
	if err != nil {
		t.Fatalf("normalize %q: %v", value, err)
	}
	return key
}
