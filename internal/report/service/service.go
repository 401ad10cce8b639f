// Package service loads punch entries and serves cached hour reports.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/HenryKun55/ponto/internal/cache"
	"github.com/HenryKun55/ponto/internal/config"
	"github.com/HenryKun55/ponto/internal/events"
	"github.com/HenryKun55/ponto/internal/report/domain"
	entrydomain "github.com/HenryKun55/ponto/internal/timeentry/domain"
)

// Service builds hour reports for one employee over a date window.
type Service interface {
	Summary(ctx context.Context, employee string, rng domain.Range) (domain.Report, error)
}

type ServiceParam struct {
	fx.In

	Log   *zap.Logger
	Cfg   config.Config
	Store entrydomain.Store
	Bus   *events.Bus
}

type reportService struct {
	log   *zap.Logger
	store entrydomain.Store
	cache cache.Cache[string, domain.Report]
	ttl   time.Duration
}

// NewService wires the report builder behind a TTL cache. Every
// persisted punch flushes the cache through the event bus, so a
// dashboard refresh right after a punch sees the new entry.
func NewService(p ServiceParam) Service {
	s := &reportService{
		log:   p.Log.Named("report.service"),
		store: p.Store,
		cache: cache.NewTTLCache[string, domain.Report](),
		ttl:   p.Cfg.Report.CacheTTL,
	}
	if p.Bus != nil {
		p.Bus.Subscribe(events.EventEntryUpserted, func(string, map[string]any) {
			s.cache.Flush()
		})
	}
	return s
}

func (s *reportService) Summary(ctx context.Context, employee string, rng domain.Range) (domain.Report, error) {
	employee = strings.TrimSpace(employee)
	if employee == "" {
		return domain.Report{}, entrydomain.ErrInvalidEmployee
	}

	key := cacheKey(employee, rng)
	if report, ok := s.cache.Get(key); ok {
		return report, nil
	}

	// Stored dates mix layouts, so range filtering happens in the
	// engine on normalized keys, not in SQL on the raw strings.
	entries, err := s.store.ListEntries(ctx, entrydomain.ListFilter{EmployeeIn: []string{employee}})
	if err != nil {
		return domain.Report{}, fmt.Errorf("load entries: %w", err)
	}

	report := domain.Build(employee, entries, rng)
	s.cache.Set(key, report, s.ttl)

	s.log.Debug("report built",
		zap.String("employee", employee),
		zap.String("from", report.From),
		zap.String("to", report.To),
		zap.Int("days", report.Stats.Days),
	)
	return report, nil
}

func cacheKey(employee string, rng domain.Range) string {
	from, to := "", ""
	if !rng.From.IsZero() {
		from = rng.From.String()
	}
	if !rng.To.IsZero() {
		to = rng.To.String()
	}
	return fmt.Sprintf("%s|%s|%s", employee, from, to)
}
