// Package service implements the clock event processor.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/HenryKun55/ponto/internal/clock"
	"github.com/HenryKun55/ponto/internal/datekey"
	"github.com/HenryKun55/ponto/internal/events"
	"github.com/HenryKun55/ponto/internal/geo"
	"github.com/HenryKun55/ponto/internal/timeentry/domain"
)

type ServiceParam struct {
	fx.In

	Log    *zap.Logger
	GenID  *snowflake.Node
	Store  domain.Store
	Geo    geo.Service
	Clock  clock.Clock
	Bus    *events.Bus
	Outbox *events.Outbox
}

type Service struct {
	log    *zap.Logger
	genID  *snowflake.Node
	store  domain.Store
	geo    geo.Service
	clock  clock.Clock
	bus    *events.Bus
	outbox *events.Outbox
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log:    p.Log.Named("timeentry.service"),
		genID:  p.GenID,
		store:  p.Store,
		geo:    p.Geo,
		clock:  p.Clock,
		bus:    p.Bus,
		outbox: p.Outbox,
	}
}

// ClockIn records a clock-in for the employee's current day.
func (s *Service) ClockIn(ctx context.Context, req domain.ClockRequest) (domain.Result, error) {
	return s.punch(ctx, req, "clock_in")
}

// ClockOut records a clock-out for the employee's current day.
func (s *Service) ClockOut(ctx context.Context, req domain.ClockRequest) (domain.Result, error) {
	return s.punch(ctx, req, "clock_out")
}

func (s *Service) punch(ctx context.Context, req domain.ClockRequest, action string) (domain.Result, error) {
	employee := strings.TrimSpace(req.Employee)
	if employee == "" {
		return domain.Result{}, domain.ErrInvalidEmployee
	}
	if req.Submitted.IsZero() {
		return domain.Result{}, domain.ErrInvalidSubmitted
	}

	now := s.clock.Now()
	period := s.resolvePeriod(req.Period, now.Hour())
	today := datekey.FromTime(now).String()

	entry, err := s.loadOrCreate(ctx, employee, today)
	if err != nil {
		return domain.Result{}, err
	}

	// Best-effort capture: a failed lookup never blocks the punch.
	location := s.fetchLocation(ctx, employee)

	punch := domain.Punch{
		Submitted: req.Submitted,
		Real:      now.UTC(),
		Location:  location,
	}

	var next domain.Entry
	if action == "clock_in" {
		next, err = domain.ApplyClockIn(*entry, period, punch)
	} else {
		next, err = domain.ApplyClockOut(*entry, period, punch)
	}
	if err != nil {
		if reason := domain.ReasonFor(err); reason != "" {
			s.log.Info("punch rejected",
				zap.String("employee", employee),
				zap.String("action", action),
				zap.String("period", string(period)),
				zap.String("reason", reason),
			)
			return domain.Result{Clocked: false, Reason: reason, Message: domain.MessageFor(err)}, nil
		}
		return domain.Result{}, err
	}

	if err := s.store.UpsertEntry(ctx, &next); err != nil {
		return domain.Result{}, fmt.Errorf("persist punch: %w", err)
	}

	s.publish(ctx, next, action, period)

	s.log.Info("punch recorded",
		zap.String("employee", employee),
		zap.String("date", next.Date),
		zap.String("action", action),
		zap.String("period", string(period)),
		zap.Bool("has_location", location != nil),
	)

	message := "Entrada registrada com sucesso!"
	if action == "clock_out" {
		message = "Saída registrada com sucesso!"
	}
	return domain.Result{Clocked: true, Message: message, Entry: &next}, nil
}

// Today returns the employee's entry for the current day, or nil when
// no punch happened yet.
func (s *Service) Today(ctx context.Context, employee string) (*domain.Entry, error) {
	employee = strings.TrimSpace(employee)
	if employee == "" {
		return nil, domain.ErrInvalidEmployee
	}

	today := datekey.FromTime(s.clock.Now()).String()
	entry, err := s.store.GetEntry(ctx, employee, today)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

// List exposes the store's entry listing to the admin surface.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]domain.Entry, error) {
	return s.store.ListEntries(ctx, filter)
}

func (s *Service) resolvePeriod(requested *domain.Period, hour int) domain.Period {
	if requested != nil && requested.Valid() {
		return *requested
	}
	return domain.PeriodForHour(hour)
}

func (s *Service) loadOrCreate(ctx context.Context, employee, date string) (*domain.Entry, error) {
	entry, err := s.store.GetEntry(ctx, employee, date)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, domain.ErrEntryNotFound) {
		return nil, fmt.Errorf("load entry: %w", err)
	}

	now := s.clock.Now().UTC()
	return &domain.Entry{
		ID:        s.genID.Generate(),
		Employee:  employee,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *Service) fetchLocation(ctx context.Context, employee string) *domain.GeoSnapshot {
	if s.geo == nil {
		return nil
	}
	snap, err := s.geo.FetchLocation(ctx)
	if err != nil {
		s.log.Warn("geolocation unavailable, punching without location",
			zap.String("employee", employee),
			zap.Error(err),
		)
		return nil
	}
	return snap
}

func (s *Service) publish(ctx context.Context, entry domain.Entry, action string, period domain.Period) {
	payload := events.EntryUpsertedPayload{
		EntryID:  entry.ID.String(),
		Employee: entry.Employee,
		Date:     entry.Date,
		Action:   action,
		Period:   string(period),
	}.ToMap()

	if s.bus != nil {
		s.bus.Publish(events.EventEntryUpserted, payload)
	}
	if s.outbox != nil {
		dedupe := fmt.Sprintf("%s:%s:%s", entry.Date, period, action)
		if err := s.outbox.Publish(ctx, events.Event{
			Employee:  entry.Employee,
			Type:      events.EventEntryUpserted,
			Payload:   payload,
			DedupeKey: dedupe,
		}); err != nil {
			s.log.Warn("punch audit event not recorded", zap.Error(err))
		}
	}
}
