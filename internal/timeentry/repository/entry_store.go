// Package repository implements the entry store on gorm.
package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HenryKun55/ponto/internal/timeentry/domain"
	pkgrepo "github.com/HenryKun55/ponto/pkg/repository"
)

var locationAssocs = []string{
	"MorningInLocation",
	"MorningOutLocation",
	"AfternoonInLocation",
	"AfternoonOutLocation",
}

// EntryStore persists day records and their location snapshots.
type EntryStore struct {
	db      *gorm.DB
	log     *zap.Logger
	entries pkgrepo.Repository[domain.Entry]
}

func NewEntryStore(db *gorm.DB, log *zap.Logger) domain.Store {
	return &EntryStore{
		db:      db,
		log:     log.Named("timeentry.store"),
		entries: pkgrepo.ProvideStore[domain.Entry](db),
	}
}

// GetEntry loads the entry for an employee and date, or
// domain.ErrEntryNotFound when none exists yet.
func (s *EntryStore) GetEntry(ctx context.Context, employee, date string) (*domain.Entry, error) {
	entry, err := s.entries.First(ctx,
		pkgrepo.Where("employee = ? AND date = ?", employee, date),
		pkgrepo.Preload(locationAssocs...),
	)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return entry, nil
}

// ListEntries returns entries matching the filter, oldest date first.
// Date bounds compare on the canonical YYYY-MM-DD key.
func (s *EntryStore) ListEntries(ctx context.Context, filter domain.ListFilter) ([]domain.Entry, error) {
	opts := []pkgrepo.Option{
		pkgrepo.Preload(locationAssocs...),
		pkgrepo.OrderBy("date ASC"),
	}
	if len(filter.EmployeeIn) > 0 {
		opts = append(opts, pkgrepo.Where("employee IN ?", filter.EmployeeIn))
	}
	if filter.DateFrom != "" {
		opts = append(opts, pkgrepo.Where("date >= ?", filter.DateFrom))
	}
	if filter.DateTo != "" {
		opts = append(opts, pkgrepo.Where("date <= ?", filter.DateTo))
	}

	entries, err := s.entries.Find(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// UpsertEntry writes the whole entry: create if absent, else full
// overwrite. New location snapshots are inserted in the same
// transaction; existing ones are immutable and left alone.
//
// There is no optimistic-concurrency token here. A caller that read
// stale state overwrites whatever landed in between.
func (s *EntryStore) UpsertEntry(ctx context.Context, entry *domain.Entry) error {
	if entry == nil {
		return errors.New("nil entry")
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, snap := range entry.Snapshots() {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(snap).Error; err != nil {
				return fmt.Errorf("insert snapshot: %w", err)
			}
		}
		if err := tx.Omit(clause.Associations).Save(entry).Error; err != nil {
			return fmt.Errorf("save entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Debug("entry upserted",
		zap.String("employee", entry.Employee),
		zap.String("date", entry.Date),
	)
	return nil
}
