// Package repository is a thin generic layer over gorm used by the
// feature stores.
package repository

import (
	"context"

	"gorm.io/gorm"
)

// Option narrows or shapes a query.
type Option func(*gorm.DB) *gorm.DB

// Where adds a condition.
func Where(query any, args ...any) Option {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where(query, args...)
	}
}

// OrderBy adds an ordering expression.
func OrderBy(expr string) Option {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Order(expr)
	}
}

// Preload eager-loads associations.
func Preload(assocs ...string) Option {
	return func(tx *gorm.DB) *gorm.DB {
		for _, assoc := range assocs {
			tx = tx.Preload(assoc)
		}
		return tx
	}
}

// Limit caps the result set.
func Limit(n int) Option {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(n)
	}
}

// Repository exposes the few operations the stores need.
type Repository[T any] interface {
	First(ctx context.Context, opts ...Option) (*T, error)
	Find(ctx context.Context, opts ...Option) ([]T, error)
	Create(ctx context.Context, record *T) error
	Save(ctx context.Context, record *T) error
}

type store[T any] struct {
	db *gorm.DB
}

// ProvideStore builds a Repository bound to one model type.
func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return &store[T]{db: db}
}

func (s *store[T]) apply(ctx context.Context, opts []Option) *gorm.DB {
	tx := s.db.WithContext(ctx)
	for _, opt := range opts {
		tx = opt(tx)
	}
	return tx
}

func (s *store[T]) First(ctx context.Context, opts ...Option) (*T, error) {
	var record T
	if err := s.apply(ctx, opts).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *store[T]) Find(ctx context.Context, opts ...Option) ([]T, error) {
	var records []T
	if err := s.apply(ctx, opts).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *store[T]) Create(ctx context.Context, record *T) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s *store[T]) Save(ctx context.Context, record *T) error {
	return s.db.WithContext(ctx).Save(record).Error
}
