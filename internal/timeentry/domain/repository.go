package domain

import (
	"context"
	"errors"
)

// ErrEntryNotFound signals that no entry exists for an employee/date.
var ErrEntryNotFound = errors.New("entry_not_found")

// ListFilter narrows ListEntries. Zero values mean unbounded.
type ListFilter struct {
	EmployeeIn []string
	DateFrom   string
	DateTo     string
}

// Store is the entry store collaborator. UpsertEntry has full-overwrite
// semantics: create if absent, else replace the whole row, no partial
// patch. Combined with the read in GetEntry this is a non-atomic
// read-then-write; two concurrent punches for the same employee/day
// race, and the second writer clobbers the first. Accepted for the
// single-employee, low-frequency use this service was built for.
type Store interface {
	GetEntry(ctx context.Context, employee, date string) (*Entry, error)
	ListEntries(ctx context.Context, filter ListFilter) ([]Entry, error)
	UpsertEntry(ctx context.Context, entry *Entry) error
}
