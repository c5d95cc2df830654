package agenda

import (
	"context"
	"time"
)

// Repository defines the storage interface for the unit pool.
type Repository interface {
	// CreateUnit adds a new unit to the pool.
	CreateUnit(ctx context.Context, u *Unit) error

	// CreateUnits adds multiple units in one transaction.
	CreateUnits(ctx context.Context, units []*Unit) error

	// GetUnit retrieves a unit by ID. Returns nil, nil when absent.
	GetUnit(ctx context.Context, id string) (*Unit, error)

	// FindUnitByPrefix retrieves the single unit whose ID starts with the
	// given prefix. Returns ErrAmbiguousUnitID on multiple matches and
	// nil, nil when absent.
	FindUnitByPrefix(ctx context.Context, prefix string) (*Unit, error)

	// DeleteUnit removes a unit from the pool.
	DeleteUnit(ctx context.Context, id string) error

	// DeleteBySource removes all units fed by the given source. Used when
	// an external source re-syncs and regenerates its units.
	DeleteBySource(ctx context.Context, source SourceType) (int, error)

	// ListAllUnits returns the whole pool.
	ListAllUnits(ctx context.Context) ([]*Unit, error)

	// ListUnitsByDateRange returns units anchored within the range
	// (inclusive), ordered by date then start time.
	ListUnitsByDateRange(ctx context.Context, start, end time.Time) ([]*Unit, error)

	// ReplaceSchedule swaps the stored pool for the given one atomically.
	// This is how a scheduling pass's output becomes durable.
	ReplaceSchedule(ctx context.Context, units []*Unit) error

	// Close releases any resources held by the repository.
	Close() error
}
