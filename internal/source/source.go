// Package source feeds external records into the agenda pool. Each feed
// maps its native format into units tagged with its source type; a sync
// run drops the previous units of that source and inserts fresh ones, so
// the scheduling engine only ever sees plain inserts and deletes.
package source

import (
	"context"
	"fmt"

	"github.com/cyrilhamel/caly/internal/agenda"
)

// Feed produces units from an external source.
type Feed interface {
	// Source returns the source type stamped on every produced unit.
	Source() agenda.SourceType

	// Fetch reads the external source and returns its units.
	Fetch(ctx context.Context) ([]*agenda.Unit, error)
}

// SyncResult summarizes one sync run.
type SyncResult struct {
	Removed  int
	Inserted int
}

// Sync replaces a source's units in the repository with a fresh fetch.
func Sync(ctx context.Context, repo agenda.Repository, feed Feed) (SyncResult, error) {
	units, err := feed.Fetch(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetching %s feed: %w", feed.Source(), err)
	}

	removed, err := repo.DeleteBySource(ctx, feed.Source())
	if err != nil {
		return SyncResult{}, fmt.Errorf("removing stale %s units: %w", feed.Source(), err)
	}

	if err := repo.CreateUnits(ctx, units); err != nil {
		return SyncResult{Removed: removed}, fmt.Errorf("inserting %s units: %w", feed.Source(), err)
	}

	return SyncResult{Removed: removed, Inserted: len(units)}, nil
}
