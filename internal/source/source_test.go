package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cyrilhamel/caly/internal/agenda"
)

// fakeRepo records sync calls without touching a real database.
type fakeRepo struct {
	agenda.Repository

	deleted  []agenda.SourceType
	inserted []*agenda.Unit
	removed  int
}

func (r *fakeRepo) DeleteBySource(ctx context.Context, source agenda.SourceType) (int, error) {
	r.deleted = append(r.deleted, source)
	return r.removed, nil
}

func (r *fakeRepo) CreateUnits(ctx context.Context, units []*agenda.Unit) error {
	r.inserted = append(r.inserted, units...)
	return nil
}

type fakeFeed struct {
	source agenda.SourceType
	units  []*agenda.Unit
	err    error
}

func (f *fakeFeed) Source() agenda.SourceType { return f.source }

func (f *fakeFeed) Fetch(ctx context.Context) ([]*agenda.Unit, error) {
	return f.units, f.err
}

func TestSync(t *testing.T) {
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)
	u, err := agenda.New("imported", agenda.PriorityNormal, 30, day)
	if err != nil {
		t.Fatalf("creating unit: %v", err)
	}

	repo := &fakeRepo{removed: 2}
	feed := &fakeFeed{source: agenda.SourceBoard, units: []*agenda.Unit{u}}

	result, err := Sync(context.Background(), repo, feed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Removed != 2 || result.Inserted != 1 {
		t.Errorf("expected 2 removed and 1 inserted, got %+v", result)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != agenda.SourceBoard {
		t.Errorf("expected one delete for the board source, got %v", repo.deleted)
	}
	if len(repo.inserted) != 1 || repo.inserted[0].ID != u.ID {
		t.Errorf("expected the fetched unit inserted, got %d units", len(repo.inserted))
	}
}

func TestSync_FetchErrorLeavesPoolAlone(t *testing.T) {
	repo := &fakeRepo{}
	feed := &fakeFeed{source: agenda.SourceCalendar, err: errors.New("file gone")}

	if _, err := Sync(context.Background(), repo, feed); err == nil {
		t.Fatal("expected an error")
	}
	if len(repo.deleted) != 0 {
		t.Error("a failed fetch must not remove existing units")
	}
}
