// Package integration exercises the full pipeline: units persisted in
// SQLite, scheduled by the engine, and written back through
// ReplaceSchedule the way the CLI does it.
package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cyrilhamel/caly/internal/agenda"
	"github.com/cyrilhamel/caly/internal/db"
	"github.com/cyrilhamel/caly/internal/schedule"
)

var monday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)

type harness struct {
	repo   *db.SQLite
	engine *schedule.Scheduler
	ctx    context.Context
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	repo, err := db.New(filepath.Join(t.TempDir(), "caly.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	return &harness{
		repo:   repo,
		engine: schedule.New(schedule.DefaultWeekTemplate(), schedule.Params{}),
		ctx:    context.Background(),
	}
}

// pass loads the pool, runs one engine operation and persists the result,
// mirroring the CLI's reschedule helper.
func (h *harness) pass(t *testing.T, op func(pool []*agenda.Unit) []*agenda.Unit) {
	t.Helper()
	pool, err := h.repo.ListAllUnits(h.ctx)
	if err != nil {
		t.Fatalf("loading pool: %v", err)
	}
	if err := h.repo.ReplaceSchedule(h.ctx, op(pool)); err != nil {
		t.Fatalf("persisting schedule: %v", err)
	}
}

func (h *harness) unit(t *testing.T, id string) *agenda.Unit {
	t.Helper()
	u, err := h.repo.GetUnit(h.ctx, id)
	if err != nil {
		t.Fatalf("loading unit: %v", err)
	}
	if u == nil {
		t.Fatalf("unit %s not found", id)
	}
	return u
}

func TestFullSchedulingFlow(t *testing.T) {
	h := newHarness(t)
	now := monday.Add(8 * time.Hour)

	// A fixed appointment and two flexible tasks enter the pool.
	dentist, err := agenda.NewFixed("Dentist", monday, "10:00", 30)
	if err != nil {
		t.Fatalf("creating fixed unit: %v", err)
	}
	report, err := agenda.New("Write report", agenda.PriorityNormal, 60, monday)
	if err != nil {
		t.Fatalf("creating unit: %v", err)
	}
	review, err := agenda.New("Review budget", agenda.PriorityNormal, 60, monday)
	if err != nil {
		t.Fatalf("creating unit: %v", err)
	}
	review.CreatedAt = report.CreatedAt.Add(time.Minute)

	if err := h.repo.CreateUnits(h.ctx, []*agenda.Unit{dentist, report, review}); err != nil {
		t.Fatalf("creating units: %v", err)
	}

	h.pass(t, func(pool []*agenda.Unit) []*agenda.Unit {
		return h.engine.AutoSchedule(pool, now)
	})

	// The report takes the first morning slot; the occupied morning run
	// pushes the review to the afternoon.
	if got := h.unit(t, report.ID); got.Start != "09:00" || !got.Date.Equal(monday) {
		t.Errorf("expected report at Monday 09:00, got %s %s", got.Date.Format("2006-01-02"), got.Start)
	}
	if got := h.unit(t, review.ID); got.Start != "13:00" || !got.Date.Equal(monday) {
		t.Errorf("expected review at Monday 13:00, got %s %s", got.Date.Format("2006-01-02"), got.Start)
	}
	if got := h.unit(t, dentist.ID); got.Start != "10:00" {
		t.Errorf("fixed appointment moved to %s", got.Start)
	}

	// Validating the report anchors it through later passes.
	h.pass(t, func(pool []*agenda.Unit) []*agenda.Unit {
		return h.engine.Validate(pool, report.ID, now)
	})
	if got := h.unit(t, report.ID); got.Status != agenda.StatusValidated {
		t.Errorf("expected validated status, got %s", got.Status)
	}

	// Postponing the review mid-morning finds it the next slot from now.
	later := monday.Add(9*time.Hour + 30*time.Minute)
	h.pass(t, func(pool []*agenda.Unit) []*agenda.Unit {
		return h.engine.Postpone(pool, review.ID, later)
	})

	got := h.unit(t, review.ID)
	if got.Status != agenda.StatusScheduled {
		t.Errorf("expected a fresh scheduled slot, got %s", got.Status)
	}
	if got.StartInstant().Before(later) {
		t.Errorf("review re-placed before now: %s %s", got.Date.Format("2006-01-02"), got.Start)
	}
	if got := h.unit(t, report.ID); got.Start != "09:00" || got.Status != agenda.StatusValidated {
		t.Errorf("validated report should not move, got %s %s", got.Start, got.Status)
	}

	// Completing the report freezes it for good.
	h.pass(t, func(pool []*agenda.Unit) []*agenda.Unit {
		return h.engine.Complete(pool, report.ID, later)
	})
	if got := h.unit(t, report.ID); got.Status != agenda.StatusCompleted {
		t.Errorf("expected completed status, got %s", got.Status)
	}
}

func TestExtendFlowPushesFollowers(t *testing.T) {
	h := newHarness(t)
	now := monday.Add(8 * time.Hour)

	first, err := agenda.New("Deep work", agenda.PriorityNormal, 60, monday)
	if err != nil {
		t.Fatalf("creating unit: %v", err)
	}
	second, err := agenda.New("Email sweep", agenda.PriorityNormal, 60, monday)
	if err != nil {
		t.Fatalf("creating unit: %v", err)
	}
	second.CreatedAt = first.CreatedAt.Add(time.Minute)

	if err := h.repo.CreateUnits(h.ctx, []*agenda.Unit{first, second}); err != nil {
		t.Fatalf("creating units: %v", err)
	}

	h.pass(t, func(pool []*agenda.Unit) []*agenda.Unit {
		return h.engine.AutoSchedule(pool, now)
	})
	if got := h.unit(t, second.ID); got.Start != "10:00" {
		t.Fatalf("expected second task at 10:00 before the extension, got %s", got.Start)
	}

	// Running over by 30 minutes keeps the start but grows the occupancy,
	// which pushes the follower out of the morning.
	h.pass(t, func(pool []*agenda.Unit) []*agenda.Unit {
		return h.engine.Extend(pool, first.ID, 30, now)
	})

	got := h.unit(t, first.ID)
	if got.Start != "09:00" || got.Status != agenda.StatusInProgress {
		t.Errorf("extended task should stay at 09:00 in progress, got %s %s", got.Start, got.Status)
	}
	if got.EffectiveDuration() != 90 || got.OriginalDuration != 60 {
		t.Errorf("expected 90 effective over 60 original, got %d over %d",
			got.EffectiveDuration(), got.OriginalDuration)
	}
	if got := h.unit(t, second.ID); got.Start != "13:00" {
		t.Errorf("expected follower pushed to 13:00, got %s", got.Start)
	}
}

func TestChainFlowSurvivesReload(t *testing.T) {
	h := newHarness(t)
	now := monday.Add(8 * time.Hour)

	steps, err := agenda.NewChain("Laundry", agenda.PriorityNormal, monday, []agenda.ChainStep{
		{Title: "Wash", Duration: 30},
		{Title: "Hang", Duration: 15, DelayAfterPrevious: 45},
	})
	if err != nil {
		t.Fatalf("creating chain: %v", err)
	}
	if err := h.repo.CreateUnits(h.ctx, steps); err != nil {
		t.Fatalf("creating units: %v", err)
	}

	h.pass(t, func(pool []*agenda.Unit) []*agenda.Unit {
		return h.engine.AutoSchedule(pool, now)
	})

	// Wash 09:00-09:30, then 45 minutes of delay before Hang.
	if got := h.unit(t, steps[0].ID); got.Start != "09:00" {
		t.Errorf("expected first step at 09:00, got %s", got.Start)
	}
	got := h.unit(t, steps[1].ID)
	if got.Start != "10:15" {
		t.Errorf("expected second step at 10:15, got %s", got.Start)
	}
	if got.ChainID != steps[0].ChainID || got.StepIndex != 1 {
		t.Errorf("chain fields lost through persistence: %+v", got)
	}
}
