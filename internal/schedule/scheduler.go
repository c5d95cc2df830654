package schedule

import (
	"sort"
	"time"

	"github.com/cyrilhamel/caly/internal/agenda"
)

// Engine defaults.
const (
	DefaultBreakMinutes        = 10
	DefaultBreakThreshold      = 60
	DefaultLookaheadDays       = 30
	DefaultRecurringWindowDays = 7

	// fallbackStart is used when a recurring unit's anchor day has no
	// template window to fall back to.
	fallbackStart = "09:00"
)

// Params configures a Scheduler. Zero fields take the engine defaults.
type Params struct {
	BreakMinutes        int  // inter-unit break appended to long units
	BreakThreshold      int  // minutes above which the break applies
	LookaheadDays       int  // forward search horizon
	RecurringWindowDays int  // search window for standalone recurring units
	Sink                Sink // receives scheduling events
}

// Scheduler places flexible units into the free slots of a weekly work
// calendar. It is a pure transformation: every operation takes a pool of
// units and returns a new pool, leaving the input untouched. Callers own
// persistence and concurrency; a Scheduler has no hidden state.
type Scheduler struct {
	template            *WeekTemplate
	breakMinutes        int
	breakThreshold      int
	lookaheadDays       int
	recurringWindowDays int
	sink                Sink
}

// New creates a Scheduler for the given work calendar.
func New(template *WeekTemplate, p Params) *Scheduler {
	if template == nil {
		template = DefaultWeekTemplate()
	}
	s := &Scheduler{
		template:            template,
		breakMinutes:        p.BreakMinutes,
		breakThreshold:      p.BreakThreshold,
		lookaheadDays:       p.LookaheadDays,
		recurringWindowDays: p.RecurringWindowDays,
		sink:                p.Sink,
	}
	if s.breakMinutes <= 0 {
		s.breakMinutes = DefaultBreakMinutes
	}
	if s.breakThreshold <= 0 {
		s.breakThreshold = DefaultBreakThreshold
	}
	if s.lookaheadDays <= 0 {
		s.lookaheadDays = DefaultLookaheadDays
	}
	if s.recurringWindowDays <= 0 {
		s.recurringWindowDays = DefaultRecurringWindowDays
	}
	if s.sink == nil {
		s.sink = NopSink{}
	}
	return s
}

// AutoSchedule computes placements for every flexible unit in the pool.
// Fixed, validated, in-progress and completed units keep their date and
// time; everything else is placed by priority, oldest first within a
// priority band. The returned pool replaces the input wholesale.
func (s *Scheduler) AutoSchedule(pool []*agenda.Unit, now time.Time) []*agenda.Unit {
	return s.run(nil, pool, now, now)
}

// Reorganize recomputes the schedule after a mutation. changedID names
// the unit that triggered the change; it may be empty.
//
// Units dated before the reorganization horizon, validated or completed
// units, and fixed units are kept as they are. Everything else re-enters
// placement, with postponed units reset to scheduled so they get a fresh
// slot. The horizon starts at "now" for urgent or postponed triggers and
// at the changed unit's own date otherwise.
func (s *Scheduler) Reorganize(pool []*agenda.Unit, changedID string, now time.Time) []*agenda.Unit {
	horizon := now
	if changedID != "" {
		if changed := findUnit(pool, changedID); changed != nil {
			if changed.Priority != agenda.PriorityUrgent && changed.Status != agenda.StatusPostponed {
				if !changed.Date.IsZero() && changed.Date.After(now) {
					horizon = changed.Date
				}
			}
		}
	}
	horizonDay := truncateToDay(horizon)

	var keep, subjects []*agenda.Unit
	for _, u := range pool {
		switch {
		case u.Fixed,
			u.Status == agenda.StatusValidated,
			u.Status == agenda.StatusCompleted,
			u.Date.Before(horizonDay):
			keep = append(keep, u)
		default:
			subject := u
			if u.Status == agenda.StatusPostponed {
				subject = u.Clone()
				subject.Status = agenda.StatusScheduled
				subject.UpdatedAt = now
			}
			subjects = append(subjects, subject)
		}
	}

	return s.run(keep, subjects, horizon, now)
}

// Validate marks a unit as user-confirmed. No reorganization is needed:
// the unit simply becomes anchored for every later pass.
func (s *Scheduler) Validate(pool []*agenda.Unit, id string, now time.Time) []*agenda.Unit {
	return replaceUnit(pool, id, func(u *agenda.Unit) {
		u.Status = agenda.StatusValidated
		u.UpdatedAt = now
	})
}

// Complete marks a unit as done. Completed units are historical and no
// pass ever moves them again.
func (s *Scheduler) Complete(pool []*agenda.Unit, id string, now time.Time) []*agenda.Unit {
	return replaceUnit(pool, id, func(u *agenda.Unit) {
		u.Status = agenda.StatusCompleted
		u.UpdatedAt = now
	})
}

// Postpone frees a unit's slot and reorganizes so it gets a fresh
// placement at or after now.
func (s *Scheduler) Postpone(pool []*agenda.Unit, id string, now time.Time) []*agenda.Unit {
	pool = replaceUnit(pool, id, func(u *agenda.Unit) {
		u.Status = agenda.StatusPostponed
		u.UpdatedAt = now
	})
	return s.Reorganize(pool, id, now)
}

// Extend grows a running unit by delta minutes and reorganizes around
// it. The unit itself becomes in-progress and keeps its start; units
// after it on the day may be pushed later to absorb the extra occupancy.
func (s *Scheduler) Extend(pool []*agenda.Unit, id string, delta int, now time.Time) []*agenda.Unit {
	pool = replaceUnit(pool, id, func(u *agenda.Unit) {
		u.ActualDuration = u.EffectiveDuration() + delta
		u.Status = agenda.StatusInProgress
		u.UpdatedAt = now
	})
	return s.Reorganize(pool, id, now)
}

// run is the shared scheduling pass. preAnchored units are carried into
// the output untouched and count as occupied space; pool units are
// partitioned into anchored and to-place by their own state.
func (s *Scheduler) run(preAnchored, pool []*agenda.Unit, searchStart, now time.Time) []*agenda.Unit {
	anchored := make([]*agenda.Unit, 0, len(preAnchored)+len(pool))
	anchored = append(anchored, preAnchored...)

	var toPlace []*agenda.Unit
	for _, u := range pool {
		if u.Anchored() {
			anchored = append(anchored, u)
		} else {
			toPlace = append(toPlace, u)
		}
	}

	// Urgent first, then oldest first within a priority band.
	sort.SliceStable(toPlace, func(i, j int) bool {
		if toPlace[i].Priority.Rank() != toPlace[j].Priority.Rank() {
			return toPlace[i].Priority.Rank() < toPlace[j].Priority.Rank()
		}
		return toPlace[i].CreatedAt.Before(toPlace[j].CreatedAt)
	})

	result := anchored
	processedChains := make(map[string]bool)

	for _, u := range toPlace {
		if u.IsChainStep() {
			if processedChains[u.ChainID] {
				continue
			}
			processedChains[u.ChainID] = true
			result = s.placeChain(result, agenda.ChainMembers(toPlace, u.ChainID), searchStart, now)
			continue
		}
		result = s.placeUnit(result, u, searchStart, now)
	}

	return result
}

// placeUnit places one ordinary flexible unit against the units already
// in the output. No slot within the horizon is a normal outcome: a
// recurring unit falls back to the start of its anchor day so it stays
// visible, anything else is left out of this pass and retried on the
// next trigger.
func (s *Scheduler) placeUnit(result []*agenda.Unit, u *agenda.Unit, searchStart, now time.Time) []*agenda.Unit {
	if pl := s.findPlacement(u, result, searchStart, now); pl != nil {
		placed := u.Clone()
		placed.Date = pl.Date
		placed.Start = pl.Start
		if placed.Status != agenda.StatusInProgress {
			placed.Status = agenda.StatusScheduled
		}
		placed.UpdatedAt = now
		s.sink.Record(Event{Kind: EventPlaced, UnitID: u.ID, Title: u.Title, Date: pl.Date, Start: pl.Start})
		return append(result, placed)
	}

	if u.Recurring && !u.Date.IsZero() {
		placed := u.Clone()
		placed.Start = s.fallbackStartFor(u.Date)
		placed.Status = agenda.StatusScheduled
		placed.UpdatedAt = now
		s.sink.Record(Event{
			Kind: EventFallback, UnitID: u.ID, Title: u.Title,
			Date: placed.Date, Start: placed.Start,
			Reason: "no slot within horizon",
		})
		return append(result, placed)
	}

	s.sink.Record(Event{
		Kind: EventDropped, UnitID: u.ID, Title: u.Title,
		Reason: "no slot within horizon",
	})
	return result
}

// placeChain places a multi-step chain atomically. Step 0 is
// slot-searched like any unit; each later step starts exactly its delay
// after the previous step ends, with no independent search. If step 0
// has no slot the whole chain is left out of the pass.
func (s *Scheduler) placeChain(result []*agenda.Unit, steps []*agenda.Unit, searchStart, now time.Time) []*agenda.Unit {
	if len(steps) == 0 {
		return result
	}

	first := steps[0]
	pl := s.findPlacement(first, result, searchStart, now)
	if pl == nil {
		s.sink.Record(Event{
			Kind: EventChainSkipped, UnitID: first.ID, Title: first.Title,
			ChainID: first.ChainID, Reason: "no slot for first step",
		})
		return result
	}

	cursor := atTimeOfDay(pl.Date, pl.Start)
	for i, step := range steps {
		if i > 0 {
			cursor = cursor.Add(time.Duration(step.DelayAfterPrevious) * time.Minute)
		}
		placed := step.Clone()
		placed.Date = truncateToDay(cursor)
		placed.Start = cursor.Format("15:04")
		placed.Status = agenda.StatusScheduled
		placed.UpdatedAt = now
		result = append(result, placed)
		s.sink.Record(Event{
			Kind: EventPlaced, UnitID: step.ID, Title: step.Title,
			ChainID: step.ChainID, Date: placed.Date, Start: placed.Start,
		})
		cursor = cursor.Add(time.Duration(step.EffectiveDuration()) * time.Minute)
	}
	return result
}

// fallbackStartFor returns the first window start of the day's template,
// so a force-placed unit lands where the user will actually see it.
func (s *Scheduler) fallbackStartFor(day time.Time) string {
	if windows := s.template.WindowsFor(day.Weekday()); len(windows) > 0 {
		return windows[0].Start
	}
	return fallbackStart
}

// replaceUnit returns a copy of the pool with one unit transformed.
// Unknown IDs leave the pool unchanged; that is the caller's lookup
// mistake to surface, not the engine's.
func replaceUnit(pool []*agenda.Unit, id string, mutate func(*agenda.Unit)) []*agenda.Unit {
	result := make([]*agenda.Unit, 0, len(pool))
	for _, u := range pool {
		if u.ID == id {
			c := u.Clone()
			mutate(c)
			result = append(result, c)
			continue
		}
		result = append(result, u)
	}
	return result
}

func findUnit(pool []*agenda.Unit, id string) *agenda.Unit {
	for _, u := range pool {
		if u.ID == id {
			return u
		}
	}
	return nil
}
