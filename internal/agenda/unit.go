// Package agenda defines the core domain types for caly.
package agenda

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrInvalidPriority   = errors.New("priority must be 'urgent', 'normal' or 'low'")
	ErrInvalidDuration   = errors.New("duration must be a positive number of minutes")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
)

// Domain errors.
var (
	ErrUnitNotFound    = errors.New("unit not found")
	ErrUnitImmutable   = errors.New("unit can no longer be modified")
	ErrAmbiguousUnitID = errors.New("unit id prefix matches more than one unit")
)

// Status represents the lifecycle state of a unit.
type Status string

const (
	StatusScheduled  Status = "scheduled"   // auto-placed, tentative
	StatusValidated  Status = "validated"   // user-confirmed, anchored
	StatusPostponed  Status = "postponed"   // waiting for a new slot
	StatusInProgress Status = "in-progress" // running, anchored but may grow
	StatusCompleted  Status = "completed"   // historical, immutable
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusValidated, StatusPostponed, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Priority determines placement order among flexible units.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// Rank returns the sort rank of the priority, lower places first.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 1
	case PriorityNormal:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Valid returns true if the priority is a known value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityUrgent, PriorityNormal, PriorityLow:
		return true
	default:
		return false
	}
}

// SourceType tags the provenance of a unit.
type SourceType string

const (
	SourceManual   SourceType = "manual"
	SourceCalendar SourceType = "calendar" // imported .ics events
	SourceBoard    SourceType = "board"    // kanban board export
	SourceFamily   SourceType = "family"
	SourceAdmin    SourceType = "admin"
	SourceMonitor  SourceType = "monitor"
)

// Unit is a single agenda item as seen by the scheduling engine.
// The engine assigns Date and Start for flexible units; fixed units keep
// whatever the caller provided.
type Unit struct {
	ID          string
	Title       string
	Description string

	Date  time.Time // anchor day, local midnight
	Start string    // "HH:MM", empty until placed

	Duration         int // planned minutes
	ActualDuration   int // 0 unless the running unit was extended; overrides Duration
	OriginalDuration int // first planned duration, kept for review

	Fixed          bool
	Priority       Priority
	Status         Status
	CanBeOnWeekend bool

	Recurring          bool
	RecurrenceInterval int // days between occurrences
	RecurrenceEnd      *time.Time
	ParentRecurringID  string

	// Chain fields. A unit belongs to a multi-step chain iff ChainID is
	// non-empty. Steps share the chain id and anchor date; step 0 is
	// slot-searched, later steps start DelayAfterPrevious minutes after
	// the previous step ends.
	ChainID            string
	StepIndex          int
	DelayAfterPrevious int

	CreatedAt time.Time
	UpdatedAt time.Time

	SourceType SourceType
	SourceID   string
}

// New creates a flexible unit with validation. The unit starts unplaced
// with scheduled status; the engine assigns Date and Start.
func New(title string, priority Priority, durationMinutes int, anchor time.Time) (*Unit, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	now := time.Now()
	return &Unit{
		ID:               uuid.NewString(),
		Title:            title,
		Date:             truncateToDay(anchor),
		Duration:         durationMinutes,
		OriginalDuration: durationMinutes,
		Priority:         priority,
		Status:           StatusScheduled,
		CreatedAt:        now,
		UpdatedAt:        now,
		SourceType:       SourceManual,
	}, nil
}

// NewFixed creates an immovable unit at an explicit date and time.
// Fixed units only occupy space; the engine never touches them.
func NewFixed(title string, date time.Time, start string, durationMinutes int) (*Unit, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if err := ValidateTimeOfDay(start); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Unit{
		ID:               uuid.NewString(),
		Title:            title,
		Date:             truncateToDay(date),
		Start:            start,
		Duration:         durationMinutes,
		OriginalDuration: durationMinutes,
		Fixed:            true,
		Priority:         PriorityNormal,
		Status:           StatusScheduled,
		CreatedAt:        now,
		UpdatedAt:        now,
		SourceType:       SourceManual,
	}, nil
}

// ValidateTimeOfDay checks that s is a well-formed "HH:MM" string.
func ValidateTimeOfDay(s string) error {
	if len(s) != 5 {
		return ErrInvalidTimeFormat
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return ErrInvalidTimeFormat
	}
	return nil
}

// EffectiveDuration returns the duration that drives placement: the
// actual duration when the unit was extended, the planned one otherwise.
func (u *Unit) EffectiveDuration() int {
	if u.ActualDuration > 0 {
		return u.ActualDuration
	}
	return u.Duration
}

// Placed returns true if the unit has a concrete start time.
func (u *Unit) Placed() bool {
	return u.Start != ""
}

// IsChainStep returns true if the unit belongs to a multi-step chain.
func (u *Unit) IsChainStep() bool {
	return u.ChainID != ""
}

// IsStandaloneRecurring returns true for a weekly-repeating unit that is
// not part of a chain. Such units are pinned to the week of their anchor
// date during placement.
func (u *Unit) IsStandaloneRecurring() bool {
	return u.Recurring && !u.IsChainStep()
}

// Anchored returns true if a full scheduling pass must leave the unit
// where it is: fixed units and units the user has committed to.
func (u *Unit) Anchored() bool {
	if u.Fixed {
		return true
	}
	switch u.Status {
	case StatusValidated, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// StartInstant resolves the unit's start to a concrete instant on its
// date. The zero time is returned for unplaced units.
func (u *Unit) StartInstant() time.Time {
	if !u.Placed() {
		return time.Time{}
	}
	m := TimeToMinutes(u.Start)
	return u.Date.Add(time.Duration(m) * time.Minute)
}

// EndInstant resolves the unit's end using its effective duration.
func (u *Unit) EndInstant() time.Time {
	start := u.StartInstant()
	if start.IsZero() {
		return time.Time{}
	}
	return start.Add(time.Duration(u.EffectiveDuration()) * time.Minute)
}

// SameDay returns true if the unit is anchored on the given calendar day.
func (u *Unit) SameDay(day time.Time) bool {
	return u.Date.Equal(truncateToDay(day))
}

// OverlapsWith returns true if both units are placed on the same day with
// overlapping effective time ranges.
func (u *Unit) OverlapsWith(other *Unit) bool {
	if other == nil || !u.Placed() || !other.Placed() || !u.Date.Equal(other.Date) {
		return false
	}
	s1 := TimeToMinutes(u.Start)
	s2 := TimeToMinutes(other.Start)
	return RangesOverlap(s1, s1+u.EffectiveDuration(), s2, s2+other.EffectiveDuration())
}

// Clone returns a deep copy of the unit.
func (u *Unit) Clone() *Unit {
	c := *u
	if u.RecurrenceEnd != nil {
		end := *u.RecurrenceEnd
		c.RecurrenceEnd = &end
	}
	return &c
}

// Label returns a short identifier for display and logs.
func (u *Unit) Label() string {
	if len(u.ID) >= 8 {
		return fmt.Sprintf("%s %q", u.ID[:8], u.Title)
	}
	return fmt.Sprintf("%s %q", u.ID, u.Title)
}

// truncateToDay removes the time component from a time.Time.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
