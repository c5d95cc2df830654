package agenda

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyChain is returned when a chain is built without steps.
var ErrEmptyChain = errors.New("chain needs at least one step")

// ChainStep describes one step of a multi-step chain before it becomes a
// unit. DelayAfterPrevious is ignored on the first step.
type ChainStep struct {
	Title              string
	Duration           int // minutes
	DelayAfterPrevious int // minutes after the previous step ends
}

// NewChain builds the units of a multi-step chain. All steps share a
// freshly generated chain id and the same anchor date; the chain id, not
// the anchor date, is what groups them during scheduling.
func NewChain(title string, priority Priority, anchor time.Time, steps []ChainStep) ([]*Unit, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if len(steps) == 0 {
		return nil, ErrEmptyChain
	}

	chainID := uuid.NewString()
	now := time.Now()
	day := truncateToDay(anchor)

	units := make([]*Unit, 0, len(steps))
	for i, step := range steps {
		stepTitle := step.Title
		if stepTitle == "" {
			stepTitle = title
		}
		if step.Duration <= 0 {
			return nil, ErrInvalidDuration
		}
		units = append(units, &Unit{
			ID:                 uuid.NewString(),
			Title:              stepTitle,
			Date:               day,
			Duration:           step.Duration,
			OriginalDuration:   step.Duration,
			Priority:           priority,
			Status:             StatusScheduled,
			ParentRecurringID:  chainID,
			ChainID:            chainID,
			StepIndex:          i,
			DelayAfterPrevious: step.DelayAfterPrevious,
			CreatedAt:          now,
			UpdatedAt:          now,
			SourceType:         SourceManual,
		})
	}
	return units, nil
}

// ChainMembers returns the units sharing the given chain id, sorted by
// step index.
func ChainMembers(units []*Unit, chainID string) []*Unit {
	var members []*Unit
	for _, u := range units {
		if u.ChainID == chainID {
			members = append(members, u)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].StepIndex < members[j].StepIndex
	})
	return members
}
