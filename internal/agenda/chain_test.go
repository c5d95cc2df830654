package agenda

import (
	"errors"
	"testing"
)

func TestNewChain(t *testing.T) {
	steps := []ChainStep{
		{Title: "wash", Duration: 30},
		{Title: "hang", Duration: 15, DelayAfterPrevious: 45},
		{Duration: 20, DelayAfterPrevious: 120}, // inherits the chain title
	}

	units, err := NewChain("laundry", PriorityNormal, monday, steps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(units))
	}

	chainID := units[0].ChainID
	if chainID == "" {
		t.Fatal("expected a generated chain id")
	}
	for i, u := range units {
		if u.ChainID != chainID {
			t.Errorf("step %d has a different chain id", i)
		}
		if u.StepIndex != i {
			t.Errorf("step %d: expected index %d, got %d", i, i, u.StepIndex)
		}
		if !u.Date.Equal(monday) {
			t.Errorf("step %d: expected anchor %v, got %v", i, monday, u.Date)
		}
	}
	if units[2].Title != "laundry" {
		t.Errorf("untitled step should inherit the chain title, got %q", units[2].Title)
	}
	if units[1].DelayAfterPrevious != 45 {
		t.Errorf("expected delay 45, got %d", units[1].DelayAfterPrevious)
	}
}

func TestNewChain_Invalid(t *testing.T) {
	if _, err := NewChain("x", PriorityNormal, monday, nil); !errors.Is(err, ErrEmptyChain) {
		t.Errorf("expected empty chain error, got %v", err)
	}
	if _, err := NewChain("", PriorityNormal, monday, []ChainStep{{Duration: 10}}); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("expected empty title error, got %v", err)
	}
	if _, err := NewChain("x", PriorityNormal, monday, []ChainStep{{Duration: 0}}); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("expected duration error, got %v", err)
	}
}

func TestChainMembers(t *testing.T) {
	units, err := NewChain("bread", PriorityNormal, monday, []ChainStep{
		{Title: "knead", Duration: 20},
		{Title: "rise", Duration: 60, DelayAfterPrevious: 0},
		{Title: "bake", Duration: 45, DelayAfterPrevious: 30},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loose, err := New("unrelated", PriorityNormal, 30, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Shuffle the pool so sorting is actually exercised.
	pool := []*Unit{units[2], loose, units[0], units[1]}

	members := ChainMembers(pool, units[0].ChainID)
	if len(members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(members))
	}
	for i, m := range members {
		if m.StepIndex != i {
			t.Errorf("member %d: expected step index %d, got %d", i, i, m.StepIndex)
		}
	}
}
