package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/cyrilhamel/caly/internal/agenda"
)

// BoardCard is one card of a kanban board export.
type BoardCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Duration    int    `json:"duration"`           // minutes
	Priority    string `json:"priority,omitempty"` // urgent, normal, low
	Due         string `json:"due,omitempty"`      // YYYY-MM-DD anchor date
	Weekend     bool   `json:"weekend,omitempty"`  // may be placed on weekends
}

// BoardFeed imports cards from a kanban board JSON export as flexible
// units the engine will place.
type BoardFeed struct {
	Path string
}

// NewBoardFeed creates a feed reading the given JSON export.
func NewBoardFeed(path string) *BoardFeed {
	return &BoardFeed{Path: path}
}

// Source implements Feed.
func (f *BoardFeed) Source() agenda.SourceType {
	return agenda.SourceBoard
}

// Fetch implements Feed.
func (f *BoardFeed) Fetch(ctx context.Context) ([]*agenda.Unit, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("reading board export: %w", err)
	}

	var cards []BoardCard
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("parsing board export: %w", err)
	}

	now := time.Now()
	units := make([]*agenda.Unit, 0, len(cards))
	for _, card := range cards {
		u, err := cardToUnit(card, now)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", card.ID, err)
		}
		units = append(units, u)
	}
	return units, nil
}

func cardToUnit(card BoardCard, now time.Time) (*agenda.Unit, error) {
	if card.Title == "" {
		return nil, agenda.ErrEmptyTitle
	}
	if card.Duration <= 0 {
		return nil, agenda.ErrInvalidDuration
	}

	priority := agenda.PriorityNormal
	if card.Priority != "" {
		priority = agenda.Priority(card.Priority)
		if !priority.Valid() {
			return nil, agenda.ErrInvalidPriority
		}
	}

	anchor := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if card.Due != "" {
		due, err := time.ParseInLocation("2006-01-02", card.Due, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid due date %q", card.Due)
		}
		anchor = due
	}

	return &agenda.Unit{
		ID:               uuid.NewString(),
		Title:            card.Title,
		Description:      card.Description,
		Date:             anchor,
		Duration:         card.Duration,
		OriginalDuration: card.Duration,
		Priority:         priority,
		Status:           agenda.StatusScheduled,
		CanBeOnWeekend:   card.Weekend,
		CreatedAt:        now,
		UpdatedAt:        now,
		SourceType:       agenda.SourceBoard,
		SourceID:         card.ID,
	}, nil
}
