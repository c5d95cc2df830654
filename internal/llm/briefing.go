package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cyrilhamel/caly/internal/agenda"
)

const briefingSystemPrompt = `You are a personal agenda assistant. You receive a day's schedule and write a short spoken-style briefing for it: what the day looks like, where the busy stretches are, and what deserves attention first. Be concise, two or three sentences per theme at most. Do not invent tasks that are not in the schedule and do not propose moving anything.`

// BriefingPrompt renders a day's placed units as the user prompt for a
// briefing, in chronological order.
func BriefingPrompt(day *agenda.Day) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Schedule for %s:\n", day.Date.Format("Monday, January 2 2006"))

	units := day.Placed()
	if len(units) == 0 {
		b.WriteString("No scheduled entries.\n")
	}

	for _, u := range units {
		fmt.Fprintf(&b, "- %s (%d min) %s", u.Start, u.EffectiveDuration(), u.Title)
		var tags []string
		if u.Fixed {
			tags = append(tags, "fixed")
		}
		if u.Priority == agenda.PriorityUrgent {
			tags = append(tags, "urgent")
		}
		if u.Status == agenda.StatusCompleted {
			tags = append(tags, "done")
		}
		if len(tags) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(tags, ", "))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Briefing asks the client for a narrated summary of the given day.
func Briefing(ctx context.Context, client Client, day *agenda.Day) (string, error) {
	messages := []Message{
		{Role: "system", Content: briefingSystemPrompt},
		{Role: "user", Content: BriefingPrompt(day)},
	}

	out, err := client.Chat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generating briefing: %w", err)
	}

	return strings.TrimSpace(out), nil
}
