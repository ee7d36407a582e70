// Package validation checks sync payloads before they are allowed anywhere
// near the network. A validation failure is a typed local error; no mutation
// or transmission happens after one.
package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/habitforge/habitforge/internal/constants"
	"github.com/habitforge/habitforge/internal/dates"
	"github.com/habitforge/habitforge/internal/models"
)

// Error is a validation failure listing every problem found.
type Error struct {
	Problems []string
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Problems, ", ")
}

func fail(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &Error{Problems: problems}
}

// UserID requires a UUID-formatted user id.
func UserID(id string) error {
	if id == "" {
		return &Error{Problems: []string{"user id is required"}}
	}
	if _, err := uuid.Parse(id); err != nil {
		return &Error{Problems: []string{fmt.Sprintf("invalid user id format %q", id)}}
	}
	return nil
}

// Date requires a well-formed YYYY-MM-DD string.
func Date(s string) error {
	if s == "" {
		return &Error{Problems: []string{"date is required"}}
	}
	if !dates.ValidYMD(s) {
		return &Error{Problems: []string{fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", s)}}
	}
	return nil
}

// Profile checks the profile snapshot's numeric ranges and enums.
func Profile(state models.GameState) error {
	var problems []string
	p := state.Profile

	if p.XP < 0 {
		problems = append(problems, "xp must be non-negative")
	}
	if p.Level < 1 {
		problems = append(problems, "level must be positive")
	}
	if p.CurrentDay < 1 {
		problems = append(problems, "current day must be positive")
	}
	if p.CurrentStreak < 0 {
		problems = append(problems, "current streak must be non-negative")
	}
	if p.LongestStreak < p.CurrentStreak {
		problems = append(problems, "longest streak must be at least current streak")
	}
	if p.Archetype != "" && !constants.ValidArchetype(p.Archetype) {
		problems = append(problems, fmt.Sprintf("invalid archetype %q", p.Archetype))
	}
	if p.LastSubmitDate != "" && !dates.ValidYMD(p.LastSubmitDate) {
		problems = append(problems, fmt.Sprintf("invalid last submit date %q", p.LastSubmitDate))
	}

	for _, h := range state.Habits {
		if h.ID == "" {
			problems = append(problems, "habit id is required")
		}
		if !models.ValidHabitType(h.Type) {
			problems = append(problems, fmt.Sprintf("habit %q has invalid type %q", h.Name, h.Type))
		}
		if h.XP < 0 {
			problems = append(problems, fmt.Sprintf("habit %q has negative xp", h.Name))
		}
		if h.Streak < 0 || h.LongestStreak < h.Streak {
			problems = append(problems, fmt.Sprintf("habit %q has inconsistent streaks", h.Name))
		}
	}

	return fail(problems)
}

// DayRecord checks a day log entry.
func DayRecord(rec models.DayRecord) error {
	var problems []string

	if err := Date(rec.Date); err != nil {
		problems = append(problems, fmt.Sprintf("invalid date %q", rec.Date))
	}
	if rec.DayNumber < 1 {
		problems = append(problems, "day number must be positive")
	}
	if rec.XPEarned < 0 {
		problems = append(problems, "xp earned must be non-negative")
	}
	if rec.SuccessfulCount < 0 || rec.TotalCount < 0 || rec.SuccessfulCount > rec.TotalCount {
		problems = append(problems, "successful count must be within total count")
	}
	if rec.RelapseCount < 0 {
		problems = append(problems, "relapse count must be non-negative")
	}

	return fail(problems)
}
