// Package achievements derives the unlocked-achievement set from aggregate
// stats. Evaluation is pure; unlocks are monotonic and never revert, even if
// the underlying stats would no longer satisfy the predicate.
package achievements

import (
	"sort"

	"github.com/habitforge/habitforge/internal/models"
)

// Stats is the aggregate input achievements are judged against.
type Stats struct {
	LongestStreak          int
	TotalDaysCompleted     int
	PerfectDaysCount       int
	ConsecutivePerfectDays int
}

// Achievement pairs an id with its unlock predicate.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Unlocked    func(Stats) bool
}

// Table is the fixed achievement catalog, evaluated after every submission.
var Table = []Achievement{
	{ID: "firstBlood", Name: "First Blood", Description: "Complete your first day", Unlocked: func(s Stats) bool { return s.TotalDaysCompleted >= 1 }},
	{ID: "weekWarrior", Name: "Week Warrior", Description: "Reach a 7 day streak", Unlocked: func(s Stats) bool { return s.LongestStreak >= 7 }},
	{ID: "twoWeeks", Name: "Fortnight", Description: "Reach a 14 day streak", Unlocked: func(s Stats) bool { return s.LongestStreak >= 14 }},
	{ID: "monthly", Name: "Monthly", Description: "Reach a 30 day streak", Unlocked: func(s Stats) bool { return s.LongestStreak >= 30 }},
	{ID: "lockedIn", Name: "Locked In", Description: "Reach a 45 day streak", Unlocked: func(s Stats) bool { return s.LongestStreak >= 45 }},
	{ID: "forged", Name: "Forged", Description: "Reach a 66 day streak", Unlocked: func(s Stats) bool { return s.LongestStreak >= 66 }},
	{ID: "centurion", Name: "Centurion", Description: "Reach a 100 day streak", Unlocked: func(s Stats) bool { return s.LongestStreak >= 100 }},
	{ID: "perfectWeek", Name: "Perfect Week", Description: "7 perfect days in a row", Unlocked: func(s Stats) bool { return s.ConsecutivePerfectDays >= 7 }},
	{ID: "perfectMonth", Name: "Perfect Month", Description: "30 perfect days total", Unlocked: func(s Stats) bool { return s.PerfectDaysCount >= 30 }},
}

// Evaluate folds the stats into the current unlock set and returns the ids
// that flipped from locked to unlocked, in table order. The current map is
// not modified.
func Evaluate(current map[string]bool, s Stats) (map[string]bool, []string) {
	updated := make(map[string]bool, len(Table))
	for k, v := range current {
		updated[k] = v
	}

	var newly []string
	for _, a := range Table {
		if updated[a.ID] {
			continue // monotonic: never re-evaluate an unlocked achievement
		}
		if a.Unlocked(s) {
			updated[a.ID] = true
			newly = append(newly, a.ID)
		}
	}
	return updated, newly
}

// ConsecutivePerfectDays counts the unbroken run of perfect days ending at
// the most recent history entry.
func ConsecutivePerfectDays(history []models.DayRecord) int {
	sorted := make([]models.DayRecord, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })

	run := 0
	for _, rec := range sorted {
		if !rec.IsPerfect {
			break
		}
		run++
	}
	return run
}

// ByID returns the catalog entry for id, if any.
func ByID(id string) (Achievement, bool) {
	for _, a := range Table {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
