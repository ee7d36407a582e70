package models

import "time"

type HabitType string

const (
	HabitDemon HabitType = "demon"
	HabitPower HabitType = "power"
)

type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekdays Frequency = "weekdays"
	Frequency3xWeek   Frequency = "3x_week"
	Frequency4xWeek   Frequency = "4x_week"
)

// Habit is a single tracked behavior. Demons are bad habits to avoid, powers
// are good habits to build. Completed and RelapsedToday reset every day and
// are mutually exclusive for a given day.
type Habit struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Type           HabitType `json:"type"`
	XP             int       `json:"xp"`
	Frequency      Frequency `json:"frequency"`
	Completed      bool      `json:"completed"`
	RelapsedToday  bool      `json:"relapsed_today"`
	CompletedDates []string  `json:"completed_dates"` // YYYY-MM-DD, one entry per distinct date
	Streak         int       `json:"streak"`
	LongestStreak  int       `json:"longest_streak"`
	Relapses       int       `json:"relapses"`
	WeekStreak     int       `json:"week_streak"` // non-daily habits: consecutive successful weeks
	CreatedAt      time.Time `json:"created_at"`
}

// CompletedOn reports whether date is recorded in CompletedDates.
func (h *Habit) CompletedOn(date string) bool {
	for _, d := range h.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}

// AddCompletedDate appends date to CompletedDates unless already present.
func (h *Habit) AddCompletedDate(date string) {
	if !h.CompletedOn(date) {
		h.CompletedDates = append(h.CompletedDates, date)
	}
}

// RemoveCompletedDate drops date from CompletedDates if present.
func (h *Habit) RemoveCompletedDate(date string) {
	for i, d := range h.CompletedDates {
		if d == date {
			h.CompletedDates = append(h.CompletedDates[:i], h.CompletedDates[i+1:]...)
			return
		}
	}
}

// ValidHabitType reports whether t is a known habit type.
func ValidHabitType(t HabitType) bool {
	return t == HabitDemon || t == HabitPower
}

// ValidFrequency reports whether f is a known frequency.
func ValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekdays, Frequency3xWeek, Frequency4xWeek:
		return true
	}
	return false
}
