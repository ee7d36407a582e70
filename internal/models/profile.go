package models

import "time"

// Profile is the single player record. Aggregate counters only ever grow;
// achievement flags never flip back to false once set.
type Profile struct {
	UserID    string `json:"user_id,omitempty"` // set on login, UUID
	Username  string `json:"username,omitempty"`
	Archetype string `json:"archetype,omitempty"`

	XP            int `json:"xp"`
	Level         int `json:"level"`
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`

	// DayStarted marks the start of the 66-day program. Immutable once set,
	// even across relapses.
	DayStarted *time.Time `json:"day_started,omitempty"`
	CurrentDay int        `json:"current_day"`

	// DayLockedAt is non-nil while today's submission is finalized and habit
	// mutation is frozen.
	DayLockedAt *time.Time `json:"day_locked_at,omitempty"`

	// LastCompletedAt is the timestamp of the most recent day submission,
	// used for streak-continuity checks at rollover.
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty"`

	LastSubmitDate      string `json:"last_submit_date,omitempty"`      // YYYY-MM-DD
	LastCelebrationDate string `json:"last_celebration_date,omitempty"` // YYYY-MM-DD

	// LastResetDate is the canonical "daily reset has run for date X" marker.
	// Written only by the daily reset.
	LastResetDate string `json:"last_reset_date,omitempty"` // YYYY-MM-DD

	Achievements map[string]bool `json:"achievements"`

	TotalDaysCompleted int `json:"total_days_completed"`
	PerfectDaysCount   int `json:"perfect_days_count"`
	TotalXPEarned      int `json:"total_xp_earned"`
}

// Started reports whether the 66-day program has begun.
func (p *Profile) Started() bool {
	return p.DayStarted != nil
}

// Locked reports whether today's submission is finalized.
func (p *Profile) Locked() bool {
	return p.DayLockedAt != nil
}
