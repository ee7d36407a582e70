package models

type HabitStatus string

const (
	StatusCompleted HabitStatus = "completed"
	StatusRelapsed  HabitStatus = "relapsed"
	StatusMissed    HabitStatus = "missed"
)

// HabitSnapshot captures one scheduled habit's outcome inside a DayRecord.
type HabitSnapshot struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Type   HabitType   `json:"type"`
	XP     int         `json:"xp"`
	Status HabitStatus `json:"status"`
	Streak int         `json:"streak"`
}

// DayRecord is the immutable summary of one submitted day. Resubmitting the
// same date replaces the record wholesale rather than appending a duplicate.
type DayRecord struct {
	Date            string          `json:"date"` // YYYY-MM-DD
	DayNumber       int             `json:"day_number"`
	Habits          []HabitSnapshot `json:"habits"`
	XPEarned        int             `json:"xp_earned"`
	IsPerfect       bool            `json:"is_perfect"`
	SuccessfulCount int             `json:"successful_count"`
	TotalCount      int             `json:"total_count"`
	RelapseCount    int             `json:"relapse_count"`
}
