package models

// SideQuest is one daily bonus task drawn from the fixed catalog.
type SideQuest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	XP       int    `json:"xp"`
	Category string `json:"category"`
}

// GameState is the whole persisted aggregate: profile, habit list, submitted
// day history and the ephemeral side-quest state. It is the only shared
// mutable resource in the application and is mutated synchronously by the
// game engine.
type GameState struct {
	Profile Profile     `json:"profile"`
	Habits  []Habit     `json:"habits"`
	History []DayRecord `json:"history"`

	DailySideQuests     []SideQuest `json:"daily_side_quests"`
	CompletedSideQuests []string    `json:"completed_side_quests"`
}

// NewGameState returns an empty state with initialized collections.
func NewGameState() *GameState {
	return &GameState{
		Profile: Profile{
			Level:        1,
			CurrentDay:   1,
			Achievements: map[string]bool{},
		},
	}
}

// Habit returns a pointer to the habit with the given id, or nil.
func (s *GameState) Habit(id string) *Habit {
	for i := range s.Habits {
		if s.Habits[i].ID == id {
			return &s.Habits[i]
		}
	}
	return nil
}

// HistoryByDate returns the day record for date, or nil.
func (s *GameState) HistoryByDate(date string) *DayRecord {
	for i := range s.History {
		if s.History[i].Date == date {
			return &s.History[i]
		}
	}
	return nil
}
