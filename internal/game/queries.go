package game

import (
	"sort"

	"github.com/habitforge/habitforge/internal/achievements"
	"github.com/habitforge/habitforge/internal/constants"
	"github.com/habitforge/habitforge/internal/models"
	"github.com/habitforge/habitforge/internal/progression"
)

// Rank returns the player's current rank name, or "" without an archetype.
func (e *Engine) Rank() string {
	p := e.state.Profile
	return progression.RankFromLevel(p.Archetype, p.Level)
}

// Phase returns the current program phase.
func (e *Engine) Phase() progression.Phase {
	return progression.PhaseFromDay(e.state.Profile.CurrentDay)
}

// LevelProgress describes XP progress within the current level.
type LevelProgress struct {
	Current int
	Total   int
}

func (e *Engine) LevelProgress() LevelProgress {
	return LevelProgress{
		Current: progression.LevelProgress(e.state.Profile.XP),
		Total:   constants.LevelXP,
	}
}

// Stats is a display summary over the habit list.
type Stats struct {
	TotalHabits    int
	Demons         int
	Powers         int
	CompletedToday int
	TotalRelapses  int
	AverageStreak  int
}

func (e *Engine) Stats() Stats {
	var s Stats
	streakSum := 0
	for _, h := range e.state.Habits {
		s.TotalHabits++
		if h.Type == models.HabitDemon {
			s.Demons++
			s.TotalRelapses += h.Relapses
		} else {
			s.Powers++
		}
		if h.Completed {
			s.CompletedToday++
		}
		streakSum += h.Streak
	}
	if s.TotalHabits > 0 {
		s.AverageStreak = (streakSum + s.TotalHabits/2) / s.TotalHabits
	}
	return s
}

// WeekProgress describes a habit's progress against its weekly target.
type WeekProgress struct {
	Current   int
	Target    int
	Complete  bool
	Frequency models.Frequency
}

// HabitWeekProgress reports this week's completions for a habit, or nil for
// unknown ids.
func (e *Engine) HabitWeekProgress(id string) *WeekProgress {
	h := e.state.Habit(id)
	if h == nil {
		return nil
	}
	target := progression.WeeklyTarget(h.Frequency)
	current := progression.WeekCompletions(h.CompletedDates, e.clock.Now())
	return &WeekProgress{
		Current:   current,
		Target:    target,
		Complete:  current >= target,
		Frequency: h.Frequency,
	}
}

// ScheduledHabits returns copies of the habits scheduled for today.
func (e *Engine) ScheduledHabits() []models.Habit {
	var out []models.Habit
	for _, h := range e.scheduledHabits() {
		out = append(out, *h)
	}
	return out
}

// HistoryFilter selects a slice of the day history.
type HistoryFilter string

const (
	HistoryAll      HistoryFilter = "all"
	HistoryPerfect  HistoryFilter = "perfect"
	HistoryRelapses HistoryFilter = "relapses"
)

// History returns day records matching the filter, most recent first.
func (e *Engine) History(filter HistoryFilter) []models.DayRecord {
	var out []models.DayRecord
	for _, rec := range e.state.History {
		switch filter {
		case HistoryPerfect:
			if !rec.IsPerfect {
				continue
			}
		case HistoryRelapses:
			if rec.RelapseCount == 0 {
				continue
			}
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// HistoryByDate returns the record for a date, or nil.
func (e *Engine) HistoryByDate(date string) *models.DayRecord {
	return e.state.HistoryByDate(date)
}

// PerfectStreak is the current run of consecutive perfect days.
func (e *Engine) PerfectStreak() int {
	return achievements.ConsecutivePerfectDays(e.state.History)
}

// TotalRelapses sums lifetime relapses across all habits.
func (e *Engine) TotalRelapses() int {
	n := 0
	for _, h := range e.state.Habits {
		n += h.Relapses
	}
	return n
}

// ResetAll wipes the whole local game state back to a fresh install. Remote
// data is the caller's problem; see the sync gateway's DeleteAllUserData.
func (e *Engine) ResetAll() {
	userID := e.state.Profile.UserID
	*e.state = *models.NewGameState()
	e.state.Profile.UserID = userID
	e.persist()
}
