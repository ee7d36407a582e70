package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/habitforge/habitforge/internal/constants"
	"github.com/habitforge/habitforge/internal/dates"
	"github.com/habitforge/habitforge/internal/models"
	"github.com/habitforge/habitforge/internal/progression"
)

// HabitSpec describes a habit to create.
type HabitSpec struct {
	Name      string
	Type      models.HabitType
	XP        int
	Frequency models.Frequency
}

func (s HabitSpec) validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("habit name is required")
	}
	if !models.ValidHabitType(s.Type) {
		return fmt.Errorf("invalid habit type %q", s.Type)
	}
	if s.XP <= 0 {
		return fmt.Errorf("habit xp must be positive, got %d", s.XP)
	}
	if s.Frequency != "" && !models.ValidFrequency(s.Frequency) {
		return fmt.Errorf("invalid frequency %q", s.Frequency)
	}
	return nil
}

// StartProgram begins the 66-day program with the given habit set. The start
// timestamp is immutable afterwards, even across relapses.
func (e *Engine) StartProgram(username, archetype string, specs []HabitSpec) error {
	if archetype != "" && !constants.ValidArchetype(archetype) {
		return fmt.Errorf("unknown archetype %q", archetype)
	}
	habits := make([]models.Habit, 0, len(specs))
	for _, s := range specs {
		h, err := newHabit(s, e.clock)
		if err != nil {
			return err
		}
		habits = append(habits, h)
	}

	now := e.clock.Now()
	p := &e.state.Profile
	p.Username = username
	p.Archetype = archetype
	p.XP = 0
	p.Level = 1
	p.CurrentStreak = 0
	p.LongestStreak = 0
	p.DayStarted = &now
	p.CurrentDay = 1
	p.LastCompletedAt = nil
	e.state.Habits = habits

	e.persist()
	e.scheduleSync()
	return nil
}

// AddHabit creates a single habit outside of onboarding.
func (e *Engine) AddHabit(spec HabitSpec) (models.Habit, error) {
	h, err := newHabit(spec, e.clock)
	if err != nil {
		return models.Habit{}, err
	}
	e.state.Habits = append(e.state.Habits, h)
	e.persist()
	e.scheduleSync()
	return h, nil
}

// RemoveHabit deletes a habit by id.
func (e *Engine) RemoveHabit(id string) error {
	for i := range e.state.Habits {
		if e.state.Habits[i].ID == id {
			e.state.Habits = append(e.state.Habits[:i], e.state.Habits[i+1:]...)
			e.persist()
			e.scheduleSync()
			return nil
		}
	}
	return ErrHabitNotFound
}

func newHabit(spec HabitSpec, clock Clock) (models.Habit, error) {
	if err := spec.validate(); err != nil {
		return models.Habit{}, err
	}
	freq := spec.Frequency
	if freq == "" {
		freq = models.FrequencyDaily
	}
	return models.Habit{
		ID:        uuid.New().String(),
		Name:      spec.Name,
		Type:      spec.Type,
		XP:        spec.XP,
		Frequency: freq,
		CreatedAt: clock.Now(),
	}, nil
}

// CompleteResult reports the outcome of a completion.
type CompleteResult struct {
	XPEarned     int
	PerfectDay   bool
	PerfectBonus int
	NewLevel     int
}

// CompleteHabit marks a habit done for today and grants multiplied XP. If
// this completion makes every scheduled habit complete, the one-time perfect
// day bonus is granted on top.
func (e *Engine) CompleteHabit(id string) (CompleteResult, error) {
	p := &e.state.Profile
	if p.Locked() {
		return CompleteResult{}, ErrDayLocked
	}
	h := e.state.Habit(id)
	if h == nil {
		return CompleteResult{}, ErrHabitNotFound
	}
	if h.Completed {
		return CompleteResult{}, ErrAlreadyCompleted
	}
	if h.RelapsedToday {
		// Completed and relapsed are mutually exclusive for a day.
		return CompleteResult{}, ErrRelapsedToday
	}

	streak := p.CurrentStreak
	earned := progression.MultiplyXP(h.XP, streak)

	h.Completed = true
	h.AddCompletedDate(dates.FormatYMD(e.clock.Now()))
	if h.Frequency == models.FrequencyDaily {
		// Non-daily streaks advance only at weekly evaluation.
		h.Streak++
	}
	if h.Streak > h.LongestStreak {
		h.LongestStreak = h.Streak
	}
	e.addXP(earned)

	res := CompleteResult{XPEarned: earned}
	if e.allScheduledCompleted() {
		res.PerfectDay = true
		res.PerfectBonus = progression.MultiplyXP(constants.PerfectDayBonus, streak)
		e.addXP(res.PerfectBonus)
	}
	res.NewLevel = p.Level

	e.persist()
	e.scheduleSync()
	return res, nil
}

// UncompleteResult reports the exact XP retracted by an undo.
type UncompleteResult struct {
	XPRemoved int
	NewLevel  int
}

// UncompleteHabit reverses a completion exactly, including retracting the
// perfect day bonus if the day was perfect immediately before the undo.
func (e *Engine) UncompleteHabit(id string) (UncompleteResult, error) {
	p := &e.state.Profile
	if p.Locked() {
		return UncompleteResult{}, ErrDayLocked
	}
	h := e.state.Habit(id)
	if h == nil {
		return UncompleteResult{}, ErrHabitNotFound
	}
	if !h.Completed {
		return UncompleteResult{}, ErrNotCompleted
	}

	streak := p.CurrentStreak
	remove := progression.MultiplyXP(h.XP, streak)
	if e.allScheduledCompleted() {
		remove += progression.MultiplyXP(constants.PerfectDayBonus, streak)
	}

	h.Completed = false
	h.RemoveCompletedDate(dates.FormatYMD(e.clock.Now()))
	if h.Frequency == models.FrequencyDaily && h.Streak > 0 {
		h.Streak--
	}
	e.addXP(-remove)

	e.persist()
	e.scheduleSync()
	return UncompleteResult{XPRemoved: remove, NewLevel: p.Level}, nil
}

// RelapseResult reports the fallout of a relapse for UI feedback.
type RelapseResult struct {
	XPLost        int
	RecoveryXP    int
	StreakLost    int
	TotalRelapses int
	LongestStreak int
}

// RelapseHabit logs a relapse on a demon habit. The penalty is half the XP
// the habit's current streak represents, offset by a small fixed reward for
// honesty. Only this habit's streak resets; the global streak, program start
// and current day are untouched.
func (e *Engine) RelapseHabit(id string) (RelapseResult, error) {
	p := &e.state.Profile
	if p.Locked() {
		return RelapseResult{}, ErrDayLocked
	}
	h := e.state.Habit(id)
	if h == nil {
		return RelapseResult{}, ErrHabitNotFound
	}
	if h.Type != models.HabitDemon {
		return RelapseResult{}, ErrNotDemon
	}

	penalty := h.Streak * h.XP / 2
	e.addXP(constants.RelapseRecoveryXP - penalty)

	streakLost := h.Streak
	if h.Streak > h.LongestStreak {
		h.LongestStreak = h.Streak
	}
	h.Completed = false
	h.RelapsedToday = true
	h.Streak = 0
	h.Relapses++

	e.persist()
	e.scheduleSync()
	return RelapseResult{
		XPLost:        penalty,
		RecoveryXP:    constants.RelapseRecoveryXP,
		StreakLost:    streakLost,
		TotalRelapses: h.Relapses,
		LongestStreak: h.LongestStreak,
	}, nil
}

// IsHabitScheduledToday reports whether the habit is expected today. Unknown
// ids default to scheduled.
func (e *Engine) IsHabitScheduledToday(id string) bool {
	h := e.state.Habit(id)
	if h == nil {
		return true
	}
	return progression.IsScheduledDay(h.Frequency, e.clock.Now())
}
