// Package game implements the day lifecycle state machine: habit completion
// and undo, relapse handling, day submission and locking, midnight rollover
// and side quests. All mutations run synchronously on the caller's goroutine;
// persistence and remote sync are fired afterward and never block or roll
// back a local mutation.
package game

import (
	"github.com/habitforge/habitforge/internal/logger"
	"github.com/habitforge/habitforge/internal/models"
	"github.com/habitforge/habitforge/internal/progression"
)

// Persister stores the local snapshot. The engine treats local persistence as
// best-effort: a failed save is logged, never surfaced as an operation error.
type Persister interface {
	SaveState(*models.GameState) error
}

// Syncer receives sync intents. Routine mutations are debounced; day
// submission must be pushed immediately.
type Syncer interface {
	ScheduleProfileSync(snapshot models.GameState)
	SyncSubmission(snapshot models.GameState, rec models.DayRecord)
}

// Engine owns the game state and is the only writer to it. It is not safe
// for concurrent use; callers are expected to dispatch events serially, the
// way a UI event loop would.
type Engine struct {
	state  *models.GameState
	store  Persister
	syncer Syncer
	clock  Clock
}

func NewEngine(state *models.GameState, store Persister, syncer Syncer, clock Clock) *Engine {
	if state == nil {
		state = models.NewGameState()
	}
	if state.Profile.Achievements == nil {
		state.Profile.Achievements = map[string]bool{}
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Engine{state: state, store: store, syncer: syncer, clock: clock}
}

// State exposes the aggregate for read-only use (display, sync snapshots).
func (e *Engine) State() *models.GameState {
	return e.state
}

func (e *Engine) persist() {
	if e.store == nil {
		return
	}
	if err := e.store.SaveState(e.state); err != nil {
		logger.Warn("Failed to persist snapshot", "error", err)
	}
}

func (e *Engine) scheduleSync() {
	if e.syncer == nil {
		return
	}
	e.syncer.ScheduleProfileSync(*e.state)
}

// addXP applies a signed XP delta, clamping at zero, and recomputes level.
func (e *Engine) addXP(delta int) {
	p := &e.state.Profile
	p.XP += delta
	if p.XP < 0 {
		p.XP = 0
	}
	p.Level = progression.LevelFromXP(p.XP)
}

// scheduledHabits returns pointers to every habit scheduled for the given
// moment's calendar day.
func (e *Engine) scheduledHabits() []*models.Habit {
	now := e.clock.Now()
	var out []*models.Habit
	for i := range e.state.Habits {
		if progression.IsScheduledDay(e.state.Habits[i].Frequency, now) {
			out = append(out, &e.state.Habits[i])
		}
	}
	return out
}

// allScheduledCompleted reports whether every scheduled habit is completed
// (relapsed demons do not count).
func (e *Engine) allScheduledCompleted() bool {
	for _, h := range e.scheduledHabits() {
		if !h.Completed {
			return false
		}
	}
	return true
}
