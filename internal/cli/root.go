package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/habitforge/habitforge/internal/game"
	"github.com/habitforge/habitforge/internal/logger"
	"github.com/habitforge/habitforge/internal/models"
	"github.com/habitforge/habitforge/internal/storage"
	hfsync "github.com/habitforge/habitforge/internal/sync"
)

type Context struct {
	Store   storage.Provider
	Engine  *game.Engine
	Outbox  *hfsync.Outbox
	Gateway *hfsync.PostgresGateway
}

// RollDay advances the day lifecycle before a command executes. Running any
// command is the CLI equivalent of the app coming to the foreground.
func (c *Context) RollDay() {
	if c.Engine == nil {
		return
	}
	rolled, err := c.Engine.CheckAndResetDay()
	if err != nil {
		logger.Warn("day rollover failed", "error", err)
		return
	}
	if rolled {
		fmt.Println("A new day begins. Habits reset, fresh side quests rolled.")
	}
}

func (c *Context) requireStarted() error {
	if c.Engine == nil || !c.Engine.State().Profile.Started() {
		return fmt.Errorf("no program in progress, run 'habitforge start' first")
	}
	return nil
}

// FindHabit resolves a habit by id, id prefix, or case-insensitive name.
func (c *Context) FindHabit(ref string) (*models.Habit, error) {
	state := c.Engine.State()
	lower := strings.ToLower(ref)
	var match *models.Habit
	for i := range state.Habits {
		h := &state.Habits[i]
		if h.ID == ref {
			return h, nil
		}
		if strings.HasPrefix(h.ID, ref) || strings.ToLower(h.Name) == lower {
			if match != nil {
				return nil, fmt.Errorf("habit reference %q is ambiguous", ref)
			}
			match = h
		}
	}
	if match == nil {
		return nil, fmt.Errorf("habit %q not found", ref)
	}
	return match, nil
}

// ParseHabitSpec parses a name:type:xp[:frequency] habit flag value.
func ParseHabitSpec(s string) (game.HabitSpec, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return game.HabitSpec{}, fmt.Errorf("invalid habit spec %q (expected name:type:xp[:frequency])", s)
	}

	xp, err := strconv.Atoi(parts[2])
	if err != nil {
		return game.HabitSpec{}, fmt.Errorf("invalid habit xp %q", parts[2])
	}

	spec := game.HabitSpec{
		Name: strings.TrimSpace(parts[0]),
		Type: models.HabitType(strings.ToLower(strings.TrimSpace(parts[1]))),
		XP:   xp,
	}
	if len(parts) == 4 {
		spec.Frequency = models.Frequency(strings.ToLower(strings.TrimSpace(parts[3])))
	}
	return spec, nil
}

func habitMark(h models.Habit) string {
	switch {
	case h.Completed:
		return "[x]"
	case h.RelapsedToday:
		return "[!]"
	default:
		return "[ ]"
	}
}
