package cli

import (
	"errors"
	"fmt"

	"github.com/habitforge/habitforge/internal/game"
	"github.com/habitforge/habitforge/internal/models"
)

type HabitCmd struct {
	Add      HabitAddCmd      `cmd:"" help:"Add a new habit."`
	List     HabitListCmd     `cmd:"" help:"List all habits."`
	Complete HabitCompleteCmd `cmd:"" help:"Mark a habit done for today."`
	Undo     HabitUndoCmd     `cmd:"" help:"Undo today's completion."`
	Relapse  HabitRelapseCmd  `cmd:"" help:"Log a relapse on a demon habit."`
	Delete   HabitDeleteCmd   `cmd:"" help:"Delete a habit."`
}

type HabitAddCmd struct {
	Name      string `arg:"" help:"Habit name."`
	Type      string `help:"Habit kind: demon (to defeat) or power (to build)." enum:"demon,power" default:"power"`
	XP        int    `help:"XP granted per completion." default:"10"`
	Frequency string `help:"Schedule: daily, weekdays, 3x_week, or 4x_week." enum:"daily,weekdays,3x_week,4x_week" default:"daily"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.requireStarted(); err != nil {
		return err
	}

	h, err := ctx.Engine.AddHabit(game.HabitSpec{
		Name:      c.Name,
		Type:      models.HabitType(c.Type),
		XP:        c.XP,
		Frequency: models.Frequency(c.Frequency),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Added %s habit %q (%d XP, %s)\n", h.Type, h.Name, h.XP, h.Frequency)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.requireStarted(); err != nil {
		return err
	}

	habits := ctx.Engine.State().Habits
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'habitforge habit add'.")
		return nil
	}

	for _, h := range habits {
		line := fmt.Sprintf("%s %-24s %-6s %3d XP  streak %d", habitMark(h), h.Name, h.Type, h.XP, h.Streak)
		if wp := ctx.Engine.HabitWeekProgress(h.ID); wp != nil && h.Frequency != models.FrequencyDaily {
			line += fmt.Sprintf("  week %d/%d", wp.Current, wp.Target)
		}
		if h.Type == models.HabitDemon && h.Relapses > 0 {
			line += fmt.Sprintf("  relapses %d", h.Relapses)
		}
		fmt.Println(line)
	}
	return nil
}

type HabitCompleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitCompleteCmd) Run(ctx *Context) error {
	if err := ctx.requireStarted(); err != nil {
		return err
	}

	h, err := ctx.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	res, err := ctx.Engine.CompleteHabit(h.ID)
	switch {
	case errors.Is(err, game.ErrDayLocked):
		return fmt.Errorf("today is already submitted and locked")
	case errors.Is(err, game.ErrAlreadyCompleted):
		return fmt.Errorf("%q is already done today", h.Name)
	case errors.Is(err, game.ErrRelapsedToday):
		return fmt.Errorf("%q was relapsed today and cannot be completed", h.Name)
	case err != nil:
		return err
	}

	fmt.Printf("%q done: +%d XP\n", h.Name, res.XPEarned)
	if res.PerfectDay {
		fmt.Printf("Perfect day! Bonus +%d XP\n", res.PerfectBonus)
	}
	return nil
}

type HabitUndoCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitUndoCmd) Run(ctx *Context) error {
	if err := ctx.requireStarted(); err != nil {
		return err
	}

	h, err := ctx.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	res, err := ctx.Engine.UncompleteHabit(h.ID)
	switch {
	case errors.Is(err, game.ErrDayLocked):
		return fmt.Errorf("today is already submitted and locked")
	case errors.Is(err, game.ErrNotCompleted):
		return fmt.Errorf("%q is not completed today", h.Name)
	case err != nil:
		return err
	}

	fmt.Printf("%q undone: -%d XP\n", h.Name, res.XPRemoved)
	return nil
}

type HabitRelapseCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitRelapseCmd) Run(ctx *Context) error {
	if err := ctx.requireStarted(); err != nil {
		return err
	}

	h, err := ctx.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	res, err := ctx.Engine.RelapseHabit(h.ID)
	switch {
	case errors.Is(err, game.ErrDayLocked):
		return fmt.Errorf("today is already submitted and locked")
	case errors.Is(err, game.ErrNotDemon):
		return fmt.Errorf("%q is not a demon habit", h.Name)
	case err != nil:
		return err
	}

	fmt.Printf("Relapse logged on %q.\n", h.Name)
	if res.XPLost > 0 {
		fmt.Printf("Penalty: -%d XP", res.XPLost)
		if res.StreakLost > 0 {
			fmt.Printf(" (%d day streak broken)", res.StreakLost)
		}
		fmt.Println()
	}
	fmt.Printf("Honesty counts: +%d XP. Tomorrow is day one for this demon.\n", res.RecoveryXP)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Force bool   `help:"Skip the confirmation check."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.requireStarted(); err != nil {
		return err
	}

	h, err := ctx.FindHabit(c.Habit)
	if err != nil {
		return err
	}
	if !c.Force {
		return fmt.Errorf("this permanently deletes %q and its streak; re-run with --force to confirm", h.Name)
	}
	if err := ctx.Engine.RemoveHabit(h.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted %q.\n", h.Name)
	return nil
}
