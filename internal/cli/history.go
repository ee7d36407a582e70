package cli

import (
	"fmt"

	"github.com/habitforge/habitforge/internal/achievements"
	"github.com/habitforge/habitforge/internal/game"
)

type HistoryCmd struct {
	Filter string `help:"Filter: all, perfect, or relapses." enum:"all,perfect,relapses" default:"all"`
	Date   string `help:"Show a single day (YYYY-MM-DD)." default:""`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	if err := ctx.requireStarted(); err != nil {
		return err
	}

	if c.Date != "" {
		rec := ctx.Engine.HistoryByDate(c.Date)
		if rec == nil {
			fmt.Printf("No record for %s.\n", c.Date)
			return nil
		}
		fmt.Printf("%s (day %d): %d/%d handled, %d XP\n", rec.Date, rec.DayNumber, rec.SuccessfulCount, rec.TotalCount, rec.XPEarned)
		for _, h := range rec.Habits {
			fmt.Printf("  %-24s %s\n", h.Name, h.Status)
		}
		return nil
	}

	records := ctx.Engine.History(game.HistoryFilter(c.Filter))
	if len(records) == 0 {
		fmt.Println("No submitted days yet.")
		return nil
	}

	for _, rec := range records {
		line := fmt.Sprintf("%s  day %2d  %d/%d  %4d XP", rec.Date, rec.DayNumber, rec.SuccessfulCount, rec.TotalCount, rec.XPEarned)
		if rec.IsPerfect {
			line += "  perfect"
		}
		if rec.RelapseCount > 0 {
			line += fmt.Sprintf("  %d relapse(s)", rec.RelapseCount)
		}
		fmt.Println(line)
	}
	return nil
}

type AchievementsCmd struct{}

func (c *AchievementsCmd) Run(ctx *Context) error {
	if err := ctx.requireStarted(); err != nil {
		return err
	}

	unlocked := ctx.Engine.State().Profile.Achievements
	for _, a := range achievements.Table {
		mark := "[ ]"
		if unlocked[a.ID] {
			mark = "[x]"
		}
		fmt.Printf("%s %-16s %s\n", mark, a.Name, a.Description)
	}
	return nil
}

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.requireStarted(); err != nil {
		return err
	}

	p := ctx.Engine.State().Profile
	s := ctx.Engine.Stats()

	fmt.Printf("Habits: %d (%d demons, %d powers)\n", s.TotalHabits, s.Demons, s.Powers)
	fmt.Printf("Completed today: %d\n", s.CompletedToday)
	fmt.Printf("Average habit streak: %d\n", s.AverageStreak)
	fmt.Printf("Total relapses: %d\n", s.TotalRelapses)
	fmt.Printf("Days completed: %d (%d perfect)\n", p.TotalDaysCompleted, p.PerfectDaysCount)
	fmt.Printf("Perfect day run: %d\n", ctx.Engine.PerfectStreak())
	fmt.Printf("Lifetime XP earned: %d\n", p.TotalXPEarned)
	return nil
}
