package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/habitforge/habitforge/internal/achievements"
	"github.com/habitforge/habitforge/internal/constants"
	"github.com/habitforge/habitforge/internal/game"
	"github.com/habitforge/habitforge/internal/progression"
)

type StartCmd struct {
	Username  string   `arg:"" help:"Display name for the profile."`
	Archetype string   `help:"Archetype id: SPECTER, ASCENDANT, WRATH, or SOVEREIGN." default:""`
	Habit     []string `help:"Habit to start with, as name:type:xp[:frequency]. Repeatable." short:"H"`
}

func (c *StartCmd) Run(ctx *Context) error {
	if ctx.Engine.State().Profile.Started() {
		return fmt.Errorf("a program is already in progress; use 'habitforge reset --force' to start over")
	}

	specs := make([]game.HabitSpec, 0, len(c.Habit))
	for _, raw := range c.Habit {
		spec, err := ParseHabitSpec(raw)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
	}

	archetype := strings.ToUpper(c.Archetype)
	if err := ctx.Engine.StartProgram(c.Username, archetype, specs); err != nil {
		return err
	}
	// Roll day one: side quests, reset marker.
	if _, err := ctx.Engine.CheckAndResetDay(); err != nil {
		return err
	}

	fmt.Printf("Day 1 of %d. Welcome, %s.\n", constants.ProgramDays, c.Username)
	if archetype != "" {
		a := constants.Archetypes[archetype]
		fmt.Printf("%s: %s\n", a.Name, a.Motto)
	}
	fmt.Printf("%d habit(s) registered. Complete them all for a perfect day bonus.\n", len(specs))
	return nil
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	if err := ctx.requireStarted(); err != nil {
		return err
	}

	state := ctx.Engine.State()
	p := state.Profile
	phase := ctx.Engine.Phase()
	progress := ctx.Engine.LevelProgress()

	title := p.Username
	if p.Archetype != "" {
		title = fmt.Sprintf("%s the %s", p.Username, ctx.Engine.Rank())
	}
	fmt.Println(title)
	fmt.Printf("Day %d of %d (%s)\n", p.CurrentDay, constants.ProgramDays, phase.Name)
	fmt.Printf("Level %d (%d/%d XP), %d XP total\n", p.Level, progress.Current, progress.Total, p.XP)
	fmt.Printf("Streak: %d day(s) (x%.1f XP multiplier), longest %d\n",
		p.CurrentStreak, progression.StreakMultiplier(p.CurrentStreak), p.LongestStreak)

	if ctx.Engine.IsDayLocked() {
		fmt.Printf("Day submitted. Unlocks in %s.\n", ctx.Engine.TimeUntilUnlock().Round(1e9))
	}

	scheduled := ctx.Engine.ScheduledHabits()
	if len(scheduled) > 0 {
		fmt.Println("\nToday's habits:")
		for _, h := range scheduled {
			fmt.Printf("  %s %s (%d XP, streak %d)\n", habitMark(h), h.Name, h.XP, h.Streak)
		}
	}

	quests := ctx.Engine.SideQuests()
	if len(quests) > 0 {
		fmt.Println("\nSide quests:")
		for _, q := range quests {
			mark := "[ ]"
			if q.Completed {
				mark = "[x]"
			}
			fmt.Printf("  %s %s (%d XP)\n", mark, q.Name, q.XP)
		}
	}

	return nil
}

type SubmitCmd struct{}

func (c *SubmitCmd) Run(ctx *Context) error {
	if err := ctx.requireStarted(); err != nil {
		return err
	}

	if ctx.Engine.IsTodaySubmitted() {
		fmt.Println("Today is already submitted. See you tomorrow.")
		return nil
	}

	res, err := ctx.Engine.SubmitDay()
	if err != nil {
		if errors.Is(err, game.ErrDayLocked) {
			fmt.Println("Today is already locked.")
			return nil
		}
		return err
	}

	if !res.StreakUpdated {
		fmt.Println("Not so fast. Every habit needs handling first:")
		for _, h := range ctx.Engine.ScheduledHabits() {
			if !h.Completed && !h.RelapsedToday {
				fmt.Printf("  %s %s\n", habitMark(h), h.Name)
			}
		}
		return nil
	}

	fmt.Printf("Day submitted: %d/%d habits handled", res.SuccessfulCount, res.TotalCount)
	if res.RelapseCount > 0 {
		fmt.Printf(", %d relapse(s)", res.RelapseCount)
	}
	fmt.Println()
	if res.IsPerfectDay {
		fmt.Println("Perfect day. Every habit conquered.")
	}
	fmt.Printf("Streak: %d day(s)\n", res.NewStreak)
	for _, id := range res.NewlyUnlocked {
		if a, ok := achievements.ByID(id); ok {
			fmt.Printf("Achievement unlocked: %s\n", a.Name)
		}
	}
	if res.IsPerfectDay && !ctx.Engine.WasCelebrationShownToday() {
		ctx.Engine.MarkCelebrationShown()
	}
	fmt.Println("Day locked until midnight.")
	return nil
}
