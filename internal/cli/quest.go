package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/habitforge/habitforge/internal/game"
)

type QuestCmd struct {
	List     QuestListCmd     `cmd:"" help:"Show today's side quests." default:"1"`
	Complete QuestCompleteCmd `cmd:"" help:"Complete a side quest."`
}

type QuestListCmd struct{}

func (c *QuestListCmd) Run(ctx *Context) error {
	if err := ctx.requireStarted(); err != nil {
		return err
	}

	quests := ctx.Engine.SideQuests()
	if len(quests) == 0 {
		fmt.Println("No side quests rolled yet.")
		return nil
	}

	fmt.Println("Today's side quests:")
	for _, q := range quests {
		mark := "[ ]"
		if q.Completed {
			mark = "[x]"
		}
		fmt.Printf("  %s %-8s %s (%d XP, %s)\n", mark, q.ID, q.Name, q.XP, q.Category)
	}
	return nil
}

type QuestCompleteCmd struct {
	Quest string `arg:"" help:"Side quest id (e.g. sq-7)."`
}

func (c *QuestCompleteCmd) Run(ctx *Context) error {
	if err := ctx.requireStarted(); err != nil {
		return err
	}

	res, err := ctx.Engine.CompleteSideQuest(strings.ToLower(c.Quest))
	switch {
	case errors.Is(err, game.ErrAlreadyCompleted):
		return fmt.Errorf("quest %q is already completed today", c.Quest)
	case errors.Is(err, game.ErrQuestNotFound):
		return fmt.Errorf("quest %q is not in today's set", c.Quest)
	case err != nil:
		return err
	}

	fmt.Printf("%q complete: +%d XP\n", res.Quest.Name, res.XPEarned)
	return nil
}
