package cli

import (
	"fmt"

	"github.com/habitforge/habitforge/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Reinitialize even if storage already exists."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	fmt.Printf("Initialized habitforge storage at %s\n", ctx.Store.GetConfigPath())
	return nil
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *Context) error {
	store, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		fmt.Println("Migrations only apply to sqlite storage.")
		return nil
	}
	applied, err := store.Migrate(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return err
	}
	if applied == 0 {
		fmt.Println("Schema already up to date.")
	} else {
		fmt.Printf("Applied %d migration(s).\n", applied)
	}
	return nil
}

type ResetCmd struct {
	Force bool `help:"Skip the confirmation check."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if !c.Force {
		return fmt.Errorf("this wipes all local progress; re-run with --force to confirm")
	}
	ctx.Engine.ResetAll()
	fmt.Println("All progress wiped. Run 'habitforge start' to begin again.")
	return nil
}
