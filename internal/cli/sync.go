package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/habitforge/habitforge/internal/keyring"
	hfsync "github.com/habitforge/habitforge/internal/sync"
)

type SyncCmd struct {
	Enable  SyncEnableCmd  `cmd:"" help:"Connect a remote gateway for cross-device sync."`
	Now     SyncNowCmd     `cmd:"" help:"Push the current state immediately."`
	Disable SyncDisableCmd `cmd:"" help:"Forget the gateway credentials."`
	Wipe    SyncWipeCmd    `cmd:"" help:"Delete all remote data for this user."`
}

type SyncEnableCmd struct {
	ConnStr string `arg:"" help:"Postgres connection string for the gateway."`
	UserID  string `help:"Existing sync user id (UUID). A fresh one is generated when omitted." default:""`
}

func (c *SyncEnableCmd) Run(ctx *Context) error {
	userID := c.UserID
	if userID == "" {
		userID = uuid.New().String()
	} else if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf("invalid user id %q (expected a UUID)", userID)
	}

	gw := hfsync.NewPostgresGateway(c.ConnStr)
	if err := gw.Init(func(msg string) { fmt.Println(msg) }); err != nil {
		return fmt.Errorf("gateway connection failed: %w", err)
	}
	defer gw.Close()

	if err := keyring.SetConnectionString(c.ConnStr); err != nil {
		return err
	}

	state := ctx.Engine.State()
	state.Profile.UserID = userID
	if err := ctx.Store.SaveState(state); err != nil {
		return err
	}

	if err := gw.SaveProfile(userID, *state); err != nil {
		return fmt.Errorf("initial profile push failed: %w", err)
	}

	fmt.Printf("Sync enabled for user %s.\n", userID)
	return nil
}

type SyncNowCmd struct{}

func (c *SyncNowCmd) Run(ctx *Context) error {
	if ctx.Gateway == nil {
		return fmt.Errorf("sync is not enabled, run 'habitforge sync enable' first")
	}

	state := ctx.Engine.State()
	userID := state.Profile.UserID
	if err := ctx.Gateway.SaveProfile(userID, *state); err != nil {
		return fmt.Errorf("profile push failed: %w", err)
	}
	pushed := 0
	for _, rec := range state.History {
		if err := ctx.Gateway.SaveDailyLog(userID, rec); err != nil {
			return fmt.Errorf("day log push failed for %s: %w", rec.Date, err)
		}
		pushed++
	}

	fmt.Printf("Pushed profile and %d day log(s).\n", pushed)
	return nil
}

type SyncDisableCmd struct{}

func (c *SyncDisableCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}

	state := ctx.Engine.State()
	state.Profile.UserID = ""
	if err := ctx.Store.SaveState(state); err != nil {
		return err
	}

	fmt.Println("Sync disabled. Local data is untouched.")
	return nil
}

type SyncWipeCmd struct {
	Force bool `help:"Skip the confirmation check."`
}

func (c *SyncWipeCmd) Run(ctx *Context) error {
	if ctx.Gateway == nil {
		return fmt.Errorf("sync is not enabled")
	}
	if !c.Force {
		return fmt.Errorf("this deletes all remote data; re-run with --force to confirm")
	}

	userID := ctx.Engine.State().Profile.UserID
	if err := ctx.Gateway.DeleteAllUserData(userID); err != nil {
		return err
	}
	fmt.Println("All remote data deleted.")
	return nil
}
