package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/habitforge/habitforge/internal/cli"
	"github.com/habitforge/habitforge/internal/constants"
	"github.com/habitforge/habitforge/internal/errors"
	"github.com/habitforge/habitforge/internal/game"
	"github.com/habitforge/habitforge/internal/keyring"
	"github.com/habitforge/habitforge/internal/logger"
	"github.com/habitforge/habitforge/internal/storage"
	hfsync "github.com/habitforge/habitforge/internal/sync"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path. A .json suffix selects the plain-file store." type:"path" default:"~/.config/habitforge/habitforge.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init         cli.InitCmd         `cmd:"" help:"Initialize habitforge storage."`
	Migrate      cli.MigrateCmd      `cmd:"" help:"Run database migrations."`
	Start        cli.StartCmd        `cmd:"" help:"Begin the 66-day program."`
	Status       cli.StatusCmd       `cmd:"" help:"Show today's progress." default:"1"`
	Submit       cli.SubmitCmd       `cmd:"" help:"Submit and lock today."`
	Habit        cli.HabitCmd        `cmd:"" help:"Manage habits."`
	Quest        cli.QuestCmd        `cmd:"" help:"Daily side quests."`
	History      cli.HistoryCmd      `cmd:"" help:"Show submitted days."`
	Achievements cli.AchievementsCmd `cmd:"" help:"Show achievements."`
	Stats        cli.StatsCmd        `cmd:"" help:"Show habit statistics."`
	Sync         cli.SyncCmd         `cmd:"" help:"Cross-device sync via a Postgres gateway."`
	Backup       struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Reset cli.ResetCmd `cmd:"" help:"Wipe all local progress."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Forge yourself over 66 days: defeat demons, build powers, earn XP"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(CLI.Config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	if err := run(ctx); err != nil {
		errors.Fatal(err)
	}
}

func run(ctx *kong.Context) error {
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{Store: store}

	command := ""
	if ctx.Selected() != nil {
		command = ctx.Selected().Name
	}

	if command != "init" {
		if err := store.Load(); err != nil {
			return err
		}
		defer store.Close()

		state, err := store.GetState()
		if err != nil {
			return err
		}

		if state.Profile.UserID != "" {
			connStr, err := keyring.GetConnectionString()
			switch {
			case stderrors.Is(err, keyring.ErrNotFound):
				// Sync was enabled elsewhere; stay local until credentials arrive.
			case err != nil:
				logger.Warn("keyring unavailable, running local-only", "error", err)
			default:
				gw := hfsync.NewPostgresGateway(connStr)
				if err := gw.Init(nil); err != nil {
					logger.Warn("gateway unreachable, running local-only", "error", err)
				} else {
					defer gw.Close()
					outbox := hfsync.NewOutbox(gw, state.Profile.UserID)
					defer outbox.Close()
					appCtx.Gateway = gw
					appCtx.Outbox = outbox
				}
			}
		}

		var syncer game.Syncer
		if appCtx.Outbox != nil {
			syncer = appCtx.Outbox
		}
		appCtx.Engine = game.NewEngine(state, store, syncer, game.RealClock{})

		if command != "migrate" && command != "restore" {
			appCtx.RollDay()
		}
	}

	return ctx.Run(appCtx)
}
