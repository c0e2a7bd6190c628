package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/roundmods/internal/admin"
	"github.com/udisondev/roundmods/internal/admin/commands"
	"github.com/udisondev/roundmods/internal/ai"
	"github.com/udisondev/roundmods/internal/config"
	"github.com/udisondev/roundmods/internal/console"
	"github.com/udisondev/roundmods/internal/db"
	"github.com/udisondev/roundmods/internal/modifier"
	"github.com/udisondev/roundmods/internal/modifier/builtin"
	"github.com/udisondev/roundmods/internal/world"
)

func main() {
	configPath := flag.String("config", "", "path to config file (overrides "+config.EnvConfigPath+")")
	hashPassword := flag.String("hash-password", "", "print a bcrypt hash for the console password and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := console.HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, *configPath); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	if cfgPath == "" {
		cfgPath = config.DefaultPath
		if p := os.Getenv(config.EnvConfigPath); p != "" {
			cfgPath = p
		}
	}
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("roundmods server starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"plugin_dir", cfg.Modifiers.PluginDir,
		"config_dir", cfg.Modifiers.ConfigDir)

	w := world.New()

	var journal modifier.Journal = modifier.NopJournal{}
	var dbJournal *db.Journal
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		dbJournal = db.NewJournal(database.Pool(), db.DefaultJournalBuffer)
		journal = dbJournal
	}

	core := modifier.NewCore(modifier.Options{
		Env: modifier.Env{
			Host:      w,
			PluginDir: cfg.Modifiers.PluginDir,
			ConfigDir: cfg.Modifiers.ConfigDir,
		},
		Factories:             builtin.Factories(),
		Disabled:              cfg.Modifiers.DisabledModifiers,
		RandomRoundsByDefault: cfg.Modifiers.RandomRoundsEnabledByDefault,
		ShowCentreMessage:     cfg.Modifiers.ShowCentreMsg,
		CanRepeat:             cfg.Modifiers.CanRepeat,
		MinRandom:             cfg.Modifiers.MinRandomRounds,
		MaxRandom:             cfg.Modifiers.MaxRandomRounds,
		Journal:               journal,
	})
	core.Load()
	slog.Info("modifiers loaded", "registered", len(core.Registered()), "random_rounds", core.RandomRounds())

	bots := ai.NewTickManager(w, ai.DefaultTickInterval)
	if err := bots.SpawnBots(cfg.Match.Bots, nil); err != nil {
		return fmt.Errorf("spawning bots: %w", err)
	}

	handler := admin.NewHandler()
	commands.RegisterAll(handler, core, w)
	runner := console.NewRunner(handler, w)

	match := world.NewMatch(w, world.MatchConfig{
		TickInterval:  cfg.Match.TickInterval,
		RoundDuration: cfg.Match.RoundDuration,
		FreezeTime:    cfg.Match.FreezeTime,
	})

	g, gctx := errgroup.WithContext(ctx)

	// The journal outlives the match so that shutdown events are written.
	journalCtx, stopJournal := context.WithCancel(context.WithoutCancel(gctx))
	defer stopJournal()

	g.Go(func() error {
		return runMatch(gctx, match, core, stopJournal)
	})

	g.Go(func() error {
		if err := bots.Start(gctx); err != nil {
			return fmt.Errorf("bot tick manager: %w", err)
		}
		return nil
	})

	if dbJournal != nil {
		g.Go(func() error {
			return dbJournal.Run(journalCtx)
		})
	}

	if cfg.Console.Enabled {
		srv := console.NewServer(cfg.Console, runner)
		g.Go(func() error {
			if err := srv.Run(gctx); err != nil {
				return fmt.Errorf("console server: %w", err)
			}
			return nil
		})
	}

	if cfg.Console.Stdin {
		g.Go(func() error {
			if err := runner.ServeStdin(gctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("stdin console: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("roundmods server stopped")
	return nil
}

// runMatch runs the host loop until ctx is cancelled, then unloads the core and
// calls done. The loop has stopped by then, so this goroutine owns the Core.
func runMatch(ctx context.Context, match *world.Match, core *modifier.Core, done func()) error {
	defer done()

	err := match.Run(ctx)
	core.Unload()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
