package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sandeepkv93/todod/internal/logger"
	"github.com/sandeepkv93/todod/internal/scheduler"
	"github.com/sandeepkv93/todod/internal/storage"
	"github.com/sandeepkv93/todod/internal/tasks"
	"github.com/sandeepkv93/todod/internal/update"
)

func main() {
	ephemeral := flag.Bool("ephemeral", false, "keep tasks in memory only")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "todod: load .env: %v\n", err)
		os.Exit(1)
	}
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
	if *ephemeral {
		cfg.StorageDriver = string(storage.DriverMemory)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "todod failed: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg update.RuntimeConfig) error {
	log, err := logger.InitFile(cfg.LogFile, cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	driver, err := storage.ParseDriver(cfg.StorageDriver)
	if err != nil {
		return err
	}
	kv, err := storage.Open(ctx, storage.Options{
		Driver:      driver,
		DSN:         cfg.StorageDSN,
		RedisPrefix: cfg.RedisPrefix,
	})
	if err != nil {
		return fmt.Errorf("open %s storage: %w", driver, err)
	}
	defer kv.Close()
	log.Info("storage opened", "driver", driver)

	store := tasks.New(kv, tasks.WithLogger(log))
	if err := store.Load(ctx); err != nil {
		log.Warn("starting with an empty list", "error", err)
	}
	if !cfg.SkipOnboarding {
		if _, err := store.Seed(ctx); err != nil {
			log.Warn("onboarding seed failed", "error", err)
		}
	}

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}
	m := update.NewModelWithConfig(store, engine, notifier, cfg).
		WithLogger(log).
		WithContext(ctx)

	program := tea.NewProgram(m)
	if _, err := program.Run(); err != nil {
		return err
	}
	if dropped := engine.Dropped(); dropped > 0 {
		log.Warn("scheduler dropped events", "count", dropped)
	}
	return nil
}
