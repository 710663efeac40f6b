package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/glabrego/hkg-cli/internal/app"
	"github.com/glabrego/hkg-cli/internal/cache"
	"github.com/glabrego/hkg-cli/internal/config"
	"github.com/glabrego/hkg-cli/internal/fetch"
	"github.com/glabrego/hkg-cli/internal/forum"
	"github.com/glabrego/hkg-cli/internal/logging"
	"github.com/glabrego/hkg-cli/internal/tui"
)

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger, logCloser, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logging init error: %w", err)
	}
	defer logCloser.Close()

	store, storeCloser, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer storeCloser.Close()

	fetcher := fetch.New(forum.NewClient(nil), store,
		fetch.WithTimeout(cfg.FetchTimeout),
		fetch.WithLogger(logger),
	)
	service := app.NewService(fetcher, forum.NewSite(cfg.BaseURL, cfg.Channel))

	logger.WithFields(logrus.Fields{
		"channel": cfg.Channel,
		"backend": cfg.CacheBackend,
		"thread":  cmd.String("thread"),
	}).Info("starting")

	model := tui.NewModel(service, tui.Options{
		ForumTitle: cfg.Title,
		Channel:    cfg.Channel,
		ThreadID:   cmd.String("thread"),
		Page:       int(cmd.Int("page")),
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) (cache.Store, io.Closer, error) {
	if cfg.CacheBackend == config.BackendSQLite {
		store, err := cache.NewSQLiteStore(cfg.CacheDB)
		if err != nil {
			return nil, nil, fmt.Errorf("cache init error: %w", err)
		}
		initCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if err := store.Init(initCtx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("cache schema error: %w", err)
		}
		n, err := store.Count(initCtx)
		if err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("cache schema error: %w", err)
		}
		logger.WithFields(logrus.Fields{"db": cfg.CacheDB, "pages": n}).Info("sqlite cache ready")
		return store, store, nil
	}

	store, err := cache.NewFileStore(cfg.CacheDir)
	if err != nil {
		return nil, nil, fmt.Errorf("cache init error: %w", err)
	}
	logger.WithField("root", store.Root()).Info("file cache ready")
	return store, io.NopCloser(nil), nil
}

func main() {
	cmd := &cli.Command{
		Name:   "hkg",
		Usage:  "Read forum threads in the terminal",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "thread",
				Aliases: []string{"t"},
				Usage:   "Open this thread id instead of the topic list",
				Sources: cli.EnvVars("HKG_THREAD"),
			},
			&cli.IntFlag{
				Name:    "page",
				Aliases: []string{"p"},
				Usage:   "Page to open with --thread",
				Value:   1,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}
