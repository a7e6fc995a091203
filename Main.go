package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/baweed/shashki/game/config"
	"github.com/baweed/shashki/game/console"
	"github.com/baweed/shashki/game/core"
	"github.com/baweed/shashki/game/msgcat"
	"github.com/baweed/shashki/game/obslog"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:   "shashki",
		Usage:  "hot-seat checkers for two players at one screen",
		Action: serveAction,
		Flags:  serveFlags(),
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "serve the browser board and its API",
				Flags:  serveFlags(),
				Action: serveAction,
			},
			{
				Name:   "play",
				Usage:  "play in the terminal",
				Action: playAction,
			},
		},
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "addr",
			Aliases: []string{"a"},
			Usage:   "listen address, overrides SHASHKI_ADDR",
		},
	}
}

func setup() (*config.AppConfig, *msgcat.Catalog, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := obslog.Init(cfg.Log); err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	cat, err := msgcat.New(cfg.Locale, cfg.MessagesDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load messages: %w", err)
	}
	return cfg, cat, nil
}

func serveAction(cCtx *cli.Context) error {
	cfg, cat, err := setup()
	if err != nil {
		return err
	}
	defer obslog.L().Sync()

	if addr := cCtx.String("addr"); addr != "" {
		cfg.Addr = addr
	}

	ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runServer(ctx, cfg, cat)
}

func playAction(cCtx *cli.Context) error {
	cfg, cat, err := setup()
	if err != nil {
		return err
	}
	defer obslog.L().Sync()

	obslog.L().Debug("console_start", zap.String("locale", cfg.Locale))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return console.New(core.NewGame(), cat, os.Stdin, os.Stdout).Run(ctx)
}
