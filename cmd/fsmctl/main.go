// Command fsmctl loads a state machine definition and drives it with commands read from stdin.
//
// Settings come from the environment (or a .env file):
//
//	FSM_DEFINITION  path to a .yaml, .yml or .json definition (required)
//	FSM_LOG_LEVEL   debug, info, warn or error (default info)
//	FSM_LOG_FORMAT  text or json (default text)
//	FSM_ENV         development or production (default development)
//	FSM_HISTORY     maximum history entries, 0 for unbounded (default 0)
//	FSM_LAZY        skip eager transition target checks (default false)
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pickleRick23/finite-state-machine/internal/shell"
	"github.com/pickleRick23/finite-state-machine/pkg/config"
	"github.com/pickleRick23/finite-state-machine/pkg/logger"
	"github.com/pickleRick23/finite-state-machine/pkg/statemachine"
)

type settings struct {
	Definition   string     `env:"FSM_DEFINITION,required"`
	LogLevel     slog.Level `env:"FSM_LOG_LEVEL" envDefault:"info"`
	LogFormat    string     `env:"FSM_LOG_FORMAT" envDefault:"text"`
	Environment  string     `env:"FSM_ENV" envDefault:"development"`
	HistoryLimit int        `env:"FSM_HISTORY" envDefault:"0"`
	LazyTargets  bool       `env:"FSM_LAZY" envDefault:"false"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fsmctl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg settings
	if err := config.Load(&cfg); err != nil {
		return err
	}

	format, err := logger.ParseFormat(cfg.LogFormat)
	if err != nil {
		return err
	}
	log := logger.New(
		logger.WithEnvironment(cfg.Environment, "fsmctl"),
		logger.WithLevel(cfg.LogLevel),
		logger.WithFormat(format),
		logger.WithOutput(os.Stderr),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	def, err := statemachine.LoadFile(ctx, cfg.Definition)
	if err != nil {
		return err
	}

	opts := []statemachine.Option{
		statemachine.WithLogger(log.With(logger.Component("statemachine"))),
	}
	if cfg.HistoryLimit > 0 {
		opts = append(opts, statemachine.WithHistoryLimit(cfg.HistoryLimit))
	}
	if cfg.LazyTargets {
		opts = append(opts, statemachine.WithLazyTargets())
	}

	m, err := statemachine.New(def, opts...)
	if err != nil {
		return err
	}
	log.Info("definition loaded",
		logger.Path(cfg.Definition),
		logger.State(m.State()),
		slog.Int("states", len(m.States())),
	)

	sh := shell.New(m,
		shell.WithLogger(log.With(logger.Component("shell"))),
		shell.WithDefinition(def),
	)
	if err := sh.Run(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		return err
	}

	log.Info("session ended", logger.State(m.State()), logger.HistoryLen(len(m.History())))
	return nil
}
