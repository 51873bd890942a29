package application

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/subcommands"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/command"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
)

var ErrCommandFailed = errors.New("command failed")

// RunApp - registers the commands and runs the one named on the command line.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	commander := NewCommander(logger, conf, flag.CommandLine)
	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		return fmt.Errorf("could not parse flags: %w", err)
	}

	if status := commander.Execute(ctx); status != subcommands.ExitSuccess {
		return fmt.Errorf("%w: exit status %d", ErrCommandFailed, status)
	}

	return nil
}

// NewCommander - builds the command set on top of flags.
func NewCommander(logger *slog.Logger, conf *config.Config, flags *flag.FlagSet) *subcommands.Commander {
	commander := subcommands.NewCommander(flags, filepath.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(command.NewPlay(logger, conf, os.Stdin, os.Stdout), "")
	commander.Register(command.NewAnalyze(logger, os.Stdout), "")
	commander.Register(command.NewSelfPlay(logger, conf, os.Stdout), "")

	return commander
}
