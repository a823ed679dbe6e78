// Command portfolio_cli runs maintenance jobs and prints reports against the service database.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path"

	"github.com/google/subcommands"
)

var logLevel = flag.String("log-level", "warn", "Log level (debug, info, warn, error)")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&regenerateCmd{}, "portfolio")
	commander.Register(&syncPricesCmd{}, "prices")
	commander.Register(&reportCmd{}, "reports")
	commander.Register(&brokersCmd{}, "")

	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	os.Exit(int(commander.Execute(context.Background())))
}
