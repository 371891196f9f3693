package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Debug    bool             `help:"Enable debug logging"`
	Simulate SimulateCmd      `cmd:"" help:"Run bot tables from an HCL configuration"`
	Eval     EvalCmd          `cmd:"" help:"Evaluate the best five-card hand"`
	Deal     DealCmd          `cmd:"" help:"Deal a single hand between bots"`
}

// Globals is bound into every command's Run method.
type Globals struct {
	Out    io.Writer
	Logger *log.Logger
	Clock  quartz.Clock
}

func newLogger(w io.Writer, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokr"),
		kong.Description("No-limit hold'em engine and bot simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&Globals{
		Out:    os.Stdout,
		Logger: newLogger(os.Stderr, cli.Debug),
		Clock:  quartz.NewReal(),
	})
	ctx.FatalIfErrorf(err)
}
