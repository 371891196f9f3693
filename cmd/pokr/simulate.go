package main

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/lox/pokr/internal/config"
	"github.com/lox/pokr/internal/fileutil"
	"github.com/lox/pokr/internal/simulator"
)

type SimulateCmd struct {
	Config   string        `short:"c" help:"HCL configuration file" default:"pokr.hcl" type:"path"`
	Hands    int           `help:"Hands per table, overriding the configuration"`
	Seed     *int64        `help:"Random seed for reproducible results"`
	Tables   int           `help:"Copies of each configured table" default:"1"`
	Parallel int           `help:"Tables played at once, overriding the configuration"`
	Timeout  time.Duration `help:"Decision timeout, overriding the configuration"`
	Output   string        `short:"o" help:"Also write the summary to a file" type:"path"`
}

func (c *SimulateCmd) Run(globals *Globals) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := c.apply(cfg); err != nil {
		return err
	}

	logger := globals.Logger.With("run", uuid.NewString()[:8])
	logger.Info("Starting simulation", "config", c.Config, "tables", len(cfg.Tables),
		"parallel", cfg.Simulation.Parallel)

	ctx, cancel := signalContext()
	defer cancel()

	report, err := simulator.New(cfg, simulator.WithLogger(logger), simulator.WithClock(globals.Clock)).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(globals.Out, headerStyle.Render("Simulation results"))
	simulator.WriteSummary(globals.Out, report)

	if c.Output != "" {
		err := fileutil.WriteAtomic(c.Output, 0644, func(w io.Writer) error {
			simulator.WriteSummary(w, report)
			return nil
		})
		if err != nil {
			return err
		}
		logger.Info("Wrote summary", "file", c.Output)
	}
	return nil
}

// apply layers the command line flags over the loaded configuration.
func (c *SimulateCmd) apply(cfg *config.Config) error {
	if c.Hands < 0 || c.Parallel < 0 || c.Tables < 0 || c.Timeout < 0 {
		return fmt.Errorf("flags must not be negative")
	}
	if c.Tables > 1 {
		cfg.Replicate(c.Tables)
	}
	if c.Hands > 0 {
		for i := range cfg.Tables {
			cfg.Tables[i].Hands = c.Hands
		}
	}
	if c.Seed != nil {
		seed := *c.Seed
		cfg.Simulation.Seed = &seed
	}
	if c.Parallel > 0 {
		cfg.Simulation.Parallel = c.Parallel
	}
	if c.Timeout > 0 {
		cfg.Simulation.DecisionTimeout = c.Timeout.String()
	}
	return cfg.Validate()
}
