package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokr/game"
	"github.com/lox/pokr/internal/bot"
)

const (
	defaultSeats           = 6
	defaultStartingStack   = 1000
	defaultSmallBlind      = 5
	defaultBigBlind        = 10
	defaultHands           = 100
	defaultFill            = "call"
	defaultStrategy        = "call"
	defaultDecisionTimeout = "2s"
	defaultParallel        = 4
)

// Config is the complete simulation configuration
type Config struct {
	Tables     []TableConfig     `hcl:"table,block"`
	Bots       []BotConfig       `hcl:"bot,block"`
	Simulation *SimulationConfig `hcl:"simulation,block"`
}

// TableConfig defines one table and how many hands it plays
type TableConfig struct {
	Name          string `hcl:"name,label"`
	Seats         int    `hcl:"seats,optional"`
	StartingStack int    `hcl:"starting_stack,optional"`
	SmallBlind    *int   `hcl:"small_blind,optional"`
	BigBlind      *int   `hcl:"big_blind,optional"`
	Hands         int    `hcl:"hands,optional"`
	Fill          string `hcl:"fill,optional"` // strategy for seats no bot block claims
}

// BotConfig seats a bot at one or more tables
type BotConfig struct {
	Name     string   `hcl:"name,label"`
	Strategy string   `hcl:"strategy,optional"`
	Tables   []string `hcl:"tables,optional"`
}

// SimulationConfig contains run-level settings
type SimulationConfig struct {
	Seed            *int64 `hcl:"seed,optional"` // nil seeds from the clock
	DecisionTimeout string `hcl:"decision_timeout,optional"`
	Parallel        int    `hcl:"parallel,optional"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{
		Tables: []TableConfig{{Name: "main"}},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from an HCL file. A missing file yields the
// default configuration.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, applies defaults and validates the result.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	for i := range c.Tables {
		t := &c.Tables[i]
		if t.Seats == 0 {
			t.Seats = defaultSeats
		}
		if t.StartingStack == 0 {
			t.StartingStack = defaultStartingStack
		}
		switch {
		case t.SmallBlind == nil && t.BigBlind == nil:
			t.SmallBlind, t.BigBlind = ptr(defaultSmallBlind), ptr(defaultBigBlind)
		case t.SmallBlind == nil:
			t.SmallBlind = ptr(*t.BigBlind / 2)
		case t.BigBlind == nil:
			t.BigBlind = ptr(*t.SmallBlind * 2)
		}
		if t.Hands == 0 {
			t.Hands = defaultHands
		}
		if t.Fill == "" {
			t.Fill = defaultFill
		}
	}

	for i := range c.Bots {
		b := &c.Bots[i]
		if b.Strategy == "" {
			b.Strategy = defaultStrategy
		}
		if len(b.Tables) == 0 {
			// If no tables specified, sit at all tables
			for _, t := range c.Tables {
				b.Tables = append(b.Tables, t.Name)
			}
		}
	}

	if c.Simulation == nil {
		c.Simulation = &SimulationConfig{}
	}
	if c.Simulation.DecisionTimeout == "" {
		c.Simulation.DecisionTimeout = defaultDecisionTimeout
	}
	if c.Simulation.Parallel == 0 {
		c.Simulation.Parallel = defaultParallel
	}
}

// Validate checks the configuration against the engine's limits
func (c *Config) Validate() error {
	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}

	seen := make(map[string]bool)
	for _, t := range c.Tables {
		if seen[t.Name] {
			return fmt.Errorf("table %s: defined more than once", t.Name)
		}
		seen[t.Name] = true

		if _, err := t.Settings(); err != nil {
			return fmt.Errorf("table %s: %w", t.Name, err)
		}
		if t.Hands < 0 {
			return fmt.Errorf("table %s: hands must be positive", t.Name)
		}
		if !slices.Contains(bot.Strategies, t.Fill) {
			return fmt.Errorf("table %s: invalid fill strategy %s", t.Name, t.Fill)
		}
		if n := len(c.Seating(t.Name)); n > t.Seats {
			return fmt.Errorf("table %s: %d bots for %d seats", t.Name, n, t.Seats)
		}
	}

	for _, b := range c.Bots {
		if !slices.Contains(bot.Strategies, b.Strategy) {
			return fmt.Errorf("bot %s: invalid strategy %s", b.Name, b.Strategy)
		}
		for _, name := range b.Tables {
			if !seen[name] {
				return fmt.Errorf("bot %s: unknown table %s", b.Name, name)
			}
		}
	}

	if c.Simulation != nil {
		d, err := time.ParseDuration(c.Simulation.DecisionTimeout)
		if err != nil {
			return fmt.Errorf("simulation: invalid decision_timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("simulation: decision_timeout must be positive")
		}
		if c.Simulation.Parallel < 1 {
			return fmt.Errorf("simulation: parallel must be at least 1")
		}
	}
	return nil
}

// Settings builds the engine settings for a table
func (t TableConfig) Settings() (game.Settings, error) {
	return game.NewSettings(t.Seats, t.StartingStack, game.WithBlinds(t.Blinds()))
}

// DecisionTimeout returns the parsed per-decision time budget
func (c *Config) DecisionTimeout() time.Duration {
	d, err := time.ParseDuration(c.Simulation.DecisionTimeout)
	if err != nil {
		return 0
	}
	return d
}

// Table returns a table configuration by name
func (c *Config) Table(name string) *TableConfig {
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i]
		}
	}
	return nil
}

// Seating returns the bots that sit at a table, in declaration order
func (c *Config) Seating(table string) []BotConfig {
	var out []BotConfig
	for _, b := range c.Bots {
		if slices.Contains(b.Tables, table) {
			out = append(out, b)
		}
	}
	return out
}

// Blinds returns the forced bets; zero values mean the table plays without
// blinds.
func (t TableConfig) Blinds() (small, big int) {
	if t.SmallBlind != nil {
		small = *t.SmallBlind
	}
	if t.BigBlind != nil {
		big = *t.BigBlind
	}
	return small, big
}

func ptr(v int) *int { return &v }

// Replicate adds n-1 copies of every table, named "<table>-2" onwards. Bots
// sitting at a table also sit at its copies.
func (c *Config) Replicate(n int) {
	originals := slices.Clone(c.Tables)
	for copyNum := 2; copyNum <= n; copyNum++ {
		for _, t := range originals {
			name := fmt.Sprintf("%s-%d", t.Name, copyNum)
			for i := range c.Bots {
				if slices.Contains(c.Bots[i].Tables, t.Name) {
					c.Bots[i].Tables = append(c.Bots[i].Tables, name)
				}
			}
			t.Name = name
			c.Tables = append(c.Tables, t)
		}
	}
}

// Lineup returns one bot per seat of a table: declared bots first, then
// bots playing the table's fill strategy for the remaining seats.
func (t TableConfig) Lineup(c *Config) []BotConfig {
	out := make([]BotConfig, 0, t.Seats)
	out = append(out, c.Seating(t.Name)...)
	for seat := len(out); seat < t.Seats; seat++ {
		out = append(out, BotConfig{
			Name:     fmt.Sprintf("%s-%d", t.Fill, seat),
			Strategy: t.Fill,
			Tables:   []string{t.Name},
		})
	}
	return out
}
