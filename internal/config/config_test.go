package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokr/game"
)

func TestParseFullConfig(t *testing.T) {
	t.Parallel()
	src := `
table "main" {
  seats          = 4
  starting_stack = 500
  small_blind    = 5
  big_blind      = 10
  hands          = 200
}

table "side" {
  seats = 2
  fill  = "random"
}

bot "caller" {
  strategy = "call"
  tables   = ["main"]
}

bot "maniac" {
  strategy = "aggressive"
}

simulation {
  seed             = 42
  decision_timeout = "500ms"
  parallel         = 2
}
`
	cfg, err := Parse([]byte(src), "test.hcl")
	require.NoError(t, err)

	require.Len(t, cfg.Tables, 2)
	mainTable := cfg.Table("main")
	require.NotNil(t, mainTable)
	assert.Equal(t, 4, mainTable.Seats)
	assert.Equal(t, 500, mainTable.StartingStack)
	assert.Equal(t, 200, mainTable.Hands)
	assert.Equal(t, "call", mainTable.Fill)

	side := cfg.Table("side")
	require.NotNil(t, side)
	assert.Equal(t, 1000, side.StartingStack)
	small, big := side.Blinds()
	assert.Equal(t, 5, small)
	assert.Equal(t, 10, big)
	assert.Equal(t, 100, side.Hands)

	assert.Equal(t, []string{"main", "side"}, cfg.Bots[1].Tables, "bots without tables sit everywhere")
	require.NotNil(t, cfg.Simulation.Seed)
	assert.Equal(t, int64(42), *cfg.Simulation.Seed)
	assert.Equal(t, 500*time.Millisecond, cfg.DecisionTimeout())
	assert.Equal(t, 2, cfg.Simulation.Parallel)

	lineup := mainTable.Lineup(cfg)
	require.Len(t, lineup, 4)
	assert.Equal(t, "caller", lineup[0].Name)
	assert.Equal(t, "maniac", lineup[1].Name)
	assert.Equal(t, "call-2", lineup[2].Name)
	assert.Equal(t, "call", lineup[3].Strategy)

	settings, err := mainTable.Settings()
	require.NoError(t, err)
	assert.Equal(t, 4, settings.SeatCount())
	assert.Equal(t, 10, settings.BigBlind())
}

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Tables, 1)
	assert.Equal(t, "main", cfg.Tables[0].Name)
	assert.Equal(t, 6, cfg.Tables[0].Seats)
	assert.Equal(t, 2*time.Second, cfg.DecisionTimeout())
	assert.Equal(t, 4, cfg.Simulation.Parallel)
}

func TestReplicate(t *testing.T) {
	t.Parallel()
	src := `
table "main" {
  seats = 3
}

table "other" {
  seats = 2
}

bot "hero" {
  strategy = "tight"
  tables   = ["main"]
}
`
	cfg, err := Parse([]byte(src), "replicate.hcl")
	require.NoError(t, err)

	cfg.Replicate(3)
	require.NoError(t, cfg.Validate())

	var names []string
	for _, table := range cfg.Tables {
		names = append(names, table.Name)
	}
	assert.Equal(t, []string{"main", "other", "main-2", "other-2", "main-3", "other-3"}, names)
	assert.Equal(t, []string{"main", "main-2", "main-3"}, cfg.Bots[0].Tables)
	assert.Equal(t, 3, cfg.Table("main-3").Seats)
	assert.Nil(t, cfg.Simulation.Seed)
}

func TestBlindDefaults(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		attrs      string
		small, big int
	}{
		{"defaults", "", 5, 10},
		{"blinds off", "small_blind = 0\n  big_blind = 0", 0, 0},
		{"big blind only", "big_blind = 20", 10, 20},
		{"small blind only", "small_blind = 3", 3, 6},
		{"big blind without small", "small_blind = 0\n  big_blind = 2", 0, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			src := "table \"a\" {\n  " + tc.attrs + "\n}"
			cfg, err := Parse([]byte(src), "blinds.hcl")
			require.NoError(t, err)

			small, big := cfg.Tables[0].Blinds()
			assert.Equal(t, tc.small, small)
			assert.Equal(t, tc.big, big)

			settings, err := cfg.Tables[0].Settings()
			require.NoError(t, err)
			assert.Equal(t, tc.big, settings.BigBlind())
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(dir, "pokr.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`table "t1" { seats = 3 }`), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Tables[0].Seats)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `table "main" {`, "failed to parse"},
		{"unknown attribute", `table "main" { colour = "red" }`, "failed to decode"},
		{"no tables", `simulation { seed = 1 }`, "at least one table"},
		{"duplicate table", "table \"a\" {}\ntable \"a\" {}", "defined more than once"},
		{"too many seats", `table "a" { seats = 11 }`, game.ErrInvalidConfiguration.Error()},
		{"small above big", "table \"a\" {\n  small_blind = 20\n  big_blind = 10\n}", "exceeds big blind"},
		{"bad strategy", "table \"a\" {}\nbot \"b\" { strategy = \"psychic\" }", "invalid strategy"},
		{"bad fill", `table "a" { fill = "psychic" }`, "invalid fill strategy"},
		{"unknown table", "table \"a\" {}\nbot \"b\" { tables = [\"z\"] }", "unknown table z"},
		{"too many bots", "table \"a\" { seats = 2 }\nbot \"b1\" {}\nbot \"b2\" {}\nbot \"b3\" {}", "3 bots for 2 seats"},
		{"bad timeout", "table \"a\" {}\nsimulation { decision_timeout = \"soon\" }", "invalid decision_timeout"},
		{"negative timeout", "table \"a\" {}\nsimulation { decision_timeout = \"-1s\" }", "must be positive"},
		{"negative parallel", "table \"a\" {}\nsimulation { parallel = -1 }", "parallel must be at least 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tc.src), "bad.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
