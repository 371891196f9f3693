package statistics

import (
	"math"
	"testing"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected empty statistics to fail validation")
	}
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{}

	results := []HandResult{
		{NetBB: 1.0, Position: 0, WentToShowdown: false, PotBB: 2, Street: "preflop"},
		{NetBB: -2.0, Position: 1, WentToShowdown: true, PotBB: 4, Street: "river"},
		{NetBB: 3.0, Position: 2, WentToShowdown: true, PotBB: 6, Street: "river"},
		{NetBB: 0.0, Position: 0, WentToShowdown: false, PotBB: 1, Street: "flop"},
		{NetBB: -1.0, Position: 1, WentToShowdown: false, PotBB: 3, Street: "turn"},
	}
	for _, result := range results {
		stats.Add(result)
	}

	expectedMean := (1.0 - 2.0 + 3.0 + 0.0 - 1.0) / 5.0
	if math.Abs(stats.Mean()-expectedMean) > 1e-9 {
		t.Errorf("Expected mean of %f, got %f", expectedMean, stats.Mean())
	}
	if math.Abs(stats.BBPer100()-expectedMean*100) > 1e-9 {
		t.Errorf("Expected %f bb/100, got %f", expectedMean*100, stats.BBPer100())
	}
	// sorted values: -2, -1, 0, 1, 3
	if stats.Median() != 0.0 {
		t.Errorf("Expected median of 0.0, got %f", stats.Median())
	}
	if stats.ShowdownWins != 1 || stats.NonShowdownWins != 1 {
		t.Errorf("Expected 1 showdown and 1 non-showdown win, got %d and %d",
			stats.ShowdownWins, stats.NonShowdownWins)
	}
	if stats.PositionResults[0].Hands != 2 || stats.PositionResults[1].Hands != 2 {
		t.Errorf("Unexpected position counts %+v", stats.PositionResults)
	}
	if stats.Streets["river"] != 2 {
		t.Errorf("Expected 2 hands to the river, got %d", stats.Streets["river"])
	}
	if stats.MaxPotBB != 6 {
		t.Errorf("Expected max pot of 6bb, got %f", stats.MaxPotBB)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := &Statistics{}
	for i := 1; i <= 5; i++ {
		stats.Add(HandResult{NetBB: float64(i)})
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{1.0, 5.0},
	}
	for _, test := range tests {
		result := stats.Percentile(test.percentile)
		if math.Abs(result-test.expected) > 1e-9 {
			t.Errorf("Percentile %.2f: expected %f, got %f", test.percentile, test.expected, result)
		}
	}
}

func TestStatistics_ConfidenceInterval(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []float64{1, 2, 3, 4, 5} {
		stats.Add(HandResult{NetBB: v})
	}

	low, high := stats.ConfidenceInterval95()
	if math.Abs((low+high)/2-stats.Mean()) > 1e-9 {
		t.Errorf("Confidence interval not symmetric around mean. Low: %f, High: %f", low, high)
	}
	if high-low <= 0 {
		t.Errorf("Confidence interval should be positive width, got %f", high-low)
	}
	// Sample variance of 1..5 is 2.5
	if math.Abs(stats.Variance()-2.5) > 1e-9 {
		t.Errorf("Expected variance 2.5, got %f", stats.Variance())
	}
}

func TestStatistics_PositionMean(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 2.0, Position: 3})
	stats.Add(HandResult{NetBB: 3.0, Position: 3})
	stats.Add(HandResult{NetBB: -1.0, Position: 9})

	if got := stats.PositionMean(3); math.Abs(got-2.5) > 1e-9 {
		t.Errorf("Position 3 mean: expected 2.5, got %f", got)
	}
	if got := stats.PositionMean(9); got != -1.0 {
		t.Errorf("Position 9 mean: expected -1, got %f", got)
	}
	if stats.PositionMean(-1) != 0 || stats.PositionMean(MaxPositions) != 0 {
		t.Error("Expected 0 for out of range positions")
	}
}

func TestStatistics_BigPots(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 1.0, PotBB: 10})
	stats.Add(HandResult{NetBB: 5.0, PotBB: 100})
	stats.Add(HandResult{NetBB: -1.0, PotBB: 2})

	if stats.MaxPotBB != 100 {
		t.Errorf("Expected max pot of 100bb, got %f", stats.MaxPotBB)
	}
	if stats.BigPots != 1 || stats.BigPotsBB != 5.0 {
		t.Errorf("Expected 1 big pot worth 5bb, got %d worth %f", stats.BigPots, stats.BigPotsBB)
	}
}

func TestStatistics_Merge(t *testing.T) {
	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}
	results := []HandResult{
		{NetBB: 1.5, Position: 0, Street: "flop"},
		{NetBB: -3, Position: 1, WentToShowdown: true, PotBB: 60, Street: "river"},
		{NetBB: 2, Position: 2, WentToShowdown: true, PotBB: 8, Street: "river"},
		{NetBB: -0.5, Position: 1, Street: "preflop"},
	}
	for i, r := range results {
		if i%2 == 0 {
			a.Add(r)
		} else {
			b.Add(r)
		}
		all.Add(r)
	}

	a.Merge(b)
	if a.Hands != all.Hands || a.SumBB != all.SumBB || a.SumBB2 != all.SumBB2 {
		t.Errorf("merged totals differ: %+v vs %+v", a, all)
	}
	if a.PositionResults != all.PositionResults {
		t.Errorf("merged positions differ")
	}
	if a.Streets["river"] != 2 || a.BigPots != 1 || a.MaxPotBB != 60 {
		t.Errorf("merged streets/pots differ: %+v", a)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
