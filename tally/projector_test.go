// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"math"
	"testing"
)

func TestProject(t *testing.T) {
	tests := []struct {
		name         string
		options      []string
		counts       []int
		wantPct      []float64
		wantWinner   string
		wantRunnerUp string
	}{
		{
			name:         "two to one",
			options:      []string{"A", "B"},
			counts:       []int{2, 1},
			wantPct:      []float64{66.67, 33.33},
			wantWinner:   "A",
			wantRunnerUp: "B",
		},
		{
			name:         "tie goes to first option",
			options:      []string{"A", "B"},
			counts:       []int{1, 1},
			wantPct:      []float64{50, 50},
			wantWinner:   "A",
			wantRunnerUp: "B",
		},
		{
			name:         "later option leads",
			options:      []string{"A", "B", "C"},
			counts:       []int{1, 3, 1},
			wantPct:      []float64{20, 60, 20},
			wantWinner:   "B",
			wantRunnerUp: "A",
		},
		{
			name:         "runner-up tie",
			options:      []string{"A", "B", "C"},
			counts:       []int{0, 2, 2},
			wantPct:      []float64{0, 50, 50},
			wantWinner:   "B",
			wantRunnerUp: "C",
		},
		{
			name:         "no votes",
			options:      []string{"A", "B"},
			counts:       []int{0, 0},
			wantPct:      []float64{0, 0},
			wantWinner:   "A",
			wantRunnerUp: "B",
		},
		{
			name:         "single option",
			options:      []string{"A"},
			counts:       []int{4},
			wantPct:      []float64{100},
			wantWinner:   "A",
			wantRunnerUp: "",
		},
		{
			name:    "no options",
			options: []string{},
			counts:  []int{},
			wantPct: []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := 0
			for _, c := range tt.counts {
				total += c
			}
			snap := Snapshot{PollID: "p", Version: 7, OptionIDs: tt.options, Counts: tt.counts, Total: total}

			got := Project(snap)

			if got.TotalVotes != total {
				t.Errorf("TotalVotes = %d, want %d", got.TotalVotes, total)
			}
			if got.Version != 7 {
				t.Errorf("Version = %d, want 7", got.Version)
			}
			if len(got.Options) != len(tt.wantPct) {
				t.Fatalf("got %d options, want %d", len(got.Options), len(tt.wantPct))
			}
			for i, want := range tt.wantPct {
				if got.Options[i].Percentage != want {
					t.Errorf("option %s percentage = %v, want %v", tt.options[i], got.Options[i].Percentage, want)
				}
				if math.IsNaN(got.Options[i].Percentage) {
					t.Errorf("option %s percentage is NaN", tt.options[i])
				}
			}
			if got.Winner != tt.wantWinner {
				t.Errorf("Winner = %q, want %q", got.Winner, tt.wantWinner)
			}
			if got.RunnerUp != tt.wantRunnerUp {
				t.Errorf("RunnerUp = %q, want %q", got.RunnerUp, tt.wantRunnerUp)
			}
		})
	}
}

func TestProject_PercentagesSumToHundred(t *testing.T) {
	cases := [][]int{
		{1, 1, 1},
		{1, 2, 4},
		{3, 3, 3, 1},
		{7, 0, 5, 9, 13},
	}

	for _, counts := range cases {
		options := make([]string, len(counts))
		total := 0
		for i, c := range counts {
			options[i] = string(rune('A' + i))
			total += c
		}

		got := Project(Snapshot{OptionIDs: options, Counts: counts, Total: total})

		sum := 0.0
		for _, o := range got.Options {
			sum += o.Percentage
		}
		// Each value is rounded to 0.01, so the error is at most 0.005 per option
		if math.Abs(sum-100) > 0.005*float64(len(counts)) {
			t.Errorf("counts %v: percentages sum to %v", counts, sum)
		}
	}
}

func TestProject_DoesNotMutateSnapshot(t *testing.T) {
	snap := Snapshot{OptionIDs: []string{"A", "B"}, Counts: []int{1, 2}, Total: 3}

	got := Project(snap)
	got.Options[0].Count = 99

	if snap.Counts[0] != 1 {
		t.Errorf("snapshot counts changed: %v", snap.Counts)
	}
}

func TestTally_Count(t *testing.T) {
	got := Project(Snapshot{OptionIDs: []string{"A", "B"}, Counts: []int{2, 5}, Total: 7})

	if got.Count("B") != 5 {
		t.Errorf("Count(B) = %d, want 5", got.Count("B"))
	}
	if got.Count("missing") != 0 {
		t.Errorf("Count(missing) = %d, want 0", got.Count("missing"))
	}
}
