package config

import (
	"strings"
	"testing"

	"github.com/gonewx/bubblerush/pkg/embedded"
)

func TestLoadGameConfigDefaults(t *testing.T) {
	cfg, err := LoadGameConfig(embedded.ModesYAML())
	if err != nil {
		t.Fatalf("embedded defaults failed to load: %v", err)
	}

	if cfg.Classic.DurationSeconds != 60 {
		t.Errorf("classic duration = %g, want 60", cfg.Classic.DurationSeconds)
	}
	if cfg.Classic.Spawn.MinBubbles != 5 || cfg.Classic.Spawn.MaxBubbles != 10 {
		t.Errorf("classic spawn window = %d..%d, want 5..10",
			cfg.Classic.Spawn.MinBubbles, cfg.Classic.Spawn.MaxBubbles)
	}
	if cfg.Survival.MaxSeconds != 90 {
		t.Errorf("survival max seconds = %g, want 90", cfg.Survival.MaxSeconds)
	}
	if cfg.Survival.Speed.Max != 3.5 {
		t.Errorf("survival speed cap = %g, want 3.5", cfg.Survival.Speed.Max)
	}
	if cfg.ColourRush.MaxLevel() != 5 {
		t.Errorf("colour rush max level = %d, want 5", cfg.ColourRush.MaxLevel())
	}
	if cfg.Scoring.Normal != 10 || cfg.Scoring.Double != 25 || cfg.Scoring.Decoy != -30 {
		t.Errorf("scoring = %+v, want 10/25/-30", cfg.Scoring)
	}
	if cfg.Weights["classic"]["normal"] != 70 {
		t.Errorf("classic normal weight = %d, want 70", cfg.Weights["classic"]["normal"])
	}
}

func TestLoadGameConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(string) string
		errContains string
	}{
		{
			name:        "zero classic duration",
			mutate:      func(s string) string { return strings.Replace(s, "durationSeconds: 60", "durationSeconds: 0", 1) },
			errContains: "classic.durationSeconds",
		},
		{
			name:        "survival cap below initial",
			mutate:      func(s string) string { return strings.Replace(s, "maxSeconds: 90", "maxSeconds: 30", 1) },
			errContains: "survival.maxSeconds",
		},
		{
			name:        "difficulty table out of order",
			mutate:      func(s string) string { return strings.Replace(s, "level: 1", "level: 9", 1) },
			errContains: "colourRush.difficulty",
		},
		{
			name:        "inverted bubble radius bounds",
			mutate:      func(s string) string { return strings.Replace(s, "maxRadius: 34", "maxRadius: 3", 1) },
			errContains: "bubble radius",
		},
	}

	base := string(embedded.ModesYAML())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadGameConfig([]byte(tt.mutate(base)))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
			}
		})
	}
}

func TestLoadGameConfigClampsNegativeWeight(t *testing.T) {
	base := string(embedded.ModesYAML())
	mutated := strings.Replace(base, "decoy: 5", "decoy: -5", 1)

	cfg, err := LoadGameConfig([]byte(mutated))
	if err != nil {
		t.Fatalf("negative weight should clamp, not fail: %v", err)
	}
	if got := cfg.Weights["classic"]["decoy"]; got != 0 {
		t.Errorf("clamped weight = %d, want 0", got)
	}
}

func TestColourRushMultiplierFor(t *testing.T) {
	cfg, err := LoadGameConfig(embedded.ModesYAML())
	if err != nil {
		t.Fatal(err)
	}
	cr := &cfg.ColourRush

	tests := []struct {
		consecutive int
		want        float64
	}{
		{0, 1.0},
		{1, 1.0},
		{2, 1.0},
		{3, 1.5},
		{4, 1.5},
		{5, 2.0},
		{9, 2.0},
		{10, 3.0},
		{50, 3.0},
	}
	for _, tt := range tests {
		if got := cr.MultiplierFor(tt.consecutive); got != tt.want {
			t.Errorf("MultiplierFor(%d) = %g, want %g", tt.consecutive, got, tt.want)
		}
	}

	// 倍率对连击数单调不减
	prev := 0.0
	for i := 0; i <= 15; i++ {
		m := cr.MultiplierFor(i)
		if m < prev {
			t.Fatalf("multiplier decreased at %d: %g -> %g", i, prev, m)
		}
		prev = m
	}
}

func TestColourRushLevelParams(t *testing.T) {
	cfg, err := LoadGameConfig(embedded.ModesYAML())
	if err != nil {
		t.Fatal(err)
	}
	cr := &cfg.ColourRush

	if got := cr.LevelParams(1).ColorChangeIntervalMs; got != 6000 {
		t.Errorf("level 1 interval = %g, want 6000", got)
	}
	if got := cr.LevelParams(5).ColorChangeIntervalMs; got != 2000 {
		t.Errorf("level 5 interval = %g, want 2000", got)
	}

	// 越界级别回落到表边界
	if got := cr.LevelParams(0); got.Level != 1 {
		t.Errorf("level 0 fell back to %d, want 1", got.Level)
	}
	if got := cr.LevelParams(99); got.Level != 5 {
		t.Errorf("level 99 fell back to %d, want 5", got.Level)
	}
}

func TestColourRushStarsFor(t *testing.T) {
	cfg, err := LoadGameConfig(embedded.ModesYAML())
	if err != nil {
		t.Fatal(err)
	}
	cr := &cfg.ColourRush

	tests := []struct {
		score    int
		accuracy float64
		want     int
	}{
		{600, 0.9, 3},
		{500, 0.8, 3},
		{500, 0.7, 2},
		{300, 0.6, 2},
		{150, 0.5, 1},
		{50, 1.0, 0},
		{-10, 0.0, 0},
	}
	for _, tt := range tests {
		if got := cr.StarsFor(tt.score, tt.accuracy); got != tt.want {
			t.Errorf("StarsFor(%d, %g) = %d, want %d", tt.score, tt.accuracy, got, tt.want)
		}
	}
}
