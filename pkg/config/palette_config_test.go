package config

import (
	"strings"
	"testing"

	"github.com/gonewx/bubblerush/pkg/embedded"
	"github.com/gonewx/bubblerush/pkg/utils"
)

func TestLoadPaletteConfigDefaults(t *testing.T) {
	cfg, err := LoadPaletteConfig(embedded.PalettesYAML())
	if err != nil {
		t.Fatalf("embedded palettes failed to load: %v", err)
	}

	if len(cfg.Neon) < 4 {
		t.Errorf("neon palette has %d colors, want at least 4", len(cfg.Neon))
	}
	easy := cfg.Easy()
	if len(easy) < 2 {
		t.Fatalf("easy palette has %d colors, want at least 2", len(easy))
	}

	// 色彩冲刺依赖颜色间距大于匹配容差（默认 30），
	// 否则目标色和干扰色无法区分
	for i := range easy {
		for j := i + 1; j < len(easy); j++ {
			a := utils.MustParseHexColor(easy[i].Hex)
			b := utils.MustParseHexColor(easy[j].Hex)
			if d := utils.ColorDistance(a, b); d <= 30 {
				t.Errorf("easy colors %s and %s are only %.1f apart, want > 30",
					easy[i].Name, easy[j].Name, d)
			}
		}
	}
}

func TestLoadPaletteConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		errContains string
	}{
		{
			name:        "empty neon",
			yaml:        "neon: []\ncolourRush:\n  easy:\n    - { name: A, hex: \"#FF0000\" }\n    - { name: B, hex: \"#00FF00\" }\n",
			errContains: "neon palette",
		},
		{
			name:        "bad hex in neon",
			yaml:        "neon: [\"#XYZ123\"]\ncolourRush:\n  easy:\n    - { name: A, hex: \"#FF0000\" }\n    - { name: B, hex: \"#00FF00\" }\n",
			errContains: "neon[0]",
		},
		{
			name:        "missing easy palette",
			yaml:        "neon: [\"#FF0000\"]\ncolourRush: {}\n",
			errContains: "easy palette",
		},
		{
			name:        "unnamed colour rush color",
			yaml:        "neon: [\"#FF0000\"]\ncolourRush:\n  easy:\n    - { name: \"\", hex: \"#FF0000\" }\n    - { name: B, hex: \"#00FF00\" }\n",
			errContains: "name cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPaletteConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
			}
		})
	}
}
