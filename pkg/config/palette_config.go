package config

import (
	"fmt"
	"os"

	"github.com/gonewx/bubblerush/pkg/utils"
	"gopkg.in/yaml.v3"
)

// NamedColor 带名称的颜色（色彩冲刺的目标颜色提示用名称显示）
type NamedColor struct {
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"`
}

// PaletteConfig 调色板配置
//
// Neon 是所有模式泡泡的装饰色；ColourRush 是色彩冲刺专用的命名调色板，
// 按难度分组（当前只使用 easy）。
type PaletteConfig struct {
	Neon       []string                `yaml:"neon"`
	ColourRush map[string][]NamedColor `yaml:"colourRush"`
}

// LoadPaletteConfig 从 YAML 字节解析调色板
func LoadPaletteConfig(data []byte) (*PaletteConfig, error) {
	var cfg PaletteConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse palette YAML: %w", err)
	}

	if err := validatePaletteConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid palette config: %w", err)
	}

	return &cfg, nil
}

// LoadPaletteConfigFile 从磁盘文件加载调色板
func LoadPaletteConfigFile(filePath string) (*PaletteConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette file: %w", err)
	}
	return LoadPaletteConfig(data)
}

// validatePaletteConfig 验证调色板：每个颜色都必须是合法的 #RRGGBB
func validatePaletteConfig(cfg *PaletteConfig) error {
	if len(cfg.Neon) == 0 {
		return fmt.Errorf("neon palette cannot be empty")
	}
	for i, hex := range cfg.Neon {
		if _, err := utils.ParseHexColor(hex); err != nil {
			return fmt.Errorf("neon[%d]: %w", i, err)
		}
	}

	easy, ok := cfg.ColourRush["easy"]
	if !ok || len(easy) < 2 {
		return fmt.Errorf("colourRush.easy palette must have at least 2 colors")
	}
	for group, colors := range cfg.ColourRush {
		for i, c := range colors {
			if c.Name == "" {
				return fmt.Errorf("colourRush.%s[%d]: name cannot be empty", group, i)
			}
			if _, err := utils.ParseHexColor(c.Hex); err != nil {
				return fmt.Errorf("colourRush.%s[%d] (%s): %w", group, i, c.Name, err)
			}
		}
	}

	return nil
}

// Easy 返回色彩冲刺的简单难度调色板
func (cfg *PaletteConfig) Easy() []NamedColor {
	return cfg.ColourRush["easy"]
}
