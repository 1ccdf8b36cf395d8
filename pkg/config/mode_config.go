// Package config 提供游戏配置的加载和验证
//
// 所有数值调优（模式时长、生成窗口、难度表、得分表）都集中在 YAML 中，
// 默认配置通过 pkg/embedded 嵌入二进制，可用磁盘文件覆盖。
package config

import (
	"fmt"
	"log"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// SpawnWindowConfig 经典模式的生成窗口
// 场上数量低于 MinBubbles 时立即生成；低于 MaxBubbles 时按间隔生成
type SpawnWindowConfig struct {
	InitialIntervalMs float64 `yaml:"initialIntervalMs"` // 初始生成间隔（毫秒）
	MinIntervalMs     float64 `yaml:"minIntervalMs"`     // 最小生成间隔（毫秒）
	MinBubbles        int     `yaml:"minBubbles"`        // 低于该数量立即补充
	MaxBubbles        int     `yaml:"maxBubbles"`        // 达到该数量停止生成
}

// ClassicConfig 经典模式配置
type ClassicConfig struct {
	DurationSeconds  float64           `yaml:"durationSeconds"`  // 固定倒计时时长
	Spawn            SpawnWindowConfig `yaml:"spawn"`            // 生成窗口
	ClampScoreAtZero bool              `yaml:"clampScoreAtZero"` // 总分是否在 0 处截断
}

// SpeedRampConfig 生存模式速度递增参数
type SpeedRampConfig struct {
	Initial   float64 `yaml:"initial"`   // 初始速度倍率
	Max       float64 `yaml:"max"`       // 速度倍率上限
	SmallStep float64 `yaml:"smallStep"` // 失误率偏高时的小步进
	LargeStep float64 `yaml:"largeStep"` // 正常步进
}

// SpawnRampConfig 生存模式生成间隔递减参数
type SpawnRampConfig struct {
	InitialMs   float64 `yaml:"initialMs"`   // 初始生成间隔
	MinMs       float64 `yaml:"minMs"`       // 间隔下限
	SmallFactor float64 `yaml:"smallFactor"` // 失误率偏高时的缩减系数
	LargeFactor float64 `yaml:"largeFactor"` // 正常缩减系数
}

// SurvivalConfig 生存模式配置
type SurvivalConfig struct {
	InitialSeconds        float64         `yaml:"initialSeconds"`        // 初始剩余时间
	MaxSeconds            float64         `yaml:"maxSeconds"`            // 剩余时间硬上限
	MissPenaltySeconds    float64         `yaml:"missPenaltySeconds"`    // 泡泡漏接扣时
	DecoyPenaltySeconds   float64         `yaml:"decoyPenaltySeconds"`   // 点中陷阱扣时
	DifficultyStepSeconds float64         `yaml:"difficultyStepSeconds"` // 难度提升周期
	HighMissRate          float64         `yaml:"highMissRate"`          // 高于该失误率用小步进
	Speed                 SpeedRampConfig `yaml:"speed"`                 // 速度递增
	SpawnInterval         SpawnRampConfig `yaml:"spawnInterval"`         // 间隔递减
	ClampScoreAtZero      bool            `yaml:"clampScoreAtZero"`      // 总分是否在 0 处截断
}

// ComboThreshold 连击倍率阈值
// 达到 Pops 次连续正确点击后倍率变为 Multiplier
type ComboThreshold struct {
	Pops       int     `yaml:"pops"`
	Multiplier float64 `yaml:"multiplier"`
}

// ColourRushLevel 色彩冲刺单个难度级别的参数
type ColourRushLevel struct {
	Level                 int     `yaml:"level"`                 // 级别 1..5
	ColorChangeIntervalMs float64 `yaml:"colorChangeIntervalMs"` // 目标颜色切换间隔
	SpeedMult             float64 `yaml:"speedMult"`             // 速度倍率
	SpawnIntervalMs       float64 `yaml:"spawnIntervalMs"`       // 生成间隔
	RadiusScale           float64 `yaml:"radiusScale"`           // 泡泡半径缩放
}

// StarThreshold 结算星级阈值
// 满足 MinScore 和 MinAccuracy 两个条件时可获得 Stars 星
type StarThreshold struct {
	Stars       int     `yaml:"stars"`
	MinScore    int     `yaml:"minScore"`
	MinAccuracy float64 `yaml:"minAccuracy"`
}

// ColourRushConfig 色彩冲刺模式配置
type ColourRushConfig struct {
	DurationSeconds       float64           `yaml:"durationSeconds"`       // 局时长
	TargetProbability     float64           `yaml:"targetProbability"`     // 生成目标色泡泡的概率
	MaxActiveBubbles      int               `yaml:"maxActiveBubbles"`      // 场上数量上限
	ColorMatchTolerance   float64           `yaml:"colorMatchTolerance"`   // RGB 欧氏距离容差
	BasePoints            int               `yaml:"basePoints"`            // 正确点击基础分
	WrongPopPenalty       int               `yaml:"wrongPopPenalty"`       // 错误点击扣分（正数）
	PerfectRoundBonus     int               `yaml:"perfectRoundBonus"`     // 完美回合奖励分
	DifficultyStepSeconds float64           `yaml:"difficultyStepSeconds"` // 每级难度所需时长
	ClampScoreAtZero      bool              `yaml:"clampScoreAtZero"`      // 总分是否在 0 处截断
	ComboThresholds       []ComboThreshold  `yaml:"comboThresholds"`       // 连击倍率表
	Difficulty            []ColourRushLevel `yaml:"difficulty"`            // 难度级别表 1..5
	Stars                 []StarThreshold   `yaml:"stars"`                 // 星级阈值（从高到低匹配）
}

// MaxLevel 返回难度表的最高级别
func (c *ColourRushConfig) MaxLevel() int {
	return len(c.Difficulty)
}

// LevelParams 返回指定级别的难度参数
// 未知级别回落到最近的合法级别并记录警告
func (c *ColourRushConfig) LevelParams(level int) ColourRushLevel {
	if len(c.Difficulty) == 0 {
		log.Printf("[Config] Warning: colour rush difficulty table is empty, using built-in defaults")
		return ColourRushLevel{Level: 1, ColorChangeIntervalMs: 6000, SpeedMult: 1.0, SpawnIntervalMs: 1200, RadiusScale: 1.0}
	}
	if level < 1 {
		level = 1
	}
	if level > len(c.Difficulty) {
		level = len(c.Difficulty)
	}
	return c.Difficulty[level-1]
}

// MultiplierFor 返回 consecutive 次连续正确点击对应的连击倍率
// 未达到任何阈值时为 1.0；倍率对连击数单调不减
func (c *ColourRushConfig) MultiplierFor(consecutive int) float64 {
	mult := 1.0
	for _, th := range c.ComboThresholds {
		if consecutive >= th.Pops && th.Multiplier > mult {
			mult = th.Multiplier
		}
	}
	return mult
}

// StarsFor 根据总分和准确率计算星级（0-3）
func (c *ColourRushConfig) StarsFor(score int, accuracy float64) int {
	best := 0
	for _, th := range c.Stars {
		if score >= th.MinScore && accuracy >= th.MinAccuracy && th.Stars > best {
			best = th.Stars
		}
	}
	return best
}

// ScoringConfig 各泡泡类型的基础分值
type ScoringConfig struct {
	Normal int `yaml:"normal"` // 普通泡泡
	Double int `yaml:"double"` // 双击泡泡（完成后）
	Decoy  int `yaml:"decoy"`  // 陷阱泡泡（负值）
}

// PointsFor 返回类型对应的基础分值；未知类型按 normal 处理并警告
func (s *ScoringConfig) PointsFor(typeName string) int {
	switch typeName {
	case "normal":
		return s.Normal
	case "double":
		return s.Double
	case "decoy":
		return s.Decoy
	default:
		log.Printf("[Config] Warning: unknown bubble type %q in scoring lookup, using normal", typeName)
		return s.Normal
	}
}

// BubbleConfig 泡泡实体的公共参数
type BubbleConfig struct {
	MinRadius        float64 `yaml:"minRadius"`        // 生成半径下限
	MaxRadius        float64 `yaml:"maxRadius"`        // 生成半径上限
	PopDurationMs    float64 `yaml:"popDurationMs"`    // 破裂动画时长
	NormalLifetimeMs int64   `yaml:"normalLifetimeMs"` // normal/double 存活时长
	DecoyLifetimeMs  int64   `yaml:"decoyLifetimeMs"`  // decoy 存活时长
}

// GameConfig 游戏全量配置
type GameConfig struct {
	Classic    ClassicConfig             `yaml:"classic"`
	Survival   SurvivalConfig            `yaml:"survival"`
	ColourRush ColourRushConfig          `yaml:"colourRush"`
	Scoring    ScoringConfig             `yaml:"scoring"`
	Bubble     BubbleConfig              `yaml:"bubble"`
	Weights    map[string]map[string]int `yaml:"weights"` // 模式 -> 类型 -> 权重
}

// LoadGameConfig 从 YAML 字节解析游戏配置
// 结构性错误返回 error；数值越界按规范钳制并记录警告
func LoadGameConfig(data []byte) (*GameConfig, error) {
	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	if err := validateGameConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	normalizeGameConfig(&cfg)

	return &cfg, nil
}

// LoadGameConfigFile 从磁盘文件加载游戏配置
func LoadGameConfigFile(filePath string) (*GameConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file: %w", err)
	}
	return LoadGameConfig(data)
}

// validateGameConfig 验证配置的结构有效性
func validateGameConfig(cfg *GameConfig) error {
	if cfg.Classic.DurationSeconds <= 0 {
		return fmt.Errorf("classic.durationSeconds must be > 0, got %g", cfg.Classic.DurationSeconds)
	}
	if cfg.Classic.Spawn.MaxBubbles < cfg.Classic.Spawn.MinBubbles {
		return fmt.Errorf("classic.spawn.maxBubbles (%d) must be >= minBubbles (%d)",
			cfg.Classic.Spawn.MaxBubbles, cfg.Classic.Spawn.MinBubbles)
	}

	if cfg.Survival.InitialSeconds <= 0 {
		return fmt.Errorf("survival.initialSeconds must be > 0, got %g", cfg.Survival.InitialSeconds)
	}
	if cfg.Survival.MaxSeconds < cfg.Survival.InitialSeconds {
		return fmt.Errorf("survival.maxSeconds (%g) must be >= initialSeconds (%g)",
			cfg.Survival.MaxSeconds, cfg.Survival.InitialSeconds)
	}
	if cfg.Survival.DifficultyStepSeconds <= 0 {
		return fmt.Errorf("survival.difficultyStepSeconds must be > 0, got %g", cfg.Survival.DifficultyStepSeconds)
	}

	if cfg.ColourRush.DurationSeconds <= 0 {
		return fmt.Errorf("colourRush.durationSeconds must be > 0, got %g", cfg.ColourRush.DurationSeconds)
	}
	if cfg.ColourRush.MaxActiveBubbles <= 0 {
		return fmt.Errorf("colourRush.maxActiveBubbles must be > 0, got %d", cfg.ColourRush.MaxActiveBubbles)
	}
	if len(cfg.ColourRush.Difficulty) == 0 {
		return fmt.Errorf("colourRush.difficulty table cannot be empty")
	}
	for i, lvl := range cfg.ColourRush.Difficulty {
		if lvl.Level != i+1 {
			return fmt.Errorf("colourRush.difficulty[%d].level = %d, want %d (levels must be 1..N in order)",
				i, lvl.Level, i+1)
		}
		if lvl.ColorChangeIntervalMs <= 0 || lvl.SpawnIntervalMs <= 0 {
			return fmt.Errorf("colourRush.difficulty level %d has non-positive interval", lvl.Level)
		}
		if lvl.SpeedMult <= 0 || lvl.RadiusScale <= 0 {
			return fmt.Errorf("colourRush.difficulty level %d has non-positive multiplier", lvl.Level)
		}
	}

	if cfg.Bubble.MinRadius <= 0 || cfg.Bubble.MaxRadius < cfg.Bubble.MinRadius {
		return fmt.Errorf("bubble radius bounds invalid: min=%g max=%g", cfg.Bubble.MinRadius, cfg.Bubble.MaxRadius)
	}
	if cfg.Bubble.PopDurationMs <= 0 {
		return fmt.Errorf("bubble.popDurationMs must be > 0, got %g", cfg.Bubble.PopDurationMs)
	}
	if cfg.Bubble.NormalLifetimeMs <= 0 || cfg.Bubble.DecoyLifetimeMs <= 0 {
		return fmt.Errorf("bubble lifetimes must be > 0")
	}

	if len(cfg.Weights) == 0 {
		return fmt.Errorf("weights cannot be empty")
	}

	return nil
}

// normalizeGameConfig 钳制越界数值（规范：无效数值在边界处截断并警告）
func normalizeGameConfig(cfg *GameConfig) {
	if cfg.Classic.Spawn.MinIntervalMs > cfg.Classic.Spawn.InitialIntervalMs {
		log.Printf("[Config] Warning: classic spawn minIntervalMs (%g) > initialIntervalMs (%g), clamping",
			cfg.Classic.Spawn.MinIntervalMs, cfg.Classic.Spawn.InitialIntervalMs)
		cfg.Classic.Spawn.MinIntervalMs = cfg.Classic.Spawn.InitialIntervalMs
	}
	if cfg.Survival.SpawnInterval.MinMs > cfg.Survival.SpawnInterval.InitialMs {
		log.Printf("[Config] Warning: survival spawn minMs (%g) > initialMs (%g), clamping",
			cfg.Survival.SpawnInterval.MinMs, cfg.Survival.SpawnInterval.InitialMs)
		cfg.Survival.SpawnInterval.MinMs = cfg.Survival.SpawnInterval.InitialMs
	}
	if cfg.ColourRush.TargetProbability < 0 {
		log.Printf("[Config] Warning: colourRush.targetProbability %g < 0, clamping to 0", cfg.ColourRush.TargetProbability)
		cfg.ColourRush.TargetProbability = 0
	}
	if cfg.ColourRush.TargetProbability > 1 {
		log.Printf("[Config] Warning: colourRush.targetProbability %g > 1, clamping to 1", cfg.ColourRush.TargetProbability)
		cfg.ColourRush.TargetProbability = 1
	}
	if cfg.ColourRush.ColorMatchTolerance < 0 {
		log.Printf("[Config] Warning: colourRush.colorMatchTolerance %g < 0, clamping to 0", cfg.ColourRush.ColorMatchTolerance)
		cfg.ColourRush.ColorMatchTolerance = 0
	}

	// 负权重钳制为 0
	for mode, weights := range cfg.Weights {
		for typeName, w := range weights {
			if w < 0 {
				log.Printf("[Config] Warning: negative weight %d for %s/%s, clamping to 0", w, mode, typeName)
				weights[typeName] = 0
			}
		}
	}

	// 连击倍率表按阈值升序排列，保证倍率查询单调
	sort.Slice(cfg.ColourRush.ComboThresholds, func(i, j int) bool {
		return cfg.ColourRush.ComboThresholds[i].Pops < cfg.ColourRush.ComboThresholds[j].Pops
	})
}
