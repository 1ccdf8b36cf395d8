// Package entities 提供实体和效果的工厂函数
package entities

import (
	"log"
	"math"
	"math/rand"

	"github.com/gonewx/bubblerush/pkg/components"
	"github.com/gonewx/bubblerush/pkg/config"
	"github.com/gonewx/bubblerush/pkg/types"
	"github.com/gonewx/bubblerush/pkg/utils"
)

// BubbleParams 创建泡泡的参数
type BubbleParams struct {
	Type     types.BubbleType
	ColorHex string // "#RRGGBB"

	CanvasW, CanvasH float64

	// SpeedMult 速度倍率（难度驱动）；<= 0 时取 1
	SpeedMult float64
	// RadiusScale 半径缩放（色彩冲刺难度驱动）；<= 0 时取 1
	RadiusScale float64

	NowMillis int64
}

// NewBubble 按参数创建一个泡泡
//
// 生成规则：
//   - 半径在配置区间内均匀取值，乘以 RadiusScale
//   - 位置均匀落在画布内侧（保证不与墙重叠）
//   - 速度大小 = 基准 * (0.8 + 0.4u) * SpeedMult，方向在圆周上均匀
//   - decoy 的存活时长短于其他类型
func NewBubble(cfg *config.BubbleConfig, p BubbleParams, rnd *rand.Rand) *components.Bubble {
	if p.SpeedMult <= 0 {
		p.SpeedMult = 1
	}
	if p.RadiusScale <= 0 {
		p.RadiusScale = 1
	}
	if p.Type == types.BubbleUnknown {
		log.Printf("[BubbleFactory] Warning: unknown bubble type requested, using normal")
		p.Type = types.BubbleNormal
	}

	radius := (cfg.MinRadius + rnd.Float64()*(cfg.MaxRadius-cfg.MinRadius)) * p.RadiusScale

	x := radius + rnd.Float64()*(p.CanvasW-2*radius)
	y := radius + rnd.Float64()*(p.CanvasH-2*radius)

	speed := components.BaseSpawnSpeed * (0.8 + 0.4*rnd.Float64()) * p.SpeedMult
	angle := rnd.Float64() * 2 * math.Pi

	lifetime := cfg.NormalLifetimeMs
	if p.Type == types.BubbleDecoy {
		lifetime = cfg.DecoyLifetimeMs
	}

	b := &components.Bubble{
		X: x, Y: y,
		BaseRadius: radius,
		Radius:     radius,
		ColorHex:   p.ColorHex,
		RGBA:       utils.MustParseHexColor(p.ColorHex),
		VX:         math.Cos(angle) * speed,
		VY:         math.Sin(angle) * speed,
		Type:       p.Type,
		TapsNeeded: p.Type.TapsNeeded(),

		CreatedMillis: p.NowMillis,
		MaxLifetimeMs: lifetime,
		PopDurationMs: cfg.PopDurationMs,
		Opacity:       1,

		WobbleOffset: rnd.Float64() * 2 * math.Pi,
		WobbleSpeed:  0.001 + rnd.Float64()*0.003,
	}
	b.CapSpeed()
	return b
}
