// Package components 定义模拟实体
package components

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/gonewx/bubblerush/pkg/types"
	"github.com/gonewx/bubblerush/pkg/utils"
)

// 运动学常量
//
// 速度以"60Hz 下每帧像素数"为单位存储，积分时乘以 dt*60，
// 保证不同刷新率下视觉速度一致（沿用原始实现的缩放约定）。
const (
	// FrameRateScale 速度积分的帧率缩放因子
	FrameRateScale = 60.0

	// MaxSpeed 速度上限（每帧像素，反弹后强制执行）
	MaxSpeed = 4.0

	// MinSpeed 碰撞后的速度下限（防止泡泡停滞）
	MinSpeed = 0.8

	// Restitution 碰撞恢复系数
	// 刻意大于 1：每次碰撞注入少量能量，保持场面活跃。
	// 不要"修正"成物理精确值。
	Restitution = 1.15

	// WobbleAmplitude 漂浮抖动的振幅（像素）
	WobbleAmplitude = 0.3

	// BaseSpawnSpeed 生成速度基准（每帧像素）
	BaseSpawnSpeed = 1.5
)

// Bubble 可点击的圆形泡泡实体
//
// 生命周期：生成 -> 漂浮（可被点击）-> 破裂动画 或 超时漏接 -> dead。
// dead 置位后在当帧更新结束时从种群中移除，绝不复活。
type Bubble struct {
	X, Y float64 // 圆心位置（像素）

	BaseRadius float64 // 基础半径
	Radius     float64 // 当前半径（破裂动画期间收缩）

	ColorHex string     // 十六进制颜色（色彩冲刺用于匹配）
	RGBA     color.RGBA // 解析后的颜色（绘制缓存）

	VX, VY float64 // 速度（60Hz 下每帧像素数）

	Type       types.BubbleType
	TapsNeeded int // double=2，其余 1
	TapsCount  int

	Popped         bool  // 已完成点击，正在播放破裂动画
	Dead           bool  // 可移除
	PopStartMillis int64 // 破裂动画开始时刻
	CreatedMillis  int64 // 创建时刻
	MaxLifetimeMs  int64 // 存活上限（decoy 3000，其余 7000）
	PopDurationMs  float64

	Opacity float64 // [0, 1]

	// 漂浮抖动参数
	WobbleOffset float64
	WobbleSpeed  float64
}

// Pop 记录一次有效点击
// 返回 true 表示该泡泡本次被点满（开始破裂动画）
// 已破裂或已死亡的泡泡忽略点击
func (b *Bubble) Pop(nowMillis int64) bool {
	if b.Popped || b.Dead {
		return false
	}
	b.TapsCount++
	if b.TapsCount < b.TapsNeeded {
		return false
	}
	b.TapsCount = b.TapsNeeded
	b.Popped = true
	b.PopStartMillis = nowMillis
	return true
}

// Contains 判断画布坐标 (x, y) 是否命中该泡泡
func (b *Bubble) Contains(x, y float64) bool {
	dx := x - b.X
	dy := y - b.Y
	return dx*dx+dy*dy <= b.Radius*b.Radius
}

// Update 推进一帧
//
// 返回 missed=true 表示泡泡寿命耗尽（未被点破就消失），
// 调用方按模式规则处理漏接后负责移除。
func (b *Bubble) Update(dtS float64, nowMillis int64, canvasW, canvasH float64, rnd *rand.Rand) (missed bool) {
	if b.Dead {
		return false
	}

	// 破裂动画：收缩 + 淡出
	if b.Popped {
		progress := float64(nowMillis-b.PopStartMillis) / b.PopDurationMs
		if progress >= 1 {
			b.Dead = true
			b.Radius = 0.001
			b.Opacity = 0
			return false
		}
		eased := utils.EaseOutQuad(progress)
		b.Radius = b.BaseRadius * (1 - eased)
		if b.Radius <= 0 {
			b.Radius = 0.001
		}
		b.Opacity = 1 - progress
		return false
	}

	// 寿命耗尽 = 漏接
	if nowMillis-b.CreatedMillis > b.MaxLifetimeMs {
		b.Dead = true
		return true
	}

	// 位置积分（速度按 60Hz 帧单位存储）
	b.X += b.VX * dtS * FrameRateScale
	b.Y += b.VY * dtS * FrameRateScale

	// 漂浮抖动
	wobble := math.Sin(float64(nowMillis)*b.WobbleSpeed+b.WobbleOffset) * WobbleAmplitude
	b.X += wobble
	b.Y += wobble

	b.resolveWalls(canvasW, canvasH, rnd)
	return false
}

// resolveWalls 墙面碰撞：钳制到边界、反转速度分量、施加智能反弹
func (b *Bubble) resolveWalls(canvasW, canvasH float64, rnd *rand.Rand) {
	bounced := false

	if b.X < b.Radius {
		b.X = b.Radius
		b.VX = -b.VX
		bounced = true
	} else if b.X > canvasW-b.Radius {
		b.X = canvasW - b.Radius
		b.VX = -b.VX
		bounced = true
	}

	if b.Y < b.Radius {
		b.Y = b.Radius
		b.VY = -b.VY
		bounced = true
	} else if b.Y > canvasH-b.Radius {
		b.Y = canvasH - b.Radius
		b.VY = -b.VY
		bounced = true
	}

	if bounced {
		b.IntelligentBounce(rnd)
	}
}

// Speed 返回当前速度大小
func (b *Bubble) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// RandomizeDirection 将速度方向旋转 ±60° 内的随机角度，保持大小不变
// 碰撞解算后调用，打散规律运动
func (b *Bubble) RandomizeDirection(rnd *rand.Rand) {
	angle := (rnd.Float64()*2 - 1) * math.Pi / 3
	b.rotateVelocity(angle)
}

// IntelligentBounce 墙面反弹后的扰动：
// 方向旋转 ±45°，大小乘以 1.1~1.2，然后钳制到速度上限
func (b *Bubble) IntelligentBounce(rnd *rand.Rand) {
	angle := (rnd.Float64()*2 - 1) * math.Pi / 4
	b.rotateVelocity(angle)

	boost := 1.1 + 0.1*rnd.Float64()
	b.VX *= boost
	b.VY *= boost
	b.CapSpeed()
}

// CapSpeed 将速度大小钳制到 MaxSpeed
func (b *Bubble) CapSpeed() {
	speed := b.Speed()
	if speed > MaxSpeed {
		scale := MaxSpeed / speed
		b.VX *= scale
		b.VY *= scale
	}
}

// EnforceMinSpeed 保证速度大小不低于 MinSpeed
// 速度为零时沿 X 轴给出最小速度
func (b *Bubble) EnforceMinSpeed() {
	speed := b.Speed()
	if speed >= MinSpeed {
		return
	}
	if speed == 0 {
		b.VX = MinSpeed
		b.VY = 0
		return
	}
	scale := MinSpeed / speed
	b.VX *= scale
	b.VY *= scale
}

func (b *Bubble) rotateVelocity(angle float64) {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	vx := b.VX*cos - b.VY*sin
	vy := b.VX*sin + b.VY*cos
	b.VX = vx
	b.VY = vy
}
