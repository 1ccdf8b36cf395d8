package entities

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/gonewx/bubblerush/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 效果时长常量（毫秒换算为秒）
const (
	floatingTextLifespanS = 0.8
	countdownLifespanS    = 0.5
	shatterLifespanS      = 0.5
)

// FloatingTextEffect 上浮渐隐的文字效果（飘分、完美回合提示）
type FloatingTextEffect struct {
	Text  string
	X, Y  float64
	Scale float64
	Color color.RGBA

	age      float64
	lifespan float64
}

// NewPointsText 创建飘分文字
// 正分用泡泡本色，负分调用方传入红色
func NewPointsText(str string, x, y float64, clr color.RGBA) *FloatingTextEffect {
	return &FloatingTextEffect{
		Text:     str,
		X:        x,
		Y:        y,
		Scale:    1.6,
		Color:    clr,
		lifespan: floatingTextLifespanS,
	}
}

// NewPerfectRoundText 创建金色的完美回合奖励文字
func NewPerfectRoundText(str string, x, y float64) *FloatingTextEffect {
	return &FloatingTextEffect{
		Text:     str,
		X:        x,
		Y:        y,
		Scale:    2.4,
		Color:    color.RGBA{R: 0xff, G: 0xd7, A: 0xff},
		lifespan: floatingTextLifespanS * 1.5,
	}
}

// Update 推进效果；返回 true 表示生命周期结束
func (e *FloatingTextEffect) Update(dtS float64, nowMillis int64) bool {
	e.age += dtS
	return e.age >= e.lifespan
}

// Draw 绘制：上浮 + 渐隐
func (e *FloatingTextEffect) Draw(screen *ebiten.Image) {
	progress := utils.Clamp(e.age/e.lifespan, 0, 1)
	rise := 40 * utils.EaseOutCubic(progress)
	clr := utils.WithOpacity(e.Color, 1-progress)
	utils.DrawCenteredText(screen, e.Text, e.X, e.Y-rise, e.Scale, clr)
}

// CountdownTextEffect 开局倒计时的大号居中文字（"3","2","1","Pop!"）
// 按墙钟计时：每个标签恰好显示 500ms，不受帧步长钳制影响
type CountdownTextEffect struct {
	Text   string
	CX, CY float64

	startMillis int64
	elapsedS    float64
	lifespan    float64
}

// NewCountdownText 创建倒计时文字，从 nowMillis 起显示 500ms
func NewCountdownText(str string, cx, cy float64, nowMillis int64) *CountdownTextEffect {
	return &CountdownTextEffect{
		Text:        str,
		CX:          cx,
		CY:          cy,
		startMillis: nowMillis,
		lifespan:    countdownLifespanS,
	}
}

// Update 推进效果；到期以墙钟为准
func (e *CountdownTextEffect) Update(dtS float64, nowMillis int64) bool {
	e.elapsedS = float64(nowMillis-e.startMillis) / 1000
	return e.elapsedS >= e.lifespan
}

// Draw 绘制：弹出放大 + 尾段渐隐
func (e *CountdownTextEffect) Draw(screen *ebiten.Image) {
	progress := utils.Clamp(e.elapsedS/e.lifespan, 0, 1)
	scale := utils.Lerp(3.0, 6.0, utils.EaseOutExpo(progress))

	opacity := 1.0
	if progress > 0.7 {
		opacity = 1 - (progress-0.7)/0.3
	}
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	utils.DrawCenteredText(screen, e.Text, e.CX, e.CY, scale, utils.WithOpacity(white, opacity))
}

// shard 连击破碎效果的单个碎片
type shard struct {
	x, y   float64
	vx, vy float64
	radius float64
}

// ShatterEffect 连击中断时的破碎效果：碎片向四周飞散并收缩
type ShatterEffect struct {
	Color  color.RGBA
	shards []shard

	age      float64
	lifespan float64
}

// NewComboShatter 在 (x, y) 创建破碎效果
func NewComboShatter(x, y float64, clr color.RGBA, rnd *rand.Rand) *ShatterEffect {
	const count = 10
	shards := make([]shard, count)
	for i := range shards {
		angle := float64(i)/count*2*math.Pi + rnd.Float64()*0.5
		speed := 2 + rnd.Float64()*2
		shards[i] = shard{
			x: x, y: y,
			vx:     math.Cos(angle) * speed,
			vy:     math.Sin(angle) * speed,
			radius: 3 + rnd.Float64()*2,
		}
	}
	return &ShatterEffect{
		Color:    clr,
		shards:   shards,
		lifespan: shatterLifespanS,
	}
}

// Update 推进碎片运动
func (e *ShatterEffect) Update(dtS float64, nowMillis int64) bool {
	for i := range e.shards {
		e.shards[i].x += e.shards[i].vx * dtS * 60
		e.shards[i].y += e.shards[i].vy * dtS * 60
	}
	e.age += dtS
	return e.age >= e.lifespan
}

// Draw 绘制碎片（随时间收缩渐隐）
func (e *ShatterEffect) Draw(screen *ebiten.Image) {
	progress := utils.Clamp(e.age/e.lifespan, 0, 1)
	clr := utils.WithOpacity(e.Color, 1-progress)
	for _, s := range e.shards {
		r := s.radius * (1 - progress)
		if r <= 0 {
			continue
		}
		vector.DrawFilledCircle(screen, float32(s.x), float32(s.y), float32(r), clr, true)
	}
}
