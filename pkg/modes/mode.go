// Package modes 实现三种玩法的模式编排和每帧模拟循环
//
// 模式是一个多态游戏对象：拥有自己的泡泡种群，在共享的
// 固定步长风格 delta 循环下推进模拟，并实现统一的生命周期契约。
// 共享模拟逻辑位于 BaseMode，由各模式变体组合使用。
package modes

import (
	"math/rand"

	"github.com/gonewx/bubblerush/pkg/config"
	"github.com/gonewx/bubblerush/pkg/game"
	"github.com/gonewx/bubblerush/pkg/systems"
	"github.com/gonewx/bubblerush/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// State 模式生命周期状态
// idle -> prepared -> countdown -> playing <-> paused -> ended
type State int

const (
	// StateIdle 未准备
	StateIdle State = iota
	// StatePrepared 已重置，等待开始
	StatePrepared
	// StateCountdown 开局倒计时播放中（不可暂停）
	StateCountdown
	// StatePlaying 模拟进行中
	StatePlaying
	// StatePaused 暂停（计时、模拟、生成全部冻结；效果管线继续渲染）
	StatePaused
	// StateEnded 本局结束
	StateEnded
)

// String 返回状态的日志标识
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePrepared:
		return "prepared"
	case StateCountdown:
		return "countdown"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// HUD 标签键
// 核心只通过 setter 风格接口更新 HUD，不感知布局
const (
	HUDScore    = "score"
	HUDMode     = "mode"
	HUDTime     = "time"
	HUDSurvival = "survival_status"
	HUDTarget   = "target_color"
	HUDCombo    = "combo"
)

// HUD 抬头显示的外部契约
type HUD interface {
	SetText(label, value string)
	SetVisible(label string, visible bool)
}

// DialogChoice 对话框选项
type DialogChoice struct {
	Label    string
	OnSelect func()
}

// Dialog 消息对话框的外部契约
type Dialog interface {
	ShowMessage(title, body string, choices []DialogChoice)
	Hide()
}

// Audio 音频/振动的外部契约（允许空实现）
type Audio interface {
	Play(soundID string)
	Vibrate(ms int)
}

// 音效 ID
const (
	SoundPop     = "pop"
	SoundDecoy   = "decoy"
	SoundShatter = "shatter"
	SoundTick    = "tick"
	SoundPerfect = "perfect"
)

// Env 编排器注入给模式的服务集合
//
// 模式从不回调编排器内部：所有向外的交互都经由这些注入的契约
// （避免源实现中模式与编排器的循环依赖）。
type Env struct {
	CanvasW, CanvasH float64

	Config  *config.GameConfig
	Palette *config.PaletteConfig

	Ledger *game.ScoreLedger
	Spawn  *systems.SpawnPolicy
	Clock  game.Clock
	Rand   *rand.Rand

	HUD    HUD
	Dialog Dialog
	Audio  Audio

	// GoToMenu 返回主菜单（结算对话框的主操作）
	GoToMenu func()
}

// Mode 游戏模式的统一生命周期契约
type Mode interface {
	// Type 返回模式标识
	Type() types.ModeType
	// State 返回当前生命周期状态
	State() State

	// Prepare 重置状态并显示模式 HUD；重复调用安全
	Prepare()
	// Start 开始本局（前置条件：已 Prepare；否则警告并忽略）
	// 先播放倒计时，倒计时结束后进入模拟
	Start()
	// OnPointerDown 处理一次画布坐标下的点击
	OnPointerDown(x, y float64)
	// TogglePause 切换暂停；倒计时期间不可暂停
	TogglePause()
	// Restart 重新开始：cleanup -> prepare -> start
	Restart()
	// End 结束本局并弹出结算对话框；幂等
	End()
	// Cleanup 停止循环、清空种群、隐藏 HUD；幂等
	Cleanup()

	// Update 推进一帧（时间来自注入的 Clock）
	Update()
	// Draw 绘制泡泡场和效果管线
	Draw(screen *ebiten.Image)
}

// NewMode 按类型创建模式实例
// 未知类型回落到经典模式并记录警告
func NewMode(mt types.ModeType, env *Env) Mode {
	switch mt {
	case types.ModeSurvival:
		return NewSurvivalMode(env)
	case types.ModeColourRush:
		return NewColourRushMode(env)
	case types.ModeClassic:
		return NewClassicMode(env)
	default:
		return NewClassicMode(env)
	}
}
