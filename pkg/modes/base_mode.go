package modes

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/gonewx/bubblerush/pkg/components"
	"github.com/gonewx/bubblerush/pkg/entities"
	"github.com/gonewx/bubblerush/pkg/systems"
	"github.com/gonewx/bubblerush/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// 倒计时序列：每个标签固定 500ms，最后一个结束后进入模拟
var countdownLabels = []string{"3", "2", "1", "Pop!"}

const countdownStepMs = 500

// penaltyRed 负分飘字颜色
var penaltyRed = color.RGBA{R: 0xff, G: 0x45, B: 0x45, A: 0xff}

// bonusGreen 时间奖励飘字颜色
var bonusGreen = color.RGBA{R: 0x39, G: 0xff, B: 0x14, A: 0xff}

// BaseMode 三种模式共享的模拟骨架
//
// 持有泡泡种群、效果管线和碰撞系统，实现倒计时子状态、
// 帧步长推进、命中测试和统一的点击分发。具体模式内嵌 BaseMode
// 并在钩子处追加各自的规则（计时奖惩、连击、难度）。
type BaseMode struct {
	env      *Env
	modeType types.ModeType

	state   State
	bubbles []*components.Bubble
	effects *systems.EffectPipeline
	collide *systems.CollisionSystem

	elapsedS        float64
	lastFrameMillis int64
	lastSpawnMillis int64

	countdownStartMillis int64
	countdownShown       int
}

func newBaseMode(env *Env, mt types.ModeType) BaseMode {
	return BaseMode{
		env:      env,
		modeType: mt,
		state:    StateIdle,
		effects:  systems.NewEffectPipeline(),
		collide:  systems.NewCollisionSystem(env.Rand),
	}
}

// Type 返回模式标识
func (m *BaseMode) Type() types.ModeType {
	return m.modeType
}

// State 返回当前生命周期状态
func (m *BaseMode) State() State {
	return m.state
}

// Effects 返回效果管线（供编排器查询，测试观测点）
func (m *BaseMode) Effects() *systems.EffectPipeline {
	return m.effects
}

// BubbleCount 返回当前种群数量（含破裂动画中的泡泡）
func (m *BaseMode) BubbleCount() int {
	return len(m.bubbles)
}

// resetBase 回到 prepared：清空种群、效果、账本和采样器反馈状态
func (m *BaseMode) resetBase() {
	m.state = StatePrepared
	m.bubbles = m.bubbles[:0]
	m.effects.Clear()
	m.elapsedS = 0
	m.lastFrameMillis = 0
	m.lastSpawnMillis = 0
	m.countdownShown = 0
	m.env.Ledger.Reset()
	m.env.Spawn.Reset()
}

// beginCountdown 从 prepared 进入倒计时
// 未 prepare 时记录警告并忽略（生命周期契约）
func (m *BaseMode) beginCountdown() {
	if m.state != StatePrepared {
		log.Printf("[%s] Warning: Start called in state %s, ignoring", m.modeType, m.state)
		return
	}
	now := m.env.Clock.NowMillis()
	m.state = StateCountdown
	m.countdownStartMillis = now
	m.countdownShown = 0
	m.lastFrameMillis = now
	log.Printf("[%s] Countdown started", m.modeType)
}

// stepCountdown 推进倒计时子状态
// 每 500ms 推送一个倒计时文字效果；序列播完后进入 playing，
// 并把帧基准和生成计时器对齐到当前时刻（首帧 dt 约等于 0）。
func (m *BaseMode) stepCountdown(now int64) {
	dt := m.frameDelta(now)
	elapsed := now - m.countdownStartMillis

	m.effects.Update(dt, now)
	for m.countdownShown < len(countdownLabels) &&
		elapsed >= int64(m.countdownShown)*countdownStepMs {
		label := countdownLabels[m.countdownShown]
		m.effects.Add(entities.NewCountdownText(label, m.env.CanvasW/2, m.env.CanvasH/2, now))
		m.playSound(SoundTick)
		m.countdownShown++
	}

	if elapsed >= int64(len(countdownLabels))*countdownStepMs {
		m.state = StatePlaying
		m.lastFrameMillis = now
		m.lastSpawnMillis = now
	}
}

// frameDelta 计算距上一帧的秒数并推进帧基准
// 钳制到 [0, 0.1]：时钟回退按 0 处理，长时间挂起不产生补偿性大步长
func (m *BaseMode) frameDelta(now int64) float64 {
	dt := float64(now-m.lastFrameMillis) / 1000
	m.lastFrameMillis = now
	if dt < 0 {
		return 0
	}
	if dt > 0.1 {
		return 0.1
	}
	return dt
}

// togglePauseBase 切换暂停状态；倒计时中不可暂停
func (m *BaseMode) togglePauseBase() {
	switch m.state {
	case StatePlaying:
		m.state = StatePaused
		log.Printf("[%s] Paused", m.modeType)
	case StatePaused:
		m.state = StatePlaying
		// 重置帧基准，恢复后的首帧 dt 约等于 0
		m.lastFrameMillis = m.env.Clock.NowMillis()
		log.Printf("[%s] Resumed", m.modeType)
	default:
		log.Printf("[%s] Warning: TogglePause in state %s, ignoring", m.modeType, m.state)
	}
}

// advanceBubbles 推进所有泡泡并移除 dead 的个体
// 从尾到头遍历，原地移除不会扰乱迭代；
// 漏接（寿命耗尽）的泡泡在移除前回调 onMissed 执行模式规则
func (m *BaseMode) advanceBubbles(dtS float64, now int64, onMissed func(*components.Bubble)) {
	for i := len(m.bubbles) - 1; i >= 0; i-- {
		b := m.bubbles[i]
		missed := b.Update(dtS, now, m.env.CanvasW, m.env.CanvasH, m.env.Rand)
		if missed && onMissed != nil {
			onMissed(b)
		}
		if b.Dead {
			m.bubbles = append(m.bubbles[:i], m.bubbles[i+1:]...)
		}
	}
}

// activeCount 返回可点击的泡泡数量（不含破裂动画中的）
func (m *BaseMode) activeCount() int {
	n := 0
	for _, b := range m.bubbles {
		if !b.Popped && !b.Dead {
			n++
		}
	}
	return n
}

// hitTest 返回命中点 (x, y) 的最上层泡泡
// 绘制按插入顺序（后生成的在上层），因此从尾到头找第一个命中者
func (m *BaseMode) hitTest(x, y float64) *components.Bubble {
	for i := len(m.bubbles) - 1; i >= 0; i-- {
		b := m.bubbles[i]
		if b.Popped || b.Dead {
			continue
		}
		if b.Contains(x, y) {
			return b
		}
	}
	return nil
}

// spawnBubble 采样类型并生成一个泡泡，追加到种群
// 颜色从霓虹调色板均匀取（色彩冲刺模式不走这个入口）
func (m *BaseMode) spawnBubble(speedMult float64) *components.Bubble {
	bt := m.env.Spawn.NextType(m.modeType)
	hex := m.env.Palette.Neon[m.env.Rand.Intn(len(m.env.Palette.Neon))]
	b := entities.NewBubble(&m.env.Config.Bubble, entities.BubbleParams{
		Type:      bt,
		ColorHex:  hex,
		CanvasW:   m.env.CanvasW,
		CanvasH:   m.env.CanvasH,
		SpeedMult: speedMult,
		NowMillis: m.env.Clock.NowMillis(),
	}, m.env.Rand)
	m.bubbles = append(m.bubbles, b)
	return b
}

// popHooks 点击分发的模式钩子
type popHooks struct {
	// onDecoyPopped 点中陷阱后的额外规则（生存模式扣时）
	onDecoyPopped func(b *components.Bubble)
	// onPopCompleted 正常完成破裂后的额外规则（生存模式时间奖励）
	onPopCompleted func(b *components.Bubble)
}

// handleFieldTap 经典/生存共用的点击分发
//
// 返回 true 表示命中了泡泡。落空点击只汇报给采样器，
// 模式自己的连击状态由调用方处理。
//
// 按类型策略分发：
//   - decoy: 立即破裂，计负分，红色飘字，反馈"失败"
//   - double: 首次点击只累计，第二次完成
//   - normal: 一次完成
func (m *BaseMode) handleFieldTap(x, y float64, now int64, hooks popHooks) bool {
	b := m.hitTest(x, y)
	if b == nil {
		m.env.Spawn.NotifyMiss()
		return false
	}

	if b.Type == types.BubbleDecoy {
		b.Pop(now)
		pts := m.env.Config.Scoring.Decoy
		m.env.Ledger.RecordPop(types.BubbleDecoy, pts)
		m.effects.Add(entities.NewPointsText(fmt.Sprintf("%d", pts), b.X, b.Y, penaltyRed))
		m.env.Spawn.NotifyPop(types.BubbleDecoy, false)
		m.playSound(SoundDecoy)
		m.vibrate(80)
		if hooks.onDecoyPopped != nil {
			hooks.onDecoyPopped(b)
		}
		return true
	}

	if !b.Pop(now) {
		// double 的首次点击：只累计，不计分
		m.playSound(SoundTick)
		return true
	}

	pts := m.env.Config.Scoring.PointsFor(b.Type.String())
	m.env.Ledger.RecordPop(b.Type, pts)
	m.effects.Add(entities.NewPointsText(fmt.Sprintf("+%d", pts), b.X, b.Y, b.RGBA))
	m.env.Spawn.NotifyPop(b.Type, true)
	m.playSound(SoundPop)
	m.vibrate(30)
	if hooks.onPopCompleted != nil {
		hooks.onPopCompleted(b)
	}
	return true
}

// showEndDialog 结算对话框："再来一局"和"返回菜单"
func (m *BaseMode) showEndDialog(title, body string, onRestart func()) {
	if m.env.Dialog == nil {
		return
	}
	m.env.Dialog.ShowMessage(title, body, []DialogChoice{
		{Label: "Play Again", OnSelect: onRestart},
		{Label: "Main Menu", OnSelect: func() {
			if m.env.GoToMenu != nil {
				m.env.GoToMenu()
			}
		}},
	})
}

// cleanupBase 停止循环并清空全部状态；幂等
func (m *BaseMode) cleanupBase(hudLabels []string) {
	m.state = StateIdle
	m.bubbles = m.bubbles[:0]
	m.effects.Clear()
	m.env.Ledger.Reset()
	m.env.Spawn.Reset()
	if m.env.Dialog != nil {
		m.env.Dialog.Hide()
	}
	for _, label := range hudLabels {
		m.setHUDVisible(label, false)
	}
}

// drawBase 按插入顺序绘制泡泡，再绘制效果层
func (m *BaseMode) drawBase(screen *ebiten.Image) {
	for _, b := range m.bubbles {
		b.Draw(screen)
	}
	m.effects.Draw(screen)
}

// updatePausedBase 暂停帧：模拟冻结，效果管线继续动画
func (m *BaseMode) updatePausedBase(now int64) {
	dt := m.frameDelta(now)
	m.effects.Update(dt, now)
}

func (m *BaseMode) playSound(id string) {
	if m.env.Audio != nil {
		m.env.Audio.Play(id)
	}
}

func (m *BaseMode) vibrate(ms int) {
	if m.env.Audio != nil {
		m.env.Audio.Vibrate(ms)
	}
}

func (m *BaseMode) setHUD(label, value string) {
	if m.env.HUD != nil {
		m.env.HUD.SetText(label, value)
	}
}

func (m *BaseMode) setHUDVisible(label string, visible bool) {
	if m.env.HUD != nil {
		m.env.HUD.SetVisible(label, visible)
	}
}

// ceilSeconds HUD 显示用的秒数取整
func ceilSeconds(s float64) int {
	return int(math.Ceil(s))
}
