package modes

import (
	"fmt"
	"log"

	"github.com/gonewx/bubblerush/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// ClassicMode 经典模式：固定 60 秒倒计时，尽可能多地得分
//
// 生成按窗口规则：场上数量低于下限立即补充，低于上限按间隔生成。
// 没有难度递增，总分在 0 处截断。
type ClassicMode struct {
	BaseMode

	timeLeftS       float64
	spawnIntervalMs float64
}

// NewClassicMode 创建经典模式
func NewClassicMode(env *Env) *ClassicMode {
	return &ClassicMode{BaseMode: newBaseMode(env, types.ModeClassic)}
}

// Prepare 重置本局状态并显示 HUD
func (m *ClassicMode) Prepare() {
	m.resetBase()
	cfg := &m.env.Config.Classic
	m.timeLeftS = cfg.DurationSeconds
	m.spawnIntervalMs = cfg.Spawn.InitialIntervalMs

	m.setHUD(HUDMode, "Classic")
	m.setHUDVisible(HUDMode, true)
	m.setHUDVisible(HUDScore, true)
	m.setHUDVisible(HUDTime, true)
	m.refreshHUD()
	log.Printf("[Classic] Prepared (%gs)", cfg.DurationSeconds)
}

// Start 播放倒计时后进入模拟
func (m *ClassicMode) Start() {
	m.beginCountdown()
}

// TogglePause 切换暂停
func (m *ClassicMode) TogglePause() {
	m.togglePauseBase()
}

// Restart 重新开始一局
func (m *ClassicMode) Restart() {
	m.Cleanup()
	m.Prepare()
	m.Start()
}

// Update 推进一帧
func (m *ClassicMode) Update() {
	now := m.env.Clock.NowMillis()
	switch m.state {
	case StateCountdown:
		m.stepCountdown(now)
	case StatePlaying:
		dt := m.frameDelta(now)
		m.elapsedS += dt
		m.timeLeftS -= dt
		if m.timeLeftS <= 0 {
			m.timeLeftS = 0
			m.refreshHUD()
			m.End()
			return
		}

		m.trySpawn(now)
		m.advanceBubbles(dt, now, nil)
		m.collide.Resolve(m.bubbles)
		m.effects.Update(dt, now)
		m.refreshHUD()
	case StatePaused:
		m.updatePausedBase(now)
	}
}

// trySpawn 窗口式生成：低于下限立即补充，未到上限按间隔生成
func (m *ClassicMode) trySpawn(now int64) {
	sc := &m.env.Config.Classic.Spawn
	active := m.activeCount()
	if active >= sc.MaxBubbles {
		return
	}
	if active < sc.MinBubbles {
		m.spawnBubble(1)
		m.lastSpawnMillis = now
		return
	}
	if float64(now-m.lastSpawnMillis) >= m.spawnIntervalMs {
		m.spawnBubble(1)
		m.lastSpawnMillis = now
	}
}

// OnPointerDown 处理点击；非 playing 状态忽略
func (m *ClassicMode) OnPointerDown(x, y float64) {
	if m.state != StatePlaying {
		return
	}
	m.handleFieldTap(x, y, m.env.Clock.NowMillis(), popHooks{})
}

// End 结束本局并弹出结算对话框；幂等
func (m *ClassicMode) End() {
	if m.state == StateEnded || m.state == StateIdle {
		return
	}
	m.state = StateEnded
	score := m.env.Ledger.Total()
	log.Printf("[Classic] Game over: score=%d pops=%d", score, m.env.Ledger.TotalPops())
	m.showEndDialog("Time's Up!", fmt.Sprintf("%d points", score), m.Restart)
}

// Cleanup 清空状态并隐藏 HUD；幂等
func (m *ClassicMode) Cleanup() {
	m.cleanupBase([]string{HUDMode, HUDScore, HUDTime})
}

// Draw 绘制泡泡场和效果
func (m *ClassicMode) Draw(screen *ebiten.Image) {
	m.drawBase(screen)
}

func (m *ClassicMode) refreshHUD() {
	m.setHUD(HUDScore, fmt.Sprintf("%d", m.env.Ledger.Total()))
	m.setHUD(HUDTime, fmt.Sprintf("%ds", ceilSeconds(m.timeLeftS)))
}

// TimeLeftSeconds 返回剩余时间（秒）
func (m *ClassicMode) TimeLeftSeconds() float64 {
	return m.timeLeftS
}
