package modes

import (
	"fmt"
	"log"

	"github.com/gonewx/bubblerush/pkg/components"
	"github.com/gonewx/bubblerush/pkg/entities"
	"github.com/gonewx/bubblerush/pkg/systems"
	"github.com/gonewx/bubblerush/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// SurvivalMode 生存模式：剩余时间是唯一资源
//
// 从 60 秒开始，漏接 -2s、点中陷阱 -5s；破裂泡泡可以赚回时间
// （每第 2 次连续 normal +1s，double 完成 +1s），上限 90 秒。
// 难度由脚本化引擎按周期推进，失误率偏高时放缓节奏。
type SurvivalMode struct {
	BaseMode

	timeLeftS  float64
	difficulty *systems.DifficultyEngine

	totalSpawned      int
	missed            int
	consecutiveNormal int
}

// NewSurvivalMode 创建生存模式
func NewSurvivalMode(env *Env) *SurvivalMode {
	return &SurvivalMode{
		BaseMode:   newBaseMode(env, types.ModeSurvival),
		difficulty: systems.NewDifficultyEngine(&env.Config.Survival),
	}
}

// Prepare 重置本局状态并显示 HUD
func (m *SurvivalMode) Prepare() {
	m.resetBase()
	cfg := &m.env.Config.Survival
	m.timeLeftS = cfg.InitialSeconds
	m.difficulty.Reset()
	m.totalSpawned = 0
	m.missed = 0
	m.consecutiveNormal = 0

	m.setHUD(HUDMode, "Survival")
	m.setHUDVisible(HUDMode, true)
	m.setHUDVisible(HUDScore, true)
	m.setHUDVisible(HUDSurvival, true)
	m.refreshHUD()
	log.Printf("[Survival] Prepared (%gs, cap %gs)", cfg.InitialSeconds, cfg.MaxSeconds)
}

// Start 播放倒计时后进入模拟
func (m *SurvivalMode) Start() {
	m.beginCountdown()
}

// TogglePause 切换暂停
func (m *SurvivalMode) TogglePause() {
	m.togglePauseBase()
}

// Restart 重新开始一局
func (m *SurvivalMode) Restart() {
	m.Cleanup()
	m.Prepare()
	m.Start()
}

// Update 推进一帧
func (m *SurvivalMode) Update() {
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

		m.difficulty.Advance(m.elapsedS, m.MissRate())
		m.trySpawn(now)
		m.advanceBubbles(dt, now, m.onBubbleMissed)
		m.collide.Resolve(m.bubbles)
		m.effects.Update(dt, now)
		m.refreshHUD()
	case StatePaused:
		m.updatePausedBase(now)
	}
}

// trySpawn 按难度引擎给出的间隔和速度倍率生成
func (m *SurvivalMode) trySpawn(now int64) {
	if float64(now-m.lastSpawnMillis) < m.difficulty.SpawnIntervalMs() {
		return
	}
	m.spawnBubble(m.difficulty.SpeedMult())
	m.totalSpawned++
	m.lastSpawnMillis = now
}

// onBubbleMissed 漏接处理
// 只有 normal/double 算漏接（放走陷阱是正确操作，不惩罚）
func (m *SurvivalMode) onBubbleMissed(b *components.Bubble) {
	if b.Type == types.BubbleDecoy {
		return
	}
	m.missed++
	m.consecutiveNormal = 0
	m.env.Spawn.NotifyMiss()
	m.addTime(-m.env.Config.Survival.MissPenaltySeconds, b.X, b.Y)
}

// OnPointerDown 处理点击；非 playing 状态忽略
func (m *SurvivalMode) OnPointerDown(x, y float64) {
	if m.state != StatePlaying {
		return
	}
	m.handleFieldTap(x, y, m.env.Clock.NowMillis(), popHooks{
		onDecoyPopped: func(b *components.Bubble) {
			m.consecutiveNormal = 0
			m.addTime(-m.env.Config.Survival.DecoyPenaltySeconds, b.X, b.Y)
		},
		onPopCompleted: func(b *components.Bubble) {
			switch b.Type {
			case types.BubbleNormal:
				m.consecutiveNormal++
				if m.consecutiveNormal%2 == 0 {
					m.addTime(1, b.X, b.Y)
				}
			case types.BubbleDouble:
				m.consecutiveNormal = 0
				m.addTime(1, b.X, b.Y)
			}
		},
	})
}

// addTime 调整剩余时间并钳制到 [0, maxSeconds]
// 正向奖励显示绿色飘字（扣时的红色提示由分数飘字承担）
func (m *SurvivalMode) addTime(deltaS, x, y float64) {
	m.timeLeftS += deltaS
	if m.timeLeftS > m.env.Config.Survival.MaxSeconds {
		m.timeLeftS = m.env.Config.Survival.MaxSeconds
	}
	if m.timeLeftS < 0 {
		m.timeLeftS = 0
	}
	if deltaS > 0 {
		m.effects.Add(newTimeBonusText(deltaS, x, y))
	} else {
		m.effects.Add(newTimePenaltyText(deltaS, x, y))
	}
}

// newTimeBonusText 时间奖励飘字（"+1s"）
func newTimeBonusText(deltaS, x, y float64) *entities.FloatingTextEffect {
	return entities.NewPointsText(fmt.Sprintf("+%gs", deltaS), x, y, bonusGreen)
}

// newTimePenaltyText 扣时飘字（"-2s"）
func newTimePenaltyText(deltaS, x, y float64) *entities.FloatingTextEffect {
	return entities.NewPointsText(fmt.Sprintf("%gs", deltaS), x, y, penaltyRed)
}

// End 结束本局并弹出结算对话框；幂等
func (m *SurvivalMode) End() {
	if m.state == StateEnded || m.state == StateIdle {
		return
	}
	m.state = StateEnded
	score := m.env.Ledger.Total()
	survived := int(m.elapsedS)
	log.Printf("[Survival] Game over: score=%d survived=%ds missed=%d/%d",
		score, survived, m.missed, m.totalSpawned)
	m.showEndDialog("Time's Up!",
		fmt.Sprintf("Score: %d\nSurvived: %ds", score, survived), m.Restart)
}

// Cleanup 清空状态并隐藏 HUD；幂等
func (m *SurvivalMode) Cleanup() {
	m.cleanupBase([]string{HUDMode, HUDScore, HUDSurvival})
}

// Draw 绘制泡泡场和效果
func (m *SurvivalMode) Draw(screen *ebiten.Image) {
	m.drawBase(screen)
}

func (m *SurvivalMode) refreshHUD() {
	m.setHUD(HUDScore, fmt.Sprintf("%d", m.env.Ledger.Total()))
	m.setHUD(HUDSurvival, fmt.Sprintf("%ds · Lv %d", ceilSeconds(m.timeLeftS), m.difficulty.Level()))
}

// MissRate 返回当前漏接率（尚未生成任何泡泡时为 0）
func (m *SurvivalMode) MissRate() float64 {
	if m.totalSpawned == 0 {
		return 0
	}
	return float64(m.missed) / float64(m.totalSpawned)
}

// TimeLeftSeconds 返回剩余时间（秒）
func (m *SurvivalMode) TimeLeftSeconds() float64 {
	return m.timeLeftS
}

// Difficulty 返回难度引擎（测试观测点）
func (m *SurvivalMode) Difficulty() *systems.DifficultyEngine {
	return m.difficulty
}
