package modes

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"strings"

	"github.com/gonewx/bubblerush/pkg/components"
	"github.com/gonewx/bubblerush/pkg/config"
	"github.com/gonewx/bubblerush/pkg/entities"
	"github.com/gonewx/bubblerush/pkg/types"
	"github.com/gonewx/bubblerush/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// ColourRushMode 色彩冲刺：只点当前目标颜色的泡泡
//
// 目标颜色按间隔轮换（不放回抽取，用完一轮重置池）。
// 正确点击得基础分乘连击倍率；错误点击扣分并打断连击；
// 目标色泡泡漏接也打断连击但不扣分。
// 一个回合内生成的目标色泡泡全部被点中则获得完美回合奖励。
// 总分不在 0 处截断，可以打出负分。结算按分数和准确率给星。
type ColourRushMode struct {
	BaseMode

	timeLeftS float64
	level     int
	params    config.ColourRushLevel

	target     config.NamedColor
	targetRGBA color.RGBA
	usedColors map[string]bool

	colorTimerMs       float64
	targetSpawnedRound int
	targetPoppedRound  int

	comboCount int
	comboMult  float64

	correctPops int
	wrongPops   int
	totalPops   int
}

// NewColourRushMode 创建色彩冲刺模式
func NewColourRushMode(env *Env) *ColourRushMode {
	return &ColourRushMode{
		BaseMode:   newBaseMode(env, types.ModeColourRush),
		usedColors: make(map[string]bool),
	}
}

func (m *ColourRushMode) cfg() *config.ColourRushConfig {
	return &m.env.Config.ColourRush
}

// Prepare 重置本局状态、抽取首个目标颜色并显示 HUD
func (m *ColourRushMode) Prepare() {
	m.resetBase()
	cfg := m.cfg()
	m.timeLeftS = cfg.DurationSeconds
	m.level = 1
	m.params = cfg.LevelParams(1)
	m.usedColors = make(map[string]bool)
	m.colorTimerMs = 0
	m.comboCount = 0
	m.comboMult = 1
	m.correctPops = 0
	m.wrongPops = 0
	m.totalPops = 0
	m.selectNextTarget()

	m.setHUD(HUDMode, "Colour Rush")
	m.setHUDVisible(HUDMode, true)
	m.setHUDVisible(HUDScore, true)
	m.setHUDVisible(HUDTime, true)
	m.setHUDVisible(HUDTarget, true)
	m.setHUDVisible(HUDCombo, true)
	m.refreshHUD()
	log.Printf("[ColourRush] Prepared (%gs, target %s)", cfg.DurationSeconds, m.target.Name)
}

// Start 播放倒计时后进入模拟
func (m *ColourRushMode) Start() {
	m.beginCountdown()
}

// TogglePause 切换暂停
func (m *ColourRushMode) TogglePause() {
	m.togglePauseBase()
}

// Restart 重新开始一局
func (m *ColourRushMode) Restart() {
	m.Cleanup()
	m.Prepare()
	m.Start()
}

// Update 推进一帧
func (m *ColourRushMode) Update() {
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

		m.advanceDifficulty()

		// 目标颜色轮换：切换前先做完美回合判定
		m.colorTimerMs += dt * 1000
		if m.colorTimerMs >= m.params.ColorChangeIntervalMs {
			m.colorTimerMs = 0
			m.finishRound()
		}

		m.trySpawn(now)
		m.advanceBubbles(dt, now, m.onBubbleMissed)
		m.collide.Resolve(m.bubbles)
		m.effects.Update(dt, now)
		m.refreshHUD()
	case StatePaused:
		m.updatePausedBase(now)
	}
}

// advanceDifficulty 难度级别由累计时长决定：每 15 秒升一级，封顶
func (m *ColourRushMode) advanceDifficulty() {
	cfg := m.cfg()
	lvl := 1 + int(m.elapsedS/cfg.DifficultyStepSeconds)
	if lvl > cfg.MaxLevel() {
		lvl = cfg.MaxLevel()
	}
	if lvl != m.level {
		m.level = lvl
		m.params = cfg.LevelParams(lvl)
		log.Printf("[ColourRush] Difficulty level %d: colorChange=%gms spawn=%gms speed=%.1fx",
			lvl, m.params.ColorChangeIntervalMs, m.params.SpawnIntervalMs, m.params.SpeedMult)
	}
}

// finishRound 回合收尾：完美回合判定 + 抽取下一个目标颜色
//
// 本回合生成过目标色泡泡且全部被点中才算完美；
// 一个目标色都没生成的回合不发奖励。
func (m *ColourRushMode) finishRound() {
	if m.targetSpawnedRound > 0 && m.targetPoppedRound == m.targetSpawnedRound {
		bonus := m.cfg().PerfectRoundBonus
		m.env.Ledger.AddBonus(bonus)
		m.effects.Add(entities.NewPerfectRoundText(
			fmt.Sprintf("Perfect! +%d", bonus), m.env.CanvasW/2, m.env.CanvasH/3))
		m.playSound(SoundPerfect)
		log.Printf("[ColourRush] Perfect round: %d/%d targets, +%d",
			m.targetPoppedRound, m.targetSpawnedRound, bonus)
	}
	m.selectNextTarget()
}

// selectNextTarget 不放回地抽取下一个目标颜色
// 调色板用尽后重置已用集合，开始新的一轮
func (m *ColourRushMode) selectNextTarget() {
	palette := m.env.Palette.Easy()

	var pool []config.NamedColor
	for _, c := range palette {
		if !m.usedColors[c.Name] {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		m.usedColors = make(map[string]bool)
		pool = palette
	}

	m.target = pool[m.env.Rand.Intn(len(pool))]
	m.usedColors[m.target.Name] = true
	m.targetRGBA = utils.MustParseHexColor(m.target.Hex)
	m.targetSpawnedRound = 0
	m.targetPoppedRound = 0
	m.setHUD(HUDTarget, m.target.Name)
}

// trySpawn 按难度参数生成；场上数量达到上限时停止
// 以 targetProbability 的概率生成目标色，否则均匀取一个干扰色
func (m *ColourRushMode) trySpawn(now int64) {
	cfg := m.cfg()
	if m.activeCount() >= cfg.MaxActiveBubbles {
		return
	}
	if float64(now-m.lastSpawnMillis) < m.params.SpawnIntervalMs {
		return
	}
	m.lastSpawnMillis = now

	hex := m.target.Hex
	if m.env.Rand.Float64() >= cfg.TargetProbability {
		hex = m.pickDistractor()
	}

	bt := m.env.Spawn.NextType(types.ModeColourRush)
	b := entities.NewBubble(&m.env.Config.Bubble, entities.BubbleParams{
		Type:        bt,
		ColorHex:    hex,
		CanvasW:     m.env.CanvasW,
		CanvasH:     m.env.CanvasH,
		SpeedMult:   m.params.SpeedMult,
		RadiusScale: m.params.RadiusScale,
		NowMillis:   now,
	}, m.env.Rand)
	m.bubbles = append(m.bubbles, b)

	if m.isTargetColor(b) {
		m.targetSpawnedRound++
	}
}

// pickDistractor 从调色板中均匀取一个非目标颜色
func (m *ColourRushMode) pickDistractor() string {
	palette := m.env.Palette.Easy()
	var pool []string
	for _, c := range palette {
		if c.Name != m.target.Name {
			pool = append(pool, c.Hex)
		}
	}
	if len(pool) == 0 {
		return m.target.Hex
	}
	return pool[m.env.Rand.Intn(len(pool))]
}

// isTargetColor 按 RGB 欧氏距离容差判断是否目标颜色
func (m *ColourRushMode) isTargetColor(b *components.Bubble) bool {
	return utils.ColorDistance(b.RGBA, m.targetRGBA) <= m.cfg().ColorMatchTolerance
}

// onBubbleMissed 目标色泡泡漏接打断连击（不扣分）
func (m *ColourRushMode) onBubbleMissed(b *components.Bubble) {
	if !m.isTargetColor(b) {
		return
	}
	m.breakCombo()
	m.env.Spawn.NotifyMiss()
}

// OnPointerDown 处理点击；非 playing 状态忽略
//
// 所有泡泡一次点破，得分只看颜色是否匹配目标：
//   - 匹配：基础分乘当前连击倍率（倍率在本次得分后才推进）
//   - 不匹配：扣分、打断连击、破碎效果
func (m *ColourRushMode) OnPointerDown(x, y float64) {
	if m.state != StatePlaying {
		return
	}
	now := m.env.Clock.NowMillis()
	cfg := m.cfg()

	b := m.hitTest(x, y)
	if b == nil {
		m.breakCombo()
		m.env.Spawn.NotifyMiss()
		return
	}
	if !b.Pop(now) {
		return
	}
	m.totalPops++

	if m.isTargetColor(b) {
		pts := int(math.Round(float64(cfg.BasePoints) * m.comboMult))
		m.correctPops++
		m.targetPoppedRound++
		m.env.Ledger.RecordPop(types.BubbleNormal, pts)
		m.env.Spawn.NotifyPop(types.BubbleNormal, true)
		m.effects.Add(entities.NewPointsText(fmt.Sprintf("+%d", pts), b.X, b.Y, b.RGBA))
		m.playSound(SoundPop)
		m.vibrate(30)

		m.comboCount++
		m.comboMult = cfg.MultiplierFor(m.comboCount)
		return
	}

	m.wrongPops++
	m.env.Ledger.RecordPop(types.BubbleNormal, -cfg.WrongPopPenalty)
	m.env.Spawn.NotifyPop(types.BubbleNormal, false)
	m.effects.Add(entities.NewPointsText(fmt.Sprintf("-%d", cfg.WrongPopPenalty), b.X, b.Y, penaltyRed))
	m.effects.Add(entities.NewComboShatter(b.X, b.Y, b.RGBA, m.env.Rand))
	m.playSound(SoundShatter)
	m.vibrate(80)
	m.breakCombo()
}

// breakCombo 清零连击并恢复基础倍率
func (m *ColourRushMode) breakCombo() {
	m.comboCount = 0
	m.comboMult = 1
}

// End 结束本局，计算准确率和星级并弹出结算对话框；幂等
func (m *ColourRushMode) End() {
	if m.state == StateEnded || m.state == StateIdle {
		return
	}
	m.state = StateEnded

	score := m.env.Ledger.Total()
	accuracy := m.Accuracy()
	stars := m.cfg().StarsFor(score, accuracy)
	log.Printf("[ColourRush] Game over: score=%d accuracy=%.2f stars=%d (correct=%d wrong=%d)",
		score, accuracy, stars, m.correctPops, m.wrongPops)

	body := fmt.Sprintf("Score: %d\nAccuracy: %.0f%%\n%s",
		score, accuracy*100, starsText(stars))
	m.showEndDialog("Time's Up!", body, m.Restart)
}

// starsText 渲染星级（实心 + 空心补齐到 3）
func starsText(stars int) string {
	if stars < 0 {
		stars = 0
	}
	if stars > 3 {
		stars = 3
	}
	return strings.Repeat("★", stars) + strings.Repeat("☆", 3-stars)
}

// Cleanup 清空状态并隐藏 HUD；幂等
func (m *ColourRushMode) Cleanup() {
	m.cleanupBase([]string{HUDMode, HUDScore, HUDTime, HUDTarget, HUDCombo})
}

// Draw 绘制泡泡场和效果
func (m *ColourRushMode) Draw(screen *ebiten.Image) {
	m.drawBase(screen)
}

func (m *ColourRushMode) refreshHUD() {
	m.setHUD(HUDScore, fmt.Sprintf("%d", m.env.Ledger.Total()))
	m.setHUD(HUDTime, fmt.Sprintf("%ds", ceilSeconds(m.timeLeftS)))
	if m.comboCount >= 2 {
		m.setHUD(HUDCombo, fmt.Sprintf("Combo %d ×%.1f", m.comboCount, m.comboMult))
	} else {
		m.setHUD(HUDCombo, "")
	}
}

// Accuracy 返回正确点击占比（尚无点击时为 0）
func (m *ColourRushMode) Accuracy() float64 {
	if m.totalPops == 0 {
		return 0
	}
	return float64(m.correctPops) / float64(m.totalPops)
}

// Target 返回当前目标颜色
func (m *ColourRushMode) Target() config.NamedColor {
	return m.target
}

// ComboCount 返回当前连击数
func (m *ColourRushMode) ComboCount() int {
	return m.comboCount
}

// ComboMultiplier 返回当前连击倍率
func (m *ColourRushMode) ComboMultiplier() float64 {
	return m.comboMult
}

// TimeLeftSeconds 返回剩余时间（秒）
func (m *ColourRushMode) TimeLeftSeconds() float64 {
	return m.timeLeftS
}

// Level 返回当前难度级别
func (m *ColourRushMode) Level() int {
	return m.level
}
