package scenes

import (
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/bubblerush/pkg/game"
	"github.com/gonewx/bubblerush/pkg/modes"
	"github.com/gonewx/bubblerush/pkg/systems"
	"github.com/gonewx/bubblerush/pkg/types"
	"github.com/gonewx/bubblerush/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// GameScene 单局游戏场景
//
// 组装模式运行环境（计分、生成策略、时钟、HUD、对话框、音频），
// 把指针输入按 对话框 > 场景按钮 > 游戏区 的优先级分发，
// 并在模式结束时把成绩写入存档。
type GameScene struct {
	ctx      *Context
	modeType types.ModeType
	mode     modes.Mode
	ledger   *game.ScoreLedger

	hud    *HUDOverlay
	dialog *MessageDialog

	buttons  []*Button
	pauseBtn *Button

	resultRecorded bool
	newBest        bool
}

// NewGameScene 创建并立即启动指定模式的游戏场景
func NewGameScene(ctx *Context, modeType types.ModeType) *GameScene {
	s := &GameScene{
		ctx:      ctx,
		modeType: modeType,
		hud:      NewHUDOverlay(),
		dialog:   NewMessageDialog(),
	}

	s.ledger = game.NewScoreLedger(s.clampScoreAtZero())
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	env := &modes.Env{
		CanvasW:  WindowWidth,
		CanvasH:  WindowHeight,
		Config:   ctx.Config,
		Palette:  ctx.Palette,
		Ledger:   s.ledger,
		Spawn:    systems.NewSpawnPolicy(rnd, ctx.Config.Weights),
		Clock:    game.NewSystemClock(),
		Rand:     rnd,
		HUD:      s.hud,
		Dialog:   s.dialog,
		Audio:    ctx.Audio,
		GoToMenu: s.goToMenu,
	}
	s.mode = modes.NewMode(modeType, env)

	s.buildButtons()

	s.mode.Prepare()
	s.mode.Start()
	log.Printf("[GameScene] Started mode %s", modeType)
	return s
}

// clampScoreAtZero 返回当前模式的总分截断策略
func (s *GameScene) clampScoreAtZero() bool {
	switch s.modeType {
	case types.ModeSurvival:
		return s.ctx.Config.Survival.ClampScoreAtZero
	case types.ModeColourRush:
		return s.ctx.Config.ColourRush.ClampScoreAtZero
	default:
		return s.ctx.Config.Classic.ClampScoreAtZero
	}
}

// buildButtons 创建右下角的局内控制按钮
func (s *GameScene) buildButtons() {
	const (
		btnH = 30.0
		btnY = WindowHeight - btnH - 10
		gap  = 10.0
	)
	bg := color.RGBA{R: 0x2a, G: 0x33, B: 0x55, A: 0xff}

	s.pauseBtn = NewButton("Pause", 0, btnY, 80, btnH, bg, func() {
		s.mode.TogglePause()
	})
	restartBtn := NewButton("Restart", 0, btnY, 80, btnH, bg, func() {
		s.mode.Restart()
	})
	menuBtn := NewButton("Menu", 0, btnY, 70, btnH, bg, func() {
		s.goToMenu()
	})

	s.buttons = []*Button{s.pauseBtn, restartBtn, menuBtn}

	// 从右往左排
	x := WindowWidth - 10.0
	for i := len(s.buttons) - 1; i >= 0; i-- {
		b := s.buttons[i]
		x -= b.W
		b.X = x
		x -= gap
	}
}

// goToMenu 清理当前模式并切回主菜单
func (s *GameScene) goToMenu() {
	s.mode.Cleanup()
	s.ctx.SceneManager.SwitchTo(NewMainMenuScene(s.ctx))
}

// Update 处理输入并推进模式一帧
func (s *GameScene) Update(deltaTime float64) {
	p := utils.GetPointerState()
	px, py := float64(p.X), float64(p.Y)

	s.pauseBtn.Label = "Pause"
	if s.mode.State() == modes.StatePaused {
		s.pauseBtn.Label = "Resume"
	}

	s.dialog.UpdateHover(px, py)
	for _, b := range s.buttons {
		b.SetHovered(b.Contains(px, py))
	}

	if p.JustPressed {
		switch {
		case s.dialog.HandlePress(px, py):
			// 对话框可见时独占输入
		case s.handleButtonPress(px, py):
		default:
			s.mode.OnPointerDown(px, py)
		}
	}

	s.mode.Update()
	s.recordResult()
}

// handleButtonPress 分发点击到场景按钮
func (s *GameScene) handleButtonPress(px, py float64) bool {
	for _, b := range s.buttons {
		if b.HandlePress(px, py) {
			s.ctx.Audio.Play("click")
			return true
		}
	}
	return false
}

// recordResult 模式结束时把本局成绩写入存档（每局只记一次）
func (s *GameScene) recordResult() {
	if s.mode.State() != modes.StateEnded {
		// 重开后允许记录下一局
		s.resultRecorded = false
		s.newBest = false
		return
	}
	if s.resultRecorded {
		return
	}
	s.resultRecorded = true

	score := s.ledger.Total()
	stars := 0
	if cr, ok := s.mode.(*modes.ColourRushMode); ok {
		stars = s.ctx.Config.ColourRush.StarsFor(score, cr.Accuracy())
	}
	if s.ctx.SaveManager.RecordResult(s.modeType, score, stars) {
		s.newBest = true
		log.Printf("[GameScene] New best for %s: %d", s.modeType, score)
	}
}

// Draw 绘制游戏区、HUD、控制按钮和对话框
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x0b, G: 0x10, B: 0x22, A: 0xff})

	s.mode.Draw(screen)
	s.hud.Draw(screen)
	for _, b := range s.buttons {
		b.Draw(screen)
	}

	if s.mode.State() == modes.StatePaused {
		dim := color.RGBA{A: 0x80}
		vector.DrawFilledRect(screen, 0, 0, WindowWidth, WindowHeight, dim, true)
		white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		utils.DrawCenteredText(screen, "Paused", WindowWidth/2, WindowHeight/2, 3, white)
	}

	s.dialog.Draw(screen)

	if s.dialog.Visible() && s.newBest {
		gold := color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
		utils.DrawCenteredText(screen, "New Best!", WindowWidth/2, WindowHeight/2-180, 2, gold)
	}
}
