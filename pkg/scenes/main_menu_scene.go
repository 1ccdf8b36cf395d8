package scenes

import (
	"fmt"
	"image/color"
	"math/rand"
	"strings"
	"time"

	"github.com/gonewx/bubblerush/pkg/components"
	"github.com/gonewx/bubblerush/pkg/entities"
	"github.com/gonewx/bubblerush/pkg/game"
	"github.com/gonewx/bubblerush/pkg/types"
	"github.com/gonewx/bubblerush/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// 装饰泡泡数量
const menuBubbleCount = 10

// modeEntry 主菜单里的一个模式入口
type modeEntry struct {
	mode   types.ModeType
	button *Button
}

// MainMenuScene 主菜单
//
// 展示模式入口（带最佳成绩）、声音开关，背景飘装饰泡泡。
type MainMenuScene struct {
	ctx *Context

	entries  []modeEntry
	soundBtn *Button

	clock      game.Clock
	lastMillis int64
	rnd        *rand.Rand
	bubbles    []*components.Bubble
}

// NewMainMenuScene 创建主菜单场景
func NewMainMenuScene(ctx *Context) *MainMenuScene {
	s := &MainMenuScene{
		ctx:   ctx,
		clock: game.NewSystemClock(),
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.lastMillis = s.clock.NowMillis()

	s.buildModeButtons()
	s.buildSoundButton()
	s.spawnDecorativeBubbles()
	return s
}

// buildModeButtons 为每个可玩模式创建入口按钮
func (s *MainMenuScene) buildModeButtons() {
	labels := map[types.ModeType]string{
		types.ModeClassic:    "Classic",
		types.ModeSurvival:   "Survival",
		types.ModeColourRush: "Colour Rush",
	}
	colors := map[types.ModeType]color.RGBA{
		types.ModeClassic:    {R: 0x2a, G: 0x6f, B: 0xb8, A: 0xff},
		types.ModeSurvival:   {R: 0xb8, G: 0x5c, B: 0x2a, A: 0xff},
		types.ModeColourRush: {R: 0x7a, G: 0x2a, B: 0xb8, A: 0xff},
	}

	const (
		btnW = 260.0
		btnH = 56.0
		gap  = 24.0
	)
	x := (WindowWidth - btnW) / 2.0
	y := 210.0

	for _, mt := range types.AllModes() {
		mt := mt
		btn := NewButton(labels[mt], x, y, btnW, btnH, colors[mt], func() {
			s.ctx.Audio.Play("click")
			s.ctx.SceneManager.StartMode(mt)
		})
		btn.TextScale = 1.8
		s.entries = append(s.entries, modeEntry{mode: mt, button: btn})
		y += btnH + gap
	}
}

// buildSoundButton 创建声音开关按钮
func (s *MainMenuScene) buildSoundButton() {
	const (
		btnW = 140.0
		btnH = 34.0
	)
	bg := color.RGBA{R: 0x2a, G: 0x33, B: 0x55, A: 0xff}
	s.soundBtn = NewButton(s.soundLabel(), (WindowWidth-btnW)/2, WindowHeight-btnH-24,
		btnW, btnH, bg, func() {
			s.ctx.Settings.ToggleSound()
			s.soundBtn.Label = s.soundLabel()
			s.ctx.Audio.Play("click")
		})
}

func (s *MainMenuScene) soundLabel() string {
	if s.ctx.Settings.GetSettings().SoundEnabled {
		return "Sound: On"
	}
	return "Sound: Off"
}

// spawnDecorativeBubbles 生成背景装饰泡泡（永不过期、不可点击）
func (s *MainMenuScene) spawnDecorativeBubbles() {
	now := s.clock.NowMillis()
	neon := s.ctx.Palette.Neon
	for i := 0; i < menuBubbleCount; i++ {
		b := entities.NewBubble(&s.ctx.Config.Bubble, entities.BubbleParams{
			Type:      types.BubbleNormal,
			ColorHex:  neon[s.rnd.Intn(len(neon))],
			CanvasW:   WindowWidth,
			CanvasH:   WindowHeight,
			SpeedMult: 0.6,
			NowMillis: now,
		}, s.rnd)
		b.MaxLifetimeMs = 1 << 40
		b.Opacity = 0.35
		s.bubbles = append(s.bubbles, b)
	}
}

// Update 推进装饰泡泡并处理按钮输入
func (s *MainMenuScene) Update(deltaTime float64) {
	now := s.clock.NowMillis()
	dt := float64(now-s.lastMillis) / 1000.0
	s.lastMillis = now
	if dt < 0 {
		dt = 0
	} else if dt > 0.1 {
		dt = 0.1
	}

	for _, b := range s.bubbles {
		b.Update(dt, now, WindowWidth, WindowHeight, s.rnd)
	}

	p := utils.GetPointerState()
	px, py := float64(p.X), float64(p.Y)

	for _, e := range s.entries {
		e.button.SetHovered(e.button.Contains(px, py))
	}
	s.soundBtn.SetHovered(s.soundBtn.Contains(px, py))

	if !p.JustPressed {
		return
	}
	for _, e := range s.entries {
		if e.button.HandlePress(px, py) {
			return
		}
	}
	s.soundBtn.HandlePress(px, py)
}

// Draw 绘制标题、模式入口和最佳成绩
func (s *MainMenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x0b, G: 0x10, B: 0x22, A: 0xff})

	for _, b := range s.bubbles {
		b.Draw(screen)
	}

	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	gray := color.RGBA{R: 0xb0, G: 0xb0, B: 0xc8, A: 0xff}
	gold := color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}

	utils.DrawCenteredText(screen, "Bubble Rush", WindowWidth/2, 110, 4.2, white)
	utils.DrawCenteredText(screen, "Pop fast. Score big.", WindowWidth/2, 155, 1.4, gray)

	for _, e := range s.entries {
		e.button.Draw(screen)

		rec := s.ctx.SaveManager.Record(e.mode)
		if rec.GamesPlayed == 0 {
			continue
		}
		best := fmt.Sprintf("Best: %d", rec.BestScore)
		if e.mode == types.ModeColourRush && rec.BestStars > 0 {
			best += "  " + strings.Repeat("★", rec.BestStars)
		}
		bx := e.button.X + e.button.W + 16
		by := e.button.Y + e.button.H/2
		utils.DrawCenteredText(screen, best, bx+60, by, 1.2, gold)
	}

	s.soundBtn.Draw(screen)
}
