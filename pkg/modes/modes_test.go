package modes

import (
	"math/rand"
	"testing"

	"github.com/gonewx/bubblerush/pkg/components"
	"github.com/gonewx/bubblerush/pkg/config"
	"github.com/gonewx/bubblerush/pkg/embedded"
	"github.com/gonewx/bubblerush/pkg/game"
	"github.com/gonewx/bubblerush/pkg/systems"
	"github.com/gonewx/bubblerush/pkg/types"
	"github.com/gonewx/bubblerush/pkg/utils"
)

// fakeHUD 记录 setter 调用的 HUD 桩
type fakeHUD struct {
	texts   map[string]string
	visible map[string]bool
}

func newFakeHUD() *fakeHUD {
	return &fakeHUD{texts: make(map[string]string), visible: make(map[string]bool)}
}

func (h *fakeHUD) SetText(label, value string)     { h.texts[label] = value }
func (h *fakeHUD) SetVisible(label string, v bool) { h.visible[label] = v }

// fakeDialog 记录最近一次展示的对话框桩
type fakeDialog struct {
	shown   bool
	title   string
	body    string
	choices []DialogChoice
	hides   int
}

func (d *fakeDialog) ShowMessage(title, body string, choices []DialogChoice) {
	d.shown = true
	d.title = title
	d.body = body
	d.choices = choices
}

func (d *fakeDialog) Hide() {
	d.shown = false
	d.hides++
}

// fakeAudio 记录播放请求的音频桩
type fakeAudio struct {
	played     []string
	vibrations int
}

func (a *fakeAudio) Play(soundID string) { a.played = append(a.played, soundID) }
func (a *fakeAudio) Vibrate(ms int)      { a.vibrations++ }

type testFixture struct {
	env   *Env
	clock *game.ManualClock
	hud   *fakeHUD
	dlg   *fakeDialog
	audio *fakeAudio
}

// newTestEnv 构建注入手动时钟和桩服务的测试环境
// clampScore 对应各模式的账本截断策略
func newTestEnv(t *testing.T, clampScore bool, seed int64) *testFixture {
	t.Helper()

	cfg, err := config.LoadGameConfig(embedded.ModesYAML())
	if err != nil {
		t.Fatal(err)
	}
	pal, err := config.LoadPaletteConfig(embedded.PalettesYAML())
	if err != nil {
		t.Fatal(err)
	}

	rnd := rand.New(rand.NewSource(seed))
	clk := game.NewManualClock(0)
	hud := newFakeHUD()
	dlg := &fakeDialog{}
	aud := &fakeAudio{}

	return &testFixture{
		env: &Env{
			CanvasW: 800, CanvasH: 600,
			Config:  cfg,
			Palette: pal,
			Ledger:  game.NewScoreLedger(clampScore),
			Spawn:   systems.NewSpawnPolicy(rnd, cfg.Weights),
			Clock:   clk,
			Rand:    rnd,
			HUD:     hud,
			Dialog:  dlg,
			Audio:   aud,
		},
		clock: clk,
		hud:   hud,
		dlg:   dlg,
		audio: aud,
	}
}

// runCountdown 执行 prepare/start 并推进完整的倒计时序列
func runCountdown(t *testing.T, m Mode, clk *game.ManualClock) {
	t.Helper()
	m.Prepare()
	m.Start()
	if m.State() != StateCountdown {
		t.Fatalf("state after Start = %s, want countdown", m.State())
	}
	m.Update()
	for i := 0; i < 4; i++ {
		clk.Advance(500)
		m.Update()
	}
	if m.State() != StatePlaying {
		t.Fatalf("state after countdown = %s, want playing", m.State())
	}
}

// tick 以 50ms 步长推进模拟 totalMs 毫秒
func tick(m Mode, clk *game.ManualClock, totalMs int64) {
	for step := int64(0); step < totalMs; step += 50 {
		clk.Advance(50)
		m.Update()
	}
}

// injectBubble 向种群注入一个已知位置的泡泡（绕过随机生成）
func injectBubble(base *BaseMode, bt types.BubbleType, hex string, x, y float64) *components.Bubble {
	b := &components.Bubble{
		X: x, Y: y,
		BaseRadius: 20, Radius: 20,
		ColorHex:      hex,
		RGBA:          utils.MustParseHexColor(hex),
		Type:          bt,
		TapsNeeded:    bt.TapsNeeded(),
		CreatedMillis: base.env.Clock.NowMillis(),
		MaxLifetimeMs: 7000,
		PopDurationMs: 300,
		Opacity:       1,
	}
	base.bubbles = append(base.bubbles, b)
	return b
}
