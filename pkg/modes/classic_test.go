package modes

import (
	"strings"
	"testing"

	"github.com/gonewx/bubblerush/pkg/types"
)

func TestClassicLifecycle(t *testing.T) {
	fx := newTestEnv(t, true, 1)
	m := NewClassicMode(fx.env)

	if m.State() != StateIdle {
		t.Fatalf("initial state = %s, want idle", m.State())
	}

	// 未 prepare 时 Start 被忽略
	m.Start()
	if m.State() != StateIdle {
		t.Fatalf("Start without Prepare moved state to %s", m.State())
	}

	m.Prepare()
	if m.State() != StatePrepared {
		t.Fatalf("state after Prepare = %s, want prepared", m.State())
	}
	if !fx.hud.visible[HUDScore] || !fx.hud.visible[HUDTime] {
		t.Error("HUD labels not shown on prepare")
	}

	m.Start()
	if m.State() != StateCountdown {
		t.Fatalf("state after Start = %s, want countdown", m.State())
	}

	// 倒计时期间不可暂停
	m.TogglePause()
	if m.State() != StateCountdown {
		t.Errorf("TogglePause during countdown moved state to %s", m.State())
	}

	m.Update()
	for i := 0; i < 4; i++ {
		fx.clock.Advance(500)
		m.Update()
	}
	if m.State() != StatePlaying {
		t.Fatalf("state after countdown = %s, want playing", m.State())
	}

	// 暂停冻结计时
	m.TogglePause()
	if m.State() != StatePaused {
		t.Fatalf("state after pause = %s, want paused", m.State())
	}
	before := m.TimeLeftSeconds()
	tick(m, fx.clock, 2000)
	if m.TimeLeftSeconds() != before {
		t.Errorf("timer advanced while paused: %g -> %g", before, m.TimeLeftSeconds())
	}

	// 恢复后继续倒计时
	m.TogglePause()
	tick(m, fx.clock, 100)
	if m.TimeLeftSeconds() >= before {
		t.Error("timer did not advance after resume")
	}

	m.End()
	if m.State() != StateEnded {
		t.Fatalf("state after End = %s, want ended", m.State())
	}
	if !fx.dlg.shown || fx.dlg.title != "Time's Up!" {
		t.Errorf("end dialog not shown, title = %q", fx.dlg.title)
	}
	// End 幂等
	m.End()

	m.Cleanup()
	if m.State() != StateIdle {
		t.Fatalf("state after Cleanup = %s, want idle", m.State())
	}
	if fx.dlg.shown {
		t.Error("dialog still visible after cleanup")
	}
	if fx.hud.visible[HUDScore] {
		t.Error("HUD still visible after cleanup")
	}
	m.Cleanup()
}

func TestClassicCountdownEffects(t *testing.T) {
	fx := newTestEnv(t, true, 2)
	m := NewClassicMode(fx.env)
	m.Prepare()
	m.Start()

	m.Update()
	if m.Effects().Len() != 1 {
		t.Fatalf("effects after first countdown frame = %d, want 1", m.Effects().Len())
	}

	// 每 500ms 推进一个标签；上一个过期，下一个出现
	for i := 0; i < 3; i++ {
		fx.clock.Advance(500)
		m.Update()
		if m.Effects().Len() != 1 {
			t.Fatalf("effects at step %d = %d, want 1", i, m.Effects().Len())
		}
	}

	fx.clock.Advance(500)
	m.Update()
	if m.State() != StatePlaying {
		t.Fatalf("state after full countdown = %s, want playing", m.State())
	}
}

func TestClassicTimeoutEndsGame(t *testing.T) {
	fx := newTestEnv(t, true, 3)
	m := NewClassicMode(fx.env)
	runCountdown(t, m, fx.clock)

	tick(m, fx.clock, 61_000)

	if m.State() != StateEnded {
		t.Fatalf("state after 61s = %s, want ended", m.State())
	}
	if fx.dlg.title != "Time's Up!" {
		t.Errorf("dialog title = %q", fx.dlg.title)
	}
	// 未点破任何泡泡，总分为 0（经典模式无漏接惩罚）
	if !strings.Contains(fx.dlg.body, "0 points") {
		t.Errorf("dialog body = %q, want \"0 points\"", fx.dlg.body)
	}
	if len(fx.dlg.choices) != 2 {
		t.Fatalf("dialog choices = %d, want 2", len(fx.dlg.choices))
	}

	// "再来一局"走 cleanup -> prepare -> start
	fx.dlg.choices[0].OnSelect()
	if m.State() != StateCountdown {
		t.Errorf("state after Play Again = %s, want countdown", m.State())
	}
}

func TestClassicPopScoring(t *testing.T) {
	fx := newTestEnv(t, true, 4)
	m := NewClassicMode(fx.env)
	runCountdown(t, m, fx.clock)

	b := injectBubble(&m.BaseMode, types.BubbleNormal, "#FF2D95", 400, 300)
	m.OnPointerDown(400, 300)

	if !b.Popped {
		t.Fatal("normal bubble not popped by tap")
	}
	if got := fx.env.Ledger.Total(); got != 10 {
		t.Errorf("score after normal pop = %d, want 10", got)
	}
	if got := fx.env.Spawn.ConsecutivePops(); got != 1 {
		t.Errorf("consecutive pops = %d, want 1", got)
	}
	if m.Effects().Len() == 0 {
		t.Error("no floating text after pop")
	}

	// 落空点击清零采样器反馈计数
	m.OnPointerDown(10, 10)
	if got := fx.env.Spawn.ConsecutivePops(); got != 0 {
		t.Errorf("consecutive pops after empty tap = %d, want 0", got)
	}

	// 陷阱扣 30 分，总分截断在 0
	injectBubble(&m.BaseMode, types.BubbleDecoy, "#AA44FF", 200, 200)
	m.OnPointerDown(200, 200)
	if got := fx.env.Ledger.Total(); got != 0 {
		t.Errorf("score after decoy = %d, want 0 (clamped)", got)
	}
}

func TestClassicDoubleTapSemantics(t *testing.T) {
	fx := newTestEnv(t, true, 5)
	m := NewClassicMode(fx.env)
	runCountdown(t, m, fx.clock)

	b := injectBubble(&m.BaseMode, types.BubbleDouble, "#00F5FF", 600, 300)

	// 首次点击只累计，不计分
	m.OnPointerDown(600, 300)
	if b.Popped {
		t.Fatal("double bubble popped after single tap")
	}
	if b.TapsCount != 1 {
		t.Fatalf("taps count = %d, want 1", b.TapsCount)
	}
	if got := fx.env.Ledger.Total(); got != 0 {
		t.Errorf("score after first tap = %d, want 0", got)
	}

	// 第二次点击完成破裂
	m.OnPointerDown(600, 300)
	if !b.Popped {
		t.Fatal("double bubble not popped after second tap")
	}
	if got := fx.env.Ledger.Total(); got != 25 {
		t.Errorf("score after double pop = %d, want 25", got)
	}

	// 破裂动画中的泡泡不再响应点击
	m.OnPointerDown(600, 300)
	if got := fx.env.Ledger.Total(); got != 25 {
		t.Errorf("score after tapping popped bubble = %d, want 25", got)
	}
}

func TestClassicSpawnWindow(t *testing.T) {
	fx := newTestEnv(t, true, 6)
	m := NewClassicMode(fx.env)
	runCountdown(t, m, fx.clock)

	// 低于下限时每帧立即补充一个
	tick(m, fx.clock, 500)
	if got := m.BubbleCount(); got != 5 {
		t.Fatalf("bubbles after refill = %d, want minBubbles 5", got)
	}

	// 达到下限后按间隔生成
	tick(m, fx.clock, 1500)
	got := m.BubbleCount()
	if got < 6 || got > 10 {
		t.Errorf("bubbles after interval spawning = %d, want within (5, 10]", got)
	}
}
