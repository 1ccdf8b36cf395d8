package entities

import (
	"math/rand"
	"testing"

	"github.com/gonewx/bubblerush/pkg/components"
	"github.com/gonewx/bubblerush/pkg/config"
	"github.com/gonewx/bubblerush/pkg/embedded"
	"github.com/gonewx/bubblerush/pkg/types"
)

func bubbleConfig(t *testing.T) *config.BubbleConfig {
	t.Helper()
	cfg, err := config.LoadGameConfig(embedded.ModesYAML())
	if err != nil {
		t.Fatal(err)
	}
	return &cfg.Bubble
}

func TestNewBubbleInvariants(t *testing.T) {
	cfg := bubbleConfig(t)
	rnd := rand.New(rand.NewSource(11))

	const w, h = 800.0, 600.0
	for i := 0; i < 500; i++ {
		b := NewBubble(cfg, BubbleParams{
			Type:     types.BubbleNormal,
			ColorHex: "#FF2D95",
			CanvasW:  w, CanvasH: h,
			NowMillis: 1000,
		}, rnd)

		if b.Radius < cfg.MinRadius || b.Radius > cfg.MaxRadius {
			t.Fatalf("radius %g outside [%g, %g]", b.Radius, cfg.MinRadius, cfg.MaxRadius)
		}
		if b.X < b.Radius || b.X > w-b.Radius || b.Y < b.Radius || b.Y > h-b.Radius {
			t.Fatalf("spawned outside canvas: (%g, %g) r=%g", b.X, b.Y, b.Radius)
		}

		// 速度大小 = 1.5 * (0.8 + 0.4u)，落在 [1.2, 1.8]
		speed := b.Speed()
		if speed < 1.2-1e-9 || speed > 1.8+1e-9 {
			t.Fatalf("spawn speed %g outside [1.2, 1.8]", speed)
		}

		if b.Opacity != 1 || b.Popped || b.Dead {
			t.Fatal("fresh bubble must be fully opaque and alive")
		}
		if b.CreatedMillis != 1000 {
			t.Fatalf("createdMillis = %d, want 1000", b.CreatedMillis)
		}
	}
}

func TestNewBubbleTypeParameters(t *testing.T) {
	cfg := bubbleConfig(t)
	rnd := rand.New(rand.NewSource(12))
	params := func(bt types.BubbleType) BubbleParams {
		return BubbleParams{Type: bt, ColorHex: "#00F5FF", CanvasW: 800, CanvasH: 600}
	}

	normal := NewBubble(cfg, params(types.BubbleNormal), rnd)
	double := NewBubble(cfg, params(types.BubbleDouble), rnd)
	decoy := NewBubble(cfg, params(types.BubbleDecoy), rnd)

	if normal.TapsNeeded != 1 || double.TapsNeeded != 2 || decoy.TapsNeeded != 1 {
		t.Errorf("taps needed = %d/%d/%d, want 1/2/1",
			normal.TapsNeeded, double.TapsNeeded, decoy.TapsNeeded)
	}
	if normal.MaxLifetimeMs != 7000 || decoy.MaxLifetimeMs != 3000 {
		t.Errorf("lifetimes = %d/%d, want 7000/3000", normal.MaxLifetimeMs, decoy.MaxLifetimeMs)
	}
}

func TestNewBubbleSpeedMultAndCap(t *testing.T) {
	cfg := bubbleConfig(t)
	rnd := rand.New(rand.NewSource(13))

	for i := 0; i < 200; i++ {
		b := NewBubble(cfg, BubbleParams{
			Type:     types.BubbleNormal,
			ColorHex: "#39FF14",
			CanvasW:  800, CanvasH: 600,
			SpeedMult: 3.5,
		}, rnd)

		// 1.5 * [0.8, 1.2] * 3.5 = [4.2, 6.3]，但生成后立即钳制到上限
		if s := b.Speed(); s > components.MaxSpeed+1e-9 {
			t.Fatalf("speed %g exceeds cap", s)
		}
	}
}

func TestNewBubbleRadiusScale(t *testing.T) {
	cfg := bubbleConfig(t)
	rnd := rand.New(rand.NewSource(14))

	b := NewBubble(cfg, BubbleParams{
		Type:     types.BubbleNormal,
		ColorHex: "#FFD700",
		CanvasW:  800, CanvasH: 600,
		RadiusScale: 0.8,
	}, rnd)

	if b.Radius > cfg.MaxRadius*0.8 {
		t.Errorf("scaled radius %g exceeds %g", b.Radius, cfg.MaxRadius*0.8)
	}
	if b.BaseRadius != b.Radius {
		t.Errorf("baseRadius %g != radius %g on spawn", b.BaseRadius, b.Radius)
	}
}
