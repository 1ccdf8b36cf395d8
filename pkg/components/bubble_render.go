package components

import (
	"image/color"

	"github.com/gonewx/bubblerush/pkg/types"
	"github.com/gonewx/bubblerush/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Draw 绘制泡泡
//
// 视觉规则：
//   - 半透明主体 + 高光点，营造气泡质感
//   - double: 内侧描边环提示需要两次点击
//   - decoy:  主体压暗并画 X 标记
func (b *Bubble) Draw(screen *ebiten.Image) {
	if b.Dead || b.Radius <= 0 {
		return
	}

	cx := float32(b.X)
	cy := float32(b.Y)
	r := float32(b.Radius)

	body := b.RGBA
	if b.Type == types.BubbleDecoy {
		body = color.RGBA{
			R: uint8(float64(body.R) * 0.45),
			G: uint8(float64(body.G) * 0.45),
			B: uint8(float64(body.B) * 0.45),
			A: body.A,
		}
	}

	vector.DrawFilledCircle(screen, cx, cy, r, utils.WithOpacity(body, b.Opacity*0.85), true)
	vector.StrokeCircle(screen, cx, cy, r, 2, utils.WithOpacity(b.RGBA, b.Opacity), true)

	// 高光
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	vector.DrawFilledCircle(screen,
		cx-r*0.35, cy-r*0.35, r*0.22,
		utils.WithOpacity(white, b.Opacity*0.55), true)

	switch b.Type {
	case types.BubbleDouble:
		// 第一次点击后内环消失，提示只剩一次
		if b.TapsCount == 0 {
			vector.StrokeCircle(screen, cx, cy, r*0.6, 2,
				utils.WithOpacity(white, b.Opacity*0.8), true)
		}
	case types.BubbleDecoy:
		mark := utils.WithOpacity(white, b.Opacity*0.9)
		d := r * 0.4
		vector.StrokeLine(screen, cx-d, cy-d, cx+d, cy+d, 3, mark, true)
		vector.StrokeLine(screen, cx-d, cy+d, cx+d, cy-d, 3, mark, true)
	}
}
