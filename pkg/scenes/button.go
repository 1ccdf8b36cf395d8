package scenes

import (
	"image/color"

	"github.com/gonewx/bubblerush/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button 矩形文字按钮
// 项目不携带 UI 素材，按钮用矢量矩形 + 位图字体绘制
type Button struct {
	X, Y, W, H float64
	Label      string
	Bg         color.RGBA
	TextScale  float64
	OnClick    func()

	hovered bool
}

// NewButton 创建按钮
func NewButton(label string, x, y, w, h float64, bg color.RGBA, onClick func()) *Button {
	return &Button{
		X: x, Y: y, W: w, H: h,
		Label:     label,
		Bg:        bg,
		TextScale: 1.4,
		OnClick:   onClick,
	}
}

// Contains 判断画布坐标是否落在按钮内
func (b *Button) Contains(px, py float64) bool {
	return utils.PointInRect(px, py, b.X, b.Y, b.W, b.H)
}

// SetHovered 更新悬停状态（绘制时加亮）
func (b *Button) SetHovered(hovered bool) {
	b.hovered = hovered
}

// HandlePress 处理一次点击；命中时触发回调并返回 true
func (b *Button) HandlePress(px, py float64) bool {
	if !b.Contains(px, py) {
		return false
	}
	if b.OnClick != nil {
		b.OnClick()
	}
	return true
}

// Draw 绘制按钮
func (b *Button) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), b.Bg, true)
	if b.hovered {
		highlight := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x30}
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), highlight, true)
	}
	border := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xa0}
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 2, border, true)

	textColor := utils.ContrastTextColor(b.Bg)
	utils.DrawCenteredText(screen, b.Label, b.X+b.W/2, b.Y+b.H/2, b.TextScale, textColor)
}
