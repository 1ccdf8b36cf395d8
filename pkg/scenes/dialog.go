package scenes

import (
	"image/color"
	"strings"

	"github.com/gonewx/bubblerush/pkg/modes"
	"github.com/gonewx/bubblerush/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// MessageDialog 模态消息对话框（结算界面）
//
// 可见时拦截所有点击；选项按钮横向排列在面板底部。
type MessageDialog struct {
	visible bool
	title   string
	body    string
	buttons []*Button
}

// NewMessageDialog 创建隐藏状态的对话框
func NewMessageDialog() *MessageDialog {
	return &MessageDialog{}
}

// ShowMessage 显示对话框并构建选项按钮
func (d *MessageDialog) ShowMessage(title, body string, choices []modes.DialogChoice) {
	d.visible = true
	d.title = title
	d.body = body

	const (
		btnW = 140.0
		btnH = 40.0
		gap  = 20.0
	)
	total := float64(len(choices))*btnW + float64(len(choices)-1)*gap
	x := (WindowWidth - total) / 2
	y := WindowHeight/2 + 90.0

	d.buttons = d.buttons[:0]
	for _, choice := range choices {
		onSelect := choice.OnSelect
		d.buttons = append(d.buttons, NewButton(choice.Label, x, y, btnW, btnH,
			color.RGBA{R: 0x2a, G: 0x6f, B: 0xb8, A: 0xff}, onSelect))
		x += btnW + gap
	}
}

// Hide 隐藏对话框
func (d *MessageDialog) Hide() {
	d.visible = false
	d.buttons = d.buttons[:0]
}

// Visible 返回对话框是否可见
func (d *MessageDialog) Visible() bool {
	return d.visible
}

// HandlePress 处理一次点击
// 对话框可见时消费所有点击（模态），命中按钮时触发其回调
func (d *MessageDialog) HandlePress(px, py float64) bool {
	if !d.visible {
		return false
	}
	for _, b := range d.buttons {
		if b.HandlePress(px, py) {
			return true
		}
	}
	return true
}

// UpdateHover 根据指针位置更新按钮悬停状态
func (d *MessageDialog) UpdateHover(px, py float64) {
	if !d.visible {
		return
	}
	for _, b := range d.buttons {
		b.SetHovered(b.Contains(px, py))
	}
}

// Draw 绘制遮罩、面板、文本和按钮
func (d *MessageDialog) Draw(screen *ebiten.Image) {
	if !d.visible {
		return
	}

	// 全屏遮罩
	dim := color.RGBA{A: 0xa0}
	vector.DrawFilledRect(screen, 0, 0, WindowWidth, WindowHeight, dim, true)

	// 面板
	const (
		panelW = 420.0
		panelH = 300.0
	)
	px := (WindowWidth - panelW) / 2
	py := (WindowHeight - panelH) / 2
	panel := color.RGBA{R: 0x16, G: 0x21, B: 0x3a, A: 0xf0}
	vector.DrawFilledRect(screen, float32(px), float32(py), panelW, panelH, panel, true)
	border := color.RGBA{R: 0x4f, G: 0x8f, B: 0xef, A: 0xff}
	vector.StrokeRect(screen, float32(px), float32(py), panelW, panelH, 2, border, true)

	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	utils.DrawCenteredText(screen, d.title, WindowWidth/2, py+50, 2.6, white)

	// 正文逐行居中
	lineY := py + 110.0
	for _, line := range strings.Split(d.body, "\n") {
		utils.DrawCenteredText(screen, line, WindowWidth/2, lineY, 1.6, white)
		lineY += 28
	}

	for _, b := range d.buttons {
		b.Draw(screen)
	}
}
