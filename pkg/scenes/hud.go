package scenes

import (
	"image/color"

	"github.com/gonewx/bubblerush/pkg/modes"
	"github.com/gonewx/bubblerush/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// hudAnchor HUD 条目的水平对齐方式
type hudAnchor int

const (
	anchorLeft hudAnchor = iota
	anchorCenter
	anchorRight
)

// hudSlot 单个 HUD 条目的布局
type hudSlot struct {
	key    string
	anchor hudAnchor
	y      float64
	scale  float64
	prefix string
	color  color.RGBA
}

// hudLayout 全部 HUD 条目的固定布局（绘制顺序）
var hudLayout = []hudSlot{
	{key: modes.HUDScore, anchor: anchorLeft, y: 10, scale: 1.6, prefix: "Score: ",
		color: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
	{key: modes.HUDMode, anchor: anchorCenter, y: 10, scale: 1.2,
		color: color.RGBA{R: 0xb0, G: 0xb0, B: 0xc8, A: 0xff}},
	{key: modes.HUDTime, anchor: anchorRight, y: 10, scale: 1.6,
		color: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
	{key: modes.HUDSurvival, anchor: anchorRight, y: 10, scale: 1.6,
		color: color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}},
	{key: modes.HUDTarget, anchor: anchorCenter, y: 34, scale: 1.6, prefix: "Target: ",
		color: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
	{key: modes.HUDCombo, anchor: anchorCenter, y: 62, scale: 1.4,
		color: color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}},
}

// hudEntry 单个条目的当前状态
type hudEntry struct {
	text    string
	visible bool
}

// HUDOverlay 抬头显示层
//
// 实现模式的 setter 契约：模式只写标签文本和可见性，
// 布局（锚点、字号、前缀）由这里统一决定。
type HUDOverlay struct {
	entries map[string]*hudEntry
}

// NewHUDOverlay 创建空的 HUD 层
func NewHUDOverlay() *HUDOverlay {
	h := &HUDOverlay{entries: make(map[string]*hudEntry)}
	for _, slot := range hudLayout {
		h.entries[slot.key] = &hudEntry{}
	}
	return h
}

// SetText 更新标签文本；未知标签忽略
func (h *HUDOverlay) SetText(label, value string) {
	if e, ok := h.entries[label]; ok {
		e.text = value
	}
}

// SetVisible 更新标签可见性；未知标签忽略
func (h *HUDOverlay) SetVisible(label string, visible bool) {
	if e, ok := h.entries[label]; ok {
		e.visible = visible
	}
}

// Text 返回标签当前文本（测试观测点）
func (h *HUDOverlay) Text(label string) string {
	if e, ok := h.entries[label]; ok {
		return e.text
	}
	return ""
}

// Draw 绘制所有可见条目
func (h *HUDOverlay) Draw(screen *ebiten.Image) {
	const margin = 12
	w := float64(screen.Bounds().Dx())

	for _, slot := range hudLayout {
		e := h.entries[slot.key]
		if !e.visible || e.text == "" {
			continue
		}
		str := slot.prefix + e.text
		tw, _ := utils.MeasureText(str, slot.scale)

		var x float64
		switch slot.anchor {
		case anchorLeft:
			x = margin
		case anchorCenter:
			x = (w - tw) / 2
		case anchorRight:
			x = w - tw - margin
		}
		utils.DrawText(screen, str, x, slot.y, slot.scale, slot.color)
	}
}
