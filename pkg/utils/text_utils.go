package utils

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// 项目不携带字体资源，统一使用 basicfont 的 7x13 位图字体，
// 通过 GeoM 缩放得到不同字号。
var baseFace = text.NewGoXFace(basicfont.Face7x13)

// BaseLineHeight 基础字体的行高（像素，缩放前）
const BaseLineHeight = 13

// MeasureText 返回文本在给定缩放下的宽高（像素）
func MeasureText(str string, scale float64) (float64, float64) {
	w, h := text.Measure(str, baseFace, BaseLineHeight)
	return w * scale, h * scale
}

// DrawText 在 (x, y) 处以左上角对齐绘制文本
func DrawText(screen *ebiten.Image, str string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, baseFace, op)
}

// DrawCenteredText 以 (cx, cy) 为中心绘制文本
// 倒计时数字、飘分文字和对话框标题都使用居中绘制
func DrawCenteredText(screen *ebiten.Image, str string, cx, cy, scale float64, clr color.Color) {
	w, h := MeasureText(str, scale)
	DrawText(screen, str, cx-w/2, cy-h/2, scale, clr)
}
