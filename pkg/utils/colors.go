package utils

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// ParseHexColor 解析 "#RRGGBB" 格式的十六进制颜色
// 支持可选的 "#" 前缀；解析失败返回错误
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: expected 6 hex digits", s)
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// MustParseHexColor 解析十六进制颜色，失败时返回白色
// 用于调色板等已验证过的颜色来源
func MustParseHexColor(s string) color.RGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return c
}

// ColorDistance 计算两个颜色在 0-255 RGB 空间的欧氏距离
// 色彩冲刺模式用它判断点击的泡泡是否匹配目标颜色
func ColorDistance(a, b color.RGBA) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// WithOpacity 返回按不透明度缩放后的预乘颜色
// opacity 会被钳制到 [0, 1]
func WithOpacity(c color.RGBA, opacity float64) color.RGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * opacity),
		G: uint8(float64(c.G) * opacity),
		B: uint8(float64(c.B) * opacity),
		A: uint8(255 * opacity),
	}
}

// ContrastTextColor 根据背景色亮度选择黑色或白色文字
// 用于瞬时消息（如目标颜色提示）保证可读性
func ContrastTextColor(bg color.RGBA) color.RGBA {
	// ITU-R BT.601 亮度权重
	luma := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if luma > 140 {
		return color.RGBA{A: 0xff} // 黑
	}
	return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff} // 白
}
