// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 存储当前帧的指针输入状态
// 用于统一处理鼠标和触摸输入
type PointerState struct {
	// JustPressed 本帧是否刚发生点击/触摸
	JustPressed bool
	// X, Y 画布坐标系下的指针位置
	X, Y int
}

// GetPointerState 获取当前帧的指针状态
// 同时支持鼠标点击和触摸输入，优先检测触摸（移动设备）
func GetPointerState() PointerState {
	state := PointerState{}

	// 首先检查触摸输入
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		state.JustPressed = true
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		return state
	}

	// 其次检查鼠标输入（桌面设备）
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		state.JustPressed = true
		state.X, state.Y = ebiten.CursorPosition()
		return state
	}

	// 无点击时返回鼠标位置，供悬停检测使用
	state.X, state.Y = ebiten.CursorPosition()
	return state
}

// PointInRect 检查点是否落在矩形内（按钮命中检测）
func PointInRect(px, py, x, y, w, h float64) bool {
	return px >= x && px < x+w && py >= y && py < y+h
}
