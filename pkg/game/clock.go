package game

import "time"

// Clock 提供单调递增的毫秒时间戳
// 模拟循环的所有时间判断（生命周期、生成间隔、难度提升）都基于它，
// 测试中注入 ManualClock 即可获得确定性的时间推进。
type Clock interface {
	// NowMillis 返回单调毫秒时间戳
	NowMillis() int64
}

// SystemClock 基于 time.Now 的真实时钟
// 以创建时刻为零点，保证返回值从 0 附近开始单调递增
type SystemClock struct {
	start time.Time
}

// NewSystemClock 创建真实时钟
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// NowMillis 返回自时钟创建以来经过的毫秒数
func (c *SystemClock) NowMillis() int64 {
	return time.Since(c.start).Milliseconds()
}

// ManualClock 手动推进的时钟，用于测试
type ManualClock struct {
	ms int64
}

// NewManualClock 创建手动时钟，初始时刻为 startMillis
func NewManualClock(startMillis int64) *ManualClock {
	return &ManualClock{ms: startMillis}
}

// NowMillis 返回当前设定的时刻
func (c *ManualClock) NowMillis() int64 {
	return c.ms
}

// Advance 将时钟向前推进 deltaMillis 毫秒
// 负值会被忽略（时钟保持单调）
func (c *ManualClock) Advance(deltaMillis int64) {
	if deltaMillis > 0 {
		c.ms += deltaMillis
	}
}

// Set 直接设置时刻（允许回拨，用于测试时钟异常处理）
func (c *ManualClock) Set(millis int64) {
	c.ms = millis
}
