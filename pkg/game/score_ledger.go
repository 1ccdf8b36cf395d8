package game

import (
	"log"

	"github.com/gonewx/bubblerush/pkg/types"
)

// PopResult 单次记分的结果快照
type PopResult struct {
	PointsEarned int                       // 本次获得（可为负）
	NewTotal     int                       // 记分后的总分
	ByType       map[types.BubbleType]int // 各类型累计破裂次数（副本）
}

// ScoreLedger 纯累加的记分账本
//
// 按泡泡类型累计破裂次数并维护总分。每局游戏开始时 Reset。
// clampAtZero 控制总分是否在 0 处截断：
//   - 经典/生存模式: true（陷阱泡泡在零分时不会把总分扣成负数）
//   - 色彩冲刺: false（错误点击可以把总分扣成负数）
//
// 该账本只属于一局游戏，不做任何持久化。
type ScoreLedger struct {
	clampAtZero bool
	total       int
	byType      map[types.BubbleType]int
}

// NewScoreLedger 创建记分账本
func NewScoreLedger(clampAtZero bool) *ScoreLedger {
	return &ScoreLedger{
		clampAtZero: clampAtZero,
		byType:      make(map[types.BubbleType]int),
	}
}

// RecordPop 记录一次破裂并返回结果快照
// points 为该次破裂的得分（陷阱为负值；色彩冲刺传入按倍率计算后的值）
func (l *ScoreLedger) RecordPop(bt types.BubbleType, points int) PopResult {
	l.byType[bt]++
	l.total += points
	if l.clampAtZero && l.total < 0 {
		l.total = 0
	}

	return PopResult{
		PointsEarned: points,
		NewTotal:     l.total,
		ByType:       l.snapshotByType(),
	}
}

// AddBonus 记录一次非破裂加分（完美回合奖励），返回新的总分
// 不计入任何类型的破裂次数；同样受 clampAtZero 约束
func (l *ScoreLedger) AddBonus(points int) int {
	l.total += points
	if l.clampAtZero && l.total < 0 {
		l.total = 0
	}
	return l.total
}

// Total 返回当前总分
func (l *ScoreLedger) Total() int {
	return l.total
}

// PopCount 返回指定类型的累计破裂次数
func (l *ScoreLedger) PopCount(bt types.BubbleType) int {
	return l.byType[bt]
}

// TotalPops 返回全部类型的累计破裂次数
func (l *ScoreLedger) TotalPops() int {
	sum := 0
	for _, n := range l.byType {
		sum += n
	}
	return sum
}

// Reset 清空账本（幂等，重复调用安全）
func (l *ScoreLedger) Reset() {
	if l.total != 0 || len(l.byType) != 0 {
		log.Printf("[ScoreLedger] Reset (discarding total=%d, %d pop types)", l.total, len(l.byType))
	}
	l.total = 0
	l.byType = make(map[types.BubbleType]int)
}

func (l *ScoreLedger) snapshotByType() map[types.BubbleType]int {
	out := make(map[types.BubbleType]int, len(l.byType))
	for k, v := range l.byType {
		out[k] = v
	}
	return out
}
