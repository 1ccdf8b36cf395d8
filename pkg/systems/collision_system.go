// Package systems 实现模拟循环的各个子系统
package systems

import (
	"math"
	"math/rand"

	"github.com/gonewx/bubblerush/pkg/components"
)

// CollisionSystem 泡泡间的成对弹性碰撞解算
//
// 这不是物理引擎：解算结果依赖访问顺序，恢复系数 1.15 刻意注入能量，
// 目的是让场面保持活跃。调用方保证每帧在更新之后、绘制之前调用一次。
type CollisionSystem struct {
	rnd *rand.Rand
}

// NewCollisionSystem 创建碰撞解算系统
func NewCollisionSystem(rnd *rand.Rand) *CollisionSystem {
	return &CollisionSystem{rnd: rnd}
}

// Resolve 对所有存活且未破裂的泡泡做一次成对解算
//
// 对每个有序对 (i < j)：
//  1. 若重叠，沿法线各退让 overlap/2
//  2. 若在接近（相对速度法向分量为负），按恢复系数交换动量
//  3. 随机扰动两者方向并强制最低速度
func (s *CollisionSystem) Resolve(bubbles []*components.Bubble) {
	for i := 0; i < len(bubbles); i++ {
		a := bubbles[i]
		if a.Dead || a.Popped {
			continue
		}
		for j := i + 1; j < len(bubbles); j++ {
			b := bubbles[j]
			if b.Dead || b.Popped {
				continue
			}
			s.resolvePair(a, b)
		}
	}
}

func (s *CollisionSystem) resolvePair(a, b *components.Bubble) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)
	minDist := a.Radius + b.Radius

	// 完全重合（dist==0）无法定义法线，跳过，等待抖动拆开
	if dist <= 0 || dist >= minDist {
		return
	}

	nx := dx / dist
	ny := dy / dist

	// 位置分离：各承担一半重叠量
	overlap := (minDist - dist) / 2
	a.X -= nx * overlap
	a.Y -= ny * overlap
	b.X += nx * overlap
	b.Y += ny * overlap

	// 相对速度的法向分量；>= 0 表示正在分离，不交换动量
	relVX := b.VX - a.VX
	relVY := b.VY - a.VY
	vn := relVX*nx + relVY*ny
	if vn >= 0 {
		return
	}

	// 动量交换（恢复系数 > 1，轻微加能）
	dvx := nx * vn * components.Restitution
	dvy := ny * vn * components.Restitution
	a.VX += dvx
	a.VY += dvy
	b.VX -= dvx
	b.VY -= dvy

	// 方向扰动 + 最低速度
	a.RandomizeDirection(s.rnd)
	b.RandomizeDirection(s.rnd)
	a.EnforceMinSpeed()
	b.EnforceMinSpeed()
}
