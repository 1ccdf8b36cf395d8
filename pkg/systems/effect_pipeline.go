package systems

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// Effect 瞬时视觉实体的公共契约
//
// Update 返回 true 表示效果结束，将在本次更新中被移除。
// 效果之间互不感知；绘制按插入顺序（画家算法）。
type Effect interface {
	Update(dtS float64, nowMillis int64) bool
	Draw(screen *ebiten.Image)
}

// EffectPipeline 有序的瞬时效果集合
//
// 每帧由模式先调用 Update 再调用 Draw。任一效果 panic 时将其丢弃并
// 继续当前帧（渲染路径上的装饰性代码不允许拖垮模拟循环）。
type EffectPipeline struct {
	effects []Effect
}

// NewEffectPipeline 创建空的效果管线
func NewEffectPipeline() *EffectPipeline {
	return &EffectPipeline{}
}

// Add 追加一个效果（绘制在已有效果之上）
func (p *EffectPipeline) Add(e Effect) {
	if e == nil {
		return
	}
	p.effects = append(p.effects, e)
}

// Update 推进所有效果并移除已完成或出错的条目
// 从尾到头遍历，移除不会扰乱迭代
func (p *EffectPipeline) Update(dtS float64, nowMillis int64) {
	for i := len(p.effects) - 1; i >= 0; i-- {
		done := p.safeUpdate(p.effects[i], dtS, nowMillis)
		if done {
			p.effects = append(p.effects[:i], p.effects[i+1:]...)
		}
	}
}

// Draw 按插入顺序绘制所有效果
// 绘制 panic 的效果被立即移除（不晚于下一次 Update 的要求）
func (p *EffectPipeline) Draw(screen *ebiten.Image) {
	for i := 0; i < len(p.effects); i++ {
		if !p.safeDraw(p.effects[i], screen) {
			p.effects = append(p.effects[:i], p.effects[i+1:]...)
			i--
		}
	}
}

// Len 返回当前效果数量
func (p *EffectPipeline) Len() int {
	return len(p.effects)
}

// Clear 清空管线（模式 cleanup 时调用）
func (p *EffectPipeline) Clear() {
	p.effects = p.effects[:0]
}

// safeUpdate 执行 Update 并吸收 panic；panic 视作完成（丢弃该效果）
func (p *EffectPipeline) safeUpdate(e Effect, dtS float64, nowMillis int64) (done bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[EffectPipeline] Dropping effect after update panic: %v", r)
			done = true
		}
	}()
	return e.Update(dtS, nowMillis)
}

// safeDraw 执行 Draw 并吸收 panic；返回 false 表示效果应被移除
func (p *EffectPipeline) safeDraw(e Effect, screen *ebiten.Image) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[EffectPipeline] Dropping effect after draw panic: %v", r)
			ok = false
		}
	}()
	e.Draw(screen)
	return true
}
