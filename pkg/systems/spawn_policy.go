package systems

import (
	"log"
	"math/rand"

	"github.com/gonewx/bubblerush/pkg/types"
)

// sampleOrder 采样时遍历类型的固定顺序
// 固定顺序保证同一随机种子下采样序列可复现
var sampleOrder = []types.BubbleType{types.BubbleNormal, types.BubbleDouble, types.BubbleDecoy}

// SpawnPolicy 按模式加权的泡泡类型采样器
//
// 除权重表外还维护少量反馈状态（连续成功破裂计数）。
// 当前权重是静态的，反馈钩子为将来的自适应策略预留，
// 并且是时间奖励/连击逻辑测试的观测点。
//
// 由编排器创建并注入各模式；prepare 和 cleanup 时调用 Reset。
type SpawnPolicy struct {
	rnd     *rand.Rand
	weights map[types.ModeType]map[types.BubbleType]int

	consecutivePops int
}

// NewSpawnPolicy 从配置权重表创建采样器
// weightsCfg 的键为模式/类型的注册字符串；未知键记录警告并忽略
func NewSpawnPolicy(rnd *rand.Rand, weightsCfg map[string]map[string]int) *SpawnPolicy {
	p := &SpawnPolicy{
		rnd:     rnd,
		weights: make(map[types.ModeType]map[types.BubbleType]int),
	}

	for modeName, typeWeights := range weightsCfg {
		mode, ok := types.ParseModeType(modeName)
		if !ok {
			log.Printf("[SpawnPolicy] Warning: unknown mode %q in weights config, ignoring", modeName)
			continue
		}
		entry := make(map[types.BubbleType]int)
		for typeName, w := range typeWeights {
			bt, ok := types.ParseBubbleType(typeName)
			if !ok {
				log.Printf("[SpawnPolicy] Warning: unknown bubble type %q in weights config, ignoring", typeName)
				continue
			}
			if w < 0 {
				log.Printf("[SpawnPolicy] Warning: negative weight %d for %s/%s, clamping to 0", w, modeName, typeName)
				w = 0
			}
			entry[bt] = w
		}
		p.weights[mode] = entry
	}

	return p
}

// NextType 为指定模式采样下一个泡泡类型
//
// 模式未注册或权重和为零时回落到 normal 并记录警告。
func (p *SpawnPolicy) NextType(mode types.ModeType) types.BubbleType {
	entry, ok := p.weights[mode]
	if !ok {
		log.Printf("[SpawnPolicy] Warning: no weights registered for mode %q, using normal", mode)
		return types.BubbleNormal
	}

	total := 0
	for _, bt := range sampleOrder {
		if w := entry[bt]; w > 0 {
			total += w
		}
	}
	if total == 0 {
		return types.BubbleNormal
	}

	draw := p.rnd.Float64() * float64(total)
	cumulative := 0.0
	for _, bt := range sampleOrder {
		w := entry[bt]
		if w <= 0 {
			continue
		}
		cumulative += float64(w)
		if draw <= cumulative {
			return bt
		}
	}
	// 浮点边界兜底
	return types.BubbleNormal
}

// NotifyPop 汇报一次破裂结果
// 成功破裂 normal 时连续计数 +1，其余情况（decoy、失败）清零
func (p *SpawnPolicy) NotifyPop(bt types.BubbleType, successful bool) {
	if successful && bt == types.BubbleNormal {
		p.consecutivePops++
		return
	}
	p.consecutivePops = 0
}

// NotifyMiss 汇报一次落空点击或漏接，清零连续计数
func (p *SpawnPolicy) NotifyMiss() {
	p.consecutivePops = 0
}

// ConsecutivePops 返回当前连续成功破裂计数
func (p *SpawnPolicy) ConsecutivePops() int {
	return p.consecutivePops
}

// Reset 清零反馈状态
func (p *SpawnPolicy) Reset() {
	p.consecutivePops = 0
}

// WeightsFor 返回模式权重表的副本
func (p *SpawnPolicy) WeightsFor(mode types.ModeType) map[types.BubbleType]int {
	entry, ok := p.weights[mode]
	if !ok {
		return nil
	}
	out := make(map[types.BubbleType]int, len(entry))
	for k, v := range entry {
		out[k] = v
	}
	return out
}

// TypesAvailable 返回模式下权重大于零的类型（固定顺序）
func (p *SpawnPolicy) TypesAvailable(mode types.ModeType) []types.BubbleType {
	entry, ok := p.weights[mode]
	if !ok {
		return nil
	}
	var out []types.BubbleType
	for _, bt := range sampleOrder {
		if entry[bt] > 0 {
			out = append(out, bt)
		}
	}
	return out
}

// UpdateWeight 更新单个权重（钳制 >= 0）
// 模式未注册时自动创建条目
func (p *SpawnPolicy) UpdateWeight(mode types.ModeType, bt types.BubbleType, weight int) {
	if weight < 0 {
		log.Printf("[SpawnPolicy] Warning: negative weight %d for %s/%s, clamping to 0", weight, mode, bt)
		weight = 0
	}
	entry, ok := p.weights[mode]
	if !ok {
		entry = make(map[types.BubbleType]int)
		p.weights[mode] = entry
	}
	entry[bt] = weight
}
