package systems

import (
	"log"

	"github.com/gonewx/bubblerush/pkg/config"
)

// IncreaseType 难度提升的种类
type IncreaseType int

const (
	// IncreaseSpawn 缩短生成间隔
	IncreaseSpawn IncreaseType = iota
	// IncreaseSpeed 提高速度倍率
	IncreaseSpeed
)

// String 返回提升种类的日志标识
func (t IncreaseType) String() string {
	if t == IncreaseSpeed {
		return "speed"
	}
	return "spawn"
}

// DifficultyEngine 生存模式的脚本化难度引擎
//
// 每经过一个提升周期（默认 25 秒）在"提速"和"加快生成"之间交替执行一步：
//   - 失误率 > 阈值：小步进（照顾跟不上的玩家）
//   - 否则：大步进
//
// 速度倍率和生成间隔分别受上/下限约束。
type DifficultyEngine struct {
	cfg *config.SurvivalConfig

	speedMult        float64
	spawnIntervalMs  float64
	level            int
	lastIncreaseType IncreaseType
	lastIncreaseAtS  float64
}

// NewDifficultyEngine 创建生存模式难度引擎
func NewDifficultyEngine(cfg *config.SurvivalConfig) *DifficultyEngine {
	d := &DifficultyEngine{cfg: cfg}
	d.Reset()
	return d
}

// Reset 恢复初始难度
func (d *DifficultyEngine) Reset() {
	d.speedMult = d.cfg.Speed.Initial
	d.spawnIntervalMs = d.cfg.SpawnInterval.InitialMs
	d.level = 1
	// 首次提升执行 speed，因此初始记录为 spawn
	d.lastIncreaseType = IncreaseSpawn
	d.lastIncreaseAtS = 0
}

// Advance 根据已进行时长推进难度
// elapsedS 为本局累计游戏时间（暂停不计），missRate 为当前漏接率。
// 返回 true 表示本次调用执行了一次难度提升。
func (d *DifficultyEngine) Advance(elapsedS, missRate float64) bool {
	if elapsedS-d.lastIncreaseAtS < d.cfg.DifficultyStepSeconds {
		return false
	}
	d.lastIncreaseAtS = elapsedS
	d.level++

	// 失误率偏高时用小步进
	small := missRate > d.cfg.HighMissRate

	if d.lastIncreaseType == IncreaseSpawn {
		d.lastIncreaseType = IncreaseSpeed
		step := d.cfg.Speed.LargeStep
		if small {
			step = d.cfg.Speed.SmallStep
		}
		d.speedMult += step
		if d.speedMult > d.cfg.Speed.Max {
			d.speedMult = d.cfg.Speed.Max
		}
		log.Printf("[DifficultyEngine] Level %d: speed -> %.2f (missRate %.2f)", d.level, d.speedMult, missRate)
	} else {
		d.lastIncreaseType = IncreaseSpawn
		factor := d.cfg.SpawnInterval.LargeFactor
		if small {
			factor = d.cfg.SpawnInterval.SmallFactor
		}
		d.spawnIntervalMs *= factor
		if d.spawnIntervalMs < d.cfg.SpawnInterval.MinMs {
			d.spawnIntervalMs = d.cfg.SpawnInterval.MinMs
		}
		log.Printf("[DifficultyEngine] Level %d: spawn interval -> %.0fms (missRate %.2f)", d.level, d.spawnIntervalMs, missRate)
	}

	return true
}

// SpeedMult 返回当前速度倍率
func (d *DifficultyEngine) SpeedMult() float64 {
	return d.speedMult
}

// SpawnIntervalMs 返回当前生成间隔（毫秒）
func (d *DifficultyEngine) SpawnIntervalMs() float64 {
	return d.spawnIntervalMs
}

// Level 返回当前难度级别（从 1 开始，每次提升 +1）
func (d *DifficultyEngine) Level() int {
	return d.level
}

// LastIncreaseType 返回最近一次提升的种类
func (d *DifficultyEngine) LastIncreaseType() IncreaseType {
	return d.lastIncreaseType
}
