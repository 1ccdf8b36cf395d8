package game

import (
	"fmt"
	"log"

	"github.com/gonewx/bubblerush/pkg/types"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ModeRecord 单个模式的历史最佳成绩
type ModeRecord struct {
	BestScore   int `yaml:"bestScore"`   // 历史最高分
	BestStars   int `yaml:"bestStars"`   // 历史最高星级（仅色彩冲刺有意义）
	GamesPlayed int `yaml:"gamesPlayed"` // 累计完成局数
}

// SaveData 全部持久化成绩数据
// 键为模式注册名（"classic" / "survival" / "colourrush"）
type SaveData struct {
	Records map[string]ModeRecord `yaml:"records"`
}

// SaveManager 成绩存档管理器
//
// 职责：
//   - 记录各模式的最高分、最高星级和累计局数
//   - 通过 gdata 做跨平台持久化（YAML 序列化，与配置文件一致）
//
// gdataManager 可为 nil（降级模式，成绩仅保留在内存中）。
type SaveManager struct {
	gdataManager *gdata.Manager
	data         *SaveData
}

// 存储路径常量
const (
	recordsObject   = "records"
	recordsProperty = "scores"
)

// NewSaveManager 创建成绩存档管理器并尝试加载历史数据
// 加载失败不是致命错误，用空数据继续
func NewSaveManager(gdataManager *gdata.Manager) *SaveManager {
	sm := &SaveManager{
		gdataManager: gdataManager,
		data:         &SaveData{Records: make(map[string]ModeRecord)},
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SaveManager] Warning: Failed to load records: %v (starting fresh)", err)
	}

	return sm
}

// Load 从 gdata 加载成绩数据
// gdataManager 为 nil 或文件不存在时保持空数据
func (sm *SaveManager) Load() error {
	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(recordsObject, recordsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(recordsObject, recordsProperty)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	var loaded SaveData
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal records: %w", err)
	}
	if loaded.Records == nil {
		loaded.Records = make(map[string]ModeRecord)
	}

	sm.data = &loaded
	log.Printf("[SaveManager] Records loaded (%d modes)", len(sm.data.Records))
	return nil
}

// Save 保存成绩数据到 gdata
// gdataManager 为 nil 时静默跳过（降级模式）
func (sm *SaveManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.data)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(recordsObject, recordsProperty, data); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}

	return nil
}

// Record 返回指定模式的历史成绩（无记录时返回零值）
func (sm *SaveManager) Record(mode types.ModeType) ModeRecord {
	return sm.data.Records[mode.String()]
}

// BestScore 返回指定模式的历史最高分
func (sm *SaveManager) BestScore(mode types.ModeType) int {
	return sm.data.Records[mode.String()].BestScore
}

// RecordResult 记录一局结果并在刷新纪录时持久化
//
// 返回 true 表示产生了新的最高分。负分结局也计入局数，
// 但不会把最高分拉低。
func (sm *SaveManager) RecordResult(mode types.ModeType, score, stars int) bool {
	key := mode.String()
	rec := sm.data.Records[key]
	rec.GamesPlayed++

	newBest := false
	if rec.GamesPlayed == 1 || score > rec.BestScore {
		rec.BestScore = score
		newBest = true
	}
	if stars > rec.BestStars {
		rec.BestStars = stars
	}
	sm.data.Records[key] = rec

	if err := sm.Save(); err != nil {
		log.Printf("[SaveManager] Warning: Failed to persist records: %v", err)
	}
	if newBest {
		log.Printf("[SaveManager] New best for %s: %d", mode, score)
	}
	return newBest
}
