package game

import (
	"os"
	"testing"

	"github.com/gonewx/bubblerush/pkg/types"
	"github.com/quasilyte/gdata/v2"
)

// newTestGdataManager 创建写入临时目录的 gdata Manager
func newTestGdataManager(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("cannot create gdata manager: %v", err)
	}
	return manager
}

func TestSaveManagerFreshRecords(t *testing.T) {
	sm := NewSaveManager(nil)

	rec := sm.Record(types.ModeClassic)
	if rec.BestScore != 0 || rec.GamesPlayed != 0 {
		t.Errorf("fresh record = %+v, want zero value", rec)
	}
	if sm.BestScore(types.ModeSurvival) != 0 {
		t.Error("fresh best score != 0")
	}
}

func TestSaveManagerRecordResult(t *testing.T) {
	sm := NewSaveManager(nil)

	if !sm.RecordResult(types.ModeClassic, 120, 0) {
		t.Error("first result not reported as new best")
	}
	if sm.BestScore(types.ModeClassic) != 120 {
		t.Errorf("best = %d, want 120", sm.BestScore(types.ModeClassic))
	}

	// 更低的分数计入局数但不刷新纪录
	if sm.RecordResult(types.ModeClassic, 80, 0) {
		t.Error("lower score reported as new best")
	}
	rec := sm.Record(types.ModeClassic)
	if rec.BestScore != 120 || rec.GamesPlayed != 2 {
		t.Errorf("record = %+v, want best 120 games 2", rec)
	}

	// 更高的分数刷新纪录
	if !sm.RecordResult(types.ModeClassic, 200, 0) {
		t.Error("higher score not reported as new best")
	}

	// 负分首局也是"当前最佳"
	if !sm.RecordResult(types.ModeColourRush, -40, 0) {
		t.Error("first colour rush result not reported as new best")
	}
	if sm.BestScore(types.ModeColourRush) != -40 {
		t.Errorf("colour rush best = %d, want -40", sm.BestScore(types.ModeColourRush))
	}
}

func TestSaveManagerStars(t *testing.T) {
	sm := NewSaveManager(nil)

	sm.RecordResult(types.ModeColourRush, 300, 2)
	sm.RecordResult(types.ModeColourRush, 150, 3)
	sm.RecordResult(types.ModeColourRush, 400, 1)

	rec := sm.Record(types.ModeColourRush)
	if rec.BestStars != 3 {
		t.Errorf("best stars = %d, want 3 (kept independently of score)", rec.BestStars)
	}
	if rec.BestScore != 400 {
		t.Errorf("best score = %d, want 400", rec.BestScore)
	}
}

func TestSaveManagerPersistence(t *testing.T) {
	manager := newTestGdataManager(t, "bubblerush_save_test")

	sm := NewSaveManager(manager)
	sm.RecordResult(types.ModeSurvival, 555, 0)
	sm.RecordResult(types.ModeColourRush, 210, 2)

	// 重新加载后数据仍在
	reloaded := NewSaveManager(manager)
	if got := reloaded.BestScore(types.ModeSurvival); got != 555 {
		t.Errorf("reloaded survival best = %d, want 555", got)
	}
	rec := reloaded.Record(types.ModeColourRush)
	if rec.BestScore != 210 || rec.BestStars != 2 || rec.GamesPlayed != 1 {
		t.Errorf("reloaded colour rush record = %+v", rec)
	}
}

func TestSaveManagerNilGdataDegraded(t *testing.T) {
	sm := NewSaveManager(nil)

	sm.RecordResult(types.ModeClassic, 99, 0)
	if err := sm.Save(); err != nil {
		t.Errorf("Save with nil gdata returned error: %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load with nil gdata returned error: %v", err)
	}
	// 内存数据不受降级影响
	if sm.BestScore(types.ModeClassic) != 99 {
		t.Error("in-memory record lost in degraded mode")
	}
}
