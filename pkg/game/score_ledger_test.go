package game

import (
	"math/rand"
	"testing"

	"github.com/gonewx/bubblerush/pkg/types"
)

func TestScoreLedgerRecordPop(t *testing.T) {
	ledger := NewScoreLedger(true)

	res := ledger.RecordPop(types.BubbleNormal, 10)
	if res.PointsEarned != 10 || res.NewTotal != 10 {
		t.Fatalf("first pop: earned=%d total=%d, want 10/10", res.PointsEarned, res.NewTotal)
	}
	if res.ByType[types.BubbleNormal] != 1 {
		t.Errorf("byType[normal] = %d, want 1", res.ByType[types.BubbleNormal])
	}

	res = ledger.RecordPop(types.BubbleDouble, 25)
	if res.NewTotal != 35 {
		t.Errorf("total after double = %d, want 35", res.NewTotal)
	}
	if ledger.TotalPops() != 2 {
		t.Errorf("total pops = %d, want 2", ledger.TotalPops())
	}
}

func TestScoreLedgerClampAtZero(t *testing.T) {
	// 经典/生存模式：陷阱泡泡在零分时不产生负分
	ledger := NewScoreLedger(true)

	res := ledger.RecordPop(types.BubbleDecoy, -30)
	if res.NewTotal != 0 {
		t.Errorf("clamped total = %d, want 0", res.NewTotal)
	}
	if res.PointsEarned != -30 {
		t.Errorf("earned = %d, want -30 (clamp applies to total only)", res.PointsEarned)
	}

	// 色彩冲刺：不截断，允许负总分
	unclamped := NewScoreLedger(false)
	unclamped.RecordPop(types.BubbleNormal, 10)
	res = unclamped.RecordPop(types.BubbleNormal, -15)
	if res.NewTotal != -5 {
		t.Errorf("unclamped total = %d, want -5", res.NewTotal)
	}
}

func TestScoreLedgerResetIdempotent(t *testing.T) {
	ledger := NewScoreLedger(true)
	ledger.RecordPop(types.BubbleNormal, 10)

	ledger.Reset()
	if ledger.Total() != 0 || ledger.TotalPops() != 0 {
		t.Fatalf("after reset: total=%d pops=%d, want 0/0", ledger.Total(), ledger.TotalPops())
	}

	// 重复 Reset 不改变状态
	ledger.Reset()
	if ledger.Total() != 0 || ledger.TotalPops() != 0 {
		t.Errorf("second reset changed state: total=%d pops=%d", ledger.Total(), ledger.TotalPops())
	}
}

func TestScoreLedgerOrderIndependence(t *testing.T) {
	// 不截断时，同一组破裂的记录顺序不影响最终状态
	// （截断账本只对从未触发截断的序列保证顺序无关）
	pops := []struct {
		bt     types.BubbleType
		points int
	}{
		{types.BubbleNormal, 10},
		{types.BubbleNormal, 10},
		{types.BubbleDouble, 25},
		{types.BubbleDecoy, -30},
		{types.BubbleNormal, 10},
	}

	forward := NewScoreLedger(false)
	for _, p := range pops {
		forward.RecordPop(p.bt, p.points)
	}

	rnd := rand.New(rand.NewSource(7))
	for trial := 0; trial < 10; trial++ {
		shuffled := NewScoreLedger(false)
		order := rnd.Perm(len(pops))
		for _, i := range order {
			shuffled.RecordPop(pops[i].bt, pops[i].points)
		}
		if shuffled.Total() != forward.Total() {
			t.Fatalf("order %v: total=%d, want %d", order, shuffled.Total(), forward.Total())
		}
		for _, bt := range []types.BubbleType{types.BubbleNormal, types.BubbleDouble, types.BubbleDecoy} {
			if shuffled.PopCount(bt) != forward.PopCount(bt) {
				t.Fatalf("order %v: count[%s]=%d, want %d", order, bt, shuffled.PopCount(bt), forward.PopCount(bt))
			}
		}
	}
}
