package systems

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// stubEffect 可编程的测试效果
type stubEffect struct {
	updates   int
	draws     int
	doneAfter int  // 第几次 Update 后返回 done
	panicOn   bool // Update 时 panic
}

func (e *stubEffect) Update(dtS float64, nowMillis int64) bool {
	if e.panicOn {
		panic("stub effect failure")
	}
	e.updates++
	return e.doneAfter > 0 && e.updates >= e.doneAfter
}

func (e *stubEffect) Draw(screen *ebiten.Image) {
	e.draws++
}

func TestEffectPipelineRemovesCompleted(t *testing.T) {
	p := NewEffectPipeline()
	keep := &stubEffect{doneAfter: 100}
	done := &stubEffect{doneAfter: 2}
	p.Add(keep)
	p.Add(done)

	p.Update(0.016, 16)
	if p.Len() != 2 {
		t.Fatalf("len after first update = %d, want 2", p.Len())
	}

	p.Update(0.016, 32)
	if p.Len() != 1 {
		t.Fatalf("len after second update = %d, want 1", p.Len())
	}
	if keep.updates != 2 {
		t.Errorf("surviving effect updates = %d, want 2", keep.updates)
	}
}

func TestEffectPipelineDropsPanickingEffect(t *testing.T) {
	p := NewEffectPipeline()
	bad := &stubEffect{panicOn: true}
	good := &stubEffect{doneAfter: 100}
	p.Add(bad)
	p.Add(good)

	// panic 的效果被丢弃，其余效果继续
	p.Update(0.016, 16)
	if p.Len() != 1 {
		t.Fatalf("len after panic = %d, want 1", p.Len())
	}
	if good.updates != 1 {
		t.Errorf("healthy effect updates = %d, want 1", good.updates)
	}
}

func TestEffectPipelineRemovalOrderStable(t *testing.T) {
	// 同帧移除多个条目不扰乱迭代：三个效果同时完成
	p := NewEffectPipeline()
	a := &stubEffect{doneAfter: 1}
	b := &stubEffect{doneAfter: 100}
	c := &stubEffect{doneAfter: 1}
	p.Add(a)
	p.Add(b)
	p.Add(c)

	p.Update(0.016, 16)
	if p.Len() != 1 {
		t.Fatalf("len = %d, want 1", p.Len())
	}
	if b.updates != 1 {
		t.Errorf("survivor updated %d times, want 1", b.updates)
	}
}

func TestEffectPipelineAddNilIgnored(t *testing.T) {
	p := NewEffectPipeline()
	p.Add(nil)
	if p.Len() != 0 {
		t.Errorf("nil effect was stored, len = %d", p.Len())
	}
}

func TestEffectPipelineClear(t *testing.T) {
	p := NewEffectPipeline()
	p.Add(&stubEffect{})
	p.Add(&stubEffect{})
	p.Clear()
	if p.Len() != 0 {
		t.Errorf("len after clear = %d, want 0", p.Len())
	}
}
