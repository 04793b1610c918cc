package commitqueue

import (
	"errors"
	"testing"

	"villageforge/internal/testworld"
)

func TestEnqueueDrainPreservesFIFOOrder(t *testing.T) {
	q := NewQueue()
	q.Enqueue(Entry{X: 0}, Entry{X: 1}, Entry{X: 2})
	batch := q.Drain(2)
	if len(batch) != 2 || batch[0].X != 0 || batch[1].X != 1 {
		t.Fatalf("expected first two entries in order, got %+v", batch)
	}
	if q.Len() != 1 {
		t.Fatalf("expected 1 entry remaining, got %d", q.Len())
	}
}

func TestDrainZeroOrNegativeDrainsAll(t *testing.T) {
	q := NewQueue()
	q.Enqueue(Entry{X: 0}, Entry{X: 1}, Entry{X: 2})
	batch := q.Drain(0)
	if len(batch) != 3 {
		t.Fatalf("expected all 3 entries drained, got %d", len(batch))
	}
	if q.Len() != 0 {
		t.Fatal("expected queue empty after full drain")
	}
	q.Enqueue(Entry{X: 3}, Entry{X: 4})
	if batch := q.Drain(-1); len(batch) != 2 {
		t.Fatalf("expected all 2 entries drained for negative n, got %d", len(batch))
	}
	if q.Len() != 0 {
		t.Fatal("expected queue empty after negative drain")
	}
}

func TestDrainMoreThanAvailableDrainsAll(t *testing.T) {
	q := NewQueue()
	q.Enqueue(Entry{X: 0})
	batch := q.Drain(50)
	if len(batch) != 1 {
		t.Fatalf("expected single entry drained, got %d", len(batch))
	}
}

func TestDrainEmptyQueueReturnsNil(t *testing.T) {
	q := NewQueue()
	if batch := q.Drain(5); batch != nil {
		t.Fatalf("expected nil batch from empty queue, got %v", batch)
	}
}

func TestLenReflectsPendingCount(t *testing.T) {
	q := NewQueue()
	if q.Len() != 0 {
		t.Fatal("expected empty queue to report length 0")
	}
	q.Enqueue(Entry{X: 1}, Entry{X: 2})
	if q.Len() != 2 {
		t.Fatalf("expected length 2, got %d", q.Len())
	}
}

func TestApplyInBatchesWritesEveryEntry(t *testing.T) {
	w := testworld.New(-64, 320)
	q := NewQueue()
	q.Enqueue(
		Entry{X: 0, Y: 64, Z: 0, Material: "stone"},
		Entry{X: 1, Y: 64, Z: 0, Material: "dirt"},
		Entry{X: 2, Y: 64, Z: 0, Material: "planks"},
	)
	if err := ApplyInBatches(q, w, 2, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Len() != 0 {
		t.Fatalf("expected queue drained, got %d remaining", q.Len())
	}
	if b := w.BlockAt(0, 64, 0); b.Material != "stone" {
		t.Fatalf("expected stone at (0,64,0), got %+v", b)
	}
	if b := w.BlockAt(1, 64, 0); b.Material != "dirt" {
		t.Fatalf("expected dirt at (1,64,0), got %+v", b)
	}
	if b := w.BlockAt(2, 64, 0); b.Material != "planks" {
		t.Fatalf("expected planks at (2,64,0), got %+v", b)
	}
}

func TestApplyInBatchesEmptyQueueIsNoop(t *testing.T) {
	w := testworld.New(-64, 320)
	q := NewQueue()
	if err := ApplyInBatches(q, w, 10, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyInBatchesReportsProgressPerChunk(t *testing.T) {
	w := testworld.New(-64, 320)
	q := NewQueue()
	q.Enqueue(
		Entry{X: 0, Y: 64, Z: 5, Material: "stone"},
		Entry{X: 1, Y: 64, Z: 5, Material: "stone"},
		Entry{X: 2, Y: 65, Z: 6, Material: "stone"},
	)
	var reports []Progress
	if err := ApplyInBatches(q, w, 2, func(p Progress) { reports = append(reports, p) }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 progress reports for 3 entries batched by 2, got %d", len(reports))
	}
	if reports[0].Percent >= reports[1].Percent {
		t.Fatalf("expected increasing completion percent, got %+v", reports)
	}
	if reports[1].Percent != 100 {
		t.Fatalf("expected final report at 100%%, got %+v", reports[1])
	}
	if reports[1].Layer != 65 || reports[1].Row != 6 {
		t.Fatalf("expected final report to carry the last applied entry's position, got %+v", reports[1])
	}
}

type erroringWorld struct {
	*testworld.World
	failAfter int
	calls     int
}

func (e *erroringWorld) SetBlock(x, y, z int, material string, data map[string]any) error {
	e.calls++
	if e.calls > e.failAfter {
		return errors.New("simulated write failure")
	}
	return e.World.SetBlock(x, y, z, material, data)
}

func TestApplyInBatchesStopsOnFirstError(t *testing.T) {
	w := &erroringWorld{World: testworld.New(-64, 320), failAfter: 1}
	q := NewQueue()
	q.Enqueue(
		Entry{X: 0, Y: 64, Z: 0, Material: "stone"},
		Entry{X: 1, Y: 64, Z: 0, Material: "stone"},
	)
	if err := ApplyInBatches(q, w, 0, nil); err == nil {
		t.Fatal("expected error from second write to propagate")
	}
}
