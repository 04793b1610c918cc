// Package commitqueue implements the bounded, tick-drained batch queue
// described in spec §5 ("Batched commits (optional)"), adapted directly from
// chunk-server/internal/migration/queue.go's Enqueue/Drain(max) pattern
// (there used to batch cross-server entity migrations; here it batches
// per-block paste entries for a single structure commit).
package commitqueue

import (
	"sync"

	"villageforge/internal/worldapi"
)

// Entry is one block write queued for commit, ordered deterministically by
// the producer (spec §5: "fixed-size batches per tick ... in deterministic
// layer→row→x order").
type Entry struct {
	X, Y, Z  int
	Material string
	Data     map[string]any
}

// Queue is a thread-safe FIFO of pending block writes.
type Queue struct {
	mu      sync.Mutex
	pending []Entry
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{pending: make([]Entry, 0)}
}

// Enqueue appends entries to the end of the queue, preserving order.
func (q *Queue) Enqueue(entries ...Entry) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, entries...)
}

// Drain removes and returns up to max entries from the front of the queue in
// FIFO order. max <= 0 drains everything.
func (q *Queue) Drain(max int) []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	if max <= 0 || max >= len(q.pending) {
		batch := append([]Entry(nil), q.pending...)
		q.pending = nil
		return batch
	}
	batch := append([]Entry(nil), q.pending[:max]...)
	remaining := q.pending[max:]
	q.pending = append([]Entry(nil), remaining...)
	return batch
}

// Len reports the number of entries still pending.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Progress describes drain progress for observability (spec §5: "progress
// is observable (layer/row/percent)").
type Progress struct {
	Layer   int
	Row     int
	Percent float64
}

// ApplyInBatches drains q in chunks of batchSize and writes each chunk to
// world in order, until the queue is empty. batchSize <= 0 applies
// everything in a single chunk. Entries should already be queued in the
// deterministic layer→row→x order spec §5 requires, since Drain preserves
// FIFO order. If onProgress is non-nil, it is called after every chunk with
// the position of the last block applied in that chunk and the overall
// completion percentage.
func ApplyInBatches(q *Queue, world worldapi.Provider, batchSize int, onProgress func(Progress)) error {
	total := q.Len()
	if total == 0 {
		return nil
	}
	applied := 0
	for q.Len() > 0 {
		batch := q.Drain(batchSize)
		for _, e := range batch {
			if err := world.SetBlock(e.X, e.Y, e.Z, e.Material, e.Data); err != nil {
				return err
			}
			applied++
		}
		if onProgress != nil && len(batch) > 0 {
			last := batch[len(batch)-1]
			onProgress(Progress{
				Layer:   last.Y,
				Row:     last.Z,
				Percent: float64(applied) / float64(total) * 100,
			})
		}
	}
	return nil
}
