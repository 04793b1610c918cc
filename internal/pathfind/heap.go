package pathfind

// queueItem is one entry in the open-set priority queue, f = g + h.
type queueItem struct {
	n         node
	f         float64
	order     int // insertion order, for deterministic tie-breaking (spec P5)
}

// priorityQueue implements container/heap.Interface over queueItem, breaking
// ties on f by insertion order (spec §4.11: "Ties are broken ... by the
// order of insertion").
type priorityQueue struct {
	items   []*queueItem
	counter int
}

func (pq *priorityQueue) Len() int { return len(pq.items) }

func (pq *priorityQueue) Less(i, j int) bool {
	if pq.items[i].f != pq.items[j].f {
		return pq.items[i].f < pq.items[j].f
	}
	return pq.items[i].order < pq.items[j].order
}

func (pq *priorityQueue) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
}

func (pq *priorityQueue) Push(x any) {
	item := x.(*queueItem)
	pq.counter++
	item.order = pq.counter
	pq.items = append(pq.items, item)
}

func (pq *priorityQueue) Pop() any {
	old := pq.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	pq.items = old[:n-1]
	return item
}
