package astar

import "container/heap"

// frontier is the open set. It stores arena indices.
type frontier interface {
	push(i int)
	pop() int
	// fix restores ordering after node i's f decreased.
	fix(i int)
	len() int
}

// linearFrontier keeps open nodes in insertion order and scans for the
// minimum f on every pop. The first minimum found wins.
type linearFrontier struct {
	s    *searcher
	open []int
}

func (l *linearFrontier) push(i int) { l.open = append(l.open, i) }

func (l *linearFrontier) pop() int {
	best := 0
	for k := 1; k < len(l.open); k++ {
		if l.s.nodes[l.open[k]].f < l.s.nodes[l.open[best]].f {
			best = k
		}
	}
	i := l.open[best]
	// keep insertion order for the remaining nodes
	l.open = append(l.open[:best], l.open[best+1:]...)
	return i
}

func (l *linearFrontier) fix(int) {}

func (l *linearFrontier) len() int { return len(l.open) }

// heapFrontier is a binary min-heap over (f, seq). Because seq is the
// insertion order and relaxation keeps seq, it extracts nodes in exactly
// the order linearFrontier would.
type heapFrontier struct {
	s     *searcher
	items []int
}

func (h *heapFrontier) push(i int) { heap.Push(h, i) }

func (h *heapFrontier) pop() int { return heap.Pop(h).(int) }

func (h *heapFrontier) fix(i int) { heap.Fix(h, h.s.nodes[i].heapIdx) }

func (h *heapFrontier) len() int { return len(h.items) }

// Len implements heap.Interface.
func (h *heapFrontier) Len() int { return len(h.items) }

// Less implements heap.Interface: smaller f first, then earlier insertion.
func (h *heapFrontier) Less(a, b int) bool {
	na, nb := &h.s.nodes[h.items[a]], &h.s.nodes[h.items[b]]
	if na.f != nb.f {
		return na.f < nb.f
	}
	return na.seq < nb.seq
}

// Swap implements heap.Interface.
func (h *heapFrontier) Swap(a, b int) {
	h.items[a], h.items[b] = h.items[b], h.items[a]
	h.s.nodes[h.items[a]].heapIdx = a
	h.s.nodes[h.items[b]].heapIdx = b
}

// Push implements heap.Interface; x must be an int arena index.
func (h *heapFrontier) Push(x any) {
	i := x.(int)
	h.s.nodes[i].heapIdx = len(h.items)
	h.items = append(h.items, i)
}

// Pop implements heap.Interface.
func (h *heapFrontier) Pop() any {
	old := h.items
	n := len(old)
	i := old[n-1]
	h.items = old[:n-1]
	h.s.nodes[i].heapIdx = -1
	return i
}
