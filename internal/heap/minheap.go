// Package heap implements an indexed binary min-heap used as the Dijkstra
// priority queue. Priorities are held outside the heap, in the caller's own
// distance array, and referenced by key; the heap only tracks key order and
// a key→position index to support O(log N) decrease-key.
package heap

// IndexedMinHeap is a binary min-heap over integer keys in [0, N), ordered by
// priorities supplied externally on every operation.
type IndexedMinHeap struct {
	heap      []int // heap[i] = key stored at heap position i
	positions []int // positions[key] = heap position of key, or -1 if absent
}

const notInHeap = -1

// WithCapacity returns an empty heap sized for keys in [0, n).
func WithCapacity(n int) *IndexedMinHeap {
	positions := make([]int, n)
	for i := range positions {
		positions[i] = notInHeap
	}
	return &IndexedMinHeap{
		heap:      make([]int, 0, n),
		positions: positions,
	}
}

// IsEmpty reports whether the heap holds no keys.
func (h *IndexedMinHeap) IsEmpty() bool {
	return len(h.heap) == 0
}

// Contains reports whether key is currently in the heap.
func (h *IndexedMinHeap) Contains(key int) bool {
	return h.positions[key] != notInHeap
}

// Push inserts key into the heap, assuming it is not already present.
func (h *IndexedMinHeap) Push(key int, priorities []int) {
	pos := len(h.heap)
	h.heap = append(h.heap, key)
	h.positions[key] = pos
	h.siftUp(pos, priorities)
}

// Pop removes and returns the key with the smallest priority.
func (h *IndexedMinHeap) Pop(priorities []int) int {
	top := h.heap[0]
	last := len(h.heap) - 1
	h.swap(0, last)
	h.heap = h.heap[:last]
	h.positions[top] = notInHeap
	if len(h.heap) > 0 {
		h.siftDown(0, priorities)
	}
	return top
}

// DecreaseKey re-heapifies after key's priority has decreased in place.
func (h *IndexedMinHeap) DecreaseKey(key int, priorities []int) {
	h.siftUp(h.positions[key], priorities)
}

// InsertOrUpdate pushes key if absent, otherwise re-heapifies it in place
// after its priority has decreased.
func (h *IndexedMinHeap) InsertOrUpdate(key int, priorities []int) {
	if h.Contains(key) {
		h.DecreaseKey(key, priorities)
	} else {
		h.Push(key, priorities)
	}
}

func (h *IndexedMinHeap) siftUp(pos int, priorities []int) {
	for pos > 0 {
		parent := parentOf(pos)
		if priorities[h.heap[pos]] >= priorities[h.heap[parent]] {
			break
		}
		h.swap(pos, parent)
		pos = parent
	}
}

func (h *IndexedMinHeap) siftDown(pos int, priorities []int) {
	n := len(h.heap)
	for {
		left := 2*pos + 1
		right := 2*pos + 2
		smallest := pos
		if left < n && priorities[h.heap[left]] < priorities[h.heap[smallest]] {
			smallest = left
		}
		if right < n && priorities[h.heap[right]] < priorities[h.heap[smallest]] {
			smallest = right
		}
		if smallest == pos {
			return
		}
		h.swap(pos, smallest)
		pos = smallest
	}
}

func (h *IndexedMinHeap) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.positions[h.heap[i]] = i
	h.positions[h.heap[j]] = j
}

func parentOf(pos int) int {
	if pos == 0 {
		return 0
	}
	return (pos - 1) / 2
}
