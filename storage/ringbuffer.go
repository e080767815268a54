// Package storage provides thread-safe storage for press gesture history.
package storage

import (
	"sync"

	"github.com/NaveLIL/erez-mdi/models"
)

// RingBuffer is a thread-safe circular buffer of finished gestures.
type RingBuffer struct {
	mu       sync.RWMutex
	data     []*models.GestureRecord
	head     int // Index where the next element will be written
	count    int // Number of elements in the buffer
	capacity int
}

// NewRingBuffer creates a new RingBuffer with the specified capacity.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 256
	}
	return &RingBuffer{
		data:     make([]*models.GestureRecord, capacity),
		capacity: capacity,
	}
}

// Add appends a gesture. If the buffer is full, the oldest entry is
// overwritten.
func (rb *RingBuffer) Add(rec *models.GestureRecord) {
	if rec == nil {
		return
	}
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.data[rb.head] = rec.Clone()
	rb.head = (rb.head + 1) % rb.capacity
	if rb.count < rb.capacity {
		rb.count++
	}
}

// GetLast returns the last n gestures in chronological order.
// If n is greater than the number stored, all are returned.
func (rb *RingBuffer) GetLast(n int) []*models.GestureRecord {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	if n <= 0 || rb.count == 0 {
		return nil
	}

	if n > rb.count {
		n = rb.count
	}

	result := make([]*models.GestureRecord, n)

	// Calculate the starting index for the oldest of the n elements we want
	start := (rb.head - n + rb.capacity) % rb.capacity

	for i := 0; i < n; i++ {
		idx := (start + i) % rb.capacity
		result[i] = rb.data[idx].Clone()
	}

	return result
}

// GetLatest returns the most recent gesture, or nil if there is none.
func (rb *RingBuffer) GetLatest() *models.GestureRecord {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	if rb.count == 0 {
		return nil
	}

	idx := (rb.head - 1 + rb.capacity) % rb.capacity
	return rb.data[idx].Clone()
}

// GetAll returns all stored gestures in chronological order.
func (rb *RingBuffer) GetAll() []*models.GestureRecord {
	return rb.GetLast(rb.Size())
}

// Summary counts stored gestures per outcome.
type Summary struct {
	Total     int
	Committed int
	Cancelled int
	Aborted   int
	Dropped   int
	// ByCommand counts committed gestures per posted command.
	ByCommand map[models.Command]int
}

// Summarize counts the stored gestures by outcome and command.
func (rb *RingBuffer) Summarize() Summary {
	s := Summary{ByCommand: make(map[models.Command]int)}
	for _, g := range rb.GetAll() {
		s.Total++
		switch g.Outcome {
		case models.OutcomeCommitted:
			s.Committed++
			s.ByCommand[g.Command]++
		case models.OutcomeCancelled:
			s.Cancelled++
		case models.OutcomeAborted:
			s.Aborted++
		case models.OutcomeDropped:
			s.Dropped++
		}
	}
	return s
}

// Filter returns stored gestures for which keep reports true.
func (rb *RingBuffer) Filter(keep func(*models.GestureRecord) bool) []*models.GestureRecord {
	var out []*models.GestureRecord
	for _, g := range rb.GetAll() {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}

// Clear removes all entries from the buffer.
func (rb *RingBuffer) Clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for i := range rb.data {
		rb.data[i] = nil
	}
	rb.head = 0
	rb.count = 0
}

// Size returns the number of elements currently in the buffer.
func (rb *RingBuffer) Size() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count
}

// Capacity returns the maximum capacity of the buffer.
func (rb *RingBuffer) Capacity() int {
	return rb.capacity
}

// IsFull returns true if the buffer has reached its capacity.
func (rb *RingBuffer) IsFull() bool {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count == rb.capacity
}

// IsEmpty returns true if the buffer has no elements.
func (rb *RingBuffer) IsEmpty() bool {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count == 0
}
