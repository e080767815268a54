package logger

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// LogEntry represents a log entry for the in-memory buffer.
type LogEntry struct {
	Timestamp time.Time
	Level     string
	Component string
	Message   string
}

// LogBuffer is a circular buffer for storing recent log entries.
type LogBuffer struct {
	entries  []LogEntry
	capacity int
	head     int
	count    int
	mu       sync.RWMutex
}

// NewLogBuffer creates a new log buffer with the specified capacity.
func NewLogBuffer(capacity int) *LogBuffer {
	if capacity <= 0 {
		capacity = 100
	}
	return &LogBuffer{
		entries:  make([]LogEntry, capacity),
		capacity: capacity,
	}
}

// Add adds a new log entry to the buffer.
func (b *LogBuffer) Add(e LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	b.entries[b.head] = e
	b.head = (b.head + 1) % b.capacity
	if b.count < b.capacity {
		b.count++
	}
}

// GetAll returns all log entries in chronological order.
func (b *LogBuffer) GetAll() []LogEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return nil
	}

	result := make([]LogEntry, b.count)
	start := (b.head - b.count + b.capacity) % b.capacity

	for i := 0; i < b.count; i++ {
		result[i] = b.entries[(start+i)%b.capacity]
	}

	return result
}

// GetByComponent returns entries logged through Component(name).
func (b *LogBuffer) GetByComponent(name string) []LogEntry {
	var filtered []LogEntry
	for _, e := range b.GetAll() {
		if e.Component == name {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Clear removes all entries from the buffer.
func (b *LogBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.head = 0
	b.count = 0
}

// BufferedHook is a logrus hook that writes entries to a LogBuffer.
type BufferedHook struct {
	buffer *LogBuffer
}

// NewBufferedHook creates a new BufferedHook.
func NewBufferedHook(capacity int) *BufferedHook {
	return &BufferedHook{
		buffer: NewLogBuffer(capacity),
	}
}

// Levels returns the log levels this hook should be called for.
func (h *BufferedHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire is called when a log entry is made.
func (h *BufferedHook) Fire(entry *logrus.Entry) error {
	component := ""
	if c, ok := entry.Data["component"]; ok {
		component = fmt.Sprint(c)
	}
	h.buffer.Add(LogEntry{
		Timestamp: entry.Time,
		Level:     entry.Level.String(),
		Component: component,
		Message:   entry.Message,
	})
	return nil
}

// GetBuffer returns the underlying log buffer.
func (h *BufferedHook) GetBuffer() *LogBuffer {
	return h.buffer
}
