package storage

import (
	"sync"
	"testing"
	"time"

	"github.com/NaveLIL/erez-mdi/models"
)

func TestNewRingBuffer(t *testing.T) {
	rb := NewRingBuffer(60)
	if rb.Capacity() != 60 {
		t.Errorf("Expected capacity 60, got %d", rb.Capacity())
	}
	if rb.Size() != 0 {
		t.Errorf("Expected size 0, got %d", rb.Size())
	}
	if !rb.IsEmpty() {
		t.Error("Expected buffer to be empty")
	}

	// Test default capacity
	rb2 := NewRingBuffer(0)
	if rb2.Capacity() != 256 {
		t.Errorf("Expected default capacity 256, got %d", rb2.Capacity())
	}
}

func TestAdd(t *testing.T) {
	rb := NewRingBuffer(5)

	rb.Add(createTestGesture(1, models.OutcomeCommitted))
	if rb.Size() != 1 {
		t.Errorf("Expected size 1, got %d", rb.Size())
	}

	for i := 2; i <= 5; i++ {
		rb.Add(createTestGesture(models.Handle(i), models.OutcomeCancelled))
	}
	if rb.Size() != 5 {
		t.Errorf("Expected size 5, got %d", rb.Size())
	}
	if !rb.IsFull() {
		t.Error("Expected buffer to be full")
	}

	// Add one more (should overwrite oldest)
	rb.Add(createTestGesture(99, models.OutcomeAborted))
	if rb.Size() != 5 {
		t.Errorf("Expected size 5 after overflow, got %d", rb.Size())
	}
	if latest := rb.GetLatest(); latest.Window != 99 {
		t.Errorf("Expected latest window 99, got %d", latest.Window)
	}

	// nil records are ignored
	rb.Add(nil)
	if rb.GetLatest().Window != 99 {
		t.Error("Expected nil record to be ignored")
	}
}

func TestGetLast(t *testing.T) {
	rb := NewRingBuffer(10)

	for i := 1; i <= 5; i++ {
		rb.Add(createTestGesture(models.Handle(i*10), models.OutcomeCommitted))
	}

	results := rb.GetLast(3)
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	// Should be 30, 40, 50 (in order)
	expected := []models.Handle{30, 40, 50}
	for i, g := range results {
		if g.Window != expected[i] {
			t.Errorf("Expected window %d at index %d, got %d", expected[i], i, g.Window)
		}
	}

	// Test getting more than available
	results = rb.GetLast(100)
	if len(results) != 5 {
		t.Errorf("Expected 5 results when requesting more than available, got %d", len(results))
	}

	// Test getting zero
	if results = rb.GetLast(0); results != nil {
		t.Errorf("Expected nil for GetLast(0), got %v", results)
	}
}

func TestGetLatest(t *testing.T) {
	rb := NewRingBuffer(5)

	if rb.GetLatest() != nil {
		t.Error("Expected nil for empty buffer")
	}

	rb.Add(createTestGesture(25, models.OutcomeDropped))
	latest := rb.GetLatest()
	if latest == nil {
		t.Fatal("Expected non-nil latest")
	}
	if latest.Outcome != models.OutcomeDropped {
		t.Errorf("Expected outcome dropped, got %s", latest.Outcome)
	}
}

func TestSummarize(t *testing.T) {
	rb := NewRingBuffer(10)
	outcomes := []models.Outcome{
		models.OutcomeCommitted,
		models.OutcomeCommitted,
		models.OutcomeCancelled,
		models.OutcomeAborted,
		models.OutcomeDropped,
		models.OutcomeCancelled,
	}
	for i, o := range outcomes {
		rb.Add(createTestGesture(models.Handle(i), o))
	}

	s := rb.Summarize()
	if s.Total != 6 {
		t.Errorf("Expected total 6, got %d", s.Total)
	}
	if s.Committed != 2 || s.Cancelled != 2 || s.Aborted != 1 || s.Dropped != 1 {
		t.Errorf("Expected 2/2/1/1, got %d/%d/%d/%d", s.Committed, s.Cancelled, s.Aborted, s.Dropped)
	}
	if s.ByCommand[models.CommandClose] != 2 {
		t.Errorf("Expected 2 close commands, got %d", s.ByCommand[models.CommandClose])
	}
}

func TestFilter(t *testing.T) {
	rb := NewRingBuffer(10)
	rb.Add(createTestGesture(1, models.OutcomeCommitted))
	menu := createTestGesture(2, models.OutcomeDropped)
	menu.Source = models.SourceMenuBar
	rb.Add(menu)

	got := rb.Filter(func(g *models.GestureRecord) bool {
		return g.Source == models.SourceMenuBar
	})
	if len(got) != 1 || got[0].Window != 2 {
		t.Errorf("Expected only the menu bar gesture, got %+v", got)
	}
}

func TestClear(t *testing.T) {
	rb := NewRingBuffer(5)

	for i := 0; i < 3; i++ {
		rb.Add(createTestGesture(models.Handle(i), models.OutcomeCommitted))
	}
	if rb.Size() != 3 {
		t.Errorf("Expected size 3, got %d", rb.Size())
	}

	rb.Clear()

	if rb.Size() != 0 {
		t.Errorf("Expected size 0 after clear, got %d", rb.Size())
	}
	if !rb.IsEmpty() {
		t.Error("Expected buffer to be empty after clear")
	}
	if rb.GetLatest() != nil {
		t.Error("Expected nil after clear")
	}
}

func TestConcurrentAccess(t *testing.T) {
	rb := NewRingBuffer(100)
	var wg sync.WaitGroup

	// Concurrent writers
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				rb.Add(createTestGesture(models.Handle(id*100+j), models.OutcomeCommitted))
			}
		}(i)
	}

	// Concurrent readers
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = rb.GetLatest()
				_ = rb.GetLast(10)
				_ = rb.Summarize()
			}
		}()
	}

	wg.Wait()

	if rb.Size() != 100 {
		t.Errorf("Expected size 100, got %d", rb.Size())
	}
}

func TestOverflow(t *testing.T) {
	rb := NewRingBuffer(3)

	for i := 1; i <= 5; i++ {
		rb.Add(createTestGesture(models.Handle(i*10), models.OutcomeCommitted))
	}

	if rb.Size() != 3 {
		t.Errorf("Expected size 3, got %d", rb.Size())
	}

	expected := []models.Handle{30, 40, 50}
	for i, g := range rb.GetAll() {
		if g.Window != expected[i] {
			t.Errorf("Expected window %d at index %d, got %d", expected[i], i, g.Window)
		}
	}
}

func TestClone(t *testing.T) {
	rb := NewRingBuffer(5)

	original := createTestGesture(50, models.OutcomeCommitted)
	rb.Add(original)

	// Modify original after adding
	original.Reason = "mutated"

	retrieved := rb.GetLatest()
	if retrieved.Reason != "" {
		t.Errorf("Clone not working, expected empty reason, got %q", retrieved.Reason)
	}

	retrieved.Outcome = models.OutcomeAborted
	if rb.GetLatest().Outcome != models.OutcomeCommitted {
		t.Error("Clone on read not working")
	}
}

func BenchmarkAdd(b *testing.B) {
	rb := NewRingBuffer(256)
	g := createTestGesture(1, models.OutcomeCommitted)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rb.Add(g)
	}
}

func BenchmarkSummarize(b *testing.B) {
	rb := NewRingBuffer(256)
	for i := 0; i < 256; i++ {
		rb.Add(createTestGesture(models.Handle(i), models.OutcomeCommitted))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = rb.Summarize()
	}
}

// Helper function to create a test gesture
func createTestGesture(w models.Handle, outcome models.Outcome) *models.GestureRecord {
	g := &models.GestureRecord{
		Timestamp: time.Now(),
		Window:    w,
		Source:    models.SourceChild,
		Button:    models.ButtonClose,
		Outcome:   outcome,
	}
	if outcome == models.OutcomeCommitted {
		g.Command = models.CommandClose
		g.Target = w
	}
	return g
}
