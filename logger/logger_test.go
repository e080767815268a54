package logger

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	"github.com/NaveLIL/erez-mdi/models"
)

func TestParseMaxSize(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 10},
		{"25MB", 25},
		{"0MB", 10},
		{"huge", 10},
	}
	for _, tt := range tests {
		if got := ParseMaxSize(tt.in); got != tt.want {
			t.Errorf("ParseMaxSize(%q): Expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestWriteGesturesCSV(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	records := []*models.GestureRecord{
		{
			Timestamp: ts,
			Window:    0x1234,
			Target:    0x1234,
			Source:    models.SourceChild,
			Button:    models.ButtonClose,
			Outcome:   models.OutcomeCommitted,
			Command:   models.CommandClose,
		},
		{
			Timestamp: ts,
			Window:    0x10,
			Source:    models.SourceMenuBar,
			Button:    models.ButtonMinimize,
			Outcome:   models.OutcomeDropped,
			Reason:    "no maximized document",
		},
	}

	var buf bytes.Buffer
	if err := WriteGesturesCSV(&buf, records); err != nil {
		t.Fatalf("WriteGesturesCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := [][]string{
		gestureHeader,
		{"2024-03-01 12:30:00.000", "child", "0x00001234", "close", "committed", "close", "0x00001234", ""},
		{"2024-03-01 12:30:00.000", "menubar", "0x00000010", "minimize", "dropped", "", "", "no maximized document"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestExportGesturesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "gestures.csv")
	l := &Logger{Logger: logrus.New()}
	l.SetOutput(&bytes.Buffer{})

	if err := l.ExportGesturesCSV(path, nil); err != nil {
		t.Fatalf("ExportGesturesCSV: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("Timestamp,Source")) {
		t.Errorf("Expected CSV header, got %q", data)
	}
}

func TestLogBufferWraps(t *testing.T) {
	b := NewLogBuffer(3)
	for _, msg := range []string{"a", "b", "c", "d"} {
		b.Add(LogEntry{Level: "info", Message: msg})
	}

	all := b.GetAll()
	if len(all) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(all))
	}
	var got []string
	for _, e := range all {
		got = append(got, e.Message)
	}
	if diff := cmp.Diff([]string{"b", "c", "d"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	b.Clear()
	if b.GetAll() != nil {
		t.Error("Expected empty buffer after Clear")
	}
}

func TestBufferedHookCapturesComponent(t *testing.T) {
	l := &Logger{Logger: logrus.New(), gestures: true}
	l.SetOutput(&bytes.Buffer{})
	buf := l.AttachBuffer(10)

	l.Component("chrome").Info("painted")
	l.Gesture(&models.GestureRecord{
		Source:  models.SourceChild,
		Button:  models.ButtonMinimize,
		Outcome: models.OutcomeAborted,
	})

	chrome := buf.GetByComponent("chrome")
	if len(chrome) != 1 || chrome[0].Message != "painted" {
		t.Errorf("Expected one chrome entry, got %+v", chrome)
	}
	press := buf.GetByComponent("press")
	if len(press) != 1 {
		t.Fatalf("Expected one press entry, got %d", len(press))
	}
	if press[0].Level != "warning" {
		t.Errorf("Expected aborted press at warning, got %s", press[0].Level)
	}
}

func TestChromeAndLayoutHelpers(t *testing.T) {
	l := &Logger{Logger: logrus.New()}
	l.SetOutput(&bytes.Buffer{})
	buf := l.AttachBuffer(10)

	l.Layout("hidden at info")
	l.Chrome("palette %s", "dark")
	l.SetLevel(logrus.DebugLevel)
	l.Layout("narrow %d", 80)

	chrome := buf.GetByComponent("chrome")
	if len(chrome) != 1 || chrome[0].Message != "palette dark" || chrome[0].Level != "info" {
		t.Errorf("Expected one info chrome entry, got %+v", chrome)
	}
	layout := buf.GetByComponent("layout")
	if len(layout) != 1 || layout[0].Message != "narrow 80" || layout[0].Level != "debug" {
		t.Errorf("Expected one debug layout entry, got %+v", layout)
	}
}
