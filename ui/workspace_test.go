package ui

import (
	"encoding/binary"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/NaveLIL/erez-mdi/storage"
)

func TestActionCommandIDsRoundTrip(t *testing.T) {
	for _, a := range []Action{ActionNewDocument, ActionNextDocument, ActionCascade, ActionTile, ActionExit} {
		id := a.commandID()
		if id == 0 {
			t.Fatalf("Expected a command id for %s", a)
		}
		if id >= 0xFF00 {
			t.Errorf("%s: id %#x collides with MDI document ids", a, id)
		}
		if got := actionFor(id); got != a {
			t.Errorf("Expected %s back from id %d, got %s", a, id, got)
		}
	}
	if ActionNone.commandID() != 0 {
		t.Error("Expected no command id for ActionNone")
	}
	if got := actionFor(0xFF00); got != ActionNone {
		t.Errorf("Expected document id to map to none, got %s", got)
	}
	if cmdTile != ActionTile.commandID() {
		t.Errorf("Expected menu id %d to match action id %d", cmdTile, ActionTile.commandID())
	}
}

func TestDocumentTitle(t *testing.T) {
	tests := []struct {
		template string
		n        int
		want     string
	}{
		{"Document %d", 3, "Document 3"},
		{"", 1, "Document 1"},
		{"Untitled", 2, "Untitled 2"},
		{"Sheet %d of the day", 4, "Sheet 4 of the day"},
	}
	for _, tt := range tests {
		if got := DocumentTitle(tt.template, tt.n); got != tt.want {
			t.Errorf("DocumentTitle(%q, %d): Expected %q, got %q", tt.template, tt.n, tt.want, got)
		}
	}
}

func TestFormatTooltip(t *testing.T) {
	if got := FormatTooltip("WS", storage.Summary{}); got != "WS\nNo button presses yet" {
		t.Errorf("Unexpected empty tooltip %q", got)
	}
	got := FormatTooltip("WS", storage.Summary{Total: 5, Committed: 3, Cancelled: 1, Dropped: 1})
	want := "WS\nPresses: 5\nCommitted: 3 | Cancelled: 1\nAborted: 0 | Dropped: 1"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestEncodeICO(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xFF})

	ico := EncodeICO(img)

	if got := binary.LittleEndian.Uint16(ico[2:]); got != 1 {
		t.Errorf("Expected icon type 1, got %d", got)
	}
	if ico[6] != 4 || ico[7] != 2 {
		t.Errorf("Expected 4x2 entry, got %dx%d", ico[6], ico[7])
	}
	andSize := 4 * 2 // one padded 32-bit row per line
	if want := 6 + 16 + 40 + 4*2*4 + andSize; len(ico) != want {
		t.Fatalf("Expected %d bytes, got %d", want, len(ico))
	}
	if got := binary.LittleEndian.Uint32(ico[22+8:]); got != 4 {
		t.Errorf("Expected doubled height 4 in header, got %d", got)
	}
	// Top-left pixel is stored in the last row.
	i := 22 + 40 + (1*4+0)*4
	if got := ico[i : i+4]; got[0] != 0x33 || got[1] != 0x22 || got[2] != 0x11 || got[3] != 0xFF {
		t.Errorf("Expected BGRA 33 22 11 FF, got % X", got)
	}
}

func TestFormatTooltipLongTitle(t *testing.T) {
	title := strings.Repeat("x", 80)
	got := FormatTooltip(title, storage.Summary{})
	first := strings.SplitN(got, "\n", 2)[0]
	if len(first) != 48 || !strings.HasSuffix(first, "...") {
		t.Errorf("Expected a 48-character title ending in ..., got %q", first)
	}
}
