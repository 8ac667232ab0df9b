package waveform

import (
	"strings"
	"testing"
)

func testRenderer() *Renderer {
	// Zero-value styles render unstyled text, which keeps assertions on the
	// raw cell content.
	return &Renderer{BarWidth: 1, BarGap: 1}
}

func TestProgressClamp(t *testing.T) {
	tests := []struct {
		t, total, want float64
	}{
		{0, 10, 0},
		{5, 10, 0.5},
		{10, 10, 1},
		{15, 10, 1}, // media trimmed after peak generation
		{-2, 10, 0},
		{3, 0, 0},
		{3, -1, 0},
	}
	for _, tt := range tests {
		if got := Progress(tt.t, tt.total); got != tt.want {
			t.Errorf("Progress(%v, %v) = %v, want %v", tt.t, tt.total, got, tt.want)
		}
	}
}

func TestTimeAtEdges(t *testing.T) {
	const left, width = 5, 41
	const total = 120.0

	if got := TimeAt(left, left, width, total); got != 0 {
		t.Errorf("left edge: got %v, want 0", got)
	}
	if got := TimeAt(left+width-1, left, width, total); got != total {
		t.Errorf("right edge: got %v, want %v", got, total)
	}
	mid := TimeAt(left+(width-1)/2, left, width, total)
	if mid < total/2-2 || mid > total/2+2 {
		t.Errorf("midpoint: got %v, want ~%v", mid, total/2)
	}

	// Outside the panel clamps to the edges; a drag stays usable after the
	// pointer leaves the panel.
	if got := TimeAt(left-10, left, width, total); got != 0 {
		t.Errorf("past left edge: got %v, want 0", got)
	}
	if got := TimeAt(left+width+10, left, width, total); got != total {
		t.Errorf("past right edge: got %v, want %v", got, total)
	}
	if got := TimeAt(7, 5, 1, total); got != 0 {
		t.Errorf("degenerate width: got %v, want 0", got)
	}
}

func TestFrameEmptyStates(t *testing.T) {
	r := testRenderer()
	if got := r.Frame(40, 6, 0); got != "" {
		t.Errorf("no envelope: got %q, want empty", got)
	}
	r.SetEnvelope(Envelope{Peaks: []float64{0.5}, Duration: 1})
	if got := r.Frame(0, 6, 0); got != "" {
		t.Errorf("zero width: got %q, want empty", got)
	}
	if got := r.Frame(40, 0, 0); got != "" {
		t.Errorf("zero height: got %q, want empty", got)
	}
}

func TestFrameDimensions(t *testing.T) {
	r := testRenderer()
	r.SetEnvelope(Envelope{Peaks: []float64{0.2, 0.9, 0.4, 0.8}, Duration: 4})

	const width, height = 30, 5
	frame := r.Frame(width, height, 0)
	rows := strings.Split(frame, "\n")
	if len(rows) != height {
		t.Fatalf("frame has %d rows, want %d", len(rows), height)
	}
	for i, row := range rows {
		if n := len([]rune(row)); n != width {
			t.Errorf("row %d is %d cells wide, want %d", i, n, width)
		}
	}
}

func TestFrameCursorSuppressedAtBounds(t *testing.T) {
	r := testRenderer()
	r.SetEnvelope(Envelope{Peaks: []float64{0.5, 0.5, 0.5, 0.5}, Duration: 4})

	if frame := r.Frame(20, 4, 0); strings.ContainsRune(frame, cursorRune) {
		t.Error("cursor drawn at progress 0")
	}
	if frame := r.Frame(20, 4, 1); strings.ContainsRune(frame, cursorRune) {
		t.Error("cursor drawn at progress 1")
	}
	if frame := r.Frame(20, 4, 0.5); !strings.ContainsRune(frame, cursorRune) {
		t.Error("cursor missing at progress 0.5")
	}
}

func TestFrameMemoHit(t *testing.T) {
	r := testRenderer()
	r.SetEnvelope(Envelope{Peaks: []float64{0.3, 0.6}, Duration: 2})

	a := r.Frame(20, 4, 0.25)
	b := r.Frame(20, 4, 0.25)
	if a != b {
		t.Error("identical frame inputs produced different output")
	}
	// Any input change invalidates the memo.
	if c := r.Frame(20, 4, 0.5); c == a {
		t.Error("progress change did not invalidate the memo")
	}
	r.SetEnvelope(Envelope{Peaks: []float64{0.9, 0.1}, Duration: 2})
	if d := r.Frame(20, 4, 0.5); d == a {
		t.Error("envelope change did not invalidate the memo")
	}
}

func TestFrameSilenceKeepsCenterLine(t *testing.T) {
	r := testRenderer()
	r.SetEnvelope(Envelope{Peaks: make([]float64, 16), Duration: 8})

	frame := r.Frame(16, 4, 0)
	if strings.TrimSpace(frame) == "" {
		t.Error("all-zero envelope rendered nothing; want a minimum-height line")
	}
}

func TestDragLifecycle(t *testing.T) {
	var d Drag
	if d.Active() {
		t.Error("fresh drag is active")
	}
	d.Start()
	if !d.Active() {
		t.Error("drag inactive after Start")
	}
	d.Stop()
	if d.Active() {
		t.Error("drag active after Stop")
	}
}
