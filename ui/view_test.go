package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/mitchschoolvic/Studio-Pipeline-sub001/session"
)

func TestFmtClock(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{60, "01:00"},
		{754, "12:34"},
		{-5, "00:00"},
	}
	for _, tt := range tests {
		if got := fmtClock(tt.seconds); got != tt.want {
			t.Errorf("fmtClock(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestCenterText(t *testing.T) {
	got := centerText("abc", 3, 9)
	if lipgloss.Width(got) != 9 || !strings.Contains(got, "abc") {
		t.Errorf("centerText: %q", got)
	}
	// Wider than the panel passes through untouched.
	if got := centerText("abcdef", 6, 3); got != "abcdef" {
		t.Errorf("oversized centerText: %q", got)
	}
}

func TestPadBetween(t *testing.T) {
	got := padBetween("L", "R", 10)
	if lipgloss.Width(got) != 10 {
		t.Errorf("padBetween width = %d, want 10", lipgloss.Width(got))
	}
	// Overflow still keeps a single separating space.
	if got := padBetween("LEFT", "RIGHT", 3); got != "LEFT RIGHT" {
		t.Errorf("overflow padBetween: %q", got)
	}
}

func TestBlankRows(t *testing.T) {
	rows := blankRows(4, 3)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for _, r := range rows {
		if r != "    " {
			t.Errorf("row %q, want four spaces", r)
		}
	}
}

func TestCycleFilterVisitsAllStatuses(t *testing.T) {
	var m Model

	seen := map[session.Status]bool{}
	for range 4 {
		m.cycleFilter()
		if m.filter.Status == nil {
			t.Fatal("filter cleared mid-cycle")
		}
		seen[*m.filter.Status] = true
	}
	if len(seen) != 4 {
		t.Errorf("cycle visited %d statuses, want 4", len(seen))
	}
	m.cycleFilter()
	if m.filter.Status != nil {
		t.Error("cycle did not return to all")
	}
}

func TestListRowAt(t *testing.T) {
	m := Model{visible: make([]session.Session, 5)}

	listTop := frameContentY + headerRows + waveHeight + 3
	if _, ok := m.listRowAt(listTop - 1); ok {
		t.Error("row above the list hit-tested as a session")
	}
	if idx, ok := m.listRowAt(listTop); !ok || idx != 0 {
		t.Errorf("first list row: idx=%d ok=%v", idx, ok)
	}
	if idx, ok := m.listRowAt(listTop + 4); !ok || idx != 4 {
		t.Errorf("last list row: idx=%d ok=%v", idx, ok)
	}
	if _, ok := m.listRowAt(listTop + 5); ok {
		t.Error("row past the list hit-tested as a session")
	}
}
