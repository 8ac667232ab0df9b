package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mitchschoolvic/Studio-Pipeline-sub001/config"
	"github.com/mitchschoolvic/Studio-Pipeline-sub001/waveform"
)

// View renders the full dashboard frame. The section order is load-bearing:
// waveformRegion and listRowAt in model.go assume title, session line, time
// line, spacer, visualizer, spacer, volume, list header, list.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderTitle(),
		m.renderSessionInfo(),
		m.renderTimeStatus(),
		"",
		m.renderVisualizer(),
		"",
		m.renderVolume(),
		m.renderListHeader(),
		m.renderList(),
		m.renderHelp(),
	}

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("ERR: %s", m.err)))
	}

	content := strings.Join(sections, "\n")
	return frameStyle.Width(m.panelWidth() + 4).Render(content)
}

func (m Model) renderTitle() string {
	left := titleStyle.Render("S T U D I O  P I P E L I N E")
	right := dimStyle.Render(fmt.Sprintf("%d sessions", len(m.sessions)))
	return padBetween(left, right, m.panelWidth())
}

func (m Model) renderSessionInfo() string {
	if m.cursor >= len(m.visible) {
		return dimStyle.Render("No session selected")
	}
	s := m.visible[m.cursor]

	name := sessionTitleStyle.Render("● " + s.DisplayName())
	info := badge(s.Status) + dimStyle.Render(" "+s.RecordedAt.Format("2006-01-02 15:04"))
	return padBetween(name, info, m.panelWidth())
}

func (m Model) renderTimeStatus() string {
	snap := m.store.Snapshot()
	total := m.totalDuration(snap)

	var pos time.Duration
	if m.playingID != "" && m.playingID == snap.ID {
		pos = m.player.Position()
	}
	timeStr := fmt.Sprintf("%s / %s", fmtClock(pos.Seconds()), fmtClock(total))

	var status string
	switch {
	case m.player.IsPlaying() && m.player.IsPaused():
		status = statusStyle.Render(" Paused")
	case m.player.IsPlaying():
		status = statusStyle.Render(" Playing")
	default:
		status = dimStyle.Render(" Stopped")
	}

	return padBetween(timeStyle.Render(timeStr), status, m.panelWidth())
}

// renderVisualizer emits exactly waveHeight rows: the waveform panel or the
// live spectrum, depending on the configured mode.
func (m Model) renderVisualizer() string {
	w := m.panelWidth()

	if m.cfg.Visualizer == config.VisSpectrum {
		bands := m.spec.Analyze(m.player.Samples())
		row := m.spec.Render(bands, w)
		rows := blankRows(w, waveHeight)
		rows[waveHeight/2] = row
		return strings.Join(rows, "\n")
	}
	return m.renderWaveform(w, waveHeight)
}

// renderWaveform draws the envelope with the progress cursor and overlays
// store status on top. The panel keeps its full size in every state, so the
// layout never shifts and the region keeps accepting mouse input.
func (m Model) renderWaveform(w, h int) string {
	snap := m.store.Snapshot()

	progress := 0.0
	if m.playingID != "" && m.playingID == snap.ID {
		progress = waveform.Progress(m.player.Position().Seconds(), m.totalDuration(snap))
	}

	frame := m.rend.Frame(w, h, progress)
	var rows []string
	if frame == "" {
		rows = blankRows(w, h)
	} else {
		rows = strings.Split(frame, "\n")
	}

	var overlay string
	switch snap.Status {
	case waveform.StatusLoading:
		overlay = "waveform loading…"
	case waveform.StatusUnavailable:
		overlay = snap.Err + "  [r to retry]"
	}
	if overlay != "" {
		rows[h/2] = centerText(overlayStyle.Render(overlay), lipgloss.Width(overlay), w)
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderVolume() string {
	vol := m.player.Volume()
	frac := max(0, min(1, (vol+30)/36))

	barW := m.panelWidth() - 12
	if barW < 4 {
		barW = 4
	}
	filled := int(frac * float64(barW))
	bar := volBarStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", barW-filled))
	return labelStyle.Render("VOL ") + bar + dimStyle.Render(fmt.Sprintf(" %+.1fdB", vol))
}

func (m Model) renderListHeader() string {
	sortLabel := activeToggle.Render(fmt.Sprintf("[sort: %s]", m.sortMode))

	filterLabel := dimStyle.Render("[filter: all]")
	if m.filter.Status != nil {
		filterLabel = activeToggle.Render(fmt.Sprintf("[filter: %s]", *m.filter.Status))
	}

	return dimStyle.Render("── Sessions ── ") + sortLabel + " " + filterLabel + " " + dimStyle.Render("──")
}

func (m Model) renderList() string {
	if len(m.visible) == 0 {
		return dimStyle.Render("  No sessions match")
	}

	visible := min(listRows, len(m.visible))
	scroll := m.scroll
	if scroll+visible > len(m.visible) {
		scroll = len(m.visible) - visible
	}
	scroll = max(0, scroll)

	lines := make([]string, 0, visible)
	for i := scroll; i < scroll+visible; i++ {
		s := m.visible[i]

		prefix := "  "
		style := listItemStyle
		if s.ID == m.playingID && m.player.IsPlaying() {
			prefix = " "
			style = listActiveStyle
		}
		if i == m.cursor {
			style = listSelectedStyle
		}

		name := s.DisplayName()
		maxW := m.panelWidth() - 22
		if runes := []rune(name); len(runes) > maxW && maxW > 1 {
			name = string(runes[:maxW-1]) + "…"
		}

		line := style.Render(fmt.Sprintf("%s%-*s", prefix, max(1, maxW), name)) +
			" " + badge(s.Status) + " " + dimStyle.Render(fmtClock(s.Duration))
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderHelp() string {
	return helpStyle.Render("[↵]Play [Spc]Pause [←→]Seek [+-]Vol [s]Sort [f]Filter [v]View [r]Retry [g]Refresh [q]Quit")
}

// fmtClock formats seconds as mm:ss.
func fmtClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	d := time.Duration(seconds * float64(time.Second))
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// padBetween joins left and right with enough spaces to fill width.
func padBetween(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// centerText centers a rendered string of the given visible width within w.
func centerText(s string, visible, w int) string {
	if visible >= w {
		return s
	}
	left := (w - visible) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-visible-left)
}

// blankRows returns h rows of w spaces.
func blankRows(w, h int) []string {
	rows := make([]string, h)
	for i := range rows {
		rows[i] = strings.Repeat(" ", w)
	}
	return rows
}
