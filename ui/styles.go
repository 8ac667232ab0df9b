package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mitchschoolvic/Studio-Pipeline-sub001/session"
)

// Dashboard palette using standard ANSI terminal colors (0-15) so it adapts
// to the user's terminal theme.
var (
	colorBorder = lipgloss.ANSIColor(8)  // bright black (dark gray)
	colorTitle  = lipgloss.ANSIColor(10) // bright green
	colorText   = lipgloss.ANSIColor(7)  // white (light gray)
	colorDim    = lipgloss.ANSIColor(8)  // bright black (dark gray)
	colorAccent = lipgloss.ANSIColor(11) // bright yellow
	colorActive = lipgloss.ANSIColor(10) // bright green
	colorVolume = lipgloss.ANSIColor(2)  // green

	// Waveform: played bars light up, the rest stays dim.
	colorWaveBase     = lipgloss.ANSIColor(8)
	colorWaveProgress = lipgloss.ANSIColor(10)
	colorWaveCursor   = lipgloss.ANSIColor(11)

	// Spectrum gradient: green -> yellow -> red
	spectrumLow  = lipgloss.ANSIColor(10)
	spectrumMid  = lipgloss.ANSIColor(11)
	spectrumHigh = lipgloss.ANSIColor(9)
)

// Lip Gloss styles
var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorTitle).
			Bold(true)

	sessionTitleStyle = lipgloss.NewStyle().
				Foreground(colorAccent)

	timeStyle = lipgloss.NewStyle().
			Foreground(colorText)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorActive).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	volBarStyle = lipgloss.NewStyle().
			Foreground(colorVolume)

	activeToggle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	listActiveStyle = lipgloss.NewStyle().
			Foreground(colorActive).
			Bold(true)

	listItemStyle = lipgloss.NewStyle().
			Foreground(colorText)

	listSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.ANSIColor(9)) // bright red

	waveBaseStyle     = lipgloss.NewStyle().Foreground(colorWaveBase)
	waveProgressStyle = lipgloss.NewStyle().Foreground(colorWaveProgress)
	waveCursorStyle   = lipgloss.NewStyle().Foreground(colorWaveCursor)
	overlayStyle      = lipgloss.NewStyle().Foreground(colorText).Bold(true)
)

// Per-status badge styles for the session list.
var badgeStyles = map[session.Status]lipgloss.Style{
	session.StatusRecording:  lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(9)),
	session.StatusProcessing: lipgloss.NewStyle().Foreground(colorAccent),
	session.StatusReady:      lipgloss.NewStyle().Foreground(colorActive),
	session.StatusFailed:     lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(9)).Bold(true),
}

func badge(st session.Status) string {
	style, ok := badgeStyles[st]
	if !ok {
		style = dimStyle
	}
	return style.Render("[" + st.String() + "]")
}
