// Package ui implements the Bubbletea dashboard for the studio pipeline
// monitor: a session list, playback controls, and the waveform panel with
// its progress cursor and mouse seeking.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mitchschoolvic/Studio-Pipeline-sub001/config"
	"github.com/mitchschoolvic/Studio-Pipeline-sub001/player"
	"github.com/mitchschoolvic/Studio-Pipeline-sub001/session"
	"github.com/mitchschoolvic/Studio-Pipeline-sub001/waveform"
)

// Layout geometry. Mouse hit-testing depends on the row order View builds,
// so the header block above the visualizer is sized here, not in view.go.
const (
	frameContentX = 3 // frame border + horizontal padding
	frameContentY = 2 // frame border + vertical padding
	headerRows    = 4 // title, session line, time line, spacer
	waveHeight    = 6 // visualizer panel height in cells
	listRows      = 8 // visible session rows
	minPanelWidth = 30

	seekStep   = 5 * time.Second
	volumeStep = 1.0 // dB
)

type tickMsg time.Time

type sessionsMsg struct {
	sessions []session.Session
	err      error
}

type feedMsg session.Event

// Model is the Bubbletea model for the dashboard.
type Model struct {
	cfg     config.Config
	cfgPath string
	log     *slog.Logger

	client *session.Client
	feed   *session.Feed
	store  *waveform.Store
	player *player.Player

	rend *waveform.Renderer
	spec *Spectrum
	drag *waveform.Drag
	// seek receives the requested position in seconds whenever a seek
	// gesture fires. The callback's owner moves the player; the waveform
	// code never seeks on its own.
	seek func(seconds float64)

	sessions []session.Session // everything the backend knows about
	visible  []session.Session // after filter + sort
	filter   session.Filter
	sortMode session.SortMode

	cursor    int
	scroll    int
	playingID string // session whose proxy audio is loaded in the player
	envID     string // session whose envelope the renderer holds

	width  int
	height int

	err      error
	quitting bool
}

// NewModel wires the dashboard to its collaborators.
func NewModel(cfg config.Config, cfgPath string, log *slog.Logger,
	client *session.Client, feed *session.Feed, store *waveform.Store, p *player.Player) Model {

	m := Model{
		cfg:     cfg,
		cfgPath: cfgPath,
		log:     log,
		client:  client,
		feed:    feed,
		store:   store,
		player:  p,
		spec:    NewSpectrum(44100),
		drag:    &waveform.Drag{},
		rend: &waveform.Renderer{
			BarWidth: cfg.BarWidth,
			BarGap:   cfg.BarGap,
			Base:     waveBaseStyle,
			Progress: waveProgressStyle,
			Cursor:   waveCursorStyle,
		},
	}
	m.seek = func(seconds float64) {
		if err := p.SeekTo(time.Duration(seconds * float64(time.Second))); err != nil {
			log.Warn("seek failed", "seconds", seconds, "error", err)
		}
	}
	p.SetVolume(cfg.VolumeDB)
	return m
}

// Init starts the frame timer, the initial session fetch, and the feed
// subscription, and requests the terminal size so the viewport is known
// before anything loads.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.fetchSessions(), m.waitFeed(), tea.WindowSize())
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Duration(m.cfg.TickMS)*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetchSessions() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		sessions, err := client.Sessions(ctx)
		return sessionsMsg{sessions: sessions, err: err}
	}
}

// waitFeed blocks on the feed channel and resubscribes after every event.
func (m Model) waitFeed() tea.Cmd {
	feed := m.feed
	return func() tea.Msg {
		ev, ok := <-feed.Events()
		if !ok {
			return nil
		}
		return feedMsg(ev)
	}
}

// Update handles messages: keys, mouse, frame ticks, and backend updates.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		if m.quitting {
			return m, tea.Quit
		}
		return m, cmd

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// The next tick redraws at the new size; no explicit redraw here.
		return m, nil

	case sessionsMsg:
		if msg.err != nil {
			m.err = msg.err
			m.log.Warn("session listing failed", "error", msg.err)
			return m, nil
		}
		m.err = nil
		m.sessions = msg.sessions
		m.rebuildList()
		return m, nil

	case feedMsg:
		updated, known := session.Event(msg).Apply(m.sessions)
		if !known {
			m.log.Warn("unknown feed event kind", "kind", msg.Type)
		}
		m.sessions = updated
		m.rebuildList()
		return m, m.waitFeed()

	case tickMsg:
		m.syncEnvelope()
		if m.player.IsPlaying() && !m.player.IsPaused() && m.player.TrackDone() {
			// Proxy audio ran out; a monitor stops rather than auto-advancing.
			m.player.Stop()
			m.playingID = ""
		}
		return m, m.tickCmd()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		m.savePrefs()
		m.player.Stop()
		m.quitting = true

	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)

	case "enter":
		m.playSelected()
	case " ":
		m.player.TogglePause()

	case "left":
		m.player.Seek(-seekStep)
	case "right":
		m.player.Seek(seekStep)

	case "+", "=":
		m.player.SetVolume(m.player.Volume() + volumeStep)
	case "-":
		m.player.SetVolume(m.player.Volume() - volumeStep)

	case "s":
		m.sortMode = m.sortMode.Next()
		m.rebuildList()
	case "f":
		m.cycleFilter()
		m.rebuildList()
	case "v":
		if m.cfg.Visualizer == config.VisWaveform {
			m.cfg.Visualizer = config.VisSpectrum
		} else {
			m.cfg.Visualizer = config.VisWaveform
		}
		m.savePrefs()
	case "r":
		m.store.Retry()
	case "g":
		return m.fetchSessions()
	}
	return nil
}

// handleMouse owns the seek gesture. A press inside the waveform panel
// starts a drag and emits a seek; motion while dragging re-emits, even
// outside the panel bounds; release ends the drag and emits nothing (the
// last motion already carried the final position).
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-1)
		return
	case tea.MouseButtonWheelDown:
		m.moveCursor(1)
		return
	}

	x, y, w, h := m.waveformRegion()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if msg.Y >= y && msg.Y < y+h && msg.X >= x && msg.X < x+w {
			m.drag.Start()
			m.emitSeek(msg.X)
			return
		}
		if row, ok := m.listRowAt(msg.Y); ok {
			m.setCursor(row)
		}
	case tea.MouseActionMotion:
		if m.drag.Active() {
			m.emitSeek(msg.X)
		}
	case tea.MouseActionRelease:
		m.drag.Stop()
	}
}

func (m *Model) emitSeek(mouseX int) {
	if m.cfg.Visualizer != config.VisWaveform {
		return
	}
	x, _, w, _ := m.waveformRegion()
	total := m.totalDuration(m.store.Snapshot())
	if total <= 0 {
		return
	}
	m.seek(waveform.TimeAt(mouseX, x, w, total))
}

// waveformRegion returns the visualizer panel's screen rectangle.
func (m Model) waveformRegion() (x, y, w, h int) {
	return frameContentX, frameContentY + headerRows, m.panelWidth(), waveHeight
}

// listRowAt maps a screen row to a visible session index.
func (m Model) listRowAt(screenY int) (int, bool) {
	// Rows below the visualizer: spacer, volume, list header.
	listTop := frameContentY + headerRows + waveHeight + 3
	idx := m.scroll + screenY - listTop
	if screenY < listTop || idx >= len(m.visible) {
		return 0, false
	}
	return idx, true
}

func (m Model) panelWidth() int {
	w := m.width - 2*frameContentX
	if w < minPanelWidth {
		w = minPanelWidth
	}
	return w
}

// totalDuration resolves the duration used for progress and seek mapping.
// The player's own duration wins when the selected session is loaded: it
// reflects the media as it exists now, which may have been trimmed after
// the envelope was generated.
func (m Model) totalDuration(snap waveform.State) float64 {
	if m.playingID != "" && m.playingID == snap.ID {
		if d := m.player.Duration(); d > 0 {
			return d.Seconds()
		}
	}
	return snap.Envelope.Duration
}

// syncEnvelope hands the store's current envelope to the renderer whenever
// it changes identity. Runs once per tick.
func (m *Model) syncEnvelope() {
	snap := m.store.Snapshot()
	switch {
	case snap.Status == waveform.StatusReady && m.envID != snap.ID:
		m.rend.SetEnvelope(snap.Envelope)
		m.envID = snap.ID
	case snap.Status != waveform.StatusReady && m.envID != "":
		m.rend.SetEnvelope(waveform.Envelope{})
		m.envID = ""
	}
}

// rebuildList reapplies filter and sort and keeps the selection stable by
// session id where possible.
func (m *Model) rebuildList() {
	var selected string
	if m.cursor >= 0 && m.cursor < len(m.visible) {
		selected = m.visible[m.cursor].ID
	}

	m.visible = m.filter.Apply(m.sessions)
	session.Sort(m.visible, m.sortMode)

	m.cursor = 0
	for i, s := range m.visible {
		if s.ID == selected {
			m.cursor = i
			break
		}
	}
	m.adjustScroll()
	m.loadSelected()
}

func (m *Model) moveCursor(delta int) {
	m.setCursor(m.cursor + delta)
}

func (m *Model) setCursor(idx int) {
	if len(m.visible) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = max(0, min(idx, len(m.visible)-1))
	m.adjustScroll()
	m.loadSelected()
}

// loadSelected points the waveform store at the selected session. Selecting
// is enough to fetch peaks; playback is a separate action.
func (m *Model) loadSelected() {
	m.store.Load(m.selectedID())
	m.drag.Stop()
}

func (m Model) selectedID() string {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return ""
	}
	return m.visible[m.cursor].ID
}

// adjustScroll keeps the cursor inside the visible list window.
func (m *Model) adjustScroll() {
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+listRows {
		m.scroll = m.cursor - listRows + 1
	}
}

func (m *Model) playSelected() {
	if m.cursor >= len(m.visible) {
		return
	}
	s := m.visible[m.cursor]
	if !s.Playable() {
		m.err = fmt.Errorf("%s has no proxy audio yet", s.DisplayName())
		return
	}
	if err := m.player.Play(s.Media); err != nil {
		m.err = err
		m.log.Warn("playback failed", "session", s.ID, "error", err)
		return
	}
	m.err = nil
	m.playingID = s.ID
	m.log.Info("playing session", "session", s.ID, "media", s.Media)
}

// cycleFilter walks all -> recording -> processing -> ready -> failed -> all.
func (m *Model) cycleFilter() {
	if m.filter.Status == nil {
		st := session.StatusRecording
		m.filter.Status = &st
		return
	}
	next := *m.filter.Status + 1
	if next > session.StatusFailed {
		m.filter.Status = nil
		return
	}
	m.filter.Status = &next
}

// savePrefs writes UI state back to the config file so it survives restarts.
func (m *Model) savePrefs() {
	if m.cfgPath == "" {
		return
	}
	m.cfg.VolumeDB = m.player.Volume()
	if err := m.cfg.Save(m.cfgPath); err != nil {
		m.log.Warn("saving preferences failed", "path", m.cfgPath, "error", err)
	}
}
