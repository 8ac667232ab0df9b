package waveform

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// shades are the subcell coverage levels for bar edges. Full cells use the
// solid block; the fractional cell at a bar's edge picks a shade by how much
// of the cell the bar covers, which keeps edges crisp at cell resolution the
// way device-pixel scaling does for a raster canvas.
var shades = []rune(" ░▒▓█")

const (
	// heightScale leaves headroom above and below a full-scale bar.
	heightScale = 0.9
	// minBarHeight keeps silent stretches visible as a thin center line,
	// one shade level tall.
	minBarHeight = 0.25

	cursorRune = '│'
)

// cell paint classes; runs of equal class render with one style call.
const (
	classEmpty = iota
	classBase
	classProgress
	classCursor
)

// Renderer paints an envelope onto a cell grid sized to the live viewport.
// It memoizes the last frame keyed by (envelope, viewport, progress): while
// playback position is unchanged the previous frame is returned as-is, so
// the per-tick cost of an idle player is a key comparison.
//
// Not safe for concurrent use; the single render loop owns it.
type Renderer struct {
	BarWidth int // columns per bar
	BarGap   int // blank columns between bars

	Base     lipgloss.Style // bars at or past the cursor
	Progress lipgloss.Style // bars already played
	Cursor   lipgloss.Style

	env    Envelope
	envSeq int

	memoKey frameKey
	memo    string
}

type frameKey struct {
	seq, width, height int
	progress           float64
}

// SetEnvelope replaces the envelope being drawn and invalidates the frame
// memo. Call with a zero Envelope when no session is selected.
func (r *Renderer) SetEnvelope(env Envelope) {
	r.env = env
	r.envSeq++
}

// Frame draws the waveform for the given viewport and progress fraction and
// returns it as styled terminal rows. An empty envelope or degenerate
// viewport yields an empty string; the caller overlays status text instead.
func (r *Renderer) Frame(width, height int, progress float64) string {
	if width <= 0 || height <= 0 || r.env.Empty() {
		return ""
	}
	key := frameKey{seq: r.envSeq, width: width, height: height, progress: progress}
	if key == r.memoKey && r.memo != "" {
		return r.memo
	}

	bars := Resample(r.env.Peaks, BarCount(width, r.BarWidth, r.BarGap))

	glyphs := make([][]rune, height)
	class := make([][]int, height)
	for row := range height {
		glyphs[row] = make([]rune, width)
		class[row] = make([]int, width)
		for col := range width {
			glyphs[row][col] = ' '
		}
	}

	// cursorX is the unclamped cursor position used for coloring, so at
	// progress 1 every bar counts as played. The drawn line itself is
	// clamped to the grid and suppressed at the exact start and end, where
	// it would just sit on top of the boundary bars.
	cursorX := int(progress * float64(width))
	lineCol := min(cursorX, width-1)
	drawCursor := progress > 0 && progress < 1

	center := float64(height) / 2
	step := r.BarWidth + r.BarGap
	for i, peak := range bars {
		barHeight := max(minBarHeight, peak*heightScale*float64(height))
		halfBar := barHeight / 2

		x0 := i * step
		barClass := classBase
		if x0+r.BarWidth <= cursorX {
			barClass = classProgress
		}

		for row := range height {
			dist := center - float64(row) - 0.5
			if dist < 0 {
				dist = -dist
			}
			// Coverage of this cell by a bar extending halfBar rows from
			// the center line in both directions.
			cover := max(0.0, min(1.0, halfBar-(dist-0.5)))
			idx := int(cover*float64(len(shades)-1) + 0.5)
			if idx == 0 {
				continue
			}
			for col := x0; col < x0+r.BarWidth && col < width; col++ {
				glyphs[row][col] = shades[idx]
				class[row][col] = barClass
			}
		}
	}

	if drawCursor {
		for row := range height {
			glyphs[row][lineCol] = cursorRune
			class[row][lineCol] = classCursor
		}
	}

	r.memo = r.renderGrid(glyphs, class)
	r.memoKey = key
	return r.memo
}

// renderGrid styles the grid row by row, batching runs of the same class
// into single style calls to keep per-frame allocation down.
func (r *Renderer) renderGrid(glyphs [][]rune, class [][]int) string {
	var sb strings.Builder
	for row := range glyphs {
		if row > 0 {
			sb.WriteByte('\n')
		}
		col := 0
		for col < len(glyphs[row]) {
			start := col
			c := class[row][col]
			for col < len(glyphs[row]) && class[row][col] == c {
				col++
			}
			run := string(glyphs[row][start:col])
			switch c {
			case classBase:
				sb.WriteString(r.Base.Render(run))
			case classProgress:
				sb.WriteString(r.Progress.Render(run))
			case classCursor:
				sb.WriteString(r.Cursor.Render(run))
			default:
				sb.WriteString(run)
			}
		}
	}
	return sb.String()
}
