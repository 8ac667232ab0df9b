// Package waveform renders a session's precomputed amplitude envelope as a
// bar waveform with a live playback cursor, and maps pointer positions back
// to playback times for seeking. Envelopes are fetched and cached by Store,
// reduced to display bars by Resample, and painted by Renderer.
package waveform

// Envelope is the precomputed amplitude summary of a session's audio.
// Peaks are normalized samples in [-1, 1] (magnitude is what gets drawn).
// An envelope is immutable once fetched; the pipeline never regenerates
// peaks for an existing session.
type Envelope struct {
	Peaks    []float64 `json:"peaks"`
	Duration float64   `json:"duration"` // seconds covered by Peaks
}

// Empty reports whether the envelope carries no samples.
func (e Envelope) Empty() bool { return len(e.Peaks) == 0 }

// Progress maps a playback position to a [0, 1] fraction of the total
// duration. Positions past the end clamp to 1; media trimmed after peak
// generation can legitimately report times beyond the envelope's duration.
func Progress(t, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return max(0, min(1, t/total))
}
