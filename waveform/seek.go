package waveform

// TimeAt maps a pointer column to a playback time within a panel that spans
// width columns starting at left. The leftmost column maps to 0, the
// rightmost to total; positions outside the panel clamp to the edges, which
// is what keeps a drag usable after the pointer leaves the panel.
func TimeAt(x, left, width int, total float64) float64 {
	if width <= 1 || total <= 0 {
		return 0
	}
	rel := float64(x-left) / float64(width-1)
	return max(0, min(1, rel)) * total
}

// Drag tracks an in-flight seek gesture. It exists only between pointer
// press and release; no gesture state outlives a single drag.
type Drag struct {
	active bool
}

// Start begins a gesture.
func (d *Drag) Start() { d.active = true }

// Stop ends a gesture. Release emits no seek of its own; the last motion
// already carried the final position.
func (d *Drag) Stop() { d.active = false }

// Active reports whether a gesture is in flight.
func (d *Drag) Active() bool { return d.active }
