package waveform

import "math"

// Resample reduces peaks to n display bars by taking the maximum magnitude
// within each contiguous source window. Max, not average: a one-sample
// transient must survive at full height in whichever bar its window lands,
// or the overview lies about the loudest moments.
//
// Pure and deterministic; every draw resamples from the original envelope so
// repeated redraws never compound rounding error.
func Resample(peaks []float64, n int) []float64 {
	if len(peaks) == 0 || n <= 0 {
		return nil
	}

	out := make([]float64, n)
	ratio := float64(len(peaks)) / float64(n)
	for i := range n {
		lo := int(math.Floor(float64(i) * ratio))
		hi := int(math.Floor(float64(i+1) * ratio))
		if hi <= lo {
			hi = lo + 1 // windows narrower than one sample still read one
		}
		if hi > len(peaks) {
			hi = len(peaks)
		}

		peak := 0.0
		for _, v := range peaks[lo:hi] {
			if a := math.Abs(v); a > peak {
				peak = a
			}
		}
		out[i] = peak
	}
	return out
}

// BarCount returns how many bars of the given width, separated by the given
// gap, fit in a surface of the given width. Recomputed from the live
// viewport on every frame so resizes take effect on the next draw.
func BarCount(width, barWidth, barGap int) int {
	if width <= 0 || barWidth <= 0 {
		return 0
	}
	return width / (barWidth + barGap)
}
