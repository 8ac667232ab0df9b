package waveform

import (
	"math"
	"testing"
)

func TestResampleLength(t *testing.T) {
	peaks := make([]float64, 1000)
	for _, n := range []int{1, 2, 7, 100, 999, 1000, 1500} {
		if got := len(Resample(peaks, n)); got != n {
			t.Errorf("Resample(len=1000, %d): got %d bars, want %d", n, got, n)
		}
	}
}

func TestResampleEmptyCases(t *testing.T) {
	if got := Resample(nil, 10); len(got) != 0 {
		t.Errorf("nil peaks: got %v, want empty", got)
	}
	if got := Resample([]float64{0.5}, 0); len(got) != 0 {
		t.Errorf("zero bars: got %v, want empty", got)
	}
	if got := Resample([]float64{0.5}, -3); len(got) != 0 {
		t.Errorf("negative bars: got %v, want empty", got)
	}
}

func TestResampleMaxMagnitude(t *testing.T) {
	// Two windows of two samples each; each window holds one full-scale peak.
	got := Resample([]float64{0, 1, 0, 1}, 2)
	want := []float64{1, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Resample([0 1 0 1], 2) = %v, want %v", got, want)
		}
	}
}

func TestResampleNegativeMagnitude(t *testing.T) {
	got := Resample([]float64{-0.8, 0.2, 0.1, -0.3}, 2)
	if got[0] != 0.8 || got[1] != 0.3 {
		t.Errorf("negative samples: got %v, want [0.8 0.3]", got)
	}
}

func TestResampleSpikeNeverAttenuated(t *testing.T) {
	// A single full-scale sample must survive at 1.0 in exactly one bar no
	// matter where it lands or how coarse the output is.
	for _, pos := range []int{0, 37, 499, 999} {
		peaks := make([]float64, 1000)
		peaks[pos] = 1.0
		out := Resample(peaks, 13)

		hits := 0
		for _, v := range out {
			switch v {
			case 1.0:
				hits++
			case 0.0:
			default:
				t.Fatalf("spike at %d: unexpected bar value %v", pos, v)
			}
		}
		if hits != 1 {
			t.Errorf("spike at %d: appeared in %d bars, want 1", pos, hits)
		}
	}
}

func TestResampleAllZeros(t *testing.T) {
	out := Resample(make([]float64, 500), 20)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("bar %d = %v, want 0", i, v)
		}
	}
}

func TestResampleDeterministic(t *testing.T) {
	peaks := make([]float64, 317)
	for i := range peaks {
		peaks[i] = math.Sin(float64(i) / 5)
	}
	a := Resample(peaks, 41)
	b := Resample(peaks, 41)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("bar %d differs between calls: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestBarCount(t *testing.T) {
	tests := []struct {
		width, barWidth, barGap, want int
	}{
		{60, 1, 1, 30},
		{60, 2, 1, 20},
		{7, 2, 1, 2},
		{0, 1, 1, 0},
		{-4, 1, 1, 0},
		{10, 0, 1, 0},
	}
	for _, tt := range tests {
		if got := BarCount(tt.width, tt.barWidth, tt.barGap); got != tt.want {
			t.Errorf("BarCount(%d, %d, %d) = %d, want %d",
				tt.width, tt.barWidth, tt.barGap, got, tt.want)
		}
	}
}
