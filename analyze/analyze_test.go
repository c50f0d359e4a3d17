package analyze

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-dsp/dsp/window"
	"github.com/cwbudde/algo-trim/internal/testutil"
)

func TestAnalyzeEmptySlice(t *testing.T) {
	res := Analyze(nil, 44100, 0, 0)

	if len(res.Amplitudes) != 0 {
		t.Errorf("Amplitudes: got %d values, want 0", len(res.Amplitudes))
	}
	if len(res.TimeAxis) != 0 {
		t.Errorf("TimeAxis: got %d values, want 0", len(res.TimeAxis))
	}
	if len(res.SpectrumMagnitudes) != 0 {
		t.Errorf("SpectrumMagnitudes: got %d values, want 0", len(res.SpectrumMagnitudes))
	}
	if len(res.SpectrumFreqs) != 0 {
		t.Errorf("SpectrumFreqs: got %d values, want 0", len(res.SpectrumFreqs))
	}
}

func TestAnalyzeSilence(t *testing.T) {
	res := Analyze(testutil.Silence(512), 8000, 0, 64)

	testutil.RequireFinite(t, res.Amplitudes)
	testutil.RequireFinite(t, res.SpectrumMagnitudes)

	for i, v := range res.Amplitudes {
		if v != 0 {
			t.Fatalf("amplitude %d: got %v, want 0 (normalization must be skipped)", i, v)
		}
	}
}

func TestAnalyzeNormalizesToPeakOne(t *testing.T) {
	sig := testutil.Sine(440, 8000, 0.25, 800)

	res := Analyze(sig, 8000, 0, 100)

	peak := 0.0
	for _, v := range res.Amplitudes {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if math.Abs(peak-1) > 1e-12 {
		t.Errorf("normalized peak: got %v, want 1", peak)
	}
}

func TestAnalyzeTimeAxis(t *testing.T) {
	res := Analyze(testutil.Sine(100, 8000, 1, 256), 8000, 1.5, 2.5)

	if len(res.TimeAxis) != 256 {
		t.Fatalf("TimeAxis length: got %d, want 256", len(res.TimeAxis))
	}
	if res.TimeAxis[0] != 1.5 {
		t.Errorf("first point: got %v, want 1.5", res.TimeAxis[0])
	}
	if res.TimeAxis[255] != 2.5 {
		t.Errorf("last point: got %v, want 2.5", res.TimeAxis[255])
	}
	for i := 1; i < len(res.TimeAxis); i++ {
		if res.TimeAxis[i] < res.TimeAxis[i-1] {
			t.Fatalf("time axis decreases at %d", i)
		}
	}
}

func TestAnalyzeSpectrumPeak(t *testing.T) {
	const sampleRate = 8000

	// 1024 exercises the power-of-two plan, 1000 the arbitrary-length FFT.
	for _, n := range []int{1024, 1000} {
		sig := testutil.Sine(1000, sampleRate, 1, n)

		res := Analyze(sig, sampleRate, 0, float64(n)/sampleRate)

		if len(res.SpectrumMagnitudes) != n/2 {
			t.Fatalf("n=%d: got %d bins, want %d", n, len(res.SpectrumMagnitudes), n/2)
		}
		if len(res.SpectrumFreqs) != n/2 {
			t.Fatalf("n=%d: got %d freqs, want %d", n, len(res.SpectrumFreqs), n/2)
		}

		peak := testutil.PeakIndex(res.SpectrumMagnitudes)
		wantBin := 1000 * n / sampleRate
		if peak != wantBin {
			t.Errorf("n=%d: peak at bin %d, want %d", n, peak, wantBin)
		}
		if got := res.SpectrumFreqs[peak]; math.Abs(got-1000) > 1e-9 {
			t.Errorf("n=%d: peak frequency %v, want 1000", n, got)
		}
	}
}

func TestAnalyzeMatchesDirectDFT(t *testing.T) {
	const n = 24

	sig := testutil.Sine(3, 24, 0.8, n)
	for i := range sig {
		sig[i] += 0.1 // DC offset makes bin 0 non-trivial
	}

	res := Analyze(sig, 24, 0, 1)

	// Direct DFT of the normalized slice.
	norm := make([]float64, n)
	copy(norm, sig)
	peak := 0.0
	for _, v := range norm {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	for i := range norm {
		norm[i] /= peak
	}

	want := make([]float64, n/2)
	for k := range want {
		var sum complex128
		for i, v := range norm {
			angle := -2 * math.Pi * float64(k) * float64(i) / n
			sum += complex(v, 0) * cmplx.Exp(complex(0, angle))
		}
		want[k] = cmplx.Abs(sum)
	}

	testutil.RequireSliceNearlyEqual(t, res.SpectrumMagnitudes, want, 1e-9)
}

func TestAnalyzeSingleSample(t *testing.T) {
	res := Analyze([]float64{0.5}, 8000, 3, 3)

	if len(res.Amplitudes) != 1 {
		t.Fatalf("Amplitudes: got %d values, want 1", len(res.Amplitudes))
	}
	if res.TimeAxis[0] != 3 {
		t.Errorf("TimeAxis: got %v, want 3", res.TimeAxis[0])
	}
	// n/2 == 0: no spectrum, but no failure either.
	if len(res.SpectrumMagnitudes) != 0 || len(res.SpectrumFreqs) != 0 {
		t.Errorf("spectrum of a single sample should be empty")
	}
}

func TestAnalyzeMixdown(t *testing.T) {
	left := testutil.Sine(500, 8000, 1, 400)
	right := make([]float64, 400)
	for i := range right {
		right[i] = -left[i]
	}
	interleaved := testutil.Interleave(left, right)

	flat := Analyze(interleaved, 8000, 0, 100)
	if len(flat.Amplitudes) != 800 {
		t.Errorf("flattened: got %d amplitudes, want 800", len(flat.Amplitudes))
	}

	mixed := New(WithMixdown(2)).Analyze(interleaved, 8000, 0, 100)
	if len(mixed.Amplitudes) != 400 {
		t.Fatalf("mixdown: got %d amplitudes, want 400", len(mixed.Amplitudes))
	}
	// Opposite-phase channels cancel to silence.
	for i, v := range mixed.Amplitudes {
		if math.Abs(v) > 1e-12 {
			t.Fatalf("mixdown frame %d: got %v, want 0", i, v)
		}
	}
}

func TestAnalyzeWindowed(t *testing.T) {
	const (
		sampleRate = 8000
		n          = 1024
	)
	sig := testutil.Sine(1000, sampleRate, 1, n)

	res := New(WithWindow(window.TypeHann)).Analyze(sig, sampleRate, 0, 0.128)

	if peak := testutil.PeakIndex(res.SpectrumMagnitudes); peak != 128 {
		t.Errorf("windowed peak at bin %d, want 128", peak)
	}
	// The window must not alter the rendered amplitude series.
	if math.Abs(res.Amplitudes[256]-sig[256]) > 1e-12 {
		t.Errorf("amplitudes changed by windowing: got %v, want %v", res.Amplitudes[256], sig[256])
	}
}

func TestAnalyzerReuseAcrossLengths(t *testing.T) {
	a := New()

	for _, n := range []int{512, 512, 777, 512, 777} {
		res := a.Analyze(testutil.Sine(100, 8000, 1, n), 8000, 0, 1)
		if len(res.SpectrumMagnitudes) != n/2 {
			t.Fatalf("n=%d: got %d bins, want %d", n, len(res.SpectrumMagnitudes), n/2)
		}
		testutil.RequireFinite(t, res.SpectrumMagnitudes)
	}
}
