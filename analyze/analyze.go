// Package analyze derives the two data products rendered for a selection:
// a peak-normalized amplitude series with its time axis, and a one-sided
// magnitude spectrum with its frequency axis.
//
// The transform length always equals the slice length so that spectrum bin k
// sits at exactly k*sampleRate/n Hz. Power-of-two lengths go through an
// algo-fft plan; everything else uses gonum's real-input FFT.
package analyze

import (
	algofft "github.com/MeKo-Christian/algo-fft"
	dspspectrum "github.com/cwbudde/algo-dsp/dsp/spectrum"
	"github.com/cwbudde/algo-dsp/dsp/window"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Result holds everything derived from one selection slice. All four series
// are recomputed in full on every selection change; nothing is persisted.
type Result struct {
	// Amplitudes is the slice scaled so its peak magnitude is 1. An
	// all-zero slice stays all-zero.
	Amplitudes []float64
	// TimeAxis has one point per amplitude, linearly spaced from the
	// selection start to its end in the current display unit.
	TimeAxis []float64
	// SpectrumMagnitudes holds |X[k]| for the non-negative-frequency bins
	// k in [0, n/2).
	SpectrumMagnitudes []float64
	// SpectrumFreqs holds the bin center frequencies in Hz.
	SpectrumFreqs []float64
}

// Analyzer computes analysis results. It caches the FFT plan for the last
// slice length, which makes repeated analysis during a drag gesture cheap.
// An Analyzer is not safe for concurrent use.
type Analyzer struct {
	cfg config

	planSize int
	plan     *algofft.Plan[complex128]
	fftSize  int
	fft      *fourier.FFT
}

// New creates an analyzer.
func New(opts ...Option) *Analyzer {
	return &Analyzer{cfg: applyOptions(opts...)}
}

// Analyze is a one-shot analysis with default options.
func Analyze(samples []float64, sampleRate int, startDisplay, endDisplay float64) Result {
	return New().Analyze(samples, sampleRate, startDisplay, endDisplay)
}

// Analyze computes the analysis products for one slice of interleaved
// samples. An empty slice yields an empty result; a silent slice skips
// normalization. Neither case fails.
func (a *Analyzer) Analyze(samples []float64, sampleRate int, startDisplay, endDisplay float64) Result {
	if len(samples) == 0 || sampleRate <= 0 {
		return Result{}
	}

	work := a.prepare(samples)
	n := len(work)

	if peak := vecmath.MaxAbs(work); peak > 0 {
		vecmath.ScaleBlockInPlace(work, 1/peak)
	}

	res := Result{
		Amplitudes: work,
		TimeAxis:   linspace(startDisplay, endDisplay, n),
	}

	half := n / 2
	if half == 0 {
		return res
	}

	res.SpectrumMagnitudes = a.magnitudes(work, half)

	res.SpectrumFreqs = make([]float64, half)
	for k := range res.SpectrumFreqs {
		res.SpectrumFreqs[k] = float64(k) * float64(sampleRate) / float64(n)
	}

	return res
}

// prepare copies the input and applies the configured channel handling.
func (a *Analyzer) prepare(samples []float64) []float64 {
	ch := a.cfg.mixChannels
	if ch <= 1 || len(samples)%ch != 0 {
		out := make([]float64, len(samples))
		copy(out, samples)
		return out
	}

	frames := len(samples) / ch
	out := make([]float64, frames)
	for i := range out {
		sum := 0.0
		for c := 0; c < ch; c++ {
			sum += samples[i*ch+c]
		}
		out[i] = sum / float64(ch)
	}
	return out
}

// magnitudes returns |X[k]| for k in [0, half) of the DFT of x.
func (a *Analyzer) magnitudes(x []float64, half int) []float64 {
	n := len(x)

	input := x
	if a.cfg.windowed {
		coeffs := window.Generate(a.cfg.windowType, n)
		input = make([]float64, n)
		vecmath.MulBlock(input, x, coeffs)
	}

	if isPowerOfTwo(n) {
		if bins, ok := a.forwardPow2(input); ok {
			return dspspectrum.Magnitude(bins[:half])
		}
	}

	if a.fft == nil || a.fftSize != n {
		a.fft = fourier.NewFFT(n)
		a.fftSize = n
	}

	bins := a.fft.Coefficients(nil, input)

	return dspspectrum.Magnitude(bins[:half])
}

func (a *Analyzer) forwardPow2(x []float64) ([]complex128, bool) {
	n := len(x)

	if a.plan == nil || a.planSize != n {
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, false
		}
		a.plan = plan
		a.planSize = n
	}

	in := make([]complex128, n)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := a.plan.Forward(out, in); err != nil {
		return nil, false
	}

	return out, true
}

func linspace(start, end float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}

	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[n-1] = end

	return out
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NyquistHz returns the highest representable frequency for a sample rate.
func NyquistHz(sampleRate int) float64 {
	return float64(sampleRate) / 2
}
