package analyze

import "github.com/cwbudde/algo-dsp/dsp/window"

type config struct {
	windowType  window.Type
	windowed    bool
	mixChannels int
}

// Option configures an Analyzer.
type Option func(*config)

// WithWindow applies a taper before the FFT. The default is rectangular
// (no taper), which keeps bin magnitudes directly comparable to a plain DFT.
func WithWindow(t window.Type) Option {
	return func(cfg *config) {
		cfg.windowType = t
		cfg.windowed = true
	}
}

// WithMixdown averages interleaved channels into one mono frame before
// analysis. Without it, multi-channel input is analyzed as one flat array,
// matching the historical behavior of treating interleaved samples as a
// single series.
func WithMixdown(channels int) Option {
	return func(cfg *config) {
		if channels > 1 {
			cfg.mixChannels = channels
		}
	}
}

func applyOptions(opts ...Option) config {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
