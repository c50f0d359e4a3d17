package analyze_test

import (
	"fmt"

	"github.com/cwbudde/algo-trim/analyze"
	"github.com/cwbudde/algo-trim/internal/testutil"
)

func ExampleAnalyze() {
	sig := testutil.Sine(1000, 8000, 0.5, 1024)

	res := analyze.Analyze(sig, 8000, 0, 0.128)

	peak := testutil.PeakIndex(res.SpectrumMagnitudes)
	fmt.Printf("%d bins, peak at %.0f Hz\n", len(res.SpectrumMagnitudes), res.SpectrumFreqs[peak])
	// Output:
	// 512 bins, peak at 1000 Hz
}
