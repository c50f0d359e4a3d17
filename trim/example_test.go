package trim_test

import (
	"fmt"

	"github.com/cwbudde/algo-trim/analyze"
	"github.com/cwbudde/algo-trim/audio"
	"github.com/cwbudde/algo-trim/trim"
)

func ExampleController() {
	// 2 s of mono audio at 1 kHz.
	buf, _ := audio.NewBuffer(make([]float64, 2000), 1, 1000)

	r := trim.RendererFunc(func(res analyze.Result, startDisplay, endDisplay float64) {
		fmt.Printf("render [%.0f, %.0f] ms, %d samples\n", startDisplay, endDisplay, len(res.Amplitudes))
	})

	c := trim.NewController(r)
	c.SetBuffer(buf)
	c.StartSliderChanged(500)
	c.PointerPress(1600, true)
	c.PointerRelease()
	// Output:
	// render [0, 2000] ms, 2000 samples
	// render [500, 2000] ms, 1500 samples
	// render [500, 1600] ms, 1100 samples
}
