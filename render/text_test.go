package render

import (
	"strings"
	"testing"

	"github.com/cwbudde/algo-trim/analyze"
	"github.com/cwbudde/algo-trim/internal/testutil"
)

func TestRenderEmptySelection(t *testing.T) {
	var out strings.Builder
	r := NewText(&out, 32, 4)

	r.Render(analyze.Result{}, 500, 500)

	got := out.String()
	if !strings.Contains(got, "selection [500, 500]") {
		t.Errorf("missing selection header in %q", got)
	}
	if !strings.Contains(got, "(empty selection)") {
		t.Errorf("missing empty notice in %q", got)
	}
}

func TestRenderMarkers(t *testing.T) {
	var out strings.Builder
	r := NewText(&out, 16, 2)

	res := analyze.Analyze(testutil.Sine(100, 8000, 1, 800), 8000, 100, 200)
	r.Render(res, 100, 200)

	lines := strings.Split(out.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("too few output lines: %d", len(lines))
	}

	markers := lines[1]
	if !strings.HasPrefix(markers, "S") || !strings.HasSuffix(markers, "E") {
		t.Errorf("marker line: %q, want S...E", markers)
	}
}

func TestRenderInvertedMarkers(t *testing.T) {
	var out strings.Builder
	r := NewText(&out, 16, 2)

	res := analyze.Analyze(testutil.Sine(100, 8000, 1, 800), 8000, 200, 100)
	r.Render(res, 200, 100)

	markers := strings.Split(out.String(), "\n")[1]
	if !strings.HasPrefix(markers, "E") || !strings.HasSuffix(markers, "S") {
		t.Errorf("marker line: %q, want E...S", markers)
	}
}

func TestRenderLineWidths(t *testing.T) {
	const width = 24

	var out strings.Builder
	r := NewText(&out, width, 3)

	res := analyze.Analyze(testutil.Sine(440, 8000, 0.5, 1024), 8000, 0, 128)
	r.Render(res, 0, 128)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	// header + markers + 3 waveform rows + spectrum
	if len(lines) != 6 {
		t.Fatalf("line count: got %d, want 6", len(lines))
	}
	for i, line := range lines[1:] {
		if n := len([]rune(line)); n != width {
			t.Errorf("line %d width: got %d, want %d", i+1, n, width)
		}
	}
}
