package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/eos/internal/sweep"
)

// PlotSweep draws the usable points of one sweep output against the
// varied input.
func PlotSweep(res *sweep.Result, name string, width, height int) (string, error) {
	xs, ys, ok := res.Usable(name)
	if !ok {
		return "", fmt.Errorf("no output %q in sweep", name)
	}
	if len(ys) == 0 {
		return "", fmt.Errorf("no usable points for %s", name)
	}
	caption := fmt.Sprintf("%s vs %s [%g, %g], %d/%d points",
		name, res.Varied().Name(), xs[0], xs[len(xs)-1], len(ys), res.Errors.Len())
	return asciigraph.Plot(ys,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	), nil
}
