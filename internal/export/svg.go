package export

import (
	"fmt"
	"io"
	"math"

	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/truss"
)

const (
	svgMargin     = 40.0
	svgNodeRadius = 4.0
)

// WriteSVG renders a snapshot of the structure: members as lines colored
// by stress ratio (green through red, dashed once broken), nodes as
// circles (filled when fixed).
func WriteSVG(w io.Writer, st *truss.Structure, width, height float64) error {
	nodes := st.Nodes()
	if len(nodes) == 0 {
		return fmt.Errorf("empty structure")
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		minX = math.Min(minX, n.Pos.X)
		maxX = math.Max(maxX, n.Pos.X)
		minY = math.Min(minY, n.Pos.Y)
		maxY = math.Max(maxY, n.Pos.Y)
	}
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	scale := math.Min((width-2*svgMargin)/spanX, (height-2*svgMargin)/spanY)
	project := func(p truss.Vec2) (float64, float64) {
		return svgMargin + (p.X-minX)*scale, svgMargin + (p.Y-minY)*scale
	}

	if _, err := fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height); err != nil {
		return err
	}

	for _, e := range st.Elements() {
		a, b := st.Endpoints(e)
		x1, y1 := project(a.Pos)
		x2, y2 := project(b.Pos)

		dash := ""
		if e.Broken {
			dash = ` stroke-dasharray="4 4"`
		}
		fmt.Fprintf(w, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="3"%s/>
`, x1, y1, x2, y2, ratioColor(st.StressRatio(e)), dash)
	}

	for _, n := range nodes {
		cx, cy := project(n.Pos)
		fill := "#222222"
		if n.Fixed {
			fill = "#cccccc"
		}
		fmt.Fprintf(w, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="#888888"/>
`, cx, cy, svgNodeRadius, fill)
	}

	_, err := fmt.Fprint(w, "</svg>\n")
	return err
}

// ratioColor maps a stress ratio onto a green-yellow-red ramp, clamped
// for display.
func ratioColor(ratio float64) string {
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}

	var r, g int
	if ratio < 0.5 {
		r = int(255 * ratio * 2)
		g = 255
	} else {
		r = 255
		g = int(255 * (1 - ratio) * 2)
	}
	return fmt.Sprintf("#%02x%02x00", r, g)
}
