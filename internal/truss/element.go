package truss

import "math"

// ElementID is a handle into a structure's element arena.
type ElementID int

// Element is an axial member between two nodes. RestLength and Stiffness
// are frozen at creation; Broken and Yielded are monotone until an
// explicit reset. A broken element transmits no force but stays in the
// collection.
type Element struct {
	ID         ElementID
	A, B       NodeID
	Material   Material
	RestLength float64
	Stiffness  float64
	Broken     bool
	Yielded    bool
}

// Mass is the member's total mass, split half-and-half onto its endpoints.
func (e *Element) Mass() float64 {
	return e.Material.Props().LinearDensity * e.RestLength
}

// Strain is the relative elongation (L-L0)/L0 at the given endpoint
// positions.
func (e *Element) Strain(a, b Vec2) float64 {
	return (b.Sub(a).Length() - e.RestLength) / e.RestLength
}

// Stress is E*strain, positive in tension, negative in compression.
func (e *Element) Stress(a, b Vec2) float64 {
	return e.Material.Props().YoungsModulus * e.Strain(a, b)
}

// AxialForce is stress times cross-section area, directed along the unit
// vector from endpoint A to endpoint B.
func (e *Element) AxialForce(a, b Vec2) float64 {
	return e.Stress(a, b) * e.Material.Props().Area
}

// StressRatio is |stress| over ultimate strength, unclamped. Values above
// 1.0 mean the member is past rupture; display layers clamp as needed.
func (e *Element) StressRatio(a, b Vec2) float64 {
	return math.Abs(e.Stress(a, b)) / e.Material.Props().UltimateStrength
}

// CheckFailure latches the yield and break flags against the material
// thresholds. Flags are never cleared here.
func (e *Element) CheckFailure(a, b Vec2) {
	s := math.Abs(e.Stress(a, b))
	p := e.Material.Props()
	if s > p.YieldStrength {
		e.Yielded = true
	}
	if s > p.UltimateStrength {
		e.Broken = true
	}
}
