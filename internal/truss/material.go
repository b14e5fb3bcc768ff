package truss

import "fmt"

// Material identifies one entry of the closed material catalog.
type Material int

const (
	Wood Material = iota
	Steel
	Road
)

// Properties holds the immutable physical constants of a material.
// LinearDensity is mass per unit length of member; the remaining values
// follow the usual axial-member definitions.
type Properties struct {
	LinearDensity    float64 // kg/m
	YoungsModulus    float64 // Pa
	Area             float64 // m^2
	YieldStrength    float64 // Pa
	UltimateStrength float64 // Pa
}

// Moduli are calibrated for the fixed-dt explicit integration regime
// (dt=1/1200 with sub-stepping); member natural frequencies stay inside
// the stable band for spans down to 1 m.
var catalog = [...]Properties{
	Wood:  {LinearDensity: 12.0, YoungsModulus: 1.2e9, Area: 0.01, YieldStrength: 3.0e7, UltimateStrength: 4.5e7},
	Steel: {LinearDensity: 60.0, YoungsModulus: 8.0e9, Area: 0.008, YieldStrength: 2.5e8, UltimateStrength: 4.0e8},
	Road:  {LinearDensity: 120.0, YoungsModulus: 4.0e9, Area: 0.02, YieldStrength: 2.0e7, UltimateStrength: 3.0e7},
}

// Props returns the property record for m. Unknown values fall back to Wood.
func (m Material) Props() Properties {
	if m < Wood || m > Road {
		return catalog[Wood]
	}
	return catalog[m]
}

func (m Material) String() string {
	switch m {
	case Wood:
		return "wood"
	case Steel:
		return "steel"
	case Road:
		return "road"
	}
	return fmt.Sprintf("material(%d)", int(m))
}

// ParseMaterial maps a name to a catalog entry.
func ParseMaterial(name string) (Material, error) {
	switch name {
	case "wood":
		return Wood, nil
	case "steel":
		return Steel, nil
	case "road":
		return Road, nil
	}
	return Wood, fmt.Errorf("unknown material: %s", name)
}

// Materials lists every catalog entry in declaration order.
func Materials() []Material {
	return []Material{Wood, Steel, Road}
}
