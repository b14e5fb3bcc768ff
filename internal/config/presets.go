package config

import (
	"fmt"

	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/truss"
)

// Preset is a deterministic structure fixture. Coordinates are y-down
// (gravity acts in +y), so chords above the deck sit at negative y.
type Preset struct {
	Index       int
	Name        string
	Description string
	Build       func() *truss.Structure
}

var presets = []Preset{
	{Index: 0, Name: "warren", Description: "warren truss, 8 m span", Build: buildWarren},
	{Index: 1, Name: "arch", Description: "tied arch, 8 m span", Build: buildArch},
	{Index: 2, Name: "beam", Description: "simple beam, 6 m span", Build: buildBeam},
}

func Presets() []Preset { return presets }

// BuildPreset rebuilds the fixture with the given index.
func BuildPreset(index int) (*truss.Structure, error) {
	if index < 0 || index >= len(presets) {
		return nil, fmt.Errorf("unknown preset index: %d", index)
	}
	return presets[index].Build(), nil
}

// PresetByName resolves a fixture by name.
func PresetByName(name string) (*Preset, error) {
	for i := range presets {
		if presets[i].Name == name {
			return &presets[i], nil
		}
	}
	return nil, fmt.Errorf("unknown preset: %s", name)
}

func buildWarren() *truss.Structure {
	st := truss.NewStructure()

	// Deck chord every 2 m, anchored at both ends.
	bottom := make([]truss.NodeID, 5)
	for i := range bottom {
		fixed := i == 0 || i == len(bottom)-1
		bottom[i] = st.AddNode(truss.Vec2{X: float64(i) * 2, Y: 0}, fixed)
	}
	top := make([]truss.NodeID, 4)
	for i := range top {
		top[i] = st.AddNode(truss.Vec2{X: float64(i)*2 + 1, Y: -2}, false)
	}

	for i := 0; i < len(bottom)-1; i++ {
		mustElement(st, bottom[i], bottom[i+1], truss.Road)
	}
	for i := 0; i < len(top)-1; i++ {
		mustElement(st, top[i], top[i+1], truss.Steel)
	}
	for i, t := range top {
		mustElement(st, bottom[i], t, truss.Steel)
		mustElement(st, t, bottom[i+1], truss.Steel)
	}
	return st
}

func buildArch() *truss.Structure {
	st := truss.NewStructure()

	deck := make([]truss.NodeID, 5)
	for i := range deck {
		fixed := i == 0 || i == len(deck)-1
		deck[i] = st.AddNode(truss.Vec2{X: float64(i) * 2, Y: 0}, fixed)
	}
	arch := []truss.NodeID{
		st.AddNode(truss.Vec2{X: 2, Y: -1.5}, false),
		st.AddNode(truss.Vec2{X: 4, Y: -2}, false),
		st.AddNode(truss.Vec2{X: 6, Y: -1.5}, false),
	}

	for i := 0; i < len(deck)-1; i++ {
		mustElement(st, deck[i], deck[i+1], truss.Road)
	}
	// Rib springs from the anchorages through the crown.
	mustElement(st, deck[0], arch[0], truss.Wood)
	mustElement(st, arch[0], arch[1], truss.Wood)
	mustElement(st, arch[1], arch[2], truss.Wood)
	mustElement(st, arch[2], deck[len(deck)-1], truss.Wood)
	// Hangers tie the deck panel points up to the rib.
	for i, a := range arch {
		mustElement(st, a, deck[i+1], truss.Steel)
	}
	return st
}

func buildBeam() *truss.Structure {
	st := truss.NewStructure()

	nodes := make([]truss.NodeID, 4)
	for i := range nodes {
		fixed := i == 0 || i == len(nodes)-1
		nodes[i] = st.AddNode(truss.Vec2{X: float64(i) * 2, Y: 0}, fixed)
	}
	for i := 0; i < len(nodes)-1; i++ {
		mustElement(st, nodes[i], nodes[i+1], truss.Wood)
	}
	return st
}

// mustElement panics on failure; preset geometry is hard-coded and never
// degenerate.
func mustElement(st *truss.Structure, a, b truss.NodeID, m truss.Material) truss.ElementID {
	id, err := st.AddElement(a, b, m)
	if err != nil {
		panic(fmt.Sprintf("preset element %d-%d: %v", a, b, err))
	}
	return id
}
