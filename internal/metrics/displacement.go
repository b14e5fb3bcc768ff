package metrics

import (
	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/truss"
)

// MaxDisplacement tracks the largest node excursion from its
// creation-time position over a run.
type MaxDisplacement struct {
	max float64
}

func NewMaxDisplacement() *MaxDisplacement {
	return &MaxDisplacement{}
}

func (m *MaxDisplacement) Name() string { return "max_displacement" }

func (m *MaxDisplacement) Observe(st *truss.Structure, t float64) {
	for _, n := range st.Nodes() {
		if d := n.Displacement().Length(); d > m.max {
			m.max = d
		}
	}
}

func (m *MaxDisplacement) Value() float64 { return m.max }

func (m *MaxDisplacement) Reset() { m.max = 0 }
