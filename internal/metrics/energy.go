package metrics

import (
	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/truss"
)

// KineticEnergy reports the most recent total kinetic energy of the
// structure's nodes. With positive damping it decays toward zero as the
// structure settles.
type KineticEnergy struct {
	last float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{}
}

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(st *truss.Structure, t float64) {
	total := 0.0
	for _, n := range st.Nodes() {
		v := n.Vel.Length()
		total += 0.5 * n.TotalMass() * v * v
	}
	k.last = total
}

func (k *KineticEnergy) Value() float64 { return k.last }

func (k *KineticEnergy) Reset() { k.last = 0 }
