package truss

// NodeID is a handle into a structure's node arena.
type NodeID int

// Node is a pin joint with lumped mass. Mass is the structural share
// (half of every incident element's mass) and is derived from the live
// element set; AppliedMass accumulates point loads. Force is transient
// scratch rewritten every integration step.
type Node struct {
	ID          NodeID
	Pos         Vec2
	OrigPos     Vec2
	Vel         Vec2
	Force       Vec2
	Mass        float64
	AppliedMass float64
	Fixed       bool
}

// TotalMass is the inertial mass used for integration.
func (n *Node) TotalMass() float64 {
	return n.Mass + n.AppliedMass
}

// Displacement is the offset from the creation-time position.
func (n *Node) Displacement() Vec2 {
	return n.Pos.Sub(n.OrigPos)
}
