package truss

// LoadID is a handle into a structure's load arena.
type LoadID int

// LoadWeight is a point load attached to one node. Its mass contributes
// additively to the node's applied mass for as long as the load exists.
type LoadWeight struct {
	ID   LoadID
	Node NodeID
	Mass float64
}
