package truss

import "fmt"

// Structure is the sole owner of the node, element, and load arenas.
// Elements and loads hold non-owning ids; removal cascades so that no
// element or load ever references an absent node. Structural node mass is
// derived from the live element set after every topology edit, so removal
// can never leave stale half-mass contributions behind.
type Structure struct {
	nodes    []*Node
	elements []*Element
	loads    []*LoadWeight

	nodeIdx map[NodeID]int
	elemIdx map[ElementID]int
	loadIdx map[LoadID]int

	nextNode NodeID
	nextElem ElementID
	nextLoad LoadID
}

func NewStructure() *Structure {
	return &Structure{
		nodeIdx: make(map[NodeID]int),
		elemIdx: make(map[ElementID]int),
		loadIdx: make(map[LoadID]int),
	}
}

// Nodes returns the node arena in insertion order. Callers must not
// add or remove entries.
func (s *Structure) Nodes() []*Node { return s.nodes }

// Elements returns the element arena in insertion order.
func (s *Structure) Elements() []*Element { return s.elements }

// Loads returns the load arena in insertion order.
func (s *Structure) Loads() []*LoadWeight { return s.loads }

// Node looks up a node by id.
func (s *Structure) Node(id NodeID) (*Node, bool) {
	i, ok := s.nodeIdx[id]
	if !ok {
		return nil, false
	}
	return s.nodes[i], true
}

// Element looks up an element by id.
func (s *Structure) Element(id ElementID) (*Element, bool) {
	i, ok := s.elemIdx[id]
	if !ok {
		return nil, false
	}
	return s.elements[i], true
}

// Load looks up a load by id.
func (s *Structure) Load(id LoadID) (*LoadWeight, bool) {
	i, ok := s.loadIdx[id]
	if !ok {
		return nil, false
	}
	return s.loads[i], true
}

// AddNode creates a node at pos. The position is also snapshotted as the
// node's reset reference.
func (s *Structure) AddNode(pos Vec2, fixed bool) NodeID {
	id := s.nextNode
	s.nextNode++
	n := &Node{ID: id, Pos: pos, OrigPos: pos, Fixed: fixed}
	s.nodeIdx[id] = len(s.nodes)
	s.nodes = append(s.nodes, n)
	return id
}

// RemoveNode deletes a node and cascades to every incident element and
// every load referencing it.
func (s *Structure) RemoveNode(id NodeID) error {
	if _, ok := s.nodeIdx[id]; !ok {
		return fmt.Errorf("remove node %d: %w", id, ErrInvalidReference)
	}

	kept := s.elements[:0]
	for _, e := range s.elements {
		if e.A == id || e.B == id {
			delete(s.elemIdx, e.ID)
			continue
		}
		kept = append(kept, e)
	}
	s.elements = kept

	keptLoads := s.loads[:0]
	for _, l := range s.loads {
		if l.Node == id {
			delete(s.loadIdx, l.ID)
			continue
		}
		keptLoads = append(keptLoads, l)
	}
	s.loads = keptLoads

	i := s.nodeIdx[id]
	delete(s.nodeIdx, id)
	s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)

	s.reindex()
	s.recomputeMasses()
	return nil
}

// ToggleFixed flips a node's fixed flag. A newly fixed node stops dead.
func (s *Structure) ToggleFixed(id NodeID) error {
	n, ok := s.Node(id)
	if !ok {
		return fmt.Errorf("toggle fixed %d: %w", id, ErrInvalidReference)
	}
	n.Fixed = !n.Fixed
	if n.Fixed {
		n.Vel = Vec2{}
		n.Force = Vec2{}
	}
	return nil
}

// AddElement connects two distinct, non-coincident nodes with a member of
// the given material. Rest length and stiffness are frozen from the
// current node positions.
func (s *Structure) AddElement(a, b NodeID, m Material) (ElementID, error) {
	na, ok := s.Node(a)
	if !ok {
		return 0, fmt.Errorf("add element: node %d: %w", a, ErrInvalidReference)
	}
	nb, ok := s.Node(b)
	if !ok {
		return 0, fmt.Errorf("add element: node %d: %w", b, ErrInvalidReference)
	}
	if a == b {
		return 0, fmt.Errorf("add element %d-%d: %w", a, b, ErrDegenerateElement)
	}
	l0 := nb.Pos.Sub(na.Pos).Length()
	if l0 == 0 {
		return 0, fmt.Errorf("add element %d-%d: %w", a, b, ErrDegenerateElement)
	}

	id := s.nextElem
	s.nextElem++
	p := m.Props()
	e := &Element{
		ID:         id,
		A:          a,
		B:          b,
		Material:   m,
		RestLength: l0,
		Stiffness:  p.YoungsModulus * p.Area / l0,
	}
	s.elemIdx[id] = len(s.elements)
	s.elements = append(s.elements, e)
	s.recomputeMasses()
	return id, nil
}

// RemoveElement deletes a member; its half-mass contributions disappear
// with the recompute.
func (s *Structure) RemoveElement(id ElementID) error {
	i, ok := s.elemIdx[id]
	if !ok {
		return fmt.Errorf("remove element %d: %w", id, ErrInvalidReference)
	}
	delete(s.elemIdx, id)
	s.elements = append(s.elements[:i], s.elements[i+1:]...)
	s.reindex()
	s.recomputeMasses()
	return nil
}

// AddLoad attaches a point load to a node.
func (s *Structure) AddLoad(node NodeID, mass float64) (LoadID, error) {
	n, ok := s.Node(node)
	if !ok {
		return 0, fmt.Errorf("add load: node %d: %w", node, ErrInvalidReference)
	}
	id := s.nextLoad
	s.nextLoad++
	l := &LoadWeight{ID: id, Node: node, Mass: mass}
	s.loadIdx[id] = len(s.loads)
	s.loads = append(s.loads, l)
	n.AppliedMass += mass
	return id, nil
}

// RemoveLoad detaches a point load, subtracting its mass back out of the
// node's applied mass.
func (s *Structure) RemoveLoad(id LoadID) error {
	i, ok := s.loadIdx[id]
	if !ok {
		return fmt.Errorf("remove load %d: %w", id, ErrInvalidReference)
	}
	l := s.loads[i]
	if n, ok := s.Node(l.Node); ok {
		n.AppliedMass -= l.Mass
	}
	delete(s.loadIdx, id)
	s.loads = append(s.loads[:i], s.loads[i+1:]...)
	s.reindex()
	return nil
}

// Reset returns every node to its creation-time position at rest and
// clears all failure flags. Topology, materials, and loads are untouched.
func (s *Structure) Reset() {
	for _, n := range s.nodes {
		n.Pos = n.OrigPos
		n.Vel = Vec2{}
		n.Force = Vec2{}
	}
	for _, e := range s.elements {
		e.Broken = false
		e.Yielded = false
	}
}

// Clear empties all three arenas.
func (s *Structure) Clear() {
	s.nodes = nil
	s.elements = nil
	s.loads = nil
	s.nodeIdx = make(map[NodeID]int)
	s.elemIdx = make(map[ElementID]int)
	s.loadIdx = make(map[LoadID]int)
}

// Endpoints resolves an element's node records. Both are guaranteed
// present by the cascade invariant.
func (s *Structure) Endpoints(e *Element) (*Node, *Node) {
	a := s.nodes[s.nodeIdx[e.A]]
	b := s.nodes[s.nodeIdx[e.B]]
	return a, b
}

// Strain evaluates the element at its current endpoint positions.
func (s *Structure) Strain(e *Element) float64 {
	a, b := s.Endpoints(e)
	return e.Strain(a.Pos, b.Pos)
}

// Stress evaluates the element at its current endpoint positions.
func (s *Structure) Stress(e *Element) float64 {
	a, b := s.Endpoints(e)
	return e.Stress(a.Pos, b.Pos)
}

// StressRatio evaluates the element at its current endpoint positions.
func (s *Structure) StressRatio(e *Element) float64 {
	a, b := s.Endpoints(e)
	return e.StressRatio(a.Pos, b.Pos)
}

// CurrentLength is the live distance between an element's endpoints.
func (s *Structure) CurrentLength(e *Element) float64 {
	a, b := s.Endpoints(e)
	return b.Pos.Sub(a.Pos).Length()
}

// TotalMass sums element masses and load masses.
func (s *Structure) TotalMass() float64 {
	total := 0.0
	for _, e := range s.elements {
		total += e.Mass()
	}
	for _, l := range s.loads {
		total += l.Mass
	}
	return total
}

// FailureCounts reports (broken, yielded) element counts. Broken members
// are counted in both tallies since breaking implies yielding.
func (s *Structure) FailureCounts() (broken, yielded int) {
	for _, e := range s.elements {
		if e.Broken {
			broken++
		}
		if e.Yielded {
			yielded++
		}
	}
	return broken, yielded
}

// AnchorMidpointX is the horizontal midpoint of the fixed support span,
// used to locate the impulse-test target. Reports false when fewer than
// one fixed node exists.
func (s *Structure) AnchorMidpointX() (float64, bool) {
	first := true
	var min, max float64
	for _, n := range s.nodes {
		if !n.Fixed {
			continue
		}
		if first {
			min, max = n.Pos.X, n.Pos.X
			first = false
			continue
		}
		if n.Pos.X < min {
			min = n.Pos.X
		}
		if n.Pos.X > max {
			max = n.Pos.X
		}
	}
	if first {
		return 0, false
	}
	return (min + max) / 2, true
}

func (s *Structure) reindex() {
	for i, n := range s.nodes {
		s.nodeIdx[n.ID] = i
	}
	for i, e := range s.elements {
		s.elemIdx[e.ID] = i
	}
	for i, l := range s.loads {
		s.loadIdx[l.ID] = i
	}
}

// recomputeMasses rederives every node's structural mass from the live
// element set.
func (s *Structure) recomputeMasses() {
	for _, n := range s.nodes {
		n.Mass = 0
	}
	for _, e := range s.elements {
		half := e.Mass() / 2
		a, b := s.Endpoints(e)
		a.Mass += half
		b.Mass += half
	}
}
