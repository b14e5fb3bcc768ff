package truss

import (
	"errors"
	"math"
	"testing"
)

func TestAddElementDegenerate(t *testing.T) {
	st := NewStructure()
	a := st.AddNode(Vec2{X: 0, Y: 0}, false)
	b := st.AddNode(Vec2{X: 0, Y: 0}, false) // coincident
	c := st.AddNode(Vec2{X: 1, Y: 0}, false)

	tests := []struct {
		name string
		a, b NodeID
	}{
		{"self loop", a, a},
		{"coincident nodes", a, b},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := st.AddElement(tt.a, tt.b, Steel)
			if !errors.Is(err, ErrDegenerateElement) {
				t.Fatalf("err = %v, want ErrDegenerateElement", err)
			}
			if len(st.Elements()) != 0 {
				t.Error("rejected edit must leave the element collection unchanged")
			}
		})
	}

	if _, err := st.AddElement(a, c, Steel); err != nil {
		t.Fatalf("valid element rejected: %v", err)
	}
}

func TestInvalidReferences(t *testing.T) {
	st := NewStructure()
	n := st.AddNode(Vec2{}, false)

	if _, err := st.AddElement(n, NodeID(99), Wood); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("add element to missing node: err = %v", err)
	}
	if err := st.RemoveNode(NodeID(99)); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("remove missing node: err = %v", err)
	}
	if err := st.RemoveElement(ElementID(99)); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("remove missing element: err = %v", err)
	}
	if err := st.RemoveLoad(LoadID(99)); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("remove missing load: err = %v", err)
	}
	if _, err := st.AddLoad(NodeID(99), 10); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("add load to missing node: err = %v", err)
	}
	if err := st.ToggleFixed(NodeID(99)); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("toggle missing node: err = %v", err)
	}
}

func TestRemoveNodeCascades(t *testing.T) {
	st := NewStructure()
	a := st.AddNode(Vec2{X: 0, Y: 0}, true)
	b := st.AddNode(Vec2{X: 2, Y: 0}, false)
	c := st.AddNode(Vec2{X: 4, Y: 0}, true)

	e1, _ := st.AddElement(a, b, Steel)
	e2, _ := st.AddElement(b, c, Steel)
	load, _ := st.AddLoad(b, 1000)

	if err := st.RemoveNode(b); err != nil {
		t.Fatalf("remove node: %v", err)
	}

	if _, ok := st.Element(e1); ok {
		t.Error("element incident to removed node survived")
	}
	if _, ok := st.Element(e2); ok {
		t.Error("element incident to removed node survived")
	}
	if _, ok := st.Load(load); ok {
		t.Error("load on removed node survived")
	}
	if err := st.RemoveElement(e1); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("cascaded element id still resolvable: %v", err)
	}

	// Surviving endpoints must shed the removed members' half-masses.
	na, _ := st.Node(a)
	nc, _ := st.Node(c)
	if na.Mass != 0 || nc.Mass != 0 {
		t.Errorf("stale structural mass after cascade: %g, %g", na.Mass, nc.Mass)
	}
}

func TestMassConservation(t *testing.T) {
	st := NewStructure()
	a := st.AddNode(Vec2{X: 0, Y: 0}, false)
	b := st.AddNode(Vec2{X: 2, Y: 0}, false)
	c := st.AddNode(Vec2{X: 4, Y: 0}, false)

	e1, _ := st.AddElement(a, b, Wood)
	e2, _ := st.AddElement(b, c, Steel)
	l1, _ := st.AddLoad(b, 500)

	expect := func(want float64) {
		t.Helper()
		if got := st.TotalMass(); math.Abs(got-want) > 1e-9 {
			t.Errorf("total mass = %g, want %g", got, want)
		}
		// Node structural masses always sum to the element masses.
		sum := 0.0
		for _, n := range st.Nodes() {
			sum += n.Mass
		}
		elems := 0.0
		for _, e := range st.Elements() {
			elems += e.Mass()
		}
		if math.Abs(sum-elems) > 1e-9 {
			t.Errorf("node mass sum %g drifted from element mass sum %g", sum, elems)
		}
	}

	woodMass := Wood.Props().LinearDensity * 2
	steelMass := Steel.Props().LinearDensity * 2

	expect(woodMass + steelMass + 500)

	if err := st.RemoveElement(e1); err != nil {
		t.Fatalf("remove element: %v", err)
	}
	expect(steelMass + 500)

	if err := st.RemoveLoad(l1); err != nil {
		t.Fatalf("remove load: %v", err)
	}
	expect(steelMass)

	if err := st.RemoveElement(e2); err != nil {
		t.Fatalf("remove element: %v", err)
	}
	expect(0)
}

func TestLoadBookkeeping(t *testing.T) {
	st := NewStructure()
	a := st.AddNode(Vec2{}, false)

	l1, _ := st.AddLoad(a, 100)
	l2, _ := st.AddLoad(a, 250)

	n, _ := st.Node(a)
	if n.AppliedMass != 350 {
		t.Errorf("applied mass = %g, want 350", n.AppliedMass)
	}

	if err := st.RemoveLoad(l1); err != nil {
		t.Fatalf("remove load: %v", err)
	}
	if n.AppliedMass != 250 {
		t.Errorf("applied mass after removal = %g, want 250", n.AppliedMass)
	}
	if err := st.RemoveLoad(l2); err != nil {
		t.Fatalf("remove load: %v", err)
	}
	if n.AppliedMass != 0 {
		t.Errorf("applied mass after removal = %g, want 0", n.AppliedMass)
	}
}

func TestResetRestoresRest(t *testing.T) {
	st := NewStructure()
	a := st.AddNode(Vec2{X: 0, Y: 0}, true)
	b := st.AddNode(Vec2{X: 2, Y: 0}, false)
	id, _ := st.AddElement(a, b, Wood)

	nb, _ := st.Node(b)
	nb.Pos = Vec2{X: 20, Y: 5}
	nb.Vel = Vec2{X: 1, Y: 1}
	e, _ := st.Element(id)
	na, _ := st.Node(a)
	e.CheckFailure(na.Pos, nb.Pos)
	if !e.Broken {
		t.Fatal("setup: expected broken element")
	}

	st.Reset()

	if nb.Pos != nb.OrigPos {
		t.Errorf("position not restored: %v", nb.Pos)
	}
	if (nb.Vel != Vec2{}) {
		t.Errorf("velocity not zeroed: %v", nb.Vel)
	}
	if e.Broken || e.Yielded {
		t.Error("failure flags must clear on reset")
	}
	if len(st.Nodes()) != 2 || len(st.Elements()) != 1 {
		t.Error("reset must not alter topology")
	}
}

func TestClear(t *testing.T) {
	st := NewStructure()
	a := st.AddNode(Vec2{X: 0, Y: 0}, false)
	b := st.AddNode(Vec2{X: 1, Y: 0}, false)
	st.AddElement(a, b, Wood)
	st.AddLoad(a, 10)

	st.Clear()

	if len(st.Nodes()) != 0 || len(st.Elements()) != 0 || len(st.Loads()) != 0 {
		t.Error("clear must empty all arenas")
	}
	if st.TotalMass() != 0 {
		t.Errorf("total mass after clear = %g", st.TotalMass())
	}
}

func TestToggleFixedStopsNode(t *testing.T) {
	st := NewStructure()
	a := st.AddNode(Vec2{}, false)
	n, _ := st.Node(a)
	n.Vel = Vec2{X: 3, Y: 4}

	if err := st.ToggleFixed(a); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !n.Fixed {
		t.Error("expected fixed")
	}
	if (n.Vel != Vec2{}) {
		t.Error("fixing a node must zero its velocity")
	}

	st.ToggleFixed(a)
	if n.Fixed {
		t.Error("expected free after second toggle")
	}
}

func TestAnchorMidpointX(t *testing.T) {
	st := NewStructure()
	if _, ok := st.AnchorMidpointX(); ok {
		t.Error("no fixed nodes: expected ok=false")
	}

	st.AddNode(Vec2{X: 0, Y: 0}, true)
	st.AddNode(Vec2{X: 8, Y: 0}, true)
	st.AddNode(Vec2{X: 100, Y: 0}, false) // free nodes don't count

	mid, ok := st.AnchorMidpointX()
	if !ok {
		t.Fatal("expected ok=true")
	}
	if mid != 4 {
		t.Errorf("midpoint = %g, want 4", mid)
	}
}
