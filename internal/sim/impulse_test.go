package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/truss"
)

// span builds a three-panel deck anchored at both ends, with the middle
// node at the anchor midpoint.
func span(t *testing.T) (*truss.Structure, truss.NodeID) {
	t.Helper()
	st := truss.NewStructure()
	a := st.AddNode(truss.Vec2{X: 0, Y: 0}, true)
	m1 := st.AddNode(truss.Vec2{X: 2, Y: 0}, false)
	m2 := st.AddNode(truss.Vec2{X: 4, Y: 0}, false)
	b := st.AddNode(truss.Vec2{X: 6, Y: 0}, true)
	for _, pair := range [][2]truss.NodeID{{a, m1}, {m1, m2}, {m2, b}} {
		if _, err := st.AddElement(pair[0], pair[1], truss.Steel); err != nil {
			t.Fatal(err)
		}
	}
	// Anchor midpoint is x=3; m1 (x=2) and m2 (x=4) tie, the first wins.
	return st, m1
}

func TestImpulseRejectedWhileRunning(t *testing.T) {
	st, _ := span(t)
	s := New(st, DefaultConfig())
	s.SetRunning(true)

	err := s.RunImpulseTest(500, 1)
	if !errors.Is(err, ErrInvalidOperationState) {
		t.Fatalf("err = %v, want ErrInvalidOperationState", err)
	}
}

func TestImpulseRequiresSupports(t *testing.T) {
	st := truss.NewStructure()
	st.AddNode(truss.Vec2{X: 0, Y: 0}, false)
	s := New(st, DefaultConfig())

	if err := s.RunImpulseTest(500, 1); !errors.Is(err, ErrInvalidOperationState) {
		t.Fatalf("err = %v, want ErrInvalidOperationState", err)
	}
}

func TestImpulseInjectsVelocity(t *testing.T) {
	st, target := span(t)
	s := New(st, DefaultConfig())

	if err := s.RunImpulseTest(500, 1); err != nil {
		t.Fatalf("impulse test: %v", err)
	}

	if !s.Running() {
		t.Error("impulse test must resume the simulation")
	}
	if !s.Recorder().Active() {
		t.Error("impulse test must start a recording")
	}
	if got := s.Config().AlphaDamping; got != 0 {
		t.Errorf("alpha damping = %g, want 0 during the test", got)
	}
	if got := s.Config().BetaDamping; got != 0 {
		t.Errorf("beta damping = %g, want 0 during the test", got)
	}

	n, _ := st.Node(target)
	want := 500 / n.TotalMass()
	if math.Abs(n.Vel.Y-want) > 1e-9 {
		t.Errorf("v_y = %g, want %g (dv = J/m)", n.Vel.Y, want)
	}
	if n.Vel.X != 0 {
		t.Errorf("v_x = %g, want 0", n.Vel.X)
	}
}

func TestImpulseRecordsDisplacementAndRestoresDamping(t *testing.T) {
	st, target := span(t)
	cfg := DefaultConfig()
	s := New(st, cfg)

	var got *Series
	s.Recorder().SetSink(func(se Series) { got = &se })

	duration := 0.2
	if err := s.RunImpulseTest(500, duration); err != nil {
		t.Fatalf("impulse test: %v", err)
	}

	ticks := int(duration/s.Config().TickInterval()) + 2
	for i := 0; i < ticks && s.Recorder().Active(); i++ {
		s.Tick()
	}

	if got == nil {
		t.Fatal("sink never received the impulse series")
	}
	if got.Mode != ModeDisplacement {
		t.Errorf("mode = %v, want displacement", got.Mode)
	}
	if got.Node != target {
		t.Errorf("tracked node = %d, want %d", got.Node, target)
	}
	for i, sample := range got.Samples {
		if len(sample) != 1 {
			t.Fatalf("sample %d has %d columns, want 1", i, len(sample))
		}
	}

	// Free vibration must actually move the tracked node.
	moved := false
	for _, sample := range got.Samples {
		if math.Abs(sample[0]) > 1e-9 {
			moved = true
			break
		}
	}
	if !moved {
		t.Error("recorded displacement is identically zero")
	}

	if s.Config().AlphaDamping != cfg.AlphaDamping {
		t.Errorf("alpha damping not restored: %g", s.Config().AlphaDamping)
	}
	if s.Config().BetaDamping != cfg.BetaDamping {
		t.Errorf("beta damping not restored: %g", s.Config().BetaDamping)
	}
}
