package sim

import (
	"fmt"
	"math"

	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/truss"
)

// RunImpulseTest excites free, undamped vibration for natural-frequency
// analysis: the structure is reset to rest, both damping coefficients are
// zeroed, and the non-fixed node nearest the midpoint of the fixed
// support span receives an instantaneous impulse J converted to velocity
// (dv = J/m). A displacement recording of the given duration is started
// and the simulation resumed; the previous damping coefficients are
// restored when the recording completes or is aborted.
//
// Rejected while the simulation is already running, and when no fixed
// supports or no massive free node exist.
func (s *Simulation) RunImpulseTest(magnitude, duration float64) error {
	if s.running {
		return fmt.Errorf("impulse test: simulation already running: %w", ErrInvalidOperationState)
	}
	if duration <= 0 {
		return fmt.Errorf("impulse test: duration must be positive, got %f", duration)
	}

	mid, ok := s.structure.AnchorMidpointX()
	if !ok {
		return fmt.Errorf("impulse test: no fixed supports: %w", ErrInvalidOperationState)
	}

	var target *truss.Node
	best := math.Inf(1)
	for _, n := range s.structure.Nodes() {
		if n.Fixed || n.TotalMass() <= 0 {
			continue
		}
		if d := math.Abs(n.Pos.X - mid); d < best {
			best = d
			target = n
		}
	}
	if target == nil {
		return fmt.Errorf("impulse test: no movable node to excite: %w", ErrInvalidOperationState)
	}

	s.structure.Reset()
	s.t = 0

	alpha, beta := s.cfg.AlphaDamping, s.cfg.BetaDamping
	s.SetDamping(0, 0)
	restore := func(sim *Simulation) {
		sim.SetDamping(alpha, beta)
	}

	target.Vel = truss.Vec2{X: 0, Y: magnitude / target.TotalMass()}

	s.recorder.begin(s, ModeDisplacement, target.ID, duration, restore)
	s.running = true
	return nil
}
