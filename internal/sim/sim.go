package sim

import (
	"context"
	"fmt"

	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/truss"
)

// Config holds the fixed integration parameters. One externally-driven
// tick performs SubSteps consecutive steps of length Dt; sub-stepping is
// what keeps the stiff spring network stable under the explicit scheme.
type Config struct {
	Dt           float64
	SubSteps     int
	Gravity      truss.Vec2
	AlphaDamping float64
	BetaDamping  float64
}

func DefaultConfig() Config {
	return Config{
		Dt:           1.0 / 1200.0,
		SubSteps:     20,
		Gravity:      truss.Vec2{X: 0, Y: 9.81},
		AlphaDamping: 0.6,
		BetaDamping:  4e-4,
	}
}

// TickInterval is the wall-clock time advanced per tick.
func (c Config) TickInterval() float64 {
	return c.Dt * float64(c.SubSteps)
}

func (c Config) validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.SubSteps <= 0 {
		return fmt.Errorf("sub-steps must be positive, got %d", c.SubSteps)
	}
	return nil
}

// Metric observes the structure once per tick and reduces to a scalar.
type Metric interface {
	Name() string
	Observe(st *truss.Structure, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed tick.
type Observer interface {
	OnTick(st *truss.Structure, t float64)
}

// Simulation is the explicit context object owning one structure and its
// integration state. Not safe for concurrent use; topology edits must
// happen between ticks, never mid-step.
type Simulation struct {
	structure *truss.Structure
	cfg       Config
	running   bool
	t         float64
	recorder  *Recorder
	observers []Observer
}

func New(st *truss.Structure, cfg Config) *Simulation {
	return &Simulation{
		structure: st,
		cfg:       cfg,
		recorder:  newRecorder(),
	}
}

func (s *Simulation) Structure() *truss.Structure { return s.structure }
func (s *Simulation) Config() Config              { return s.cfg }
func (s *Simulation) Time() float64               { return s.t }
func (s *Simulation) Running() bool               { return s.running }
func (s *Simulation) SetRunning(running bool)     { s.running = running }

func (s *Simulation) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// SetDamping replaces both Rayleigh coefficients.
func (s *Simulation) SetDamping(alpha, beta float64) {
	s.cfg.AlphaDamping = alpha
	s.cfg.BetaDamping = beta
}

// Step advances the structure by one Dt. Four ordered phases: gravity,
// element elastic and stiffness-proportional damping forces, semi-implicit
// Euler integration with mass-proportional damping, failure latch.
func (s *Simulation) Step() {
	st := s.structure
	dt := s.cfg.Dt

	for _, n := range st.Nodes() {
		if n.Fixed {
			continue
		}
		n.Force = s.cfg.Gravity.Scale(n.TotalMass())
	}

	for _, e := range st.Elements() {
		if e.Broken {
			continue
		}
		a, b := st.Endpoints(e)
		dir := b.Pos.Sub(a.Pos).Unit()

		// Positive magnitude pulls the endpoints together (tension).
		mag := e.AxialForce(a.Pos, b.Pos)
		mag += s.cfg.BetaDamping * e.Stiffness * b.Vel.Sub(a.Vel).Dot(dir)

		f := dir.Scale(mag)
		if !a.Fixed {
			a.Force = a.Force.Add(f)
		}
		if !b.Fixed {
			b.Force = b.Force.Sub(f)
		}
	}

	for _, n := range st.Nodes() {
		if n.Fixed {
			continue
		}
		m := n.TotalMass()
		if m <= 0 {
			continue
		}
		f := n.Force.Sub(n.Vel.Scale(s.cfg.AlphaDamping * m))
		n.Vel = n.Vel.Add(f.Scale(dt / m))
		n.Pos = n.Pos.Add(n.Vel.Scale(dt))
	}

	for _, e := range st.Elements() {
		a, b := st.Endpoints(e)
		e.CheckFailure(a.Pos, b.Pos)
	}
}

// Tick performs SubSteps steps when running, then notifies observers and
// the recorder. One tick is the sampling boundary for recordings.
func (s *Simulation) Tick() {
	if !s.running {
		return
	}
	for i := 0; i < s.cfg.SubSteps; i++ {
		s.Step()
	}
	s.t += s.cfg.TickInterval()

	for _, o := range s.observers {
		o.OnTick(s.structure, s.t)
	}
	s.recorder.observe(s)
}

// Reset returns the structure to rest, rewinds simulation time, and
// discards any in-progress recording.
func (s *Simulation) Reset() {
	s.recorder.abort(s)
	s.structure.Reset()
	s.t = 0
}

// Clear empties the structure and stops the simulation.
func (s *Simulation) Clear() {
	s.recorder.abort(s)
	s.structure.Clear()
	s.running = false
	s.t = 0
}

// Result summarizes a finite driven run.
type Result struct {
	Ticks   float64
	Time    float64
	Broken  int
	Yielded int
	Metrics map[string]float64
}

// Run drives the simulation for duration seconds of simulated time,
// observing metrics once per tick. The structure is left in its final
// state for inspection and export.
func (s *Simulation) Run(ctx context.Context, duration float64, metrics []Metric) (*Result, error) {
	if err := s.cfg.validate(); err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %f", duration)
	}

	for _, m := range metrics {
		m.Reset()
	}
	s.running = true

	ticks := int(duration / s.cfg.TickInterval())
	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		s.Tick()
		for _, m := range metrics {
			m.Observe(s.structure, s.t)
		}

		for _, n := range s.structure.Nodes() {
			if !n.Pos.IsValid() {
				return nil, fmt.Errorf("node %d at t=%.4f: %w", n.ID, s.t, ErrUnstable)
			}
		}
	}
	s.running = false

	broken, yielded := s.structure.FailureCounts()
	res := &Result{
		Ticks:   float64(ticks),
		Time:    s.t,
		Broken:  broken,
		Yielded: yielded,
		Metrics: make(map[string]float64, len(metrics)),
	}
	for _, m := range metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}
