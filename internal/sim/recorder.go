package sim

import (
	"fmt"

	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/truss"
)

// RecordMode selects what a recording samples each tick.
type RecordMode int

const (
	// ModeStress samples the full per-element stress vector.
	ModeStress RecordMode = iota
	// ModeDisplacement samples one tracked node's vertical displacement
	// from its creation-time position.
	ModeDisplacement
)

func (m RecordMode) String() string {
	if m == ModeDisplacement {
		return "displacement"
	}
	return "stress"
}

// Series is a finished recording. In stress mode each sample holds one
// column per element, ordered as ElementIDs; in displacement mode each
// sample is a single value for Node.
type Series struct {
	Mode       RecordMode
	Interval   float64
	Times      []float64
	Samples    [][]float64
	ElementIDs []truss.ElementID
	Node       truss.NodeID
}

// Sink receives a finished recording. Aborted sessions are discarded
// without a sink call.
type Sink func(Series)

// Recorder samples the simulation once per tick while active. It is
// driven by the owning Simulation at tick boundaries; the sampling
// interval is therefore Dt*SubSteps, never per sub-step.
type Recorder struct {
	recording  bool
	mode       RecordMode
	node       truss.NodeID
	duration   float64
	elapsed    float64
	series     Series
	sink       Sink
	onComplete func(s *Simulation)
}

func newRecorder() *Recorder {
	return &Recorder{}
}

// SetSink registers the export collaborator that receives finished series.
func (r *Recorder) SetSink(sink Sink) { r.sink = sink }

// Active reports whether a recording session is in progress.
func (r *Recorder) Active() bool { return r.recording }

// Progress reports elapsed and total recording time.
func (r *Recorder) Progress() (elapsed, duration float64) {
	return r.elapsed, r.duration
}

func (r *Recorder) begin(s *Simulation, mode RecordMode, node truss.NodeID, duration float64, onComplete func(*Simulation)) {
	interval := s.cfg.TickInterval()
	capacity := int(duration/interval) + 1

	r.recording = true
	r.mode = mode
	r.node = node
	r.duration = duration
	r.elapsed = 0
	r.onComplete = onComplete
	r.series = Series{
		Mode:     mode,
		Interval: interval,
		Times:    make([]float64, 0, capacity),
		Samples:  make([][]float64, 0, capacity),
		Node:     node,
	}
	if mode == ModeStress {
		ids := make([]truss.ElementID, 0, len(s.structure.Elements()))
		for _, e := range s.structure.Elements() {
			ids = append(ids, e.ID)
		}
		r.series.ElementIDs = ids
	}
}

// observe appends one sample at a tick boundary and closes the session
// once the configured duration is reached.
func (r *Recorder) observe(s *Simulation) {
	if !r.recording {
		return
	}

	var sample []float64
	switch r.mode {
	case ModeStress:
		sample = make([]float64, 0, len(r.series.ElementIDs))
		for _, id := range r.series.ElementIDs {
			e, ok := s.structure.Element(id)
			if !ok {
				sample = append(sample, 0)
				continue
			}
			sample = append(sample, s.structure.Stress(e))
		}
	case ModeDisplacement:
		n, ok := s.structure.Node(r.node)
		if !ok {
			r.abort(s)
			return
		}
		sample = []float64{n.Displacement().Y}
	}

	r.elapsed += r.series.Interval
	r.series.Times = append(r.series.Times, r.elapsed)
	r.series.Samples = append(r.series.Samples, sample)

	if r.elapsed >= r.duration {
		finished := r.series
		r.finish(s)
		if r.sink != nil {
			r.sink(finished)
		}
	}
}

// abort discards the in-progress series without emitting it.
func (r *Recorder) abort(s *Simulation) {
	if !r.recording {
		return
	}
	r.finish(s)
}

func (r *Recorder) finish(s *Simulation) {
	r.recording = false
	r.series = Series{}
	if r.onComplete != nil {
		done := r.onComplete
		r.onComplete = nil
		done(s)
	}
}

// Recorder exposes the simulation's recorder for progress queries and
// sink registration.
func (s *Simulation) Recorder() *Recorder { return s.recorder }

// StartRecording begins a stress-history session. The simulation must be
// advancing: recording against a stopped simulation is rejected, and so
// is stacking a second session on an active one.
func (s *Simulation) StartRecording(duration float64) error {
	if !s.running {
		return fmt.Errorf("start recording: simulation not running: %w", ErrInvalidOperationState)
	}
	if s.recorder.recording {
		return fmt.Errorf("start recording: session already active: %w", ErrInvalidOperationState)
	}
	if duration <= 0 {
		return fmt.Errorf("start recording: duration must be positive, got %f", duration)
	}
	s.recorder.begin(s, ModeStress, 0, duration, nil)
	return nil
}

// AbortRecording cancels any active session, discarding its samples.
func (s *Simulation) AbortRecording() {
	s.recorder.abort(s)
}
