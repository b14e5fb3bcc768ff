package metrics

import (
	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/truss"
)

// PeakStressRatio tracks the highest |stress|/ultimate seen on any
// element over a run. Unclamped: values above 1.0 mean rupture occurred.
type PeakStressRatio struct {
	peak float64
}

func NewPeakStressRatio() *PeakStressRatio {
	return &PeakStressRatio{}
}

func (p *PeakStressRatio) Name() string { return "peak_stress_ratio" }

func (p *PeakStressRatio) Observe(st *truss.Structure, t float64) {
	for _, e := range st.Elements() {
		if r := st.StressRatio(e); r > p.peak {
			p.peak = r
		}
	}
}

func (p *PeakStressRatio) Value() float64 { return p.peak }

func (p *PeakStressRatio) Reset() { p.peak = 0 }
