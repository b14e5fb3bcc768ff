// Package sim advances a truss structure through time.
//
// The package defines the integration loop and the diagnostics layered
// on its tick boundary:
//
//   - [Simulation]: context object owning one [truss.Structure] and the
//     fixed integration parameters ([Config])
//   - [Recorder]: per-tick sampling of stress or displacement signals
//   - [Simulation.RunImpulseTest]: scripted free-vibration excitation
//
// Integration is semi-implicit Euler with Rayleigh damping at a fixed
// Dt, sub-stepped SubSteps times per tick for stability on the stiff
// spring network. Velocity is updated from force before position is
// updated from the new velocity.
//
// # Thread Safety
//
// Simulation instances are NOT thread-safe, and topology edits on the
// owned structure are only safe between ticks. A step is a pure function
// of the current structure state plus the fixed parameters; steps are
// never reordered or interleaved.
package sim
