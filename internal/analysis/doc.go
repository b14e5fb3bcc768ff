// Package analysis provides frequency analysis for recorded signals.
//
//   - [FFT] / [PowerSpectrum]: radix-2 transform with zero-padding
//   - [DominantFrequency]: natural-frequency estimate from an
//     impulse-test displacement series
package analysis
