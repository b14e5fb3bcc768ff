package analysis

// DominantFrequency estimates the strongest oscillation frequency (Hz) in
// a uniformly sampled signal, e.g. an impulse-test displacement series.
// The mean is removed first so the DC bin never wins. Returns 0 for
// signals too short to resolve a peak.
func DominantFrequency(samples []float64, interval float64) float64 {
	if len(samples) < 4 || interval <= 0 {
		return 0
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(len(samples))

	centered := make([]float64, len(samples))
	for i, v := range samples {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	if len(ps) < 2 {
		return 0
	}

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0
	}

	// Bin width is sampleRate / fftLength; the spectrum spans half the
	// padded transform.
	fftLen := 2 * len(ps)
	return float64(maxIdx) / (float64(fftLen) * interval)
}
