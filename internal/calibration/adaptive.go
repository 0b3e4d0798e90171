// This file implements adaptive candidate generation based on hardware characteristics.

package calibration

import (
	"github.com/agbru/bigcalc/internal/config"
)

// ─────────────────────────────────────────────────────────────────────────────
// Karatsuba Candidates
// ─────────────────────────────────────────────────────────────────────────────

// GenerateKaratsubaCandidates returns the Karatsuba base-case thresholds, in
// limbs, tried by a full calibration. The list is centered on the heuristic
// estimate for this word size.
func GenerateKaratsubaCandidates() []int {
	est := config.EstimateOptimalKaratsubaThreshold()
	return []int{est / 4, est / 2, est * 3 / 4, est, est * 3 / 2, est * 2, est * 3, est * 4}
}

// GenerateQuickKaratsubaCandidates returns a smaller set for auto-calibration.
func GenerateQuickKaratsubaCandidates() []int {
	est := config.EstimateOptimalKaratsubaThreshold()
	return []int{est / 2, est, est * 2}
}

// ─────────────────────────────────────────────────────────────────────────────
// FFT Candidates
// ─────────────────────────────────────────────────────────────────────────────

// GenerateFFTCandidates returns the operand sizes, in limbs, at which a full
// calibration races Karatsuba against FFT. The FFT threshold becomes the
// first size FFT wins at.
func GenerateFFTCandidates() []int {
	return []int{256, 512, 1024, 1536, 2048, 3072, 4096, 8192}
}

// GenerateQuickFFTCandidates returns a smaller set for auto-calibration.
func GenerateQuickFFTCandidates() []int {
	return []int{512, 1024, 2048, 4096}
}

// ─────────────────────────────────────────────────────────────────────────────
// Threshold Estimation (without benchmarking)
// Delegates to config.EstimateOptimal*, where the canonical versions live.
// ─────────────────────────────────────────────────────────────────────────────

// EstimateOptimalKaratsubaThreshold delegates to config.EstimateOptimalKaratsubaThreshold.
func EstimateOptimalKaratsubaThreshold() int { return config.EstimateOptimalKaratsubaThreshold() }

// EstimateOptimalFFTThreshold delegates to config.EstimateOptimalFFTThreshold.
func EstimateOptimalFFTThreshold() int { return config.EstimateOptimalFFTThreshold() }
