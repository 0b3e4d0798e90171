package config

import (
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/agbru/bigcalc/internal/multiplier"
)

// Threshold resolution chain (highest priority first):
//   1. CLI flags (--karatsuba-threshold, --fft-threshold)
//   2. Environment variables (BIGCALC_KARATSUBA_THRESHOLD, etc.)
//   3. Config file [thresholds] table
//   4. Cached calibration profile (~/.bigcalc_calibration.json)
//   5. Adaptive hardware estimation (this file)

// ApplyAdaptiveThresholds fills thresholds left at zero with estimates based
// on the word size and CPU features. Non-zero values are preserved.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.KaratsubaThreshold == 0 {
		cfg.KaratsubaThreshold = EstimateOptimalKaratsubaThreshold()
	}
	if cfg.FFTThreshold == 0 {
		cfg.FFTThreshold = EstimateOptimalFFTThreshold()
	}
	return cfg
}

// EstimateOptimalKaratsubaThreshold provides a heuristic estimate of the
// Karatsuba crossover, in limbs, without running benchmarks.
func EstimateOptimalKaratsubaThreshold() int {
	wordSize := 32 << (^uint(0) >> 63)
	if wordSize == 64 {
		return multiplier.DefaultKaratsubaThreshold
	}
	// 64-bit column accumulators are emulated on 32-bit targets, so the
	// schoolbook loop loses earlier.
	return multiplier.DefaultKaratsubaThreshold * 3 / 4
}

// EstimateOptimalFFTThreshold provides a heuristic estimate of the FFT
// crossover, in limbs, without running benchmarks.
func EstimateOptimalFFTThreshold() int {
	threshold := multiplier.DefaultFFTThreshold
	if hasFastFloat() {
		threshold = threshold * 3 / 4
	}
	if runtime.GOARCH == "386" || runtime.GOARCH == "arm" {
		threshold *= 2
	}
	return threshold
}

// hasFastFloat reports whether the CPU has fused multiply-add, which the
// compiler uses for the complex butterflies.
func hasFastFloat() bool {
	return cpu.X86.HasFMA || cpu.ARM64.HasASIMD
}
