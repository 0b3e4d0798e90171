package multiplier

import (
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// DefaultFFTThreshold is the shorter-operand length in limbs from which the
// default policy switches to FFT.
const DefaultFFTThreshold = 2048

// Thresholds are the crossover points, in limbs of the shorter operand, used
// by DefaultPolicy.
type Thresholds struct {
	Karatsuba int
	FFT       int
}

// DefaultThresholds returns the built-in crossover points.
func DefaultThresholds() Thresholds {
	return Thresholds{Karatsuba: DefaultKaratsubaThreshold, FFT: DefaultFFTThreshold}
}

// Policy chooses a strategy from the operand lengths in limbs.
type Policy func(leftLen, rightLen int) Kind

// DefaultPolicy returns a Policy that picks FFT when the shorter operand
// reaches t.FFT limbs, Karatsuba when it reaches t.Karatsuba limbs and Simple
// otherwise. A non-positive threshold disables that strategy.
func DefaultPolicy(t Thresholds) Policy {
	return func(leftLen, rightLen int) Kind {
		short := min(leftLen, rightLen)
		switch {
		case t.FFT > 0 && short >= t.FFT:
			return KindFFT
		case t.Karatsuba > 0 && short >= t.Karatsuba:
			return KindKaratsuba
		}
		return KindSimple
	}
}

// Selector dispatches each product to a strategy chosen by its Policy.
// It is safe for concurrent use.
type Selector struct {
	policy    Policy
	simple    Multiplier
	karatsuba Multiplier
	fft       Multiplier
	logger    zerolog.Logger
	fallbacks atomic.Uint64
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithThresholds installs DefaultPolicy(t) and sizes the Karatsuba base case
// from t.Karatsuba.
func WithThresholds(t Thresholds) SelectorOption {
	return func(s *Selector) {
		s.policy = DefaultPolicy(t)
		if t.Karatsuba > 0 {
			s.karatsuba = Karatsuba{Threshold: t.Karatsuba}
		}
	}
}

// WithPolicy installs a custom Policy.
func WithPolicy(p Policy) SelectorOption {
	return func(s *Selector) { s.policy = p }
}

// WithLogger sets the logger used to report FFT fallbacks.
func WithLogger(l zerolog.Logger) SelectorOption {
	return func(s *Selector) { s.logger = l }
}

// WithStrategies replaces the concrete strategies dispatched to. Nil entries
// keep the defaults.
func WithStrategies(simple, karatsuba, fft Multiplier) SelectorOption {
	return func(s *Selector) {
		if simple != nil {
			s.simple = simple
		}
		if karatsuba != nil {
			s.karatsuba = karatsuba
		}
		if fft != nil {
			s.fft = fft
		}
	}
}

// NewSelector returns a Selector using DefaultThresholds unless overridden.
func NewSelector(opts ...SelectorOption) *Selector {
	s := &Selector{
		policy:    DefaultPolicy(DefaultThresholds()),
		simple:    Simple{},
		karatsuba: Karatsuba{},
		fft:       FFT{},
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Multiplier.
func (s *Selector) Name() string { return "Auto" }

// Choose reports the strategy the policy picks for the given lengths.
func (s *Selector) Choose(leftLen, rightLen int) Kind {
	return s.policy(leftLen, rightLen)
}

// Fallbacks returns how many FFT products were recomputed with Karatsuba.
func (s *Selector) Fallbacks() uint64 { return s.fallbacks.Load() }

// Multiply implements Multiplier.
func (s *Selector) Multiply(left, right []uint32) ([]uint32, error) {
	x, y, zero := normalize(left, right)
	if zero {
		return nil, nil
	}
	switch s.policy(len(x), len(y)) {
	case KindFFT:
		z, err := s.fft.Multiply(x, y)
		if err == nil {
			return z, nil
		}
		if !errors.Is(err, apperrors.ErrPrecision) {
			return nil, err
		}
		s.fallbacks.Add(1)
		s.logger.Warn().Err(err).
			Int("left_limbs", len(x)).
			Int("right_limbs", len(y)).
			Msg("fft product rejected, falling back to karatsuba")
		return s.karatsuba.Multiply(x, y)
	case KindKaratsuba:
		return s.karatsuba.Multiply(x, y)
	}
	return s.simple.Multiply(x, y)
}
