package orchestration

import (
	"github.com/agbru/bigcalc/internal/multiplier"
)

// GetMultipliersToRun determines which multipliers should be executed for
// algo. "all" returns every registered multiplier in alphabetical order for
// consistent, reproducible behavior.
//
// Parameters:
//   - algo: "all" or a registry name.
//   - registry: The registry to retrieve implementations from.
//
// Returns:
//   - []multiplier.Multiplier: the multipliers to execute, or nil when algo
//     is unknown.
func GetMultipliersToRun(algo string, registry *multiplier.Registry) []multiplier.Multiplier {
	if algo == "all" {
		keys := registry.List()
		multipliers := make([]multiplier.Multiplier, 0, len(keys))
		for _, k := range keys {
			if m, err := registry.Get(k); err == nil {
				multipliers = append(multipliers, m)
			}
		}
		return multipliers
	}
	if m, err := registry.Get(algo); err == nil {
		return []multiplier.Multiplier{m}
	}
	return nil
}
