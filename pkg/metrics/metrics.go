// Package metrics contains the pure metric formulas: Halstead software
// science, maintainability index, and the CK aggregates. Every function is
// deterministic and side-effect free; numeric edge cases are absorbed here so
// callers never see a division by zero or a log of a non-positive number.
package metrics

import (
	"math"

	"github.com/augurco/augur/pkg/models"
)

// Halstead computes the full set of Halstead metrics from base counts.
// n1/n2 are distinct operator/operand counts, N1/N2 the total occurrences.
// If either unique count is zero the program has no measurable vocabulary and
// every field of the result is zero.
func Halstead(n1, n2, N1, N2 int) models.HalsteadMetrics {
	if n1 == 0 || n2 == 0 {
		return models.HalsteadMetrics{}
	}

	h := models.HalsteadMetrics{
		OperatorsUnique: n1,
		OperandsUnique:  n2,
		OperatorsTotal:  N1,
		OperandsTotal:   N2,
		Length:          N1 + N2,
		Vocabulary:      n1 + n2,
	}

	h.Volume = float64(h.Length) * math.Log2(float64(h.Vocabulary))
	h.Difficulty = (float64(n1) / 2.0) * (float64(N2) / float64(n2))
	h.Effort = h.Difficulty * h.Volume
	h.Time = h.Effort / 18.0
	if h.Difficulty > 0 {
		h.Level = 1.0 / h.Difficulty
	}
	h.Bugs = h.Volume / 3000.0

	return h
}

// MaintainabilityIndex computes MI = 171 - 5.2*ln(V) - 0.23*CC - 16.2*ln(LOC),
// clamped to [0, 100]. Volume and LOC are clamped to a minimum of 1 before
// taking logarithms.
func MaintainabilityIndex(volume float64, complexity, loc int) float64 {
	if volume <= 0 {
		volume = 1
	}
	if loc <= 0 {
		loc = 1
	}

	mi := 171.0 - 5.2*math.Log(volume) - 0.23*float64(complexity) - 16.2*math.Log(float64(loc))

	return math.Max(0.0, math.Min(100.0, mi))
}

// Category buckets a maintainability index score:
// Green above 85, Yellow in [65, 85], Red below 65.
func Category(mi float64) models.MICategory {
	switch {
	case mi > 85:
		return models.CategoryGreen
	case mi >= 65:
		return models.CategoryYellow
	default:
		return models.CategoryRed
	}
}

// WMC is the Weighted Methods per Class: the sum of the cyclomatic
// complexities of a class's methods.
func WMC(complexities []int) int {
	sum := 0
	for _, c := range complexities {
		sum += c
	}
	return sum
}

// CBO is the Coupling Between Objects: the number of distinct external types
// a class references.
func CBO(externalTypes map[string]struct{}) int {
	return len(externalTypes)
}
