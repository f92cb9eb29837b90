package metrics

import (
	"math"
	"testing"

	"github.com/augurco/augur/pkg/models"
)

func TestHalsteadZeroCounts(t *testing.T) {
	tests := []struct {
		name           string
		n1, n2, N1, N2 int
	}{
		{"zero operators", 0, 10, 0, 20},
		{"zero operands", 5, 0, 10, 0},
		{"zero operators with totals", 0, 3, 7, 11},
		{"all zero", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Halstead(tt.n1, tt.n2, tt.N1, tt.N2)
			if h != (models.HalsteadMetrics{}) {
				t.Errorf("Halstead(%d,%d,%d,%d) = %+v, want all-zero",
					tt.n1, tt.n2, tt.N1, tt.N2, h)
			}
		})
	}
}

func TestHalsteadKnownVector(t *testing.T) {
	h := Halstead(2, 2, 4, 3)

	if h.Vocabulary != 4 {
		t.Errorf("Vocabulary = %d, want 4", h.Vocabulary)
	}
	if h.Length != 7 {
		t.Errorf("Length = %d, want 7", h.Length)
	}

	approx := func(name string, got, want float64) {
		t.Helper()
		if math.Abs(got-want) > 1e-4 {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
	approx("Volume", h.Volume, 14.0) // 7 * log2(4)
	approx("Difficulty", h.Difficulty, 1.5)
	approx("Effort", h.Effort, 21.0)
	approx("Time", h.Time, 21.0/18.0)
	approx("Level", h.Level, 1.0/1.5)
	approx("Bugs", h.Bugs, 14.0/3000.0)
}

func TestMaintainabilityIndexRange(t *testing.T) {
	tests := []struct {
		name       string
		volume     float64
		complexity int
		loc        int
	}{
		{"zero volume and loc", 0, 0, 0},
		{"tiny program", 10, 1, 3},
		{"large program", 1e9, 200, 100000},
		{"negative volume clamped", -5, 1, 10},
		{"high complexity", 500, 1000, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mi := MaintainabilityIndex(tt.volume, tt.complexity, tt.loc)
			if mi < 0 || mi > 100 {
				t.Errorf("MaintainabilityIndex(%v, %d, %d) = %v, outside [0, 100]",
					tt.volume, tt.complexity, tt.loc, mi)
			}
		})
	}

	// Volume=0 and loc=0 clamp to 1 each, so only the complexity term remains.
	mi := MaintainabilityIndex(0, 0, 0)
	if mi != 100 {
		t.Errorf("MaintainabilityIndex(0, 0, 0) = %v, want 100 (171 clamped)", mi)
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		mi   float64
		want models.MICategory
	}{
		{100, models.CategoryGreen},
		{85.1, models.CategoryGreen},
		{85, models.CategoryYellow},
		{70, models.CategoryYellow},
		{65, models.CategoryYellow},
		{64.9, models.CategoryRed},
		{0, models.CategoryRed},
	}

	for _, tt := range tests {
		if got := Category(tt.mi); got != tt.want {
			t.Errorf("Category(%v) = %s, want %s", tt.mi, got, tt.want)
		}
	}
}

func TestWMC(t *testing.T) {
	if got := WMC([]int{1, 2, 4}); got != 7 {
		t.Errorf("WMC([1 2 4]) = %d, want 7", got)
	}
	if got := WMC(nil); got != 0 {
		t.Errorf("WMC(nil) = %d, want 0", got)
	}
}

func TestCBO(t *testing.T) {
	types := map[string]struct{}{
		"Logger":     {},
		"Repository": {},
	}
	if got := CBO(types); got != 2 {
		t.Errorf("CBO = %d, want 2", got)
	}
	if got := CBO(nil); got != 0 {
		t.Errorf("CBO(nil) = %d, want 0", got)
	}
}
