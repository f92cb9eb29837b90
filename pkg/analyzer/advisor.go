package analyzer

import (
	"fmt"

	"github.com/augurco/augur/pkg/models"
)

// Thresholds holds the limits the advisor judges classes and methods
// against. A zero value disables nothing; use DefaultThresholds.
type Thresholds struct {
	ComplexityWarn int     `koanf:"complexity_warn"`
	ComplexityFail int     `koanf:"complexity_fail"`
	MIRed          float64 `koanf:"mi_red"`
	MIYellow       float64 `koanf:"mi_yellow"`
	WMCMax         int     `koanf:"wmc_max"`
	CBOMax         int     `koanf:"cbo_max"`
	DITMax         int     `koanf:"dit_max"`
	MethodLOCMax   int     `koanf:"method_loc_max"`
	ClassLOCMax    int     `koanf:"class_loc_max"`
	EffortMax      float64 `koanf:"effort_max"`
}

// DefaultThresholds returns the standard advisory limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ComplexityWarn: 10,
		ComplexityFail: 20,
		MIRed:          65,
		MIYellow:       85,
		WMCMax:         50,
		CBOMax:         10,
		DITMax:         5,
		MethodLOCMax:   50,
		ClassLOCMax:    500,
		EffortMax:      60000,
	}
}

// Advice is one actionable finding about a class or method. Method is empty
// for class-level findings.
type Advice struct {
	Class   string `json:"class"`
	Method  string `json:"method,omitempty"`
	Message string `json:"message"`
}

// Advisor turns raw metrics into review findings.
type Advisor struct {
	thresholds Thresholds
}

// NewAdvisor creates an advisor with the given thresholds.
func NewAdvisor(t Thresholds) *Advisor {
	return &Advisor{thresholds: t}
}

// IsGodClass reports whether a class concentrates too much behavior: high
// WMC combined with high coupling or excessive size.
func (a *Advisor) IsGodClass(c *models.ClassMetrics) bool {
	return c.WMC > a.thresholds.WMCMax &&
		(c.CBO > a.thresholds.CBOMax || c.LOC > a.thresholds.ClassLOCMax)
}

// ClassAdvice returns findings for a single class, excluding its methods.
func (a *Advisor) ClassAdvice(c *models.ClassMetrics) []Advice {
	var out []Advice
	add := func(msg string) {
		out = append(out, Advice{Class: c.Name, Message: msg})
	}

	if a.IsGodClass(c) {
		add(fmt.Sprintf("god class: WMC %d with CBO %d and %d lines, split responsibilities", c.WMC, c.CBO, c.LOC))
	} else if c.WMC > a.thresholds.WMCMax {
		add(fmt.Sprintf("weighted method count %d exceeds %d, consider extracting methods into collaborators", c.WMC, a.thresholds.WMCMax))
	}
	if c.CBO > a.thresholds.CBOMax {
		add(fmt.Sprintf("coupled to %d external types (limit %d), reduce dependencies", c.CBO, a.thresholds.CBOMax))
	}
	if c.DIT > a.thresholds.DITMax {
		add(fmt.Sprintf("inheritance depth %d exceeds %d, prefer composition", c.DIT, a.thresholds.DITMax))
	}
	if c.LOC > a.thresholds.ClassLOCMax {
		add(fmt.Sprintf("class body has %d lines (limit %d)", c.LOC, a.thresholds.ClassLOCMax))
	}
	if c.MaintainabilityIndex < a.thresholds.MIRed {
		add(fmt.Sprintf("maintainability index %.1f is below %.0f, refactoring required", c.MaintainabilityIndex, a.thresholds.MIRed))
	} else if c.MaintainabilityIndex <= a.thresholds.MIYellow {
		add(fmt.Sprintf("maintainability index %.1f is in the warning band", c.MaintainabilityIndex))
	}
	if c.Halstead.Effort > a.thresholds.EffortMax {
		add(fmt.Sprintf("estimated effort %.0f exceeds %.0f, high comprehension cost", c.Halstead.Effort, a.thresholds.EffortMax))
	}
	return out
}

// MethodAdvice returns findings for a single method.
func (a *Advisor) MethodAdvice(m *models.MethodMetrics) []Advice {
	var out []Advice
	add := func(msg string) {
		out = append(out, Advice{Class: m.ClassName, Method: m.Name, Message: msg})
	}

	if m.Complexity > a.thresholds.ComplexityFail {
		add(fmt.Sprintf("cyclomatic complexity %d exceeds %d, must be decomposed", m.Complexity, a.thresholds.ComplexityFail))
	} else if m.Complexity > a.thresholds.ComplexityWarn {
		add(fmt.Sprintf("cyclomatic complexity %d exceeds %d, consider simplifying", m.Complexity, a.thresholds.ComplexityWarn))
	}
	if m.LOC > a.thresholds.MethodLOCMax {
		add(fmt.Sprintf("method has %d lines (limit %d)", m.LOC, a.thresholds.MethodLOCMax))
	}
	if m.Halstead.Effort > a.thresholds.EffortMax {
		add(fmt.Sprintf("estimated effort %.0f exceeds %.0f, high comprehension cost", m.Halstead.Effort, a.thresholds.EffortMax))
	}
	return out
}

// Review walks a full analysis and collects all findings in class order.
func (a *Advisor) Review(analysis *models.ProjectAnalysis) []Advice {
	var out []Advice
	for _, c := range analysis.Classes {
		out = append(out, a.ClassAdvice(c)...)
		for _, m := range c.Methods {
			out = append(out, a.MethodAdvice(m)...)
		}
	}
	return out
}
