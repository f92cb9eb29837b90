package models

// HalsteadMetrics represents Halstead software science metrics.
// Produced by the metrics package from four base counts; never mutated after creation.
type HalsteadMetrics struct {
	OperatorsUnique int     `json:"operators_unique"` // n1: distinct operators
	OperandsUnique  int     `json:"operands_unique"`  // n2: distinct operands
	OperatorsTotal  int     `json:"operators_total"`  // N1: total operators
	OperandsTotal   int     `json:"operands_total"`   // N2: total operands
	Length          int     `json:"length"`           // N = N1 + N2
	Vocabulary      int     `json:"vocabulary"`       // n = n1 + n2
	Volume          float64 `json:"volume"`           // V = N * log2(n)
	Difficulty      float64 `json:"difficulty"`       // D = (n1/2) * (N2/n2)
	Effort          float64 `json:"effort"`           // E = D * V
	Time            float64 `json:"time"`             // T = E / 18 (seconds)
	Level           float64 `json:"level"`            // L = 1 / D
	Bugs            float64 `json:"bugs"`             // B = V / 3000
}

// MICategory buckets a maintainability index score.
type MICategory string

const (
	CategoryGreen  MICategory = "Green"  // MI > 85
	CategoryYellow MICategory = "Yellow" // 65 <= MI <= 85
	CategoryRed    MICategory = "Red"    // MI < 65
)

// String is required for toon serialization, which uses fmt.Stringer.
func (c MICategory) String() string { return string(c) }

// MethodMetrics holds the metrics collected for a single method or constructor.
// Operator and operand sequences retain duplicates in source order; they feed
// the per-method Halstead computation and the owning class's aggregation.
type MethodMetrics struct {
	Name       string          `json:"name"`
	ClassName  string          `json:"class_name"`
	StartLine  int             `json:"start_line"`
	EndLine    int             `json:"end_line"`
	Complexity int             `json:"cyclomatic"`
	LOC        int             `json:"loc"`
	Halstead   HalsteadMetrics `json:"halstead"`

	Operators []string `json:"-"`
	Operands  []string `json:"-"`
}

// ClassMetrics holds the aggregated metrics for a single class.
// Nested classes produce their own independent ClassMetrics records.
type ClassMetrics struct {
	Name      string `json:"name"`
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`

	// Methods are ordered by declaration; a repeated method name (e.g. an
	// overload) replaces the earlier record in place.
	Methods []*MethodMetrics `json:"methods"`

	// ExternalTypes lists the distinct non-builtin types referenced by the
	// class's fields and local variables, sorted.
	ExternalTypes []string `json:"external_types"`

	WMC                  int             `json:"wmc"`
	CBO                  int             `json:"cbo"`
	DIT                  int             `json:"dit"`
	NOC                  int             `json:"noc"`
	LOC                  int             `json:"loc"`
	MaintainabilityIndex float64         `json:"maintainability_index"`
	Category             MICategory      `json:"category"`
	Halstead             HalsteadMetrics `json:"halstead"`
}

// Method returns the recorded method with the given name, or nil.
func (c *ClassMetrics) Method(name string) *MethodMetrics {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// ProjectAnalysis is the full result of the two-pass pipeline.
type ProjectAnalysis struct {
	Classes []*ClassMetrics `json:"classes"`
	Summary ProjectSummary  `json:"summary"`
}

// ProjectSummary provides aggregate statistics across all classes.
type ProjectSummary struct {
	TotalFiles   int `json:"total_files"`
	TotalClasses int `json:"total_classes"`
	TotalMethods int `json:"total_methods"`

	AvgMaintainability    float64 `json:"avg_maintainability"`
	StdDevMaintainability float64 `json:"stddev_maintainability"`
	MedianMaintainability float64 `json:"median_maintainability"`
	EffortP90             float64 `json:"effort_p90"`

	Green  int `json:"green"`
	Yellow int `json:"yellow"`
	Red    int `json:"red"`
}

// Class returns the class record with the given name, or nil.
func (p *ProjectAnalysis) Class(name string) *ClassMetrics {
	for _, c := range p.Classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}
