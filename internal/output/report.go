package output

import (
	"fmt"

	"github.com/augurco/augur/pkg/analyzer"
	"github.com/augurco/augur/pkg/models"
)

// ClassTable builds the per-class metrics table for an analysis.
func ClassTable(analysis *models.ProjectAnalysis, colored bool) *Table {
	rows := make([][]string, 0, len(analysis.Classes))
	for _, c := range analysis.Classes {
		category := string(c.Category)
		if colored {
			category = CategoryColor(c.Category, category)
		}
		rows = append(rows, []string{
			c.Name,
			c.File,
			fmt.Sprintf("%d", c.WMC),
			fmt.Sprintf("%d", c.DIT),
			fmt.Sprintf("%d", c.NOC),
			fmt.Sprintf("%d", c.CBO),
			fmt.Sprintf("%d", c.LOC),
			fmt.Sprintf("%.1f", c.MaintainabilityIndex),
			category,
		})
	}

	return NewTable(
		"Class Metrics",
		[]string{"Class", "File", "WMC", "DIT", "NOC", "CBO", "LOC", "MI", "Category"},
		rows,
		nil,
		analysis.Classes,
	)
}

// MethodTable builds the per-method table for one class.
func MethodTable(c *models.ClassMetrics) *Table {
	rows := make([][]string, 0, len(c.Methods))
	for _, m := range c.Methods {
		rows = append(rows, []string{
			m.Name,
			fmt.Sprintf("%d", m.Complexity),
			fmt.Sprintf("%d", m.LOC),
			fmt.Sprintf("%d", m.Halstead.Vocabulary),
			fmt.Sprintf("%.1f", m.Halstead.Volume),
			fmt.Sprintf("%.1f", m.Halstead.Effort),
		})
	}

	return NewTable(
		fmt.Sprintf("Methods of %s", c.Name),
		[]string{"Method", "CC", "LOC", "Vocab", "Volume", "Effort"},
		rows,
		nil,
		c.Methods,
	)
}

// SummarySection builds the project summary section.
func SummarySection(s models.ProjectSummary) *Section {
	content := fmt.Sprintf(
		"Files: %d  Classes: %d  Methods: %d\n"+
			"Maintainability: avg %.1f, median %.1f, stddev %.1f\n"+
			"Effort p90: %.0f\n"+
			"Categories: %d green, %d yellow, %d red",
		s.TotalFiles, s.TotalClasses, s.TotalMethods,
		s.AvgMaintainability, s.MedianMaintainability, s.StdDevMaintainability,
		s.EffortP90,
		s.Green, s.Yellow, s.Red,
	)

	return &Section{
		Title:   "Project Summary",
		Content: content,
		Data:    s,
	}
}

// AnalysisReport assembles the full report for the analyze command.
func AnalysisReport(analysis *models.ProjectAnalysis, colored bool) *Report {
	return &Report{
		Title: "Quality Analysis",
		Sections: []Renderable{
			ClassTable(analysis, colored),
			SummarySection(analysis.Summary),
		},
		Data: analysis,
	}
}

// AdviceTable builds the findings table for the advice command.
func AdviceTable(advice []analyzer.Advice) *Table {
	rows := make([][]string, 0, len(advice))
	for _, a := range advice {
		rows = append(rows, []string{a.Class, a.Method, a.Message})
	}

	return NewTable(
		"Findings",
		[]string{"Class", "Method", "Finding"},
		rows,
		[]string{"", "", fmt.Sprintf("%d findings", len(advice))},
		advice,
	)
}

// GraphTable builds the inheritance table for the graph command.
func GraphTable(g *analyzer.InheritanceGraph) *Table {
	type edge struct {
		Class  string `json:"class"`
		Parent string `json:"parent,omitempty"`
		DIT    int    `json:"dit"`
		NOC    int    `json:"noc"`
		File   string `json:"file"`
	}

	names := g.Classes()
	rows := make([][]string, 0, len(names))
	edges := make([]edge, 0, len(names))
	for _, name := range names {
		parent, _ := g.Parent(name)
		file, _ := g.File(name)
		dit, noc := g.Depth(name), g.Children(name)
		rows = append(rows, []string{
			name, parent, fmt.Sprintf("%d", dit), fmt.Sprintf("%d", noc), file,
		})
		edges = append(edges, edge{Class: name, Parent: parent, DIT: dit, NOC: noc, File: file})
	}

	return NewTable(
		"Inheritance Graph",
		[]string{"Class", "Parent", "DIT", "NOC", "File"},
		rows,
		nil,
		edges,
	)
}
