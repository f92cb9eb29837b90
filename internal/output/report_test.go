package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/augurco/augur/pkg/analyzer"
	"github.com/augurco/augur/pkg/models"
)

func sampleAnalysis() *models.ProjectAnalysis {
	return &models.ProjectAnalysis{
		Classes: []*models.ClassMetrics{
			{
				Name:                 "Order",
				File:                 "src/Order.java",
				WMC:                  7,
				DIT:                  1,
				NOC:                  0,
				CBO:                  3,
				LOC:                  120,
				MaintainabilityIndex: 72.4,
				Category:             models.CategoryYellow,
				Methods: []*models.MethodMetrics{
					{Name: "total", ClassName: "Order", Complexity: 4, LOC: 20},
					{Name: "validate", ClassName: "Order", Complexity: 3, LOC: 15},
				},
			},
		},
		Summary: models.ProjectSummary{
			TotalFiles:   1,
			TotalClasses: 1,
			TotalMethods: 2,
			Yellow:       1,
		},
	}
}

func TestClassTable(t *testing.T) {
	table := ClassTable(sampleAnalysis(), false)

	if len(table.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(table.Rows))
	}
	row := table.Rows[0]
	if row[0] != "Order" || row[2] != "7" || row[8] != "Yellow" {
		t.Errorf("row = %v", row)
	}

	var buf bytes.Buffer
	if err := table.RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}
	if !strings.Contains(buf.String(), "Order") {
		t.Error("rendered table should contain the class name")
	}
}

func TestMethodTable(t *testing.T) {
	table := MethodTable(sampleAnalysis().Classes[0])

	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if table.Rows[0][0] != "total" || table.Rows[0][1] != "4" {
		t.Errorf("row = %v", table.Rows[0])
	}
}

func TestSummarySection(t *testing.T) {
	s := SummarySection(sampleAnalysis().Summary)

	if !strings.Contains(s.Content, "Classes: 1") {
		t.Errorf("content = %q", s.Content)
	}
	if !strings.Contains(s.Content, "1 yellow") {
		t.Errorf("content = %q", s.Content)
	}
}

func TestAnalysisReportMarkdown(t *testing.T) {
	var buf bytes.Buffer
	report := AnalysisReport(sampleAnalysis(), false)

	if err := report.RenderMarkdown(&buf); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "# Quality Analysis") {
		t.Error("markdown should contain the report title")
	}
	if !strings.Contains(out, "| Class |") {
		t.Error("markdown should contain the class table header")
	}
}

func TestAdviceTable(t *testing.T) {
	advice := []analyzer.Advice{
		{Class: "Order", Method: "total", Message: "cyclomatic complexity 25 exceeds 20, must be decomposed"},
		{Class: "Order", Message: "maintainability index 50.0 is below 65, refactoring required"},
	}

	table := AdviceTable(advice)
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if table.Footer[2] != "2 findings" {
		t.Errorf("footer = %v", table.Footer)
	}
}

func TestGraphTable(t *testing.T) {
	g := analyzer.NewInheritanceGraph()
	g.Merge(analyzer.FileEdges{Path: "f", Edges: []analyzer.ClassEdge{
		{Class: "Animal", File: "Animal.java"},
		{Class: "Dog", Parent: "Animal", File: "Dog.java"},
	}})

	table := GraphTable(g)
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}

	// Classes() sorts, so Animal comes first.
	if table.Rows[0][0] != "Animal" || table.Rows[0][3] != "1" {
		t.Errorf("row = %v", table.Rows[0])
	}
	if table.Rows[1][0] != "Dog" || table.Rows[1][1] != "Animal" || table.Rows[1][2] != "1" {
		t.Errorf("row = %v", table.Rows[1])
	}
}
