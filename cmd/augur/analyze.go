package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/augurco/augur/internal/fileproc"
	"github.com/augurco/augur/internal/output"
	"github.com/augurco/augur/internal/progress"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"an"},
		Usage:     "Compute quality metrics for Java sources",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "methods",
				Usage: "Include per-method tables in the report",
			},
		},
		Action: runAnalyzeCmd,
	}
}

func runAnalyzeCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	files, err := collectFiles(cfg, getPaths(c))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No Java source files found")
		return nil
	}

	var failures fileproc.ProcessingErrors
	tracker := progress.NewTracker("Analyzing...", len(files)*2)
	a, err := buildAnalyzer(cfg, tracker.Tick, failures.Add)
	if err != nil {
		return err
	}

	analysis, err := a.Analyze(c.Context, files)
	tracker.FinishSuccess()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	formatter, err := output.NewFormatter(
		output.ParseFormat(cfg.Output.Format), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	report := output.AnalysisReport(analysis, formatter.Colored())
	if c.Bool("methods") {
		for _, class := range analysis.Classes {
			if len(class.Methods) > 0 {
				report.Sections = append(report.Sections, output.MethodTable(class))
			}
		}
	}

	if err := formatter.Output(report); err != nil {
		return err
	}

	if failures.HasErrors() {
		if cfg.Output.Verbose {
			for _, pe := range failures.Errors {
				formatter.Warning("skipped %s: %v", pe.Path, pe.Err)
			}
		} else {
			formatter.Warning("%d processing errors (use --verbose for details)", len(failures.Errors))
		}
	}
	return nil
}
