package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/augurco/augur/internal/output"
	"github.com/augurco/augur/internal/progress"
)

func graphCmd() *cli.Command {
	return &cli.Command{
		Name:      "graph",
		Aliases:   []string{"g"},
		Usage:     "Show the project inheritance graph",
		ArgsUsage: "[path...]",
		Action:    runGraphCmd,
	}
}

func runGraphCmd(c *cli.Context) error {
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

	tracker := progress.NewTracker("Building graph...", len(files))
	a, err := buildAnalyzer(cfg, tracker.Tick, nil)
	if err != nil {
		return err
	}

	graph := a.BuildGraph(c.Context, files)
	tracker.FinishSuccess()
	if err := c.Context.Err(); err != nil {
		return fmt.Errorf("graph build failed: %w", err)
	}

	formatter, err := output.NewFormatter(
		output.ParseFormat(cfg.Output.Format), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(output.GraphTable(graph))
}
