package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/augurco/augur/internal/output"
	"github.com/augurco/augur/internal/progress"
	"github.com/augurco/augur/pkg/analyzer"
)

func adviceCmd() *cli.Command {
	return &cli.Command{
		Name:      "advice",
		Aliases:   []string{"ad"},
		Usage:     "Review metrics against thresholds and report findings",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "fail",
				Usage: "Exit non-zero when findings exist",
			},
		},
		Action: runAdviceCmd,
	}
}

func runAdviceCmd(c *cli.Context) error {
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

	tracker := progress.NewTracker("Reviewing...", len(files)*2)
	a, err := buildAnalyzer(cfg, tracker.Tick, nil)
	if err != nil {
		return err
	}

	analysis, err := a.Analyze(c.Context, files)
	tracker.FinishSuccess()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	advisor := analyzer.NewAdvisor(cfg.Thresholds)
	advice := advisor.Review(analysis)

	formatter, err := output.NewFormatter(
		output.ParseFormat(cfg.Output.Format), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if len(advice) == 0 {
		formatter.Success("No findings")
		return nil
	}

	if err := formatter.Output(output.AdviceTable(advice)); err != nil {
		return err
	}

	if c.Bool("fail") {
		return fmt.Errorf("%d findings", len(advice))
	}
	return nil
}
