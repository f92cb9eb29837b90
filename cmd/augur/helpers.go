package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/augurco/augur/internal/cache"
	"github.com/augurco/augur/internal/progress"
	"github.com/augurco/augur/internal/scanner"
	"github.com/augurco/augur/pkg/analyzer"
	"github.com/augurco/augur/pkg/config"
)

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

// loadConfig loads the config named by --config, or searches the standard
// locations. Global flags override the file's values.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		cfg = loaded
	} else {
		cfg = config.LoadOrDefault()
	}

	if c.IsSet("format") {
		cfg.Output.Format = c.String("format")
	}
	if c.IsSet("jobs") {
		cfg.Analysis.Jobs = c.Int("jobs")
	}
	if c.Bool("no-cache") {
		cfg.Cache.Enabled = false
	}
	if c.Bool("verbose") {
		cfg.Output.Verbose = true
	}
	return cfg, nil
}

// collectFiles scans the given paths for Java sources. A path that does not
// exist is an error; an existing tree with no Java files is not.
func collectFiles(cfg *config.Config, paths []string) ([]string, error) {
	scan := scanner.NewScanner(cfg)
	spin := progress.NewSpinner("scanning")

	var files []string
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			spin.FinishError(err)
			return nil, fmt.Errorf("invalid path %s: %w", path, err)
		}
		info, err := os.Stat(absPath)
		if err != nil {
			spin.FinishError(err)
			return nil, fmt.Errorf("cannot access %s: %w", path, err)
		}

		if !info.IsDir() {
			ok, err := scan.ScanFile(absPath)
			if err != nil {
				spin.FinishError(err)
				return nil, err
			}
			if ok {
				files = append(files, absPath)
			}
			spin.Tick()
			continue
		}

		found, err := scan.ScanDir(absPath)
		if err != nil {
			spin.FinishError(err)
			return nil, fmt.Errorf("failed to scan directory %s: %w", path, err)
		}
		files = append(files, found...)
		spin.Tick()
	}

	files, _ = scanner.FilterBySize(files, cfg.Analysis.MaxFileSize)
	spin.FinishSuccess()
	return files, nil
}

// buildAnalyzer assembles the analyzer from the config and CLI callbacks.
func buildAnalyzer(cfg *config.Config, onProgress func(), onError func(path string, err error)) (*analyzer.Analyzer, error) {
	opts := []analyzer.Option{
		analyzer.WithWorkers(cfg.Analysis.Jobs),
	}
	if onProgress != nil {
		opts = append(opts, analyzer.WithProgress(onProgress))
	}
	if onError != nil {
		opts = append(opts, analyzer.WithErrorHandler(onError))
	}

	if cfg.Cache.Enabled {
		c, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		opts = append(opts, analyzer.WithCache(c))
	}

	return analyzer.New(opts...), nil
}
