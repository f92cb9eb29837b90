package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/augurco/augur/pkg/analyzer"
)

// Config holds all configuration options for augur.
type Config struct {
	// Analysis settings
	Analysis AnalysisConfig `koanf:"analysis"`

	// Advisory thresholds
	Thresholds analyzer.Thresholds `koanf:"thresholds"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude"`

	// Cache settings
	Cache CacheConfig `koanf:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// AnalysisConfig controls how the pipeline runs.
type AnalysisConfig struct {
	Jobs        int   `koanf:"jobs"`          // worker count, 0 = auto
	MaxFileSize int64 `koanf:"max_file_size"` // bytes, 0 = unlimited
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns  []string `koanf:"patterns"`
	Dirs      []string `koanf:"dirs"`
	Gitignore bool     `koanf:"gitignore"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
	TTL     int    `koanf:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Jobs:        0,
			MaxFileSize: 0,
		},
		Thresholds: analyzer.DefaultThresholds(),
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*Test.java",
				"*Tests.java",
				"*.generated.java",
			},
			Dirs: []string{
				"target",
				"build",
				"out",
				".git",
				".augur",
				"node_modules",
			},
			Gitignore: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".augur/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	// Determine parser based on extension
	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"augur.toml",
		"augur.yaml",
		"augur.yml",
		"augur.json",
		".augur.toml",
		".augur.yaml",
		".augur.yml",
		".augur.json",
	}

	searchDirs := []string{".", ".augur"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}

// ShouldExclude checks if a path should be excluded from analysis.
func (c *Config) ShouldExclude(path string) bool {
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	base := filepath.Base(path)
	for _, pattern := range c.Exclude.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}
