package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/augurco/augur/internal/cache"
	"github.com/augurco/augur/internal/fileproc"
	"github.com/augurco/augur/pkg/models"
	"github.com/augurco/augur/pkg/parser"
)

// Analyzer runs the two-pass metrics pipeline over a set of source files.
// Pass 1 builds the whole-project inheritance graph; Pass 2 walks each file
// and produces class records; the finalization step assigns DIT/NOC once
// both passes have completed for the entire file set. Both passes run files
// in parallel and merge results in sorted-path order, so repeated runs over
// an unchanged file set produce identical output.
type Analyzer struct {
	workers    int
	cache      *cache.Cache
	onProgress fileproc.ProgressFunc
	onError    fileproc.ErrorFunc
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithWorkers sets the worker count for both passes (<= 0 uses the default).
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		a.workers = n
	}
}

// WithCache enables content-hash caching of per-file Pass-2 results.
func WithCache(c *cache.Cache) Option {
	return func(a *Analyzer) {
		a.cache = c
	}
}

// WithProgress sets a callback invoked after each processed file, once per
// pass.
func WithProgress(fn fileproc.ProgressFunc) Option {
	return func(a *Analyzer) {
		a.onProgress = fn
	}
}

// WithErrorHandler sets the callback receiving per-file failures. Failures
// never abort the batch; a file that cannot be processed contributes no
// graph edges and no class records.
func WithErrorHandler(fn fileproc.ErrorFunc) Option {
	return func(a *Analyzer) {
		a.onError = fn
	}
}

// New creates a project analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BuildGraph runs Pass 1: every file is parsed and scanned for class
// declarations, and the per-file edges are merged into one graph in
// sorted-path order (deterministic last-write-wins on name collisions).
func (a *Analyzer) BuildGraph(ctx context.Context, files []string) *InheritanceGraph {
	edges := fileproc.MapFilesN(ctx, sortedPaths(files), a.workers,
		func(p *parser.Parser, path string) (FileEdges, error) {
			result, err := p.ParseFile(path)
			if err != nil {
				return FileEdges{}, err
			}
			return ExtractFileEdges(result), nil
		}, a.onProgress, a.onError)

	sort.Slice(edges, func(i, j int) bool { return edges[i].Path < edges[j].Path })

	graph := NewInheritanceGraph()
	for _, fe := range edges {
		graph.Merge(fe)
	}
	return graph
}

// fileClasses carries one file's Pass-2 output with its path so the merge
// step can order results deterministically.
type fileClasses struct {
	Path    string
	Classes []*models.ClassMetrics
}

// Analyze runs the full pipeline and returns the finalized project analysis.
// The only fatal condition is context cancellation; individual file failures
// are reported through the error handler and skipped.
func (a *Analyzer) Analyze(ctx context.Context, files []string) (*models.ProjectAnalysis, error) {
	graph := a.BuildGraph(ctx, files)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := fileproc.MapFilesN(ctx, sortedPaths(files), a.workers,
		func(p *parser.Parser, path string) (fileClasses, error) {
			return a.analyzeFile(p, path, graph)
		}, a.onProgress, a.onError)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	// Merge into one flat collection keyed by class name; a later path's
	// record silently replaces an earlier one.
	merged := make(map[string]*models.ClassMetrics)
	for _, fc := range results {
		for _, c := range fc.Classes {
			merged[c.Name] = c
		}
	}

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	// Finalization barrier: the graph is complete, assign DIT/NOC.
	classes := make([]*models.ClassMetrics, 0, len(merged))
	for _, name := range names {
		c := merged[name]
		c.DIT = graph.Depth(c.Name)
		c.NOC = graph.Children(c.Name)
		classes = append(classes, c)
	}

	return &models.ProjectAnalysis{
		Classes: classes,
		Summary: summarize(classes, len(results)),
	}, nil
}

// analyzeFile produces one file's class records, consulting the result
// cache when enabled. Cached records already carry their aggregates; DIT and
// NOC are overwritten during finalization either way.
func (a *Analyzer) analyzeFile(p *parser.Parser, path string, graph *InheritanceGraph) (fileClasses, error) {
	var hash string
	if a.cache != nil {
		if h, err := cache.HashFile(path); err == nil {
			hash = h
			if data, ok := a.cache.Get(cacheKey(path), hash); ok {
				if classes, err := decodeCachedClasses(data); err == nil {
					return fileClasses{Path: path, Classes: classes}, nil
				}
			}
		}
	}

	result, err := p.ParseFile(path)
	if err != nil {
		return fileClasses{}, err
	}

	classes := NewVisitor(graph).VisitFile(result)

	if a.cache != nil && hash != "" {
		if data, err := encodeCachedClasses(classes); err == nil {
			a.cache.Put(cacheKey(path), hash, data)
		}
	}

	return fileClasses{Path: path, Classes: classes}, nil
}

func cacheKey(path string) string {
	return "classes:" + path
}

var errCacheRecord = errors.New("malformed cache record")

// cachedClass is the cache encoding of one class record. The public JSON
// form drops the per-method token sequences; the cache must round-trip them
// so a hit reproduces a fresh run exactly.
type cachedClass struct {
	*models.ClassMetrics
	Tokens []cachedTokens `json:"tokens"`
}

// cachedTokens holds one method's sequences, parallel to Methods.
type cachedTokens struct {
	Operators []string `json:"operators"`
	Operands  []string `json:"operands"`
}

func encodeCachedClasses(classes []*models.ClassMetrics) ([]byte, error) {
	wrapped := make([]cachedClass, len(classes))
	for i, c := range classes {
		tokens := make([]cachedTokens, len(c.Methods))
		for j, m := range c.Methods {
			tokens[j] = cachedTokens{Operators: m.Operators, Operands: m.Operands}
		}
		wrapped[i] = cachedClass{ClassMetrics: c, Tokens: tokens}
	}
	return json.Marshal(wrapped)
}

func decodeCachedClasses(data []byte) ([]*models.ClassMetrics, error) {
	var wrapped []cachedClass
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}

	classes := make([]*models.ClassMetrics, len(wrapped))
	for i, w := range wrapped {
		if w.ClassMetrics == nil || len(w.Tokens) != len(w.Methods) {
			return nil, errCacheRecord
		}
		for j, m := range w.Methods {
			m.Operators = w.Tokens[j].Operators
			m.Operands = w.Tokens[j].Operands
		}
		classes[i] = w.ClassMetrics
	}
	return classes, nil
}

// summarize computes project-wide aggregate statistics.
func summarize(classes []*models.ClassMetrics, fileCount int) models.ProjectSummary {
	s := models.ProjectSummary{
		TotalFiles:   fileCount,
		TotalClasses: len(classes),
	}

	mis := make([]float64, 0, len(classes))
	efforts := make([]float64, 0, len(classes))
	for _, c := range classes {
		s.TotalMethods += len(c.Methods)
		mis = append(mis, c.MaintainabilityIndex)
		efforts = append(efforts, c.Halstead.Effort)

		switch c.Category {
		case models.CategoryGreen:
			s.Green++
		case models.CategoryYellow:
			s.Yellow++
		default:
			s.Red++
		}
	}

	if len(mis) > 0 {
		sort.Float64s(mis)
		sort.Float64s(efforts)
		s.AvgMaintainability = stat.Mean(mis, nil)
		s.MedianMaintainability = stat.Quantile(0.5, stat.Empirical, mis, nil)
		s.EffortP90 = stat.Quantile(0.9, stat.Empirical, efforts, nil)
		if len(mis) > 1 {
			s.StdDevMaintainability = stat.StdDev(mis, nil)
		}
	}

	return s
}

func sortedPaths(files []string) []string {
	sorted := make([]string, len(files))
	copy(sorted, files)
	sort.Strings(sorted)
	return sorted
}
