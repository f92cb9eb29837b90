package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augurco/augur/internal/cache"
	"github.com/augurco/augur/internal/fileproc"
	"github.com/augurco/augur/pkg/models"
)

func writeJavaFiles(t *testing.T, files map[string]string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(files))
	for name, src := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
		paths = append(paths, path)
	}
	return paths
}

func TestAnalyzeCrossFileInheritance(t *testing.T) {
	paths := writeJavaFiles(t, map[string]string{
		"Animal.java": `class Animal { void eat() {} }`,
		"Dog.java":    `class Dog extends Animal { void bark() {} }`,
		"Puppy.java":  `class Puppy extends Dog {}`,
	})

	analysis, err := New().Analyze(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, analysis.Classes, 3)

	animal := analysis.Class("Animal")
	dog := analysis.Class("Dog")
	puppy := analysis.Class("Puppy")
	require.NotNil(t, animal)
	require.NotNil(t, dog)
	require.NotNil(t, puppy)

	assert.Equal(t, 0, animal.DIT)
	assert.Equal(t, 1, dog.DIT)
	assert.Equal(t, 2, puppy.DIT)
	assert.Equal(t, 1, animal.NOC)
	assert.Equal(t, 1, dog.NOC)
	assert.Equal(t, 0, puppy.NOC)
}

func TestAnalyzeDeterministic(t *testing.T) {
	paths := writeJavaFiles(t, map[string]string{
		"A.java": `class A { int f() { if (true) { return 1; } return 0; } }`,
		"B.java": `class B extends A { int g() { return 2; } }`,
		"C.java": `class C { void h() {} }`,
	})

	first, err := New(WithWorkers(4)).Analyze(context.Background(), paths)
	require.NoError(t, err)

	// Reversed input order must not change the output.
	reversed := []string{paths[2], paths[1], paths[0]}
	second, err := New(WithWorkers(4)).Analyze(context.Background(), reversed)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyzeNameCollision(t *testing.T) {
	paths := writeJavaFiles(t, map[string]string{
		"a_dup.java": `class Dup { void one() {} }`,
		"b_dup.java": `class Dup { void one() {} void two() {} }`,
	})

	analysis, err := New().Analyze(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, analysis.Classes, 1)

	// Sorted path order makes the later file's record win.
	dup := analysis.Class("Dup")
	require.NotNil(t, dup)
	assert.Len(t, dup.Methods, 2)
	assert.Contains(t, dup.File, "b_dup.java")
}

func TestAnalyzeWithCache(t *testing.T) {
	paths := writeJavaFiles(t, map[string]string{
		"Cached.java": `class Cached { void f() { if (true) {} } }`,
	})

	c, err := cache.New(t.TempDir(), 24, true)
	require.NoError(t, err)
	a := New(WithCache(c))

	first, err := a.Analyze(context.Background(), paths)
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), paths)
	require.NoError(t, err)

	assert.Equal(t, first.Classes, second.Classes)

	// The second run is served from the cache and must still carry the
	// per-method token sequences.
	cached := second.Classes[0].Method("f")
	require.NotNil(t, cached)
	assert.NotEmpty(t, cached.Operators)
	assert.NotEmpty(t, cached.Operands)
}

func TestCachedClassesRoundTrip(t *testing.T) {
	classes := []*models.ClassMetrics{{
		Name: "A",
		Methods: []*models.MethodMetrics{{
			Name:      "f",
			ClassName: "A",
			Operators: []string{"(", ")", ";"},
			Operands:  []string{"x"},
		}},
	}}

	data, err := encodeCachedClasses(classes)
	require.NoError(t, err)

	decoded, err := decodeCachedClasses(data)
	require.NoError(t, err)
	assert.Equal(t, classes, decoded)
}

func TestDecodeCachedClassesMalformed(t *testing.T) {
	// A record whose token list does not line up with its methods is
	// rejected, forcing a fresh parse.
	_, err := decodeCachedClasses([]byte(`[{"name":"A","methods":[{"name":"f"}]}]`))
	assert.ErrorIs(t, err, errCacheRecord)

	_, err = decodeCachedClasses([]byte(`not json`))
	assert.Error(t, err)
}

func TestAnalyzeReportsErrors(t *testing.T) {
	paths := writeJavaFiles(t, map[string]string{
		"Good.java": `class Good {}`,
	})
	paths = append(paths, filepath.Join(t.TempDir(), "missing.java"))

	var failures fileproc.ProcessingErrors
	a := New(WithErrorHandler(failures.Add))

	analysis, err := a.Analyze(context.Background(), paths)
	require.NoError(t, err)
	assert.Len(t, analysis.Classes, 1)

	// The missing file fails once per pass.
	assert.Len(t, failures.Errors, 2)
}

func TestAnalyzeCancelled(t *testing.T) {
	paths := writeJavaFiles(t, map[string]string{
		"A.java": `class A {}`,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Analyze(ctx, paths)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize(t *testing.T) {
	classes := []*models.ClassMetrics{
		{MaintainabilityIndex: 90, Category: models.CategoryGreen, Methods: []*models.MethodMetrics{{}, {}}},
		{MaintainabilityIndex: 70, Category: models.CategoryYellow, Methods: []*models.MethodMetrics{{}}},
		{MaintainabilityIndex: 50, Category: models.CategoryRed},
	}

	s := summarize(classes, 3)
	assert.Equal(t, 3, s.TotalFiles)
	assert.Equal(t, 3, s.TotalClasses)
	assert.Equal(t, 3, s.TotalMethods)
	assert.Equal(t, 1, s.Green)
	assert.Equal(t, 1, s.Yellow)
	assert.Equal(t, 1, s.Red)
	assert.InDelta(t, 70.0, s.AvgMaintainability, 1e-9)
	assert.InDelta(t, 70.0, s.MedianMaintainability, 1e-9)
	assert.Greater(t, s.StdDevMaintainability, 0.0)
}

func TestSummarizeEmpty(t *testing.T) {
	s := summarize(nil, 0)
	assert.Equal(t, 0, s.TotalClasses)
	assert.Equal(t, 0.0, s.AvgMaintainability)
}

func TestSummarizeSingleClass(t *testing.T) {
	s := summarize([]*models.ClassMetrics{{MaintainabilityIndex: 80, Category: models.CategoryGreen}}, 1)
	assert.Equal(t, 0.0, s.StdDevMaintainability)
	assert.InDelta(t, 80.0, s.MedianMaintainability, 1e-9)
}
