package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/augurco/augur/pkg/config"
)

func TestNewScanner(t *testing.T) {
	// With nil config
	s := NewScanner(nil)
	if s == nil {
		t.Fatal("NewScanner(nil) returned nil")
	}
	if s.config == nil {
		t.Error("scanner.config should not be nil when passing nil")
	}

	// With explicit config
	cfg := config.DefaultConfig()
	s = NewScanner(cfg)
	if s.config != cfg {
		t.Error("scanner.config should be the provided config")
	}
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file %s: %v", name, err)
		}
	}
}

func TestScanDir(t *testing.T) {
	tmpDir := t.TempDir()

	writeTree(t, tmpDir, map[string]string{
		"Main.java":          "class Main {}\n",
		"util/Helper.java":   "class Helper {}\n",
		"util/helper.py":     "# python\n",
		"internal/notes.txt": "notes\n",
		"internal/Core.java": "class Core {}\n",
		"internal/core.go":   "package core\n",
	})

	s := NewScanner(nil)
	result, err := s.ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	if len(result) != 3 {
		t.Errorf("ScanDir() found %d files, want 3", len(result))
	}

	found := make(map[string]bool)
	for _, f := range result {
		rel, _ := filepath.Rel(tmpDir, f)
		found[rel] = true
	}
	for _, name := range []string{"Main.java", "util/Helper.java", "internal/Core.java"} {
		if !found[name] {
			t.Errorf("File %s was not found", name)
		}
	}
}

func TestScanDirExcludesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	writeTree(t, tmpDir, map[string]string{
		"target/Gen.java":      "class Gen {}\n",
		"build/Out.java":       "class Out {}\n",
		".git/hooks/Hook.java": "class Hook {}\n",
		"Main.java":            "class Main {}\n",
	})

	s := NewScanner(nil)
	result, err := s.ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	if len(result) != 1 {
		t.Fatalf("ScanDir() found %d files, want 1", len(result))
	}
	if filepath.Base(result[0]) != "Main.java" {
		t.Errorf("ScanDir() found %s, want Main.java", result[0])
	}
}

func TestScanDirExcludePatterns(t *testing.T) {
	tmpDir := t.TempDir()

	writeTree(t, tmpDir, map[string]string{
		"Main.java":     "class Main {}\n",
		"MainTest.java": "class MainTest {}\n",
	})

	s := NewScanner(nil)
	result, err := s.ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	if len(result) != 1 {
		t.Fatalf("ScanDir() found %d files, want 1", len(result))
	}
	if filepath.Base(result[0]) != "Main.java" {
		t.Errorf("ScanDir() found %s, want Main.java", result[0])
	}
}

func TestScanDirGitignore(t *testing.T) {
	tmpDir := t.TempDir()

	writeTree(t, tmpDir, map[string]string{
		".gitignore":         "generated/\n",
		"Main.java":          "class Main {}\n",
		"generated/Gen.java": "class Gen {}\n",
	})
	if err := os.MkdirAll(filepath.Join(tmpDir, ".git"), 0755); err != nil {
		t.Fatalf("Failed to create .git: %v", err)
	}

	s := NewScanner(nil)
	result, err := s.ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	if len(result) != 1 {
		t.Fatalf("ScanDir() found %d files, want 1", len(result))
	}
	if filepath.Base(result[0]) != "Main.java" {
		t.Errorf("ScanDir() found %s, want Main.java", result[0])
	}
}

func TestScanFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"Main.java": "class Main {}\n",
		"notes.txt": "notes\n",
	})

	s := NewScanner(nil)

	ok, err := s.ScanFile(filepath.Join(tmpDir, "Main.java"))
	if err != nil {
		t.Fatalf("ScanFile() error: %v", err)
	}
	if !ok {
		t.Error("ScanFile() = false for Main.java, want true")
	}

	ok, err = s.ScanFile(filepath.Join(tmpDir, "notes.txt"))
	if err != nil {
		t.Fatalf("ScanFile() error: %v", err)
	}
	if ok {
		t.Error("ScanFile() = true for notes.txt, want false")
	}

	if _, err := s.ScanFile(filepath.Join(tmpDir, "missing.java")); err == nil {
		t.Error("ScanFile() should fail for a missing file")
	}
}

func TestFilterBySize(t *testing.T) {
	tmpDir := t.TempDir()
	small := filepath.Join(tmpDir, "Small.java")
	big := filepath.Join(tmpDir, "Big.java")
	if err := os.WriteFile(small, []byte("class Small {}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(big, make([]byte, 4096), 0644); err != nil {
		t.Fatal(err)
	}

	files := []string{small, big}

	filtered, skipped := FilterBySize(files, 1024)
	if len(filtered) != 1 || skipped != 1 {
		t.Fatalf("FilterBySize() = %d kept, %d skipped; want 1, 1", len(filtered), skipped)
	}
	if filtered[0] != small {
		t.Errorf("FilterBySize() kept %q, want %q", filtered[0], small)
	}

	filtered, skipped = FilterBySize(files, 0)
	if len(filtered) != 2 || skipped != 0 {
		t.Errorf("FilterBySize(0) = %d kept, %d skipped; want 2, 0", len(filtered), skipped)
	}

	// A file that cannot be stat'ed counts as skipped.
	missing := filepath.Join(tmpDir, "Gone.java")
	filtered, skipped = FilterBySize([]string{small, missing}, 1024)
	if len(filtered) != 1 || skipped != 1 {
		t.Errorf("FilterBySize(missing) = %d kept, %d skipped; want 1, 1", len(filtered), skipped)
	}
}
