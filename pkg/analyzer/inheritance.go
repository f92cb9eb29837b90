package analyzer

import (
	"sort"
	"strings"

	"github.com/augurco/augur/pkg/parser"
)

// ClassEdge records one class declaration seen during Pass 1: the class name,
// its declared parent ("" when the class extends nothing), and the declaring
// file.
type ClassEdge struct {
	Class  string
	Parent string
	File   string
}

// FileEdges holds the edges extracted from a single file. Per-file extraction
// is side-effect free so Pass 1 can run across files in parallel; the merge
// into a single graph happens afterwards in sorted-path order.
type FileEdges struct {
	Path  string
	Edges []ClassEdge
}

// InheritanceGraph maps each known class to its declared parent and to the
// file that declared it. It is append-only while Pass 1 merges run and
// read-only afterwards. Names are bare identifiers; when two files declare
// the same class name, the later merge wins.
type InheritanceGraph struct {
	parents map[string]string
	files   map[string]string
}

// NewInheritanceGraph creates an empty graph.
func NewInheritanceGraph() *InheritanceGraph {
	return &InheritanceGraph{
		parents: make(map[string]string),
		files:   make(map[string]string),
	}
}

// Merge inserts all edges from one file into the graph.
// Insertion is last-write-wins per class name.
func (g *InheritanceGraph) Merge(fe FileEdges) {
	for _, e := range fe.Edges {
		g.parents[e.Class] = e.Parent
		g.files[e.Class] = e.File
	}
}

// Len returns the number of known classes.
func (g *InheritanceGraph) Len() int {
	return len(g.parents)
}

// EdgeCount returns the number of classes with a recorded parent.
func (g *InheritanceGraph) EdgeCount() int {
	n := 0
	for _, p := range g.parents {
		if p != "" {
			n++
		}
	}
	return n
}

// Parent returns the recorded parent of a class. The second return is false
// when the class is unknown; a known class without a parent returns ("", true).
func (g *InheritanceGraph) Parent(class string) (string, bool) {
	p, ok := g.parents[class]
	return p, ok
}

// File returns the file that declared a class.
func (g *InheritanceGraph) File(class string) (string, bool) {
	f, ok := g.files[class]
	return f, ok
}

// Classes returns all known class names, sorted.
func (g *InheritanceGraph) Classes() []string {
	names := make([]string, 0, len(g.parents))
	for name := range g.parents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Depth returns the depth of inheritance (DIT) for a class: the number of
// parent hops until a class with no recorded parent, or a class outside the
// graph, is reached. A cycle terminates the walk at the first repeated class;
// the repeated visit is not counted.
func (g *InheritanceGraph) Depth(class string) int {
	depth := 0
	current := class
	visited := make(map[string]struct{})

	for {
		parent, ok := g.parents[current]
		if !ok {
			return depth
		}
		if _, seen := visited[current]; seen {
			return depth
		}
		visited[current] = struct{}{}

		if parent == "" {
			return depth
		}
		depth++
		current = parent
	}
}

// Children returns the number of classes whose recorded parent is exactly
// class (NOC — direct children only).
func (g *InheritanceGraph) Children(class string) int {
	count := 0
	for _, parent := range g.parents {
		if parent == class {
			count++
		}
	}
	return count
}

// ExtractFileEdges collects class/parent edges from one parsed file,
// including classes nested anywhere inside other class bodies. Every class
// becomes its own edge; nesting confers no special structure.
func ExtractFileEdges(result *parser.ParseResult) FileEdges {
	fe := FileEdges{Path: result.Path}

	root := result.Tree.RootNode()
	for _, decl := range parser.FindNodesByType(root, result.Source, "class_declaration") {
		name := parser.GetNodeText(decl.ChildByFieldName("name"), result.Source)
		if name == "" {
			continue
		}

		parent := ""
		if sc := decl.ChildByFieldName("superclass"); sc != nil {
			// The superclass node is "extends T"; take the type after the keyword.
			for i := range int(sc.ChildCount()) {
				child := sc.Child(i)
				if child.Type() == "extends" {
					continue
				}
				parent = CleanTypeName(parser.GetNodeText(child, result.Source))
			}
		}

		fe.Edges = append(fe.Edges, ClassEdge{Class: name, Parent: parent, File: result.Path})
	}

	return fe
}

// CleanTypeName reduces a type's textual representation to a bare identifier:
// trailing array markers and generic argument lists are stripped, and only
// the last dot-delimited segment survives.
func CleanTypeName(name string) string {
	name = strings.TrimSpace(name)
	for strings.HasSuffix(name, "[]") {
		name = strings.TrimSpace(strings.TrimSuffix(name, "[]"))
	}
	if i := strings.IndexByte(name, '<'); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSpace(name)
}
