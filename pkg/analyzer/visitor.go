package analyzer

import (
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/augurco/augur/pkg/metrics"
	"github.com/augurco/augur/pkg/models"
	"github.com/augurco/augur/pkg/parser"
)

// Visitor walks one file's syntax tree (Pass 2) and produces the metric
// records for every class declared in it. The inheritance graph is carried
// for reference only; DIT and NOC are assigned later, once every file has
// been processed.
type Visitor struct {
	graph *InheritanceGraph
}

// NewVisitor creates a visitor backed by the Pass-1 graph.
func NewVisitor(graph *InheritanceGraph) *Visitor {
	return &Visitor{graph: graph}
}

// classState accumulates a class record during the walk.
type classState struct {
	rec      *models.ClassMetrics
	indexes  map[string]int // method name -> position in rec.Methods
	external map[string]struct{}
}

// workItem is one pending unit on the traversal stack: either a node to
// visit in the traversal context it inherited, or an exit action to run once
// a declaration's subtree has been fully walked.
type workItem struct {
	node   *sitter.Node
	class  *classState
	method *models.MethodMetrics
	exit   func()
}

// VisitFile walks the file's tree once and returns the finalized class
// records, in declaration order. Tokens and branch events are attributed to
// the innermost active method; a nested class opens a fresh class context,
// so its methods never leak into the enclosing class.
func (v *Visitor) VisitFile(result *parser.ParseResult) []*models.ClassMetrics {
	source := result.Source
	var classes []*classState

	stack := []workItem{{node: result.Tree.RootNode()}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if it.node == nil {
			if it.exit != nil {
				it.exit()
			}
			continue
		}

		node := it.node
		kind := node.Type()

		if commentKinds[kind] {
			continue
		}

		cls := it.class
		mth := it.method

		switch {
		case kind == "class_declaration":
			cs := newClassState(node, result.Path, source)
			classes = append(classes, cs)
			cls, mth = cs, nil

		case kind == "method_declaration" || kind == "constructor_declaration":
			if cls != nil {
				m := newMethodRecord(node, cls.rec.Name, source)
				finished := cls
				stack = append(stack, workItem{exit: func() { attachMethod(finished, m) }})
				mth = m
			}

		case kind == "field_declaration" || kind == "local_variable_declaration":
			if cls != nil {
				recordExternalType(cls, node, source)
			}

		case branchKinds[kind]:
			if mth != nil {
				mth.Complexity++
			}

		case kind == "switch_label":
			if mth != nil && strings.HasPrefix(parser.GetNodeText(node, source), "case") {
				mth.Complexity++
			}

		case literalKinds[kind]:
			// Literals are recorded whole, without descending.
			if mth != nil {
				mth.Operands = append(mth.Operands, parser.GetNodeText(node, source))
			}
			continue
		}

		if node.ChildCount() == 0 {
			visitToken(kind, parser.GetNodeText(node, source), mth)
			continue
		}

		// Children are pushed in reverse so they pop in source order.
		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			stack = append(stack, workItem{node: node.Child(i), class: cls, method: mth})
		}
	}

	lines := SplitLines(source)
	records := make([]*models.ClassMetrics, 0, len(classes))
	for _, cs := range classes {
		records = append(records, finishClass(cs, lines))
	}
	return records
}

// visitToken classifies one terminal token and attributes it to the current
// method. Short-circuit logical operators and the ternary operator also
// count as branch points.
func visitToken(kind, text string, m *models.MethodMetrics) {
	if m == nil {
		return
	}

	switch ClassifyToken(kind, text) {
	case TokenOperator:
		m.Operators = append(m.Operators, text)
		if shortCircuitOrTernary[text] {
			m.Complexity++
		}
	case TokenOperand:
		m.Operands = append(m.Operands, text)
	}
}

func newClassState(node *sitter.Node, path string, source []byte) *classState {
	name := parser.GetNodeText(node.ChildByFieldName("name"), source)
	if name == "" {
		name = "unknown"
	}

	return &classState{
		rec: &models.ClassMetrics{
			Name:      name,
			File:      path,
			StartLine: parser.StartLine(node),
			EndLine:   parser.EndLine(node),
		},
		indexes:  make(map[string]int),
		external: make(map[string]struct{}),
	}
}

func newMethodRecord(node *sitter.Node, className string, source []byte) *models.MethodMetrics {
	name := parser.GetNodeText(node.ChildByFieldName("name"), source)
	if name == "" {
		name = "unknown"
	}

	return &models.MethodMetrics{
		Name:       name,
		ClassName:  className,
		StartLine:  parser.StartLine(node),
		EndLine:    parser.EndLine(node),
		Complexity: 1,
	}
}

// attachMethod finalizes a method's Halstead metrics and records it on the
// class. A repeated name (an overload) replaces the earlier record in place.
func attachMethod(cs *classState, m *models.MethodMetrics) {
	m.Halstead = metrics.Halstead(
		distinctCount(m.Operators),
		distinctCount(m.Operands),
		len(m.Operators),
		len(m.Operands),
	)

	if idx, ok := cs.indexes[m.Name]; ok {
		cs.rec.Methods[idx] = m
		return
	}
	cs.indexes[m.Name] = len(cs.rec.Methods)
	cs.rec.Methods = append(cs.rec.Methods, m)
}

// recordExternalType extracts the declared type of a field or local variable
// and adds it to the class's external-type set unless it is a primitive or a
// common built-in.
func recordExternalType(cs *classState, node *sitter.Node, source []byte) {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return
	}

	name := CleanTypeName(parser.GetNodeText(typeNode, source))
	if IsExternalType(name) {
		cs.external[name] = struct{}{}
	}
}

// finishClass computes the per-class aggregates once the file walk is done:
// logical LOC against the class's own line range, the union/sum Halstead
// aggregation over its methods, WMC, CBO, and the maintainability index from
// the aggregated volume, the floored average method complexity, and the
// class LOC. DIT and NOC stay zero here; they are assigned after all files
// have been processed.
func finishClass(cs *classState, lines []string) *models.ClassMetrics {
	c := cs.rec

	opSet := make(map[string]struct{})
	operandSet := make(map[string]struct{})
	var totalOps, totalOperands int
	complexities := make([]int, 0, len(c.Methods))

	for _, m := range c.Methods {
		for _, op := range m.Operators {
			opSet[op] = struct{}{}
		}
		for _, od := range m.Operands {
			operandSet[od] = struct{}{}
		}
		totalOps += len(m.Operators)
		totalOperands += len(m.Operands)
		complexities = append(complexities, m.Complexity)

		if len(lines) > 0 && m.StartLine >= 1 && m.StartLine <= len(lines) {
			m.LOC = LogicalLines(lines, m.StartLine, m.EndLine)
			if m.LOC < 1 {
				m.LOC = 1
			}
		} else {
			m.LOC = FallbackLOC(len(m.Operators) + len(m.Operands))
		}
	}

	if len(lines) > 0 && c.StartLine >= 1 && c.StartLine <= len(lines) {
		c.LOC = LogicalLines(lines, c.StartLine, c.EndLine)
	} else {
		c.LOC = FallbackLOC(totalOps + totalOperands)
	}

	c.Halstead = metrics.Halstead(len(opSet), len(operandSet), totalOps, totalOperands)
	c.WMC = metrics.WMC(complexities)
	c.CBO = metrics.CBO(cs.external)

	c.ExternalTypes = make([]string, 0, len(cs.external))
	for name := range cs.external {
		c.ExternalTypes = append(c.ExternalTypes, name)
	}
	sort.Strings(c.ExternalTypes)

	avgComplexity := 1
	if len(complexities) > 0 {
		avgComplexity = c.WMC / len(complexities)
	}
	c.MaintainabilityIndex = metrics.MaintainabilityIndex(c.Halstead.Volume, avgComplexity, c.LOC)
	c.Category = metrics.Category(c.MaintainabilityIndex)

	return c
}

func distinctCount(tokens []string) int {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return len(set)
}
