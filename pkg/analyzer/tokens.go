package analyzer

// TokenClass is the classification of a terminal token.
type TokenClass int

const (
	TokenIgnored TokenClass = iota
	TokenOperator
	TokenOperand
)

// separatorOperators are punctuation tokens counted as operators.
var separatorOperators = map[string]bool{
	";": true, "{": true, "}": true, "(": true, ")": true,
	"[": true, "]": true, ",": true, ".": true, ":": true,
}

// symbolOperators are arithmetic, logical, relational, assignment, shift and
// increment tokens.
var symbolOperators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"=": true, "==": true, "!=": true, "<": true, ">": true,
	"<=": true, ">=": true, "&&": true, "||": true, "!": true,
	"&": true, "|": true, "^": true, "~": true,
	"<<": true, ">>": true, ">>>": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true, ">>>=": true,
	"++": true, "--": true,
	"?": true, "::": true,
}

// keywordOperators are control and flow keywords counted as operators.
var keywordOperators = map[string]bool{
	"if": true, "else": true, "while": true, "for": true, "do": true,
	"switch": true, "case": true, "catch": true, "try": true, "finally": true,
	"return": true, "break": true, "continue": true, "throw": true,
	"new": true, "instanceof": true, "assert": true, "synchronized": true,
	"yield": true, "default": true,
}

// identifierKinds are leaf node kinds whose text is an identifier operand.
var identifierKinds = map[string]bool{
	"identifier":      true,
	"type_identifier": true,
}

// literalKinds are node kinds representing literal operands. Literal nodes
// are recorded whole and never descended into.
var literalKinds = map[string]bool{
	"decimal_integer_literal":        true,
	"hex_integer_literal":            true,
	"octal_integer_literal":          true,
	"binary_integer_literal":         true,
	"decimal_floating_point_literal": true,
	"hex_floating_point_literal":     true,
	"character_literal":              true,
	"string_literal":                 true,
	"true":                           true,
	"false":                          true,
	"null_literal":                   true,
}

// commentKinds are discarded before classification and never counted.
var commentKinds = map[string]bool{
	"comment":       true,
	"line_comment":  true,
	"block_comment": true,
}

// branchKinds increment cyclomatic complexity by one on entry. A switch is
// deliberately absent: the switch itself adds nothing, its case labels do.
var branchKinds = map[string]bool{
	"if_statement":           true,
	"while_statement":        true,
	"for_statement":          true,
	"enhanced_for_statement": true,
	"do_statement":           true,
	"catch_clause":           true,
}

// primitiveTypes and builtinTypes form the denylist for external-type
// extraction (CBO).
var primitiveTypes = map[string]bool{
	"int": true, "long": true, "short": true, "byte": true, "char": true,
	"float": true, "double": true, "boolean": true, "void": true,
}

var builtinTypes = map[string]bool{
	"String": true, "Object": true, "Integer": true, "Long": true,
	"Short": true, "Byte": true, "Character": true, "Float": true,
	"Double": true, "Boolean": true,
}

// shortCircuitOrTernary lists operator tokens that each add one to the
// current method's cyclomatic complexity wherever they appear.
var shortCircuitOrTernary = map[string]bool{
	"&&": true, "||": true, "?": true,
}

// ClassifyToken classifies a terminal token by its text and node kind,
// in priority order: separators, operator symbols, keyword operators,
// identifiers, literals. Anything else (this, super, modifiers, type
// keywords) is ignored.
func ClassifyToken(kind, text string) TokenClass {
	switch {
	case separatorOperators[text]:
		return TokenOperator
	case symbolOperators[text]:
		return TokenOperator
	case keywordOperators[text]:
		return TokenOperator
	case identifierKinds[kind]:
		if keywordOperators[text] {
			return TokenOperator
		}
		return TokenOperand
	case literalKinds[kind]:
		return TokenOperand
	default:
		return TokenIgnored
	}
}

// IsExternalType reports whether a cleaned type name counts toward CBO:
// anything that is neither a primitive nor a common built-in.
func IsExternalType(name string) bool {
	if name == "" {
		return false
	}
	return !primitiveTypes[name] && !builtinTypes[name]
}
