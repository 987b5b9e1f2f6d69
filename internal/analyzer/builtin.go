package analyzer

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	jsgrammar "github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	tsgrammar "github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/imyousuf/CodeGauge/internal/metrics"
)

// Builtin approximates radon's complexity and Halstead metrics in-process with
// tree-sitter. It is used when radon is unavailable and for JavaScript and
// TypeScript, which radon does not handle.
type Builtin struct{}

// NewBuiltin creates a Builtin analyzer.
func NewBuiltin() *Builtin {
	return &Builtin{}
}

func (b *Builtin) Name() string { return "builtin" }

// grammarSpec describes how to read metrics out of one tree-sitter grammar.
type grammarSpec struct {
	language  metrics.Language
	functions map[string]bool
	decisions map[string]bool
	// logicalOps are operator tokens of binary_expression that add a path.
	logicalOps map[string]bool
	// operatorNodes are expression nodes whose anonymous children are operators.
	operatorNodes map[string]bool
	operands      map[string]bool
}

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}

var pythonSpec = &grammarSpec{
	language:  metrics.LangPython,
	functions: set("function_definition"),
	decisions: set(
		"if_statement", "elif_clause", "for_statement", "while_statement",
		"except_clause", "with_statement", "assert_statement",
		"conditional_expression", "for_in_clause", "if_clause",
		"boolean_operator", "case_clause",
	),
	operatorNodes: set(
		"binary_operator", "boolean_operator", "comparison_operator",
		"unary_operator", "not_operator", "augmented_assignment",
	),
	operands: set("identifier", "integer", "float", "string", "true", "false", "none"),
}

var scriptSpec = &grammarSpec{
	language: metrics.LangJavaScript,
	functions: set(
		"function_declaration", "function_expression", "function",
		"generator_function_declaration", "generator_function",
		"arrow_function", "method_definition",
	),
	decisions: set(
		"if_statement", "for_statement", "for_in_statement", "while_statement",
		"do_statement", "catch_clause", "ternary_expression", "switch_case",
	),
	logicalOps: set("&&", "||", "??"),
	operatorNodes: set(
		"binary_expression", "unary_expression", "update_expression",
		"augmented_assignment_expression", "ternary_expression",
	),
	operands: set(
		"identifier", "property_identifier", "shorthand_property_identifier",
		"number", "string", "template_string", "regex",
		"true", "false", "null", "undefined",
	),
}

func grammarFor(path string) (*sitter.Language, *grammarSpec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return python.GetLanguage(), pythonSpec, nil
	case ".js", ".jsx":
		return jsgrammar.GetLanguage(), scriptSpec, nil
	case ".ts":
		return tsgrammar.GetLanguage(), scriptSpec, nil
	case ".tsx":
		return tsx.GetLanguage(), scriptSpec, nil
	}
	return nil, nil, fmt.Errorf("no grammar for %s", filepath.Ext(path))
}

// Analyze parses content and computes per-function cyclomatic complexity
// (1 + decision points, nested functions scored separately), file-level
// Halstead counts, and raw line counts.
func (b *Builtin) Analyze(ctx context.Context, path string, content []byte) (*Complexity, error) {
	lang, spec, err := grammarFor(path)
	if err != nil {
		return nil, err
	}

	psr := sitter.NewParser()
	psr.SetLanguage(lang)

	tree, err := psr.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	w := &metricWalker{spec: spec, content: content}
	w.walkComplexity(root, nil)

	h := newHalsteadCounter()
	w.walkHalstead(root, h)

	c := h.complexity()
	c.Scores = w.scores

	lc := metrics.CountLines(content, spec.language)
	c.LinesOfCode = lc.Total
	c.Comments = lc.Comment
	return c, nil
}

type metricWalker struct {
	spec    *grammarSpec
	content []byte
	scores  []float64
}

// walkComplexity accumulates decision points into the innermost enclosing
// function's score. Code outside any function is not scored.
func (w *metricWalker) walkComplexity(n *sitter.Node, current *int) {
	if w.spec.functions[n.Type()] {
		score := 1
		for i := 0; i < int(n.NamedChildCount()); i++ {
			w.walkComplexity(n.NamedChild(i), &score)
		}
		w.scores = append(w.scores, float64(score))
		return
	}

	if current != nil {
		*current += w.decisionPoints(n)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		w.walkComplexity(n.NamedChild(i), current)
	}
}

func (w *metricWalker) decisionPoints(n *sitter.Node) int {
	t := n.Type()
	if w.spec.decisions[t] {
		return 1
	}
	if t == "binary_expression" && w.spec.logicalOps != nil {
		if op := n.ChildByFieldName("operator"); op != nil && w.spec.logicalOps[op.Type()] {
			return 1
		}
	}
	return 0
}

func (w *metricWalker) walkHalstead(n *sitter.Node, h *halsteadCounter) {
	t := n.Type()
	if t == "comment" {
		return
	}
	if w.spec.operands[t] {
		h.operand(n.Content(w.content))
		return
	}
	if w.spec.operatorNodes[t] {
		for i := 0; i < int(n.ChildCount()); i++ {
			if c := n.Child(i); !c.IsNamed() {
				h.operator(c.Type())
			}
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		w.walkHalstead(n.NamedChild(i), h)
	}
}

type halsteadCounter struct {
	operators      map[string]struct{}
	operands       map[string]struct{}
	totalOperators int
	totalOperands  int
}

func newHalsteadCounter() *halsteadCounter {
	return &halsteadCounter{
		operators: make(map[string]struct{}),
		operands:  make(map[string]struct{}),
	}
}

func (h *halsteadCounter) operator(tok string) {
	h.operators[tok] = struct{}{}
	h.totalOperators++
}

func (h *halsteadCounter) operand(tok string) {
	h.operands[tok] = struct{}{}
	h.totalOperands++
}

func (h *halsteadCounter) complexity() *Complexity {
	return halstead(len(h.operators), len(h.operands), h.totalOperators, h.totalOperands)
}

// halstead derives the Halstead measures from distinct (h1, h2) and total
// (n1, n2) operator and operand counts.
func halstead(h1, h2, n1, n2 int) *Complexity {
	c := &Complexity{
		DistinctOperators: h1,
		DistinctOperands:  h2,
		TotalOperators:    n1,
		TotalOperands:     n2,
		Vocabulary:        h1 + h2,
		Length:            n1 + n2,
	}
	if c.Vocabulary > 0 {
		c.Volume = float64(c.Length) * math.Log2(float64(c.Vocabulary))
	}
	if h2 > 0 {
		c.Difficulty = (float64(h1) / 2) * (float64(n2) / float64(h2))
	}
	c.Effort = c.Difficulty * c.Volume
	return c
}
