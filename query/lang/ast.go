package lang

import (
	"fmt"
	"strconv"

	"github.com/dhamidi/trails/query/parser"
)

// Diagnostic is a problem found while validating a query, attached to
// the span of the offending node.
type Diagnostic struct {
	Span    parser.Span
	Message string
}

// Node is the typed view of one parsed construct. Every consumer walks
// this one shape; per-kind behavior dispatches on Kind.
type Node struct {
	Kind     parser.NodeKind
	Desc     *Descriptor // catalog entry for this construct, may be nil
	Span     parser.Span
	Source   *parser.Node
	Children []*Node
}

// Build wraps a parsed tree in typed nodes, attaching the catalog
// descriptor of each construct.
func Build(reg *Registry, root *parser.Node) *Node {
	if root == nil {
		return nil
	}
	node := &Node{
		Kind:   root.Kind,
		Desc:   reg.DescriptorForKind(root.Kind.String()),
		Span:   root.Span,
		Source: root,
	}
	for _, child := range root.Children {
		node.Children = append(node.Children, Build(reg, child))
	}
	return node
}

// Validate checks the subtree and returns every diagnostic found.
// It records problems instead of failing: a malformed tree yields
// diagnostics, never an error or panic.
func Validate(reg *Registry, root *Node) []Diagnostic {
	vc := &validationContext{reg: reg}
	if root != nil {
		vc.validate(root)
	}
	return vc.diagnostics
}

type validationContext struct {
	reg         *Registry
	diagnostics []Diagnostic
}

func (vc *validationContext) report(span parser.Span, format string, args ...any) {
	vc.diagnostics = append(vc.diagnostics, Diagnostic{
		Span:    span,
		Message: fmt.Sprintf(format, args...),
	})
}

func (vc *validationContext) validate(n *Node) {
	switch n.Kind {
	case parser.KindError:
		vc.reportParseError(n)
	case parser.KindCallExpr:
		vc.validateCall(n)
	case parser.KindPropertyAccess:
		vc.validatePropertyAccess(n)
	case parser.KindDepthModifier:
		vc.validateDepth(n)
	case parser.KindKeyword, parser.KindOperator, parser.KindIdentifier,
		parser.KindLiteral, parser.KindStringLiteral:
		// leaves validate nothing
	default:
		vc.validateChildren(n)
	}
}

func (vc *validationContext) validateChildren(n *Node) {
	for _, child := range n.Children {
		vc.validate(child)
	}
}

func (vc *validationContext) reportParseError(n *Node) {
	if n.Source != nil && n.Source.Error != nil {
		vc.report(n.Span, "%s", n.Source.Error.Message)
		return
	}
	vc.report(n.Span, "syntax error")
}

func (vc *validationContext) validateCall(n *Node) {
	callee := n.firstChildOfKind(parser.KindIdentifier)
	args := n.arguments()

	if callee != nil {
		name := callee.tokenLiteral()
		fn := vc.reg.FunctionDescriptor(name)
		if fn == nil {
			vc.report(callee.Span, "unknown function %q", name)
		} else if len(args) < fn.MinArgs {
			vc.report(n.Span, "%s expects at least %d argument(s), got %d", name, fn.MinArgs, len(args))
		} else if fn.MaxArgs >= 0 && len(args) > fn.MaxArgs {
			vc.report(n.Span, "%s expects at most %d argument(s), got %d", name, fn.MaxArgs, len(args))
		}
	}

	for _, arg := range args {
		vc.validate(arg)
	}
	for _, child := range n.Children {
		if child.Kind == parser.KindError {
			vc.reportParseError(child)
		}
	}
}

func (vc *validationContext) validatePropertyAccess(n *Node) {
	segments := n.childrenOfKind(parser.KindIdentifier)
	if len(segments) < 2 {
		vc.validateChildren(n)
		return
	}
	ns := vc.reg.Namespace(segments[0].tokenLiteral())
	if ns == nil {
		// not a builtin namespace; user-defined properties are opaque here
		vc.validateChildren(n)
		return
	}
	name := segments[1].tokenLiteral()
	if ns.Property(name) == nil {
		vc.report(segments[1].Span, "namespace %q has no property %q", ns.Name, name)
	}
	vc.validateChildren(n)
}

func (vc *validationContext) validateDepth(n *Node) {
	limit := n.firstChildOfKind(parser.KindLiteral)
	if limit != nil {
		if v, err := strconv.Atoi(limit.tokenLiteral()); err != nil || v < 1 {
			vc.report(limit.Span, "depth limit must be a positive integer")
		}
	}
	vc.validateChildren(n)
}

func (n *Node) firstChildOfKind(kind parser.NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) childrenOfKind(kind parser.NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// arguments returns the argument expressions of a call node, skipping
// the callee identifier and any error placeholder.
func (n *Node) arguments() []*Node {
	var args []*Node
	seenCallee := false
	for _, child := range n.Children {
		if child.Kind == parser.KindIdentifier && !seenCallee {
			seenCallee = true
			continue
		}
		if child.Kind == parser.KindError {
			continue
		}
		args = append(args, child)
	}
	return args
}

func (n *Node) tokenLiteral() string {
	if n.Source != nil {
		return n.Source.TokenLiteral()
	}
	return ""
}
