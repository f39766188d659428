package lang

import "github.com/dhamidi/trails/query/parser"

// Highlight assigns a highlight class to one token span.
type Highlight struct {
	Span  parser.Span
	Class string
}

// Highlights maps every token in the tree to its highlight class,
// driven by the same catalog the other consumers read. Tokens with no
// class are omitted.
func Highlights(reg *Registry, root *parser.Node) []Highlight {
	var result []Highlight
	root.Walk(func(n *parser.Node) bool {
		if n.Token == nil {
			return true
		}
		class := highlightClass(reg, n)
		if class != "" {
			result = append(result, Highlight{Span: n.Span, Class: class})
		}
		return true
	})
	return result
}

func highlightClass(reg *Registry, n *parser.Node) string {
	switch n.Kind {
	case parser.KindKeyword, parser.KindOperator:
		if d := reg.KeywordDescriptor(n.TokenLiteral()); d != nil {
			return d.Highlight
		}
		return "keyword"
	case parser.KindIdentifier:
		return identifierClass(reg, n)
	case parser.KindLiteral, parser.KindStringLiteral:
		// true and false are keyword-like literals with their own class
		if d := reg.KeywordDescriptor(n.TokenLiteral()); d != nil {
			return d.Highlight
		}
		if d := reg.DescriptorForKind(n.Kind.String()); d != nil {
			return d.Highlight
		}
	}
	return ""
}

func identifierClass(reg *Registry, n *parser.Node) string {
	parent := n.Parent
	if parent == nil {
		return "identifier"
	}
	switch parent.Kind {
	case parser.KindRelation:
		if d := reg.DescriptorForKind("Relation"); d != nil && d.Highlight != "" {
			return d.Highlight
		}
		return "identifier"
	case parser.KindCallExpr:
		if parent.Children[0] == n {
			return "function"
		}
		return "identifier"
	case parser.KindPropertyAccess:
		if d := reg.DescriptorForKind("PropertyAccess"); d != nil && d.Highlight != "" {
			return d.Highlight
		}
		return "identifier"
	}
	return "identifier"
}
