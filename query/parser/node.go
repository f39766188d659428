package parser

import "strconv"

type NodeKind int

const (
	KindError NodeKind = iota

	// Query level
	KindQuery
	KindGroupClause
	KindFromClause
	KindWhereClause
	KindSortClause
	KindDisplayClause

	// Clause components
	KindRelation
	KindDepthModifier
	KindSortKey

	// Expressions
	KindBinaryExpr
	KindUnaryExpr
	KindCallExpr
	KindPropertyAccess
	KindParenExpr
	KindIdentifier
	KindLiteral
	KindStringLiteral

	// Leaves
	KindKeyword
	KindOperator
)

var nodeKindNames = map[NodeKind]string{
	KindError:          "Error",
	KindQuery:          "Query",
	KindGroupClause:    "GroupClause",
	KindFromClause:     "FromClause",
	KindWhereClause:    "WhereClause",
	KindSortClause:     "SortClause",
	KindDisplayClause:  "DisplayClause",
	KindRelation:       "Relation",
	KindDepthModifier:  "DepthModifier",
	KindSortKey:        "SortKey",
	KindBinaryExpr:     "BinaryExpr",
	KindUnaryExpr:      "UnaryExpr",
	KindCallExpr:       "CallExpr",
	KindPropertyAccess: "PropertyAccess",
	KindParenExpr:      "ParenExpr",
	KindIdentifier:     "Identifier",
	KindLiteral:        "Literal",
	KindStringLiteral:  "StringLiteral",
	KindKeyword:        "Keyword",
	KindOperator:       "Operator",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Error struct {
	Message  string
	Expected []TokenKind
	Got      *Token
}

type Node struct {
	Kind     NodeKind
	Span     Span
	Parent   *Node
	Children []*Node
	Token    *Token
	Error    *Error
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		child.Parent = n
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// HasErrors reports whether the subtree contains any error-recovery node.
func (n *Node) HasErrors() bool {
	if n == nil {
		return false
	}
	if n.Kind == KindError {
		return true
	}
	for _, child := range n.Children {
		if child.HasErrors() {
			return true
		}
	}
	return false
}

// Walk calls fn for n and every descendant in document order. Returning
// false from fn prunes the subtree below the current node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// NodeAtOffset resolves the innermost node that encloses the byte offset.
// When the offset sits exactly between two tokens, the earlier one wins,
// so a cursor right after a finished token resolves to that token.
func NodeAtOffset(root *Node, offset int) *Node {
	if root == nil {
		return nil
	}
	node := root
	for {
		var next *Node
		for _, child := range node.Children {
			if child.Span.Start.Offset < offset {
				next = child
			} else if child.Span.Start.Offset == 0 && offset == 0 {
				next = child
			}
		}
		if next == nil {
			return node
		}
		node = next
	}
}

func (n *Node) String() string {
	return n.stringIndent(0, false)
}

func (n *Node) StringWithPositions() string {
	return n.stringIndent(0, true)
}

func (n *Node) stringIndent(indent int, showPositions bool) string {
	prefix := ""
	for i := 0; i < indent; i++ {
		prefix += "  "
	}

	result := prefix + n.Kind.String()
	if showPositions {
		result += " [" + strconv.Itoa(n.Span.Start.Offset) + "-" + strconv.Itoa(n.Span.End.Offset) + ")"
	}
	if n.Token != nil {
		result += " " + n.Token.Literal
	}
	if n.Error != nil {
		result += " ERROR: " + n.Error.Message
	}
	result += "\n"

	for _, child := range n.Children {
		result += child.stringIndent(indent+1, showPositions)
	}
	return result
}
