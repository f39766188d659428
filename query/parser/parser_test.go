package parser

import "testing"

func clauseKinds(root *Node) []NodeKind {
	var kinds []NodeKind
	for _, child := range root.Children {
		kinds = append(kinds, child.Kind)
	}
	return kinds
}

func TestParseFullQuery(t *testing.T) {
	input := `group "Linked notes"
from links as "Linked" depth 2
where doc.folder = "projects" and count(doc.tags) > 0
sort by doc.mtime desc, doc.name
display doc.name, doc.mtime`

	root := ParseString(input)
	if root == nil {
		t.Fatal("got nil tree")
	}
	if root.Kind != KindQuery {
		t.Fatalf("root kind: got %s, want Query", root.Kind)
	}
	if root.HasErrors() {
		t.Fatalf("unexpected errors in tree:\n%s", root)
	}

	want := []NodeKind{KindGroupClause, KindFromClause, KindWhereClause, KindSortClause, KindDisplayClause}
	got := clauseKinds(root)
	if len(got) != len(want) {
		t.Fatalf("clauses: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("clause %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestParseFromClause(t *testing.T) {
	t.Run("relation with label and depth", func(t *testing.T) {
		root := ParseString(`from backlinks as "Mentioned by" depth 3`)
		from := root.FirstChildOfKind(KindFromClause)
		if from == nil {
			t.Fatal("no from clause")
		}

		relation := from.FirstChildOfKind(KindRelation)
		if relation == nil {
			t.Fatal("no relation node")
		}
		ident := relation.FirstChildOfKind(KindIdentifier)
		if ident == nil || ident.TokenLiteral() != "backlinks" {
			t.Errorf("relation identifier: got %q", ident.TokenLiteral())
		}
		if relation.FirstChildOfKind(KindStringLiteral) == nil {
			t.Error("relation label missing")
		}

		depth := from.FirstChildOfKind(KindDepthModifier)
		if depth == nil {
			t.Fatal("no depth modifier")
		}
		limit := depth.FirstChildOfKind(KindLiteral)
		if limit == nil || limit.TokenLiteral() != "3" {
			t.Errorf("depth limit: got %q", limit.TokenLiteral())
		}
	})

	t.Run("missing relation produces error node", func(t *testing.T) {
		root := ParseString("from ")
		from := root.FirstChildOfKind(KindFromClause)
		if from == nil {
			t.Fatal("no from clause")
		}
		errNode := from.FirstChildOfKind(KindError)
		if errNode == nil {
			t.Fatal("expected error node for missing relation")
		}
		if errNode.Span.Start.Offset != errNode.Span.End.Offset {
			t.Errorf("error node should be zero width, got [%d,%d)",
				errNode.Span.Start.Offset, errNode.Span.End.Offset)
		}
	})
}

func TestParseExpressionPrecedence(t *testing.T) {
	t.Run("multiplication binds tighter than addition", func(t *testing.T) {
		root := ParseString("where 1 + 2 * 3")
		where := root.FirstChildOfKind(KindWhereClause)
		expr := where.FirstChildOfKind(KindBinaryExpr)
		if expr == nil {
			t.Fatal("no binary expression")
		}
		op := expr.FirstChildOfKind(KindOperator)
		if op.TokenLiteral() != "+" {
			t.Errorf("top operator: got %q, want +", op.TokenLiteral())
		}
		right := expr.Children[2]
		if right.Kind != KindBinaryExpr {
			t.Fatalf("right operand: got %s, want BinaryExpr", right.Kind)
		}
		if right.FirstChildOfKind(KindOperator).TokenLiteral() != "*" {
			t.Error("inner operator should be *")
		}
	})

	t.Run("not binds tighter than and", func(t *testing.T) {
		root := ParseString("where not a and b")
		where := root.FirstChildOfKind(KindWhereClause)
		expr := where.FirstChildOfKind(KindBinaryExpr)
		if expr == nil {
			t.Fatal("no binary expression")
		}
		if expr.Children[0].Kind != KindUnaryExpr {
			t.Errorf("left operand: got %s, want UnaryExpr", expr.Children[0].Kind)
		}
	})

	t.Run("parentheses group", func(t *testing.T) {
		root := ParseString("where (1 + 2) * 3")
		where := root.FirstChildOfKind(KindWhereClause)
		expr := where.FirstChildOfKind(KindBinaryExpr)
		if expr == nil {
			t.Fatal("no binary expression")
		}
		if expr.Children[0].Kind != KindParenExpr {
			t.Errorf("left operand: got %s, want ParenExpr", expr.Children[0].Kind)
		}
	})
}

func TestParseCallAndProperty(t *testing.T) {
	root := ParseString(`where contains(doc.tags, "inbox")`)
	where := root.FirstChildOfKind(KindWhereClause)
	call := where.FirstChildOfKind(KindCallExpr)
	if call == nil {
		t.Fatal("no call expression")
	}

	callee := call.Children[0]
	if callee.Kind != KindIdentifier || callee.TokenLiteral() != "contains" {
		t.Errorf("callee: got %s %q", callee.Kind, callee.TokenLiteral())
	}

	prop := call.FirstChildOfKind(KindPropertyAccess)
	if prop == nil {
		t.Fatal("no property access argument")
	}
	segments := prop.ChildrenOfKind(KindIdentifier)
	if len(segments) != 2 || segments[0].TokenLiteral() != "doc" || segments[1].TokenLiteral() != "tags" {
		t.Errorf("property segments: got %v", segments)
	}

	if call.FirstChildOfKind(KindStringLiteral) == nil {
		t.Error("string argument missing")
	}
}

func TestParseSortClause(t *testing.T) {
	root := ParseString("sort by doc.mtime desc, doc.name")
	sortClause := root.FirstChildOfKind(KindSortClause)
	if sortClause == nil {
		t.Fatal("no sort clause")
	}
	keys := sortClause.ChildrenOfKind(KindSortKey)
	if len(keys) != 2 {
		t.Fatalf("sort keys: got %d, want 2", len(keys))
	}
	if kw := keys[0].FirstChildOfKind(KindKeyword); kw == nil || kw.TokenLiteral() != "desc" {
		t.Error("first key should carry desc")
	}
	if keys[1].FirstChildOfKind(KindKeyword) != nil {
		t.Error("second key should have no direction keyword")
	}
}

func TestParseSortClauseTrailingBy(t *testing.T) {
	root := ParseString("from tasks sort by ")
	if root.HasErrors() {
		t.Fatalf("half-typed sort clause should parse cleanly:\n%s", root)
	}
	sortClause := root.FirstChildOfKind(KindSortClause)
	if sortClause == nil {
		t.Fatal("no sort clause")
	}
	if keys := sortClause.ChildrenOfKind(KindSortKey); len(keys) != 0 {
		t.Errorf("sort keys: got %d, want 0", len(keys))
	}
}

func TestParseErrorRecovery(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"stray token before clause", "123 from links"},
		{"missing group label", "group from links"},
		{"unclosed paren", "where (doc.size > 1"},
		{"unclosed call", "where count(doc.tags"},
		{"missing by", "sort doc.name"},
		{"trailing comma in sort keys", "sort by doc.name,"},
		{"missing depth limit", "from links depth where true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := ParseString(tt.input)
			if root == nil {
				t.Fatal("got nil tree")
			}
			if !root.HasErrors() {
				t.Errorf("expected error nodes in tree:\n%s", root)
			}
		})
	}
}

func TestParseRecoveryContinuesAfterBadClause(t *testing.T) {
	root := ParseString("123 from links")
	if root.FirstChildOfKind(KindError) == nil {
		t.Error("stray token should become an error node")
	}
	if root.FirstChildOfKind(KindFromClause) == nil {
		t.Error("parsing should continue with the from clause")
	}
}

func TestParseEmptyInput(t *testing.T) {
	root := ParseString("")
	if root == nil {
		t.Fatal("got nil tree")
	}
	if root.Kind != KindQuery {
		t.Errorf("root kind: got %s, want Query", root.Kind)
	}
	if len(root.Children) != 0 {
		t.Errorf("children: got %d, want 0", len(root.Children))
	}
	if root.HasErrors() {
		t.Error("empty input should parse without errors")
	}
}

func TestParseSpansCoverChildren(t *testing.T) {
	inputs := []string{
		`group "g" from links depth 2 where doc.size > 0 sort by doc.name display doc.name`,
		"from ",
		"where (doc.size > 1",
		"where count(doc.tags",
		"sort doc.name",
	}

	for _, input := range inputs {
		root := ParseString(input)
		root.Walk(func(n *Node) bool {
			for _, child := range n.Children {
				if child.Span.Start.Offset < n.Span.Start.Offset ||
					child.Span.End.Offset > n.Span.End.Offset {
					t.Errorf("input %q: %s span [%d,%d) outside parent %s [%d,%d)",
						input, child.Kind, child.Span.Start.Offset, child.Span.End.Offset,
						n.Kind, n.Span.Start.Offset, n.Span.End.Offset)
				}
			}
			return true
		})
	}
}

func TestParentLinks(t *testing.T) {
	root := ParseString("from links where doc.size > 0")
	root.Walk(func(n *Node) bool {
		for _, child := range n.Children {
			if child.Parent != n {
				t.Errorf("%s child %s has wrong parent", n.Kind, child.Kind)
			}
		}
		return true
	})
}
