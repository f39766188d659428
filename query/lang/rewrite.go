package lang

import (
	"sort"
	"strings"

	"github.com/dhamidi/trails/query/parser"
)

// NormalizeRelation folds a relation identifier to the canonical form
// used to judge relation identity.
func NormalizeRelation(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RenameRelation replaces every use of a relation identifier in the
// query text and returns the rewritten text.
//
// The rewrite is all or nothing: if the text does not parse cleanly
// the input comes back unchanged, never partially rewritten. Only the
// identifier child of a relation construct is considered; an attached
// display label is never touched even when its text matches.
func RenameRelation(text, oldName, newName string) string {
	oldNorm := NormalizeRelation(oldName)
	newNorm := NormalizeRelation(newName)
	if oldNorm == "" || newNorm == "" || oldNorm == newNorm {
		return text
	}

	root := parser.ParseString(text)
	if root == nil || root.HasErrors() {
		return text
	}

	type replacement struct {
		start, end int
	}
	var spans []replacement
	root.Walk(func(n *parser.Node) bool {
		if n.Kind != parser.KindRelation {
			return true
		}
		ident := n.FirstChildOfKind(parser.KindIdentifier)
		if ident != nil && NormalizeRelation(ident.TokenLiteral()) == oldNorm {
			spans = append(spans, replacement{
				start: ident.Span.Start.Offset,
				end:   ident.Span.End.Offset,
			})
		}
		// never descend past a relation; its label is not an identifier
		return false
	})

	if len(spans) == 0 {
		return text
	}

	// Rightmost first, so earlier offsets stay valid when the new
	// name's length differs from the old one's.
	sort.Slice(spans, func(i, j int) bool {
		return spans[i].start > spans[j].start
	})

	replacementText := strings.TrimSpace(newName)
	for _, s := range spans {
		text = text[:s.start] + replacementText + text[s.end:]
	}
	return text
}
