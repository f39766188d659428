package lang

import (
	"strings"

	"github.com/dhamidi/trails/query/parser"
)

// Suggestion is one completion offered to the caller.
type Suggestion struct {
	Label         string
	Category      Category
	Detail        string
	Documentation string
	InsertText    string
}

// Completions is an assembled suggestion list together with the text
// range being replaced. A nil Completions means nothing to suggest.
type Completions struct {
	Items []Suggestion
	Start int
	End   int
}

// RelationSource supplies the current list of valid relation
// identifiers. It is invoked fresh on every completion request.
type RelationSource func() []string

// Complete assembles completions for a cursor position. Suggestions
// are merged across contexts in registration order, deduplicated by
// label with the first occurrence winning, and filtered to the
// in-progress word at the cursor.
func Complete(reg *Registry, root *parser.Node, text string, offset int, relations RelationSource) *Completions {
	contexts := ResolveContexts(reg, root, offset)
	used := usedClauses(reg, root)
	word, start := wordAt(text, offset)

	// While the enclosing clause is still incomplete, sibling clause
	// keywords are withheld: the clause at the cursor wants finishing
	// before a new one can start.
	incomplete := incompleteClauseAt(reg, root, offset)

	a := &assembler{
		word: strings.ToLower(word),
		seen: make(map[string]bool),
	}

	for _, ctx := range contexts {
		for _, d := range reg.CompletablesFor(ctx) {
			if d.IsClause && (used[d.NodeKind] || incomplete) {
				continue
			}
			a.add(Suggestion{
				Label:         d.CompletionLabel(),
				Category:      d.Category,
				Detail:        descriptorDetail(d),
				Documentation: d.Doc.Description,
				InsertText:    d.InsertText(),
			})
		}

		if dataDrivenContexts[ctx] {
			for _, fn := range reg.Functions() {
				a.add(Suggestion{
					Label:         fn.Keyword,
					Category:      CategoryFunction,
					Detail:        fn.Doc.Syntax,
					Documentation: fn.Doc.Description,
					InsertText:    fn.InsertText(),
				})
			}
			for _, ns := range reg.Namespaces() {
				a.add(Suggestion{
					Label:         ns.Name,
					Category:      CategoryProperty,
					Detail:        ns.Description,
					Documentation: ns.Description,
					InsertText:    ns.Name,
				})
				for _, p := range ns.Properties {
					path := ns.Name + "." + p.Name
					a.add(Suggestion{
						Label:         path,
						Category:      CategoryProperty,
						Detail:        p.Type,
						Documentation: p.Description,
						InsertText:    path,
					})
				}
			}
		}

		if ctx == ContextAfterFrom && relations != nil {
			for _, rel := range relations() {
				a.add(Suggestion{
					Label:      rel,
					Category:   CategoryValue,
					Detail:     "relation",
					InsertText: rel,
				})
			}
		}
	}

	if len(a.items) == 0 {
		return nil
	}
	return &Completions{
		Items: a.items,
		Start: start,
		End:   offset,
	}
}

type assembler struct {
	word  string
	seen  map[string]bool
	items []Suggestion
}

func (a *assembler) add(s Suggestion) {
	if a.seen[s.Label] {
		return
	}
	if a.word != "" && !strings.HasPrefix(strings.ToLower(s.Label), a.word) {
		return
	}
	a.seen[s.Label] = true
	a.items = append(a.items, s)
}

func descriptorDetail(d *Descriptor) string {
	if d.Doc.Syntax != "" {
		return d.Doc.Syntax
	}
	return d.Category.String()
}

// incompleteClauseAt reports whether the clause enclosing the cursor
// still contains an error-recovery hole.
func incompleteClauseAt(reg *Registry, root *parser.Node, offset int) bool {
	node := parser.NodeAtOffset(root, offset)
	for n := node; n != nil; n = n.Parent {
		if reg.ClauseDescriptor(n.Kind.String()) != nil {
			return n.HasErrors()
		}
	}
	return false
}

// usedClauses collects the clause kinds already present anywhere in
// the tree, so clause keywords are never suggested twice.
func usedClauses(reg *Registry, root *parser.Node) map[string]bool {
	used := make(map[string]bool)
	root.Walk(func(n *parser.Node) bool {
		if d := reg.ClauseDescriptor(n.Kind.String()); d != nil {
			used[d.NodeKind] = true
		}
		return true
	})
	return used
}

// wordAt returns the in-progress word immediately before the cursor
// and its start offset. Property paths count as one word, so a prefix
// like "doc." narrows suggestions to that namespace.
func wordAt(text string, offset int) (string, int) {
	if offset > len(text) {
		offset = len(text)
	}
	start := offset
	for start > 0 && isWordByte(text[start-1]) {
		start--
	}
	return text[start:offset], start
}

func isWordByte(ch byte) bool {
	return ch == '_' || ch == '.' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}
