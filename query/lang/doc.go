package lang

import "strings"

// Docs is the read-only documentation lookup over a frozen registry,
// used by hover and info consumers.
type Docs struct {
	reg *Registry
}

func NewDocs(reg *Registry) *Docs {
	return &Docs{reg: reg}
}

// Lookup resolves an identifier to its documentation by exact text.
// When an identifier could match more than one category the order is
// fixed: keyword, then function, then builtin namespace or property.
func (d *Docs) Lookup(word string) (Documentation, bool) {
	if desc := d.reg.KeywordDescriptor(word); desc != nil {
		return desc.Doc, true
	}
	if fn := d.reg.FunctionDescriptor(word); fn != nil {
		return fn.Doc, true
	}
	if ns := d.reg.Namespace(word); ns != nil {
		return Documentation{
			Title:       ns.Name,
			Description: ns.Description,
		}, true
	}
	if nsName, propName, ok := strings.Cut(word, "."); ok {
		if ns := d.reg.Namespace(nsName); ns != nil {
			if p := ns.Property(propName); p != nil {
				return Documentation{
					Title:       nsName + "." + p.Name,
					Description: p.Description,
					ResultType:  p.Type,
				}, true
			}
		}
	}
	return Documentation{}, false
}

// WordAt extracts the identifier or keyword covering the given offset,
// for hover lookups. Property paths count as one word.
func WordAt(text string, offset int) string {
	if offset > len(text) {
		offset = len(text)
	}
	start := offset
	for start > 0 && isWordByte(text[start-1]) {
		start--
	}
	end := offset
	for end < len(text) && isWordByte(text[end]) {
		end++
	}
	return text[start:end]
}
