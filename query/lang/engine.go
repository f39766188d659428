package lang

import "github.com/dhamidi/trails/query/parser"

// Engine bundles the catalog with a relation supplier and exposes the
// operations editors call: completion, hover, diagnostics, rename, and
// highlighting. Every call parses fresh and runs to completion on the
// caller's goroutine; the shared registry is read-only by then, so one
// engine may serve concurrent callers.
type Engine struct {
	reg       *Registry
	docs      *Docs
	relations RelationSource
}

func NewEngine(reg *Registry, relations RelationSource) *Engine {
	return &Engine{
		reg:       reg,
		docs:      NewDocs(reg),
		relations: relations,
	}
}

func (e *Engine) Registry() *Registry {
	return e.reg
}

func (e *Engine) Complete(text string, offset int) *Completions {
	root := parser.ParseString(text)
	return Complete(e.reg, root, text, offset, e.relations)
}

func (e *Engine) Hover(text string, offset int) (Documentation, bool) {
	word := WordAt(text, offset)
	if word == "" {
		return Documentation{}, false
	}
	return e.docs.Lookup(word)
}

func (e *Engine) Doc(word string) (Documentation, bool) {
	return e.docs.Lookup(word)
}

func (e *Engine) Diagnostics(text string) []Diagnostic {
	root := parser.ParseString(text)
	return Validate(e.reg, Build(e.reg, root))
}

func (e *Engine) Rename(text, oldName, newName string) string {
	return RenameRelation(text, oldName, newName)
}

func (e *Engine) Highlights(text string) []Highlight {
	return Highlights(e.reg, parser.ParseString(text))
}
