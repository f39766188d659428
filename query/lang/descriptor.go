// Package lang is the single source of truth for the trails query
// language surface: one declarative catalog of constructs drives
// completion, hover documentation, highlighting, and safe rewriting.
package lang

// CompletionContext identifies which class of syntax is valid at a
// cursor position.
type CompletionContext int

const (
	ContextQueryStart CompletionContext = iota
	ContextAfterGroupName
	ContextAfterFrom
	ContextAfterRelation
	ContextAfterDepth
	ContextExpression
	ContextAfterExpression
	ContextSortKey
	ContextDisplayList
	ContextClauseBoundary
)

var contextNames = map[CompletionContext]string{
	ContextQueryStart:      "query-start",
	ContextAfterGroupName:  "after-group-name",
	ContextAfterFrom:       "after-from",
	ContextAfterRelation:   "after-relation",
	ContextAfterDepth:      "after-depth",
	ContextExpression:      "expression",
	ContextAfterExpression: "after-expression",
	ContextSortKey:         "sort-key",
	ContextDisplayList:     "display-list",
	ContextClauseBoundary:  "clause-boundary",
}

func (c CompletionContext) String() string {
	if name, ok := contextNames[c]; ok {
		return name
	}
	return "unknown"
}

// dataDrivenContexts are the contexts whose suggestions include
// registered functions, builtin namespaces, and property paths in
// addition to static descriptors.
var dataDrivenContexts = map[CompletionContext]bool{
	ContextExpression:      true,
	ContextAfterExpression: true,
	ContextSortKey:         true,
	ContextDisplayList:     true,
}

type Category int

const (
	CategoryKeyword Category = iota
	CategoryOperator
	CategoryFunction
	CategoryProperty
	CategoryValue
)

var categoryNames = map[Category]string{
	CategoryKeyword:  "keyword",
	CategoryOperator: "operator",
	CategoryFunction: "function",
	CategoryProperty: "property",
	CategoryValue:    "value",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Documentation is the hover/info record for one construct.
type Documentation struct {
	Title       string
	Description string
	Syntax      string
	Examples    []string
	ResultType  string
}

// Descriptor is the declarative metadata for one language construct.
// Constructs without a surface keyword (structural node shapes like
// binary expressions) leave Keyword empty and are reached through
// their NodeKind only.
type Descriptor struct {
	Keyword   string // surface keyword, "" for structural constructs
	Label     string // completion label; defaults to Keyword
	NodeKind  string // parser node kind name, "" if none
	Category  Category
	Snippet   string // LSP snippet insert text; defaults to the label
	Doc       Documentation
	Highlight string

	// Provides lists the contexts in which this construct is offered
	// as a completion. ProvidedContexts lists the contexts this
	// construct introduces for content nested inside it.
	Provides         []CompletionContext
	ProvidedContexts []CompletionContext

	IsExpression       bool
	IsExpressionClause bool
	IsClause           bool

	// Function arity. MaxArgs < 0 means variadic.
	MinArgs int
	MaxArgs int
}

func (d *Descriptor) CompletionLabel() string {
	if d.Label != "" {
		return d.Label
	}
	return d.Keyword
}

func (d *Descriptor) InsertText() string {
	if d.Snippet != "" {
		return d.Snippet
	}
	return d.CompletionLabel()
}

// Property is one member of a builtin namespace.
type Property struct {
	Name        string
	Type        string
	Description string
}

// Namespace is a named group of builtin properties, declared at
// registration time.
type Namespace struct {
	Name        string
	Description string
	Properties  []Property
}

func (ns *Namespace) Property(name string) *Property {
	for i := range ns.Properties {
		if ns.Properties[i].Name == name {
			return &ns.Properties[i]
		}
	}
	return nil
}
