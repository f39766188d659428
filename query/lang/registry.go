package lang

import "fmt"

// Registry is the catalog of language constructs. It has a two-phase
// lifecycle: an explicit registration phase, then Freeze, after which
// all lookups are pure and safe for concurrent readers.
type Registry struct {
	frozen bool

	ordered    []*Descriptor
	names      map[string]*Descriptor // keywords and function names share one name space
	byKeyword  map[string]*Descriptor
	byFunction map[string]*Descriptor
	byNodeKind map[string]*Descriptor
	functions  []*Descriptor

	expressionKinds       map[string]bool
	expressionClauseKinds map[string]bool
	clauseKinds           map[string]*Descriptor

	namespaces  []*Namespace
	byNamespace map[string]*Namespace
}

func NewRegistry() *Registry {
	return &Registry{
		names:                 make(map[string]*Descriptor),
		byKeyword:             make(map[string]*Descriptor),
		byFunction:            make(map[string]*Descriptor),
		byNodeKind:            make(map[string]*Descriptor),
		expressionKinds:       make(map[string]bool),
		expressionClauseKinds: make(map[string]bool),
		clauseKinds:           make(map[string]*Descriptor),
		byNamespace:           make(map[string]*Namespace),
	}
}

// Register adds one construct. A second descriptor claiming an
// already-used keyword or node kind is rejected so silent shadowing
// can never reach runtime.
func (r *Registry) Register(d *Descriptor) error {
	if r.frozen {
		return fmt.Errorf("registry is frozen")
	}
	if d.Keyword != "" {
		if prev, ok := r.names[d.Keyword]; ok {
			return fmt.Errorf("construct %q already registered as %s", d.Keyword, prev.Category)
		}
	}
	if d.NodeKind != "" {
		if _, ok := r.byNodeKind[d.NodeKind]; ok {
			return fmt.Errorf("node kind %q already registered", d.NodeKind)
		}
	}

	r.ordered = append(r.ordered, d)
	if d.Keyword != "" {
		r.names[d.Keyword] = d
		if d.Category == CategoryFunction {
			r.byFunction[d.Keyword] = d
			r.functions = append(r.functions, d)
		} else {
			r.byKeyword[d.Keyword] = d
		}
	}
	if d.NodeKind != "" {
		r.byNodeKind[d.NodeKind] = d
		if d.IsExpression {
			r.expressionKinds[d.NodeKind] = true
		}
		if d.IsExpressionClause {
			r.expressionClauseKinds[d.NodeKind] = true
		}
		if d.IsClause {
			r.clauseKinds[d.NodeKind] = d
		}
	}
	return nil
}

// RegisterNamespace declares a builtin namespace. Namespace names live
// in the same name space as keywords and functions.
func (r *Registry) RegisterNamespace(ns *Namespace) error {
	if r.frozen {
		return fmt.Errorf("registry is frozen")
	}
	if prev, ok := r.names[ns.Name]; ok {
		return fmt.Errorf("namespace %q collides with %s construct", ns.Name, prev.Category)
	}
	if _, ok := r.byNamespace[ns.Name]; ok {
		return fmt.Errorf("namespace %q already registered", ns.Name)
	}
	r.namespaces = append(r.namespaces, ns)
	r.byNamespace[ns.Name] = ns
	return nil
}

// Freeze ends the registration phase.
func (r *Registry) Freeze() {
	r.frozen = true
}

func (r *Registry) Frozen() bool {
	return r.frozen
}

// CompletablesFor returns the descriptors whose Provides set contains
// ctx, in registration order. Registration order is the displayed
// suggestion order.
func (r *Registry) CompletablesFor(ctx CompletionContext) []*Descriptor {
	var result []*Descriptor
	for _, d := range r.ordered {
		for _, c := range d.Provides {
			if c == ctx {
				result = append(result, d)
				break
			}
		}
	}
	return result
}

// ProvidedContexts returns the contexts a node of the given kind name
// introduces for its descendants, or nil.
func (r *Registry) ProvidedContexts(kindName string) []CompletionContext {
	if d, ok := r.byNodeKind[kindName]; ok {
		return d.ProvidedContexts
	}
	return nil
}

func (r *Registry) ExpressionKinds() map[string]bool {
	return r.expressionKinds
}

func (r *Registry) ExpressionClauseKinds() map[string]bool {
	return r.expressionClauseKinds
}

// ClauseDescriptor returns the clause construct for a node kind name,
// or nil when the kind is not a clause.
func (r *Registry) ClauseDescriptor(kindName string) *Descriptor {
	return r.clauseKinds[kindName]
}

// KeywordDescriptor looks up a non-function construct by its keyword.
func (r *Registry) KeywordDescriptor(word string) *Descriptor {
	return r.byKeyword[word]
}

// FunctionDescriptor looks up a registered function by name.
func (r *Registry) FunctionDescriptor(name string) *Descriptor {
	return r.byFunction[name]
}

// DescriptorForKind looks up the construct that produces the given
// parser node kind.
func (r *Registry) DescriptorForKind(kindName string) *Descriptor {
	return r.byNodeKind[kindName]
}

func (r *Registry) Functions() []*Descriptor {
	return r.functions
}

func (r *Registry) Namespaces() []*Namespace {
	return r.namespaces
}

func (r *Registry) Namespace(name string) *Namespace {
	return r.byNamespace[name]
}
