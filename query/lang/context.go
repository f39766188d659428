package lang

import "github.com/dhamidi/trails/query/parser"

// ResolveContexts maps a cursor offset in a parsed tree to the set of
// completion contexts active at that position.
//
// The innermost node at the offset is resolved with a bias toward the
// token ending exactly at the cursor, so completion after a finished
// token suggests continuations rather than re-completions. Error
// recovery nodes stand in for their parent. The walk from the resolved
// node toward the root stops at the first node whose kind introduces
// contexts; outer providers are never consulted. The clause-boundary
// context is always part of the result, because any position inside a
// clause can also start a sibling clause.
func ResolveContexts(reg *Registry, root *parser.Node, offset int) []CompletionContext {
	node := parser.NodeAtOffset(root, offset)
	for node != nil && node.IsError() {
		node = node.Parent
	}

	var contexts []CompletionContext
	for n := node; n != nil; n = n.Parent {
		provided := reg.ProvidedContexts(n.Kind.String())
		if len(provided) > 0 {
			contexts = append(contexts, provided...)
			break
		}
	}

	if !hasContext(contexts, ContextClauseBoundary) {
		contexts = append(contexts, ContextClauseBoundary)
	}
	return contexts
}

func hasContext(contexts []CompletionContext, ctx CompletionContext) bool {
	for _, c := range contexts {
		if c == ctx {
			return true
		}
	}
	return false
}
