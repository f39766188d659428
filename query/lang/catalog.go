package lang

import "sync"

// NewCatalog builds and freezes a registry holding every construct of
// the trails language. Registration happens here, in one fixed order,
// because registration order is the user-visible suggestion order.
// Tests construct their own catalogs to avoid cross-test interference;
// long-lived consumers share Default().
func NewCatalog() *Registry {
	r := NewRegistry()

	for _, d := range constructTable() {
		if err := r.Register(d); err != nil {
			panic("lang: catalog: " + err.Error())
		}
	}
	for _, ns := range builtinNamespaces() {
		if err := r.RegisterNamespace(ns); err != nil {
			panic("lang: catalog: " + err.Error())
		}
	}

	r.Freeze()
	return r
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Registry
)

// Default returns the shared frozen catalog.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultCatalog = NewCatalog()
	})
	return defaultCatalog
}

func constructTable() []*Descriptor {
	return []*Descriptor{
		// Clauses. Suggested at the start of a query and at clause
		// boundaries; each one opens its own context for the content
		// nested inside it.
		{
			Keyword:  "group",
			NodeKind: "GroupClause",
			Category: CategoryKeyword,
			Snippet:  `group "$1"`,
			Doc: Documentation{
				Title:       "group",
				Description: "Names the result group. The quoted label is shown as the section heading for everything the query matches.",
				Syntax:      `group "<label>"`,
				Examples:    []string{`group "Open tasks"`},
			},
			Highlight:        "keyword",
			Provides:         []CompletionContext{ContextQueryStart, ContextClauseBoundary},
			ProvidedContexts: []CompletionContext{ContextAfterGroupName},
			IsClause:         true,
		},
		{
			Keyword:  "from",
			NodeKind: "FromClause",
			Category: CategoryKeyword,
			Snippet:  "from ",
			Doc: Documentation{
				Title:       "from",
				Description: "Selects the relation to traverse. The relation names the edge type the query follows across the document graph.",
				Syntax:      "from <relation> [as \"<label>\"] [depth <n>]",
				Examples:    []string{"from links", "from backlinks depth 2"},
			},
			Highlight:        "keyword",
			Provides:         []CompletionContext{ContextQueryStart, ContextClauseBoundary},
			ProvidedContexts: []CompletionContext{ContextAfterFrom},
			IsClause:         true,
		},
		{
			Keyword:  "where",
			NodeKind: "WhereClause",
			Category: CategoryKeyword,
			Snippet:  "where ",
			Doc: Documentation{
				Title:       "where",
				Description: "Filters matched documents. Only documents for which the expression is truthy are kept.",
				Syntax:      "where <expression>",
				Examples:    []string{`where doc.folder = "projects" and count(doc.tags) > 0`},
				ResultType:  "boolean",
			},
			Highlight:          "keyword",
			Provides:           []CompletionContext{ContextQueryStart, ContextClauseBoundary},
			ProvidedContexts:   []CompletionContext{ContextExpression},
			IsClause:           true,
			IsExpressionClause: true,
		},
		{
			Keyword:  "sort",
			Label:    "sort by",
			NodeKind: "SortClause",
			Category: CategoryKeyword,
			Snippet:  "sort by ",
			Doc: Documentation{
				Title:       "sort by",
				Description: "Orders the results by one or more keys. Each key is an expression optionally followed by asc or desc.",
				Syntax:      "sort by <key> [asc|desc] [, <key> ...]",
				Examples:    []string{"sort by doc.mtime desc", "sort by doc.folder, doc.name"},
			},
			Highlight:          "keyword",
			Provides:           []CompletionContext{ContextQueryStart, ContextClauseBoundary},
			ProvidedContexts:   []CompletionContext{ContextSortKey},
			IsClause:           true,
			IsExpressionClause: true,
		},
		{
			Keyword:  "display",
			NodeKind: "DisplayClause",
			Category: CategoryKeyword,
			Snippet:  "display ",
			Doc: Documentation{
				Title:       "display",
				Description: "Chooses the columns shown for each result. Each entry is an expression, usually a property path.",
				Syntax:      "display <expression> [, <expression> ...]",
				Examples:    []string{"display doc.name, doc.mtime"},
			},
			Highlight:          "keyword",
			Provides:           []CompletionContext{ContextQueryStart, ContextClauseBoundary},
			ProvidedContexts:   []CompletionContext{ContextDisplayList},
			IsClause:           true,
			IsExpressionClause: true,
		},

		// Clause modifiers.
		{
			Keyword:  "depth",
			NodeKind: "DepthModifier",
			Category: CategoryKeyword,
			Snippet:  "depth ${1:1}",
			Doc: Documentation{
				Title:       "depth",
				Description: "Limits how many hops of the relation the traversal follows. Without it the traversal stops after one hop.",
				Syntax:      "depth <n>",
				Examples:    []string{"from links depth 3"},
			},
			Highlight:        "keyword",
			Provides:         []CompletionContext{ContextAfterRelation},
			ProvidedContexts: []CompletionContext{ContextAfterDepth},
		},
		{
			Keyword:  "as",
			Category: CategoryKeyword,
			Snippet:  `as "$1"`,
			Doc: Documentation{
				Title:       "as",
				Description: "Attaches a display label to the relation. The label is presentation only and never participates in relation identity.",
				Syntax:      `from <relation> as "<label>"`,
				Examples:    []string{`from backlinks as "Mentioned by"`},
			},
			Highlight: "keyword",
			Provides:  []CompletionContext{ContextAfterRelation},
		},
		{
			Keyword:  "by",
			Category: CategoryKeyword,
			Doc: Documentation{
				Title:       "by",
				Description: "Part of the sort clause; see sort by.",
				Syntax:      "sort by <key> [asc|desc]",
			},
			Highlight: "keyword",
		},
		{
			Keyword:  "asc",
			Category: CategoryKeyword,
			Doc: Documentation{
				Title:       "asc",
				Description: "Sorts the preceding key in ascending order. This is the default direction.",
				Syntax:      "sort by <key> asc",
			},
			Highlight: "keyword",
			Provides:  []CompletionContext{ContextSortKey},
		},
		{
			Keyword:  "desc",
			Category: CategoryKeyword,
			Doc: Documentation{
				Title:       "desc",
				Description: "Sorts the preceding key in descending order.",
				Syntax:      "sort by <key> desc",
			},
			Highlight: "keyword",
			Provides:  []CompletionContext{ContextSortKey},
		},

		// Operators.
		opDescriptor("and", "Logical conjunction. Truthy when both operands are truthy.", ContextAfterExpression),
		opDescriptor("or", "Logical disjunction. Truthy when either operand is truthy.", ContextAfterExpression),
		opDescriptor("not", "Logical negation of the following expression.", ContextExpression),
		opDescriptor("=", "Equality comparison.", ContextAfterExpression),
		opDescriptor("!=", "Inequality comparison.", ContextAfterExpression),
		opDescriptor("<", "Less-than comparison.", ContextAfterExpression),
		opDescriptor("<=", "Less-than-or-equal comparison.", ContextAfterExpression),
		opDescriptor(">", "Greater-than comparison.", ContextAfterExpression),
		opDescriptor(">=", "Greater-than-or-equal comparison.", ContextAfterExpression),
		opDescriptor("+", "Addition, or string concatenation when both operands are strings.", ContextAfterExpression),
		opDescriptor("-", "Subtraction, or numeric negation as a prefix.", ContextAfterExpression),
		opDescriptor("*", "Multiplication.", ContextAfterExpression),
		opDescriptor("/", "Division.", ContextAfterExpression),

		// Boolean literals.
		{
			Keyword:  "true",
			Category: CategoryValue,
			Doc: Documentation{
				Title:       "true",
				Description: "The boolean true literal.",
				ResultType:  "boolean",
			},
			Highlight: "constant",
			Provides:  []CompletionContext{ContextExpression},
		},
		{
			Keyword:  "false",
			Category: CategoryValue,
			Doc: Documentation{
				Title:       "false",
				Description: "The boolean false literal.",
				ResultType:  "boolean",
			},
			Highlight: "constant",
			Provides:  []CompletionContext{ContextExpression},
		},

		// Structural constructs. These have no surface keyword; they
		// exist so tree node kinds map back to catalog metadata and so
		// the resolver knows which contexts each shape introduces.
		{
			NodeKind:         "Query",
			Category:         CategoryKeyword,
			ProvidedContexts: []CompletionContext{ContextQueryStart},
		},
		{
			NodeKind:         "Relation",
			Category:         CategoryProperty,
			Highlight:        "relation",
			ProvidedContexts: []CompletionContext{ContextAfterFrom, ContextAfterRelation},
		},
		{
			NodeKind:         "BinaryExpr",
			Category:         CategoryOperator,
			IsExpression:     true,
			ProvidedContexts: []CompletionContext{ContextAfterExpression},
		},
		{
			NodeKind:         "UnaryExpr",
			Category:         CategoryOperator,
			IsExpression:     true,
			ProvidedContexts: []CompletionContext{ContextAfterExpression},
		},
		{
			NodeKind:         "CallExpr",
			Category:         CategoryFunction,
			IsExpression:     true,
			ProvidedContexts: []CompletionContext{ContextExpression},
		},
		{
			NodeKind:         "PropertyAccess",
			Category:         CategoryProperty,
			Highlight:        "property",
			IsExpression:     true,
			ProvidedContexts: []CompletionContext{ContextAfterExpression},
		},
		{
			NodeKind:         "ParenExpr",
			Category:         CategoryOperator,
			IsExpression:     true,
			ProvidedContexts: []CompletionContext{ContextAfterExpression},
		},
		{
			NodeKind:     "Literal",
			Category:     CategoryValue,
			Highlight:    "number",
			IsExpression: true,
		},
		{
			NodeKind:     "StringLiteral",
			Category:     CategoryValue,
			Highlight:    "string",
			IsExpression: true,
		},
		{
			NodeKind:         "Operator",
			Category:         CategoryOperator,
			Highlight:        "operator",
			ProvidedContexts: []CompletionContext{ContextExpression},
		},

		// Functions. Offered through the data-driven contexts with a
		// cursor-between-parentheses template.
		fnDescriptor("count", 1, 1, "count(<list>)", "Counts the elements of a list value.", "number",
			"where count(doc.tags) > 2"),
		fnDescriptor("contains", 2, 2, "contains(<list|string>, <value>)", "Reports whether a list contains a value, or a string contains a substring.", "boolean",
			`where contains(doc.tags, "inbox")`),
		fnDescriptor("lower", 1, 1, "lower(<string>)", "Converts a string to lower case.", "string",
			"sort by lower(doc.name)"),
		fnDescriptor("upper", 1, 1, "upper(<string>)", "Converts a string to upper case.", "string",
			"display upper(doc.ext)"),
		fnDescriptor("length", 1, 1, "length(<string|list>)", "Returns the length of a string or list.", "number",
			"where length(doc.name) < 40"),
		fnDescriptor("startswith", 2, 2, "startswith(<string>, <prefix>)", "Reports whether a string starts with the given prefix.", "boolean",
			`where startswith(doc.path, "journal/")`),
		fnDescriptor("endswith", 2, 2, "endswith(<string>, <suffix>)", "Reports whether a string ends with the given suffix.", "boolean",
			`where endswith(doc.name, "-draft")`),
		fnDescriptor("date", 1, 1, "date(<string>)", "Parses a string into a date value for comparisons.", "date",
			`where doc.mtime > date("2026-01-01")`),
		fnDescriptor("default", 2, 2, "default(<value>, <fallback>)", "Returns the first argument unless it is missing, then the fallback.", "any",
			`display default(doc.folder, "(root)")`),
		fnDescriptor("join", 2, 2, "join(<list>, <separator>)", "Joins the elements of a list into one string.", "string",
			`display join(doc.tags, ", ")`),
		fnDescriptor("min", 1, -1, "min(<value>, ...)", "Returns the smallest of its arguments.", "any",
			"display min(hop.depth, 3)"),
		fnDescriptor("max", 1, -1, "max(<value>, ...)", "Returns the largest of its arguments.", "any",
			"display max(doc.size, 0)"),
	}
}

func opDescriptor(keyword, description string, ctx CompletionContext) *Descriptor {
	return &Descriptor{
		Keyword:  keyword,
		Category: CategoryOperator,
		Doc: Documentation{
			Title:       keyword,
			Description: description,
		},
		Highlight: "operator",
		Provides:  []CompletionContext{ctx},
	}
}

func fnDescriptor(name string, minArgs, maxArgs int, syntax, description, resultType string, example string) *Descriptor {
	return &Descriptor{
		Keyword:  name,
		Category: CategoryFunction,
		Snippet:  name + "($1)",
		Doc: Documentation{
			Title:       name,
			Description: description,
			Syntax:      syntax,
			Examples:    []string{example},
			ResultType:  resultType,
		},
		Highlight: "function",
		MinArgs:   minArgs,
		MaxArgs:   maxArgs,
	}
}

func builtinNamespaces() []*Namespace {
	return []*Namespace{
		{
			Name:        "doc",
			Description: "Metadata of the matched document.",
			Properties: []Property{
				{Name: "name", Type: "string", Description: "File name without the extension."},
				{Name: "path", Type: "string", Description: "Path relative to the vault root."},
				{Name: "folder", Type: "string", Description: "Folder portion of the path."},
				{Name: "ext", Type: "string", Description: "File extension without the dot."},
				{Name: "size", Type: "number", Description: "File size in bytes."},
				{Name: "ctime", Type: "date", Description: "Creation time."},
				{Name: "mtime", Type: "date", Description: "Last modification time."},
				{Name: "tags", Type: "list", Description: "Tags attached to the document."},
				{Name: "links", Type: "list", Description: "Outgoing links from the document."},
				{Name: "backlinks", Type: "list", Description: "Documents linking to this one."},
			},
		},
		{
			Name:        "hop",
			Description: "Metadata of the traversal step that reached the document.",
			Properties: []Property{
				{Name: "depth", Type: "number", Description: "Number of relation hops from the query origin."},
				{Name: "origin", Type: "string", Description: "Path of the document the traversal started from."},
				{Name: "via", Type: "string", Description: "Relation that produced this hop."},
			},
		},
	}
}
