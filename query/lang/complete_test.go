package lang

import (
	"testing"

	"github.com/dhamidi/trails/query/parser"
)

func completeAt(reg *Registry, text string, offset int, relations RelationSource) *Completions {
	return Complete(reg, parser.ParseString(text), text, offset, relations)
}

func labels(c *Completions) []string {
	if c == nil {
		return nil
	}
	var result []string
	for _, item := range c.Items {
		result = append(result, item.Label)
	}
	return result
}

func hasLabel(c *Completions, label string) bool {
	for _, got := range labels(c) {
		if got == label {
			return true
		}
	}
	return false
}

func TestCompleteEmptyQueryOffersClauses(t *testing.T) {
	reg := NewCatalog()
	got := labels(completeAt(reg, "", 0, nil))

	want := []string{"group", "from", "where", "sort by", "display"}
	if len(got) != len(want) {
		t.Fatalf("labels: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCompleteAfterFromOffersOnlyRelations(t *testing.T) {
	reg := NewCatalog()
	relations := func() []string { return []string{"links", "backlinks"} }

	c := completeAt(reg, "from ", 5, relations)
	got := labels(c)

	want := []string{"links", "backlinks"}
	if len(got) != len(want) {
		t.Fatalf("labels: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label %d: got %q, want %q", i, got[i], want[i])
		}
	}

	// The from clause is still missing its relation; starting a new
	// clause here would be nonsense.
	for _, clause := range []string{"group", "from", "where", "sort by", "display"} {
		if hasLabel(c, clause) {
			t.Errorf("clause keyword %q suggested inside an incomplete from clause", clause)
		}
	}
}

func TestCompleteMidRelationFiltersByPrefix(t *testing.T) {
	reg := NewCatalog()
	relations := func() []string { return []string{"links", "backlinks", "embeds"} }

	c := completeAt(reg, "from li", 7, relations)
	got := labels(c)

	if len(got) != 1 || got[0] != "links" {
		t.Fatalf("labels: got %v, want [links]", got)
	}
	if c.Start != 5 || c.End != 7 {
		t.Errorf("replace range: got [%d,%d), want [5,7)", c.Start, c.End)
	}
}

func TestCompleteAfterRelationOffersModifiersAndClauses(t *testing.T) {
	reg := NewCatalog()
	c := completeAt(reg, "from links ", 11, nil)

	for _, want := range []string{"depth", "as", "group", "where", "sort by", "display"} {
		if !hasLabel(c, want) {
			t.Errorf("missing %q in %v", want, labels(c))
		}
	}

	// A second from clause is not allowed.
	if hasLabel(c, "from") {
		t.Errorf("used clause keyword suggested again: %v", labels(c))
	}
}

func TestCompleteExpressionContext(t *testing.T) {
	reg := NewCatalog()
	c := completeAt(reg, "where ", 6, nil)

	for _, want := range []string{"not", "true", "false", "count", "contains", "doc", "doc.name", "hop", "hop.depth"} {
		if !hasLabel(c, want) {
			t.Errorf("missing %q in expression completions", want)
		}
	}

	// The where clause has no expression yet, so sibling clauses wait.
	for _, clause := range []string{"group", "from", "sort by", "display"} {
		if hasLabel(c, clause) {
			t.Errorf("clause keyword %q suggested inside an incomplete where clause", clause)
		}
	}
}

func TestCompleteAfterExpressionOffersOperators(t *testing.T) {
	reg := NewCatalog()
	c := completeAt(reg, "where doc.size ", 15, nil)

	for _, want := range []string{"and", "or", "=", "!=", "<", ">="} {
		if !hasLabel(c, want) {
			t.Errorf("missing operator %q in %v", want, labels(c))
		}
	}
	if !hasLabel(c, "sort by") {
		t.Error("complete expression should allow starting the next clause")
	}
}

func TestCompletePrefixNarrowsNamespace(t *testing.T) {
	reg := NewCatalog()

	t.Run("namespace prefix", func(t *testing.T) {
		c := completeAt(reg, "where do", 8, nil)
		got := labels(c)
		if len(got) == 0 {
			t.Fatal("no completions")
		}
		for _, label := range got {
			if len(label) < 2 || label[:2] != "do" {
				t.Errorf("label %q does not match prefix", label)
			}
		}
		if !hasLabel(c, "doc") || !hasLabel(c, "doc.name") {
			t.Errorf("namespace and property paths missing: %v", got)
		}
		if c.Start != 6 {
			t.Errorf("replace start: got %d, want 6", c.Start)
		}
	})

	t.Run("dotted prefix", func(t *testing.T) {
		c := completeAt(reg, "where doc.", 10, nil)
		got := labels(c)
		if len(got) != 10 {
			t.Fatalf("labels: got %d entries %v, want the 10 doc properties", len(got), got)
		}
		for _, label := range got {
			if len(label) < 4 || label[:4] != "doc." {
				t.Errorf("label %q outside the doc namespace", label)
			}
		}
		if c.Start != 6 {
			t.Errorf("replace start: got %d, want 6", c.Start)
		}
	})
}

func TestCompleteNoMatchesReturnsNil(t *testing.T) {
	reg := NewCatalog()
	if c := completeAt(reg, "where zz", 8, nil); c != nil {
		t.Errorf("expected nil completions, got %v", labels(c))
	}
}

func TestCompleteDeduplicatesAcrossContexts(t *testing.T) {
	reg := NewCatalog()
	c := completeAt(reg, "", 0, nil)

	seen := make(map[string]int)
	for _, label := range labels(c) {
		seen[label]++
	}
	for label, n := range seen {
		if n > 1 {
			t.Errorf("label %q appears %d times", label, n)
		}
	}
}

func TestCompleteRelationSourceCalledFresh(t *testing.T) {
	reg := NewCatalog()

	current := []string{"links"}
	source := func() []string { return current }

	if !hasLabel(completeAt(reg, "from ", 5, source), "links") {
		t.Fatal("first call should offer links")
	}

	current = []string{"citations"}
	c := completeAt(reg, "from ", 5, source)
	if !hasLabel(c, "citations") || hasLabel(c, "links") {
		t.Errorf("second call should reflect the updated source, got %v", labels(c))
	}
}

func TestCompleteSortKeyDirection(t *testing.T) {
	reg := NewCatalog()
	c := completeAt(reg, "sort by ", 8, nil)

	if !hasLabel(c, "asc") || !hasLabel(c, "desc") {
		t.Errorf("sort direction keywords missing: %v", labels(c))
	}
	if !hasLabel(c, "doc.mtime") {
		t.Errorf("sort keys should offer property paths: %v", labels(c))
	}
}

func TestCompleteSnippets(t *testing.T) {
	reg := NewCatalog()
	c := completeAt(reg, "", 0, nil)

	for _, item := range c.Items {
		if item.Label == "group" {
			if item.InsertText != `group "$1"` {
				t.Errorf("group snippet: got %q", item.InsertText)
			}
		}
	}

	c = completeAt(reg, "where co", 8, nil)
	for _, item := range c.Items {
		if item.Label == "count" && item.InsertText != "count($1)" {
			t.Errorf("function snippet: got %q", item.InsertText)
		}
	}
}
