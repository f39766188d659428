package lang

import "testing"

func TestDocsLookup(t *testing.T) {
	docs := NewDocs(NewCatalog())

	tests := []struct {
		name  string
		word  string
		title string
		found bool
	}{
		{"clause keyword", "from", "from", true},
		{"sort keyword has combined title", "sort", "sort by", true},
		{"modifier keyword", "depth", "depth", true},
		{"operator", "and", "and", true},
		{"function", "count", "count", true},
		{"namespace", "doc", "doc", true},
		{"namespace property", "doc.mtime", "doc.mtime", true},
		{"hop property", "hop.depth", "hop.depth", true},
		{"unknown word", "frobnicate", "", false},
		{"unknown property", "doc.nope", "", false},
		{"unknown namespace", "nope.field", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, ok := docs.Lookup(tt.word)
			if ok != tt.found {
				t.Fatalf("found: got %v, want %v", ok, tt.found)
			}
			if ok && doc.Title != tt.title {
				t.Errorf("title: got %q, want %q", doc.Title, tt.title)
			}
			if ok && doc.Description == "" {
				t.Errorf("%q has no description", tt.word)
			}
		})
	}
}

func TestDocsPropertyResultType(t *testing.T) {
	docs := NewDocs(NewCatalog())

	doc, ok := docs.Lookup("doc.size")
	if !ok {
		t.Fatal("doc.size not found")
	}
	if doc.ResultType != "number" {
		t.Errorf("result type: got %q, want number", doc.ResultType)
	}
}

func TestWordAt(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset int
		want   string
	}{
		{"start of word", "where doc.name", 6, "doc.name"},
		{"middle of word", "where doc.name", 9, "doc.name"},
		{"end of word", "where doc.name", 14, "doc.name"},
		{"keyword", "where doc.name", 2, "where"},
		{"between words", "from links", 4, "from"},
		{"offset past end", "from", 99, "from"},
		{"empty text", "", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordAt(tt.text, tt.offset); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
