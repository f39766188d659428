package parser

import "testing"

func lexAll(t *testing.T, input string) []Token {
	t.Helper()
	lexer := NewLexer([]byte(input), "test")
	var tokens []Token
	for {
		tok := lexer.NextToken()
		if tok.Kind == TokenWhitespace {
			continue
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func TestLexerTokenKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TokenKind
	}{
		{
			name:  "keywords",
			input: "group from as depth where sort by asc desc display and or not true false",
			want: []TokenKind{
				TokenGroup, TokenFrom, TokenAs, TokenDepth, TokenWhere,
				TokenSort, TokenBy, TokenAsc, TokenDesc, TokenDisplay,
				TokenAnd, TokenOr, TokenNot, TokenTrue, TokenFalse, TokenEOF,
			},
		},
		{
			name:  "identifiers are case sensitive keywords are not matched",
			input: "links Group _backlinks rel2",
			want:  []TokenKind{TokenIdent, TokenIdent, TokenIdent, TokenIdent, TokenEOF},
		},
		{
			name:  "numbers",
			input: "1 42 3.14",
			want:  []TokenKind{TokenNumber, TokenNumber, TokenNumber, TokenEOF},
		},
		{
			name:  "number followed by dot property is not a float",
			input: "1.name",
			want:  []TokenKind{TokenNumber, TokenDot, TokenIdent, TokenEOF},
		},
		{
			name:  "strings",
			input: `"hello" "with \" escape"`,
			want:  []TokenKind{TokenString, TokenString, TokenEOF},
		},
		{
			name:  "unterminated string",
			input: `"oops`,
			want:  []TokenKind{TokenError, TokenEOF},
		},
		{
			name:  "operators",
			input: "( ) , . = != < <= > >= + - * /",
			want: []TokenKind{
				TokenLParen, TokenRParen, TokenComma, TokenDot,
				TokenEq, TokenNotEq, TokenLess, TokenLessEq,
				TokenGreater, TokenGreaterEq,
				TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenEOF,
			},
		},
		{
			name:  "lone bang is an error",
			input: "!",
			want:  []TokenKind{TokenError, TokenEOF},
		},
		{
			name:  "empty input",
			input: "",
			want:  []TokenKind{TokenEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := lexAll(t, tt.input)
			if len(tokens) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(tt.want), tokens)
			}
			for i, tok := range tokens {
				if tok.Kind != tt.want[i] {
					t.Errorf("token %d: got %s, want %s", i, tok.Kind, tt.want[i])
				}
			}
		})
	}
}

func TestLexerLiterals(t *testing.T) {
	tokens := lexAll(t, `from links where doc.name = "x"`)

	want := []string{"from", "links", "where", "doc", ".", "name", "=", `"x"`, ""}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, tok := range tokens {
		if tok.Literal != want[i] {
			t.Errorf("token %d: got literal %q, want %q", i, tok.Literal, want[i])
		}
	}
}

func TestLexerPositions(t *testing.T) {
	input := "from links\nwhere true"
	tokens := lexAll(t, input)

	tests := []struct {
		index        int
		offset       int
		line, column int
	}{
		{0, 0, 1, 1},  // from
		{1, 5, 1, 6},  // links
		{2, 11, 2, 1}, // where
		{3, 17, 2, 7}, // true
	}

	for _, tt := range tests {
		tok := tokens[tt.index]
		start := tok.Span.Start
		if start.Offset != tt.offset || start.Line != tt.line || start.Column != tt.column {
			t.Errorf("token %d %q: got %d:%d offset %d, want %d:%d offset %d",
				tt.index, tok.Literal, start.Line, start.Column, start.Offset,
				tt.line, tt.column, tt.offset)
		}
	}
}
