package parser

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

// Span is a half-open range [Start,End) of byte offsets into the source.
type Span struct {
	Start Position
	End   Position
}

// Contains reports whether the byte offset lies inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace

	// Literals
	TokenIdent
	TokenNumber
	TokenString
	TokenTrue
	TokenFalse

	// Keywords
	TokenGroup
	TokenFrom
	TokenDepth
	TokenWhere
	TokenSort
	TokenBy
	TokenDisplay
	TokenAs
	TokenAnd
	TokenOr
	TokenNot
	TokenAsc
	TokenDesc

	// Operators and punctuation
	TokenLParen
	TokenRParen
	TokenComma
	TokenDot
	TokenEq
	TokenNotEq
	TokenLess
	TokenLessEq
	TokenGreater
	TokenGreaterEq
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenError:      "Error",
	TokenWhitespace: "Whitespace",
	TokenIdent:      "Ident",
	TokenNumber:     "Number",
	TokenString:     "String",
	TokenTrue:       "true",
	TokenFalse:      "false",
	TokenGroup:      "group",
	TokenFrom:       "from",
	TokenDepth:      "depth",
	TokenWhere:      "where",
	TokenSort:       "sort",
	TokenBy:         "by",
	TokenDisplay:    "display",
	TokenAs:         "as",
	TokenAnd:        "and",
	TokenOr:         "or",
	TokenNot:        "not",
	TokenAsc:        "asc",
	TokenDesc:       "desc",
	TokenLParen:     "(",
	TokenRParen:     ")",
	TokenComma:      ",",
	TokenDot:        ".",
	TokenEq:         "=",
	TokenNotEq:      "!=",
	TokenLess:       "<",
	TokenLessEq:     "<=",
	TokenGreater:    ">",
	TokenGreaterEq:  ">=",
	TokenPlus:       "+",
	TokenMinus:      "-",
	TokenStar:       "*",
	TokenSlash:      "/",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

var keywords = map[string]TokenKind{
	"group":   TokenGroup,
	"from":    TokenFrom,
	"depth":   TokenDepth,
	"where":   TokenWhere,
	"sort":    TokenSort,
	"by":      TokenBy,
	"display": TokenDisplay,
	"as":      TokenAs,
	"and":     TokenAnd,
	"or":      TokenOr,
	"not":     TokenNot,
	"asc":     TokenAsc,
	"desc":    TokenDesc,
	"true":    TokenTrue,
	"false":   TokenFalse,
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

// IsKeyword reports whether the token is one of the language keywords,
// including the boolean literals.
func (t Token) IsKeyword() bool {
	_, ok := keywords[t.Literal]
	return ok && t.Kind != TokenIdent
}
