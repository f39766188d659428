package parser

import (
	"io"
	"strings"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

type Parser struct {
	file   string
	reader io.Reader
	input  []byte
	tokens []Token
	pos    int
}

// ParseQuery prepares a parser for a complete query. Call Finish to
// obtain the tree.
func ParseQuery(r io.Reader, opts ...Option) *Parser {
	p := &Parser{reader: r}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseString parses query text directly and returns the tree.
func ParseString(text string) *Node {
	return ParseQuery(strings.NewReader(text)).Finish()
}

func (p *Parser) readAll() error {
	if p.input != nil {
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	p.input = data
	return nil
}

// Finish parses the input and returns the query tree. Malformed input
// produces error-recovery nodes in the tree, never a nil result.
func (p *Parser) Finish() *Node {
	if err := p.readAll(); err != nil {
		return nil
	}
	p.tokens = nil
	p.pos = 0
	p.tokenize()
	return p.parseQuery()
}

func (p *Parser) tokenize() {
	lexer := NewLexer(p.input, p.file)
	for {
		tok := lexer.NextToken()
		if tok.Kind == TokenWhitespace {
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			return
		}
	}
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) at(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) atEOF() bool {
	return p.at(TokenEOF)
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

// tokenNode consumes the current token into a leaf node of the given kind.
func (p *Parser) tokenNode(kind NodeKind) *Node {
	tok := p.advance()
	return &Node{Kind: kind, Span: tok.Span, Token: &tok}
}

// errorNode records an error-recovery node at the current token. When
// consume is set the offending token is swallowed so the caller makes
// progress; otherwise the node is zero-width and the token is left for
// an outer production to pick up.
func (p *Parser) errorNode(message string, expected []TokenKind, consume bool) *Node {
	tok := p.peek()
	node := &Node{
		Kind: KindError,
		Error: &Error{
			Message:  message,
			Expected: expected,
			Got:      &tok,
		},
	}
	if consume && !p.atEOF() {
		got := p.advance()
		node.Span = got.Span
	} else {
		node.Span = Span{Start: tok.Span.Start, End: tok.Span.Start}
	}
	return node
}

func (p *Parser) setSpan(node *Node) {
	if len(node.Children) == 0 {
		return
	}
	node.Span = Span{
		Start: node.Children[0].Span.Start,
		End:   node.Children[len(node.Children)-1].Span.End,
	}
}

func (p *Parser) parseQuery() *Node {
	node := &Node{Kind: KindQuery}
	for !p.atEOF() {
		node.AddChild(p.parseClause())
	}
	p.setSpan(node)
	return node
}

var clauseStarters = []TokenKind{TokenGroup, TokenFrom, TokenWhere, TokenSort, TokenDisplay}

func (p *Parser) parseClause() *Node {
	switch p.peek().Kind {
	case TokenGroup:
		return p.parseGroupClause()
	case TokenFrom:
		return p.parseFromClause()
	case TokenWhere:
		return p.parseWhereClause()
	case TokenSort:
		return p.parseSortClause()
	case TokenDisplay:
		return p.parseDisplayClause()
	default:
		return p.errorNode("expected clause keyword", clauseStarters, true)
	}
}

func (p *Parser) parseGroupClause() *Node {
	node := &Node{Kind: KindGroupClause}
	node.AddChild(p.tokenNode(KindKeyword))
	if p.at(TokenString) {
		node.AddChild(p.tokenNode(KindStringLiteral))
	} else {
		node.AddChild(p.errorNode("expected group label", []TokenKind{TokenString}, false))
	}
	p.setSpan(node)
	return node
}

func (p *Parser) parseFromClause() *Node {
	node := &Node{Kind: KindFromClause}
	node.AddChild(p.tokenNode(KindKeyword))
	if p.at(TokenIdent) {
		node.AddChild(p.parseRelation())
	} else {
		node.AddChild(p.errorNode("expected relation name", []TokenKind{TokenIdent}, false))
	}
	if p.at(TokenDepth) {
		node.AddChild(p.parseDepthModifier())
	}
	p.setSpan(node)
	return node
}

func (p *Parser) parseRelation() *Node {
	node := &Node{Kind: KindRelation}
	node.AddChild(p.tokenNode(KindIdentifier))
	if p.at(TokenAs) {
		node.AddChild(p.tokenNode(KindKeyword))
		if p.at(TokenString) {
			node.AddChild(p.tokenNode(KindStringLiteral))
		} else {
			node.AddChild(p.errorNode("expected relation label", []TokenKind{TokenString}, false))
		}
	}
	p.setSpan(node)
	return node
}

func (p *Parser) parseDepthModifier() *Node {
	node := &Node{Kind: KindDepthModifier}
	node.AddChild(p.tokenNode(KindKeyword))
	if p.at(TokenNumber) {
		node.AddChild(p.tokenNode(KindLiteral))
	} else {
		node.AddChild(p.errorNode("expected depth limit", []TokenKind{TokenNumber}, false))
	}
	p.setSpan(node)
	return node
}

func (p *Parser) parseWhereClause() *Node {
	node := &Node{Kind: KindWhereClause}
	node.AddChild(p.tokenNode(KindKeyword))
	node.AddChild(p.parseExpression())
	p.setSpan(node)
	return node
}

func (p *Parser) parseSortClause() *Node {
	node := &Node{Kind: KindSortClause}
	node.AddChild(p.tokenNode(KindKeyword))
	if p.at(TokenBy) {
		node.AddChild(p.tokenNode(KindKeyword))
	} else {
		node.AddChild(p.errorNode("expected 'by'", []TokenKind{TokenBy}, false))
	}
	// The key list may trail off after "by"; that is an incomplete query
	// being typed, not a malformed one.
	if startsExpression(p.peek().Kind) {
		node.AddChild(p.parseSortKey())
	}
	for p.at(TokenComma) {
		p.advance()
		node.AddChild(p.parseSortKey())
	}
	p.setSpan(node)
	return node
}

func (p *Parser) parseSortKey() *Node {
	node := &Node{Kind: KindSortKey}
	node.AddChild(p.parseExpression())
	if p.at(TokenAsc) || p.at(TokenDesc) {
		node.AddChild(p.tokenNode(KindKeyword))
	}
	p.setSpan(node)
	return node
}

func (p *Parser) parseDisplayClause() *Node {
	node := &Node{Kind: KindDisplayClause}
	node.AddChild(p.tokenNode(KindKeyword))
	node.AddChild(p.parseExpression())
	for p.at(TokenComma) {
		p.advance()
		node.AddChild(p.parseExpression())
	}
	p.setSpan(node)
	return node
}

func (p *Parser) parseExpression() *Node {
	return p.parseOr()
}

func (p *Parser) parseOr() *Node {
	left := p.parseAnd()
	for p.at(TokenOr) {
		node := &Node{Kind: KindBinaryExpr}
		node.AddChild(left)
		node.AddChild(p.tokenNode(KindOperator))
		node.AddChild(p.parseAnd())
		p.setSpan(node)
		left = node
	}
	return left
}

func (p *Parser) parseAnd() *Node {
	left := p.parseNot()
	for p.at(TokenAnd) {
		node := &Node{Kind: KindBinaryExpr}
		node.AddChild(left)
		node.AddChild(p.tokenNode(KindOperator))
		node.AddChild(p.parseNot())
		p.setSpan(node)
		left = node
	}
	return left
}

func (p *Parser) parseNot() *Node {
	if p.at(TokenNot) {
		node := &Node{Kind: KindUnaryExpr}
		node.AddChild(p.tokenNode(KindOperator))
		node.AddChild(p.parseNot())
		p.setSpan(node)
		return node
	}
	return p.parseComparison()
}

func isComparisonOp(kind TokenKind) bool {
	switch kind {
	case TokenEq, TokenNotEq, TokenLess, TokenLessEq, TokenGreater, TokenGreaterEq:
		return true
	}
	return false
}

func (p *Parser) parseComparison() *Node {
	left := p.parseAdditive()
	for isComparisonOp(p.peek().Kind) {
		node := &Node{Kind: KindBinaryExpr}
		node.AddChild(left)
		node.AddChild(p.tokenNode(KindOperator))
		node.AddChild(p.parseAdditive())
		p.setSpan(node)
		left = node
	}
	return left
}

func (p *Parser) parseAdditive() *Node {
	left := p.parseMultiplicative()
	for p.at(TokenPlus) || p.at(TokenMinus) {
		node := &Node{Kind: KindBinaryExpr}
		node.AddChild(left)
		node.AddChild(p.tokenNode(KindOperator))
		node.AddChild(p.parseMultiplicative())
		p.setSpan(node)
		left = node
	}
	return left
}

func (p *Parser) parseMultiplicative() *Node {
	left := p.parseUnary()
	for p.at(TokenStar) || p.at(TokenSlash) {
		node := &Node{Kind: KindBinaryExpr}
		node.AddChild(left)
		node.AddChild(p.tokenNode(KindOperator))
		node.AddChild(p.parseUnary())
		p.setSpan(node)
		left = node
	}
	return left
}

func (p *Parser) parseUnary() *Node {
	if p.at(TokenMinus) {
		node := &Node{Kind: KindUnaryExpr}
		node.AddChild(p.tokenNode(KindOperator))
		node.AddChild(p.parseUnary())
		p.setSpan(node)
		return node
	}
	return p.parsePrimary()
}

var expressionStarters = []TokenKind{TokenIdent, TokenString, TokenNumber, TokenTrue, TokenFalse, TokenNot, TokenMinus, TokenLParen}

func startsExpression(kind TokenKind) bool {
	for _, k := range expressionStarters {
		if k == kind {
			return true
		}
	}
	return false
}

func (p *Parser) parsePrimary() *Node {
	switch p.peek().Kind {
	case TokenString:
		return p.tokenNode(KindStringLiteral)
	case TokenNumber, TokenTrue, TokenFalse:
		return p.tokenNode(KindLiteral)
	case TokenIdent:
		return p.parseCallOrProperty()
	case TokenLParen:
		return p.parseParenExpr()
	default:
		return p.errorNode("expected expression", expressionStarters, false)
	}
}

func (p *Parser) parseParenExpr() *Node {
	node := &Node{Kind: KindParenExpr}
	open := p.advance()
	node.AddChild(p.parseExpression())
	end := node.Children[len(node.Children)-1].Span.End
	if p.at(TokenRParen) {
		closing := p.advance()
		end = closing.Span.End
	} else {
		node.AddChild(p.errorNode("expected ')'", []TokenKind{TokenRParen}, false))
		end = node.Children[len(node.Children)-1].Span.End
	}
	node.Span = Span{Start: open.Span.Start, End: end}
	return node
}

func (p *Parser) parseCallOrProperty() *Node {
	ident := p.tokenNode(KindIdentifier)

	if p.at(TokenLParen) {
		node := &Node{Kind: KindCallExpr}
		node.AddChild(ident)
		p.advance() // (
		if !p.at(TokenRParen) && !p.atEOF() {
			node.AddChild(p.parseExpression())
			for p.at(TokenComma) {
				p.advance()
				node.AddChild(p.parseExpression())
			}
		}
		end := node.Children[len(node.Children)-1].Span.End
		if p.at(TokenRParen) {
			closing := p.advance()
			end = closing.Span.End
		} else {
			node.AddChild(p.errorNode("expected ')'", []TokenKind{TokenRParen}, false))
			end = node.Children[len(node.Children)-1].Span.End
		}
		node.Span = Span{Start: ident.Span.Start, End: end}
		return node
	}

	node := &Node{Kind: KindPropertyAccess}
	node.AddChild(ident)
	for p.at(TokenDot) {
		p.advance()
		if p.at(TokenIdent) {
			node.AddChild(p.tokenNode(KindIdentifier))
		} else {
			node.AddChild(p.errorNode("expected property name", []TokenKind{TokenIdent}, false))
			break
		}
	}
	p.setSpan(node)
	return node
}
