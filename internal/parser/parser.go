// Package parser implements the recursive-descent grammar engine. It pulls
// exactly one token of lookahead from the lexer, never backtracks, and fails
// immediately on the first grammar violation: no recovery, no partial AST.
package parser

import (
	"fmt"

	"mica/internal/ast"
	"mica/internal/diag"
	"mica/internal/lexer"
	"mica/internal/token"
)

type Options struct {
	Reporter diag.Reporter
}

// Parser holds the per-file parse state.
type Parser struct {
	lx   *lexer.Lexer
	opts Options
}

// ParseFile parses one program: a statement sequence followed by EOF.
func ParseFile(lx *lexer.Lexer, opts Options) (ast.Node, error) {
	p := &Parser{lx: lx, opts: opts}

	root, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	if !p.at(token.EOF) {
		return nil, p.errUnexpected(diag.SynExpectEOF, "expected end of input")
	}
	return root, nil
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) advance() token.Token {
	return p.lx.Next()
}

// expect consumes a token of kind k or fails the parse.
func (p *Parser) expect(k token.Kind, code diag.Code) (token.Token, error) {
	if p.at(k) {
		return p.advance(), nil
	}
	return token.Token{}, p.errUnexpected(code, "expected "+k.String())
}

// errUnexpected reports a diagnostic at the lookahead token and returns the
// fatal parse error.
func (p *Parser) errUnexpected(code diag.Code, msg string) error {
	tok := p.lx.Peek()
	full := msg + ", got " + tok.Kind.String()
	if tok.Text != "" && !tok.IsKeyword() && !tok.IsPunctOrOp() {
		full += " " + fmt.Sprintf("%q", tok.Text)
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, tok.Span, full, nil)
	}
	return fmt.Errorf("syntax error: %s", full)
}
