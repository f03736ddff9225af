package parser

import (
	"mica/internal/ast"
	"mica/internal/diag"
	"mica/internal/token"
)

// Statements := Statement (';' Statement)*
func (p *Parser) parseStatements() (ast.Node, error) {
	first := p.lx.Peek().Span

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	list := &ast.StmtList{Stmts: []ast.Node{stmt}, S: first.Cover(stmt.Span())}

	for p.at(token.Semicolon) {
		p.advance()
		next, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		list.Stmts = append(list.Stmts, next)
		list.S = list.S.Cover(next.Span())
	}
	return list, nil
}

// Statement := IfStmt | WhileStmt | AddSub
func (p *Parser) parseStatement() (ast.Node, error) {
	switch p.lx.Peek().Kind {
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	default:
		return p.parseAddSub()
	}
}

// AddSub := MulDivRem (('+' | '-') MulDivRem)*
func (p *Parser) parseAddSub() (ast.Node, error) {
	acc, err := p.parseMulDivRem()
	if err != nil {
		return nil, err
	}
	for p.at(token.Plus) || p.at(token.Minus) {
		op := ast.OpAdd
		if p.advance().Kind == token.Minus {
			op = ast.OpSub
		}
		rhs, err := p.parseMulDivRem()
		if err != nil {
			return nil, err
		}
		acc = &ast.Binary{Op: op, LHS: acc, RHS: rhs, S: acc.Span().Cover(rhs.Span())}
	}
	return acc, nil
}

// MulDivRem := Term (('*' | '/' | '%') Term)*
func (p *Parser) parseMulDivRem() (ast.Node, error) {
	acc, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.at(token.Star) || p.at(token.Slash) || p.at(token.Percent) {
		var op ast.Op
		switch p.advance().Kind {
		case token.Star:
			op = ast.OpMul
		case token.Slash:
			op = ast.OpDiv
		default:
			op = ast.OpRem
		}
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		acc = &ast.Binary{Op: op, LHS: acc, RHS: rhs, S: acc.Span().Cover(rhs.Span())}
	}
	return acc, nil
}

// Term := NUMBER | '(' AddSub ')'
func (p *Parser) parseTerm() (ast.Node, error) {
	switch p.lx.Peek().Kind {
	case token.Number:
		tok := p.advance()
		return &ast.Number{Value: tok.Value, S: tok.Span}, nil
	case token.LParen:
		p.advance()
		inner, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen, diag.SynExpectRParen); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, p.errUnexpected(diag.SynUnexpectedToken, "expected a number or '('")
	}
}

// Branch := IfStmt | AddSub
//
// An if arm holds one expression or a nested conditional, never a
// statement sequence; the while body below does parse a full sequence.
// The asymmetry is part of the grammar.
func (p *Parser) parseBranch() (ast.Node, error) {
	if p.at(token.KwIf) {
		return p.parseIf()
	}
	return p.parseAddSub()
}

// IfStmt := 'if' '(' AddSub ')' '{' Branch '}' ('else' '{' Branch '}')?
func (p *Parser) parseIf() (ast.Node, error) {
	kw, err := p.expect(token.KwIf, diag.SynUnexpectedToken)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LParen, diag.SynExpectLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen, diag.SynExpectRParen); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBrace, diag.SynExpectLBrace); err != nil {
		return nil, err
	}
	then, err := p.parseBranch()
	if err != nil {
		return nil, err
	}
	closing, err := p.expect(token.RBrace, diag.SynExpectRBrace)
	if err != nil {
		return nil, err
	}
	sp := kw.Span.Cover(closing.Span)

	var els ast.Node
	if p.at(token.KwElse) {
		p.advance()
		if _, err := p.expect(token.LBrace, diag.SynExpectLBrace); err != nil {
			return nil, err
		}
		els, err = p.parseBranch()
		if err != nil {
			return nil, err
		}
		closing, err = p.expect(token.RBrace, diag.SynExpectRBrace)
		if err != nil {
			return nil, err
		}
		sp = sp.Cover(closing.Span)
	}

	return ast.NewIf(cond, then, els, sp), nil
}

// WhileStmt := 'while' '(' AddSub ')' '{' Statements '}'
func (p *Parser) parseWhile() (ast.Node, error) {
	kw, err := p.expect(token.KwWhile, diag.SynUnexpectedToken)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LParen, diag.SynExpectLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen, diag.SynExpectRParen); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBrace, diag.SynExpectLBrace); err != nil {
		return nil, err
	}
	body, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	closing, err := p.expect(token.RBrace, diag.SynExpectRBrace)
	if err != nil {
		return nil, err
	}

	return &ast.While{Cond: cond, Body: body, S: kw.Span.Cover(closing.Span)}, nil
}
