package lexer

import (
	"strconv"

	"mica/internal/diag"
	"mica/internal/token"
)

// Decimal integer literals only; the value must fit int32. Out-of-range
// literals are reported and yield an Invalid token.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		lx.report(diag.LexBadNumber, sp, "integer literal out of range: "+text)
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Number, Span: sp, Text: text, Value: int32(v)}
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if kw, ok := token.Keyword(text); ok {
		return token.Token{Kind: kw, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	text := string(b)

	var kind token.Kind
	switch b {
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '%':
		kind = token.Percent
	case ';':
		kind = token.Semicolon
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	default:
		lx.report(diag.LexUnknownChar, sp, "unknown character "+strconv.Quote(text))
		kind = token.Invalid
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}
