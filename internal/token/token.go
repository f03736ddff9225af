package token

import (
	"mica/internal/source"
)

// Token represents a single source token with its location. Number tokens
// carry their literal value out-of-band in Value.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Value int32
}

// IsLiteral reports whether the token is a numeric literal.
func (t Token) IsLiteral() bool { return t.Kind == Number }

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwIf, KwElse, KwWhile:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is punctuation or an operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, Percent, Semicolon, LParen, RParen, LBrace, RBrace:
		return true
	default:
		return false
	}
}
