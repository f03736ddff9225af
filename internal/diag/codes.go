package diag

import "fmt"

// Code identifies a diagnostic kind. Ranges: 1xxx lexical, 2xxx syntax,
// 3xxx semantic.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar Code = 1001
	LexBadNumber   Code = 1002

	// Syntax
	SynUnexpectedToken Code = 2001
	SynExpectLParen    Code = 2002
	SynExpectRParen    Code = 2003
	SynExpectLBrace    Code = 2004
	SynExpectRBrace    Code = 2005
	SynExpectEOF       Code = 2006

	// Semantic
	SemaUnresolvedGlobal Code = 3001
	SemaDuplicateGlobal  Code = 3002
)

func (c Code) String() string {
	switch c {
	case LexUnknownChar:
		return "LexUnknownChar"
	case LexBadNumber:
		return "LexBadNumber"
	case SynUnexpectedToken:
		return "SynUnexpectedToken"
	case SynExpectLParen:
		return "SynExpectLParen"
	case SynExpectRParen:
		return "SynExpectRParen"
	case SynExpectLBrace:
		return "SynExpectLBrace"
	case SynExpectRBrace:
		return "SynExpectRBrace"
	case SynExpectEOF:
		return "SynExpectEOF"
	case SemaUnresolvedGlobal:
		return "SemaUnresolvedGlobal"
	case SemaDuplicateGlobal:
		return "SemaDuplicateGlobal"
	default:
		return fmt.Sprintf("Code(%d)", uint16(c))
	}
}

// IsSyntax reports whether the code belongs to the syntax range.
func (c Code) IsSyntax() bool { return c >= 2000 && c < 3000 }

// IsSemantic reports whether the code belongs to the semantic range.
func (c Code) IsSemantic() bool { return c >= 3000 && c < 4000 }
