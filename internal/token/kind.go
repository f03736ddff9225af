package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Number represents an integer literal token.
	Number
	// Ident represents an identifier token.
	Ident

	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
)

var kindNames = [...]string{
	Invalid:   "invalid",
	EOF:       "eof",
	Number:    "number",
	Ident:     "identifier",
	KwIf:      "'if'",
	KwElse:    "'else'",
	KwWhile:   "'while'",
	Plus:      "'+'",
	Minus:     "'-'",
	Star:      "'*'",
	Slash:     "'/'",
	Percent:   "'%'",
	Semicolon: "';'",
	LParen:    "'('",
	RParen:    "')'",
	LBrace:    "'{'",
	RBrace:    "'}'",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Keyword returns the keyword kind for text, if any.
func Keyword(text string) (Kind, bool) {
	switch text {
	case "if":
		return KwIf, true
	case "else":
		return KwElse, true
	case "while":
		return KwWhile, true
	default:
		return Invalid, false
	}
}
