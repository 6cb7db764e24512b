package scanner

import "github.com/alexisbeaulieu97/rainbow/internal/theme"

// TokenKind tells which part of a class chain a ClassToken highlights.
type TokenKind uint8

const (
	TokenPrefix TokenKind = iota + 1
	TokenClass
	TokenImportant
)

func (k TokenKind) String() string {
	switch k {
	case TokenPrefix:
		return "prefix"
	case TokenClass:
		return "class"
	case TokenImportant:
		return "important"
	default:
		return "unknown"
	}
}

// ClassToken is one styled piece of a class part, addressed by byte offsets
// into the scanned document.
type ClassToken struct {
	Kind TokenKind
	// Raw is the class chain the token was cut from, without a leading "!".
	Raw      string
	Start    int
	End      int
	MatchKey string
	Config   theme.StyleConfig
}
