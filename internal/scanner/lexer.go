package scanner

import (
	"strings"
	"unicode"
)

// SpanKind classifies a region of a document found by Tokenize.
type SpanKind uint8

const (
	SpanString SpanKind = iota + 1
	SpanTemplate
	SpanComment
)

func (k SpanKind) String() string {
	switch k {
	case SpanString:
		return "string"
	case SpanTemplate:
		return "template"
	case SpanComment:
		return "comment"
	default:
		return "other"
	}
}

// Span is a string literal, template literal or comment found in a document.
// For literals Start and End delimit the content between the quotes.
type Span struct {
	Kind    SpanKind
	Content string
	Start   int
	End     int
	Quote   byte
	// Closed is false when the literal or block comment ran to the end of the document.
	Closed bool
}

const contextWindow = 100

// Tokenize splits text into comment, string and template spans in a single
// left-to-right pass. Text outside those spans is not reported.
//
// Double and single quoted literals are only taken as strings when the text
// before the quote looks like an assignment or call argument; otherwise the
// quote is treated as prose (an apostrophe) and skipped.
func Tokenize(text string) []Span {
	var spans []Span
	n := len(text)

	for i := 0; i < n; {
		c := text[i]

		switch {
		case c == '/' && i+1 < n && text[i+1] == '/':
			end := lineEnd(text, i+2)
			spans = append(spans, Span{Kind: SpanComment, Content: text[i:end], Start: i, End: end, Closed: true})
			i = end
			continue
		case c == '/' && i+1 < n && text[i+1] == '*':
			end, closed := blockEnd(text, i+2, "*/")
			spans = append(spans, Span{Kind: SpanComment, Content: text[i:end], Start: i, End: end, Closed: closed})
			i = end
			continue
		case c == '#':
			end := lineEnd(text, i+1)
			spans = append(spans, Span{Kind: SpanComment, Content: text[i:end], Start: i, End: end, Closed: true})
			i = end
			continue
		case c == '<' && strings.HasPrefix(text[i:], "<!--"):
			end, closed := blockEnd(text, i+4, "-->")
			spans = append(spans, Span{Kind: SpanComment, Content: text[i:end], Start: i, End: end, Closed: closed})
			i = end
			continue
		case c == '{' && strings.HasPrefix(text[i:], "{/*"):
			end, closed := blockEnd(text, i+3, "*/}")
			spans = append(spans, Span{Kind: SpanComment, Content: text[i:end], Start: i, End: end, Closed: closed})
			i = end
			continue
		}

		if c == '`' || ((c == '"' || c == '\'') && hasLiteralContext(text, i)) {
			end, next, closed := scanQuoted(text, i)
			kind := SpanString
			if c == '`' {
				kind = SpanTemplate
			}
			spans = append(spans, Span{
				Kind:    kind,
				Content: text[i+1 : end],
				Start:   i + 1,
				End:     end,
				Quote:   c,
				Closed:  closed,
			})
			i = next
			continue
		}

		i++
	}

	return spans
}

// scanQuoted finds the closing quote matching text[open]. A backslash always
// consumes the following byte. end is the offset of the closing quote (or
// len(text) when unterminated) and next the offset just past it.
func scanQuoted(text string, open int) (end, next int, closed bool) {
	quote := text[open]
	for i := open + 1; i < len(text); {
		switch text[i] {
		case '\\':
			if i+1 < len(text) {
				i += 2
				continue
			}
			i++
		case quote:
			return i, i + 1, true
		default:
			i++
		}
	}
	return len(text), len(text), false
}

// hasLiteralContext reports whether the quote at pos follows =, ={, (, ,, [, { or :.
func hasLiteralContext(text string, pos int) bool {
	before := strings.TrimRightFunc(text[max(0, pos-contextWindow):pos], unicode.IsSpace)
	if before == "" {
		return false
	}
	switch before[len(before)-1] {
	case '=', '(', ',', '[', '{', ':':
		return true
	}
	return false
}

func lineEnd(text string, from int) int {
	if from > len(text) {
		return len(text)
	}
	if i := strings.IndexAny(text[from:], "\r\n"); i >= 0 {
		return from + i
	}
	return len(text)
}

func blockEnd(text string, from int, terminator string) (int, bool) {
	if from > len(text) {
		return len(text), false
	}
	if i := strings.Index(text[from:], terminator); i >= 0 {
		return from + i + len(terminator), true
	}
	return len(text), false
}
