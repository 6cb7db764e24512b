package scanner

import "strings"

// quickRejectLength is the size above which colon-free content without
// dashes or brackets is not worth splitting.
const quickRejectLength = 100

const applyDirective = "@apply"

// processContent splits a class list into words and decomposes each one.
// base is the document offset of content[0].
func (p *pass) processContent(content string, base int) {
	if len(content) > p.scanner.opts.MaxContentLength {
		return
	}
	if len(content) > quickRejectLength &&
		strings.IndexByte(content, ':') < 0 &&
		!strings.ContainsAny(content, "-[") {
		return
	}

	depth := 0
	wordStart := -1
	for i := 0; i <= len(content); i++ {
		atEnd := i == len(content)
		var c byte
		if !atEnd {
			c = content[i]
			switch c {
			case '[':
				depth++
			case ']':
				if depth > 0 {
					depth--
				}
			}
		}

		split := atEnd || (depth == 0 && isSpace(c))
		stop := !atEnd && depth == 0 && isMarkup(c) && (i == 0 || content[i-1] != '\\')
		if !split && !stop {
			if wordStart < 0 {
				wordStart = i
			}
			continue
		}

		if wordStart >= 0 {
			p.processWord(content[wordStart:i], base+wordStart)
			wordStart = -1
		}
		if stop {
			return
		}
	}
}

func (p *pass) processWord(word string, offset int) {
	if !isClassWord(word) {
		return
	}
	p.decompose(word, offset)
}

// processTemplate looks for quoted class attributes inside a template
// literal. Templates without any attribute and without markup are treated as
// a plain class list.
func (p *pass) processTemplate(content string, base int) {
	found := len(p.tokens)
	lower := asciiLower(content)

	for _, id := range p.scanner.identifiers {
		pattern := id + "="
		for from := 0; from < len(lower); {
			idx := strings.Index(lower[from:], pattern)
			if idx < 0 {
				break
			}
			idx += from
			from = idx + 1

			q := idx + len(pattern)
			for q < len(content) && isSpace(content[q]) {
				q++
			}
			if q >= len(content) || (content[q] != '"' && content[q] != '\'') {
				continue
			}
			end, _, _ := scanQuoted(content, q)
			p.processContent(content[q+1:end], base+q+1)
		}
	}

	if len(p.tokens) == found && strings.IndexByte(content, '<') < 0 {
		p.processContent(content, base)
	}
}

// processApply feeds the body of every @apply directive to processContent.
func (p *pass) processApply(text string) {
	for from := 0; from < len(text); {
		idx := strings.Index(text[from:], applyDirective)
		if idx < 0 {
			return
		}
		start := from + idx + len(applyDirective)
		for start < len(text) && isSpace(text[start]) {
			start++
		}

		end := start
		for end < len(text) {
			if c := text[end]; c == ';' || c == '}' || c == '\n' || c == '\r' {
				break
			}
			end++
		}

		if body := strings.TrimRight(text[start:end], " \t"); body != "" {
			p.processContent(body, start)
		}
		from = end + 1
	}
}

// isClassWord accepts words built from class characters outside brackets.
// Anything goes between brackets, and a lone [...] value is always accepted.
func isClassWord(word string) bool {
	if word == "" {
		return false
	}
	if len(word) > 2 && word[0] == '[' && word[len(word)-1] == ']' {
		return true
	}

	depth := 0
	for i := 0; i < len(word); i++ {
		c := word[i]
		switch {
		case c == '[':
			depth++
		case c == ']':
			if depth > 0 {
				depth--
			}
		case depth > 0:
		case isAlnum(c) || strings.IndexByte("-_:/.#!%*", c) >= 0:
		default:
			return false
		}
	}
	return true
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func isMarkup(c byte) bool {
	return c == '<' || c == '>' || c == '{' || c == '}'
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
