package scanner

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	afterContextWindow    = 50
	extendedContextWindow = 300
)

var functionCall = regexp.MustCompile(`\b(\w+)\s*\(`)

// isClassContext decides whether a literal is likely to hold class names.
func (s *Scanner) isClassContext(text string, span Span) bool {
	if span.Kind == SpanTemplate {
		return true
	}

	content := span.Content
	if i := strings.IndexByte(content, ':'); i > 0 && i < len(content)-1 {
		return true
	}
	if strings.IndexByte(content, '-') >= 0 {
		return true
	}

	before := text[max(0, span.Start-contextWindow):span.Start]
	lower := asciiLower(before)
	for _, id := range s.identifiers {
		if strings.Contains(lower, id+"=") || strings.Contains(lower, id+":") {
			return true
		}
	}

	if s.callsClassFunction(before) {
		return true
	}

	// The window ends with the opening quote; look at what precedes it.
	trimmed := strings.TrimRightFunc(strings.TrimSuffix(before, string(span.Quote)), unicode.IsSpace)
	if trimmed != "" && strings.IndexByte("[{,:", trimmed[len(trimmed)-1]) >= 0 {
		extended := text[max(0, span.Start-extendedContextWindow):span.Start]
		if s.callsClassFunction(extended) {
			return true
		}
		for _, pattern := range s.contextPatterns {
			if strings.Contains(extended, pattern) {
				return true
			}
		}
	}

	// Quoted attribute values in markup that slipped past the checks above.
	after := text[span.End:min(len(text), span.End+afterContextWindow)]
	combined := before + content + after
	return strings.Contains(combined, "class=") && strings.ContainsAny(combined, `"'`)
}

func (s *Scanner) callsClassFunction(window string) bool {
	for _, m := range functionCall.FindAllStringSubmatch(window, -1) {
		if _, ok := s.functions[m[1]]; ok {
			return true
		}
	}
	return false
}
