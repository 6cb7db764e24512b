// Package scanner finds utility-class chains in source text and maps the
// modifiers and classes a theme knows about to document ranges.
package scanner

import (
	"strings"

	"github.com/alexisbeaulieu97/rainbow/internal/theme"
)

const (
	DefaultMaxFileSize      = 1_000_000
	DefaultMaxContentLength = 5000
)

// Options tunes which literals are considered class lists.
type Options struct {
	ClassIdentifiers       []string `yaml:"classIdentifiers,omitempty" json:"classIdentifiers,omitempty"`
	ClassFunctions         []string `yaml:"classFunctions,omitempty" json:"classFunctions,omitempty"`
	ContextPatterns        []string `yaml:"contextPatterns,omitempty" json:"contextPatterns,omitempty"`
	IgnoredPrefixModifiers []string `yaml:"ignoredPrefixModifiers,omitempty" json:"ignoredPrefixModifiers,omitempty"`
	MaxFileSize            int      `yaml:"maxFileSize,omitempty" json:"maxFileSize,omitempty" validate:"gte=0"`
	MaxContentLength       int      `yaml:"maxContentLength,omitempty" json:"maxContentLength,omitempty" validate:"gte=0"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ClassIdentifiers: []string{
			"class", "className", "class:", "className:",
			"classlist", "classes", "css", "style",
		},
		ClassFunctions: []string{
			"cn", "clsx", "cva", "classNames", "classList", "classnames",
			"twMerge", "tw", "cls", "cc", "cx", "classname",
			"styled", "css", "theme", "variants",
		},
		ContextPatterns:        []string{"variants", "cva", "class", "css", "style"},
		IgnoredPrefixModifiers: []string{"group", "peer", "has"},
		MaxFileSize:            DefaultMaxFileSize,
		MaxContentLength:       DefaultMaxContentLength,
	}
}

// WithDefaults fills every unset field from DefaultOptions.
func (o Options) WithDefaults() Options {
	def := DefaultOptions()
	if o.ClassIdentifiers == nil {
		o.ClassIdentifiers = def.ClassIdentifiers
	}
	if o.ClassFunctions == nil {
		o.ClassFunctions = def.ClassFunctions
	}
	if o.ContextPatterns == nil {
		o.ContextPatterns = def.ContextPatterns
	}
	if o.IgnoredPrefixModifiers == nil {
		o.IgnoredPrefixModifiers = def.IgnoredPrefixModifiers
	}
	if o.MaxFileSize <= 0 {
		o.MaxFileSize = def.MaxFileSize
	}
	if o.MaxContentLength <= 0 {
		o.MaxContentLength = def.MaxContentLength
	}
	return o
}

var cssLanguages = map[string]struct{}{
	"css":     {},
	"scss":    {},
	"sass":    {},
	"less":    {},
	"stylus":  {},
	"postcss": {},
}

// IsCSSLanguage reports whether @apply directives are scanned for languageID.
func IsCSSLanguage(languageID string) bool {
	_, ok := cssLanguages[strings.ToLower(languageID)]
	return ok
}

// Scanner runs the scan pipeline with a fixed set of options. It holds no
// per-document state and is safe for concurrent use.
type Scanner struct {
	opts            Options
	identifiers     []string
	functions       map[string]struct{}
	contextPatterns []string
}

// New builds a Scanner. Unset options fall back to DefaultOptions.
func New(opts Options) *Scanner {
	opts = opts.WithDefaults()

	identifiers := make([]string, 0, len(opts.ClassIdentifiers))
	for _, id := range opts.ClassIdentifiers {
		if id = asciiLower(strings.TrimSpace(id)); id != "" {
			identifiers = append(identifiers, id)
		}
	}

	functions := make(map[string]struct{}, len(opts.ClassFunctions))
	for _, fn := range opts.ClassFunctions {
		functions[fn] = struct{}{}
	}

	patterns := make([]string, 0, len(opts.ContextPatterns))
	for _, p := range opts.ContextPatterns {
		if p != "" {
			patterns = append(patterns, p)
		}
	}

	return &Scanner{
		opts:            opts,
		identifiers:     identifiers,
		functions:       functions,
		contextPatterns: patterns,
	}
}

// Options returns the effective options, defaults included.
func (s *Scanner) Options() Options {
	return s.opts
}

// FindClassRanges scans text and groups every styled range by the theme key
// that matched it. Documents larger than MaxFileSize yield an empty map.
func (s *Scanner) FindClassRanges(text, languageID string, th theme.Theme) *RangeMap {
	if len(text) > s.opts.MaxFileSize {
		return NewRangeMap()
	}
	return Aggregate(text, s.Tokens(text, languageID, th))
}

// Tokens returns the class tokens of text in discovery order, before overlap
// filtering.
func (s *Scanner) Tokens(text, languageID string, th theme.Theme) []ClassToken {
	if len(text) > s.opts.MaxFileSize {
		return nil
	}

	p := &pass{
		scanner:  s,
		resolver: theme.NewResolver(th, s.opts.IgnoredPrefixModifiers),
	}

	if IsCSSLanguage(languageID) {
		p.processApply(text)
	}

	for _, span := range Tokenize(text) {
		if span.Kind == SpanComment || !s.isClassContext(text, span) {
			continue
		}
		if span.Kind == SpanTemplate {
			p.processTemplate(span.Content, span.Start)
			continue
		}
		p.processContent(span.Content, span.Start)
	}

	return p.tokens
}

// pass carries the state of one FindClassRanges call.
type pass struct {
	scanner  *Scanner
	resolver *theme.Resolver
	tokens   []ClassToken
}

func (p *pass) emit(kind TokenKind, raw string, start, end int, key string, cfg theme.StyleConfig) {
	p.tokens = append(p.tokens, ClassToken{
		Kind:     kind,
		Raw:      raw,
		Start:    start,
		End:      end,
		MatchKey: key,
		Config:   cfg,
	})
}

// asciiLower lower-cases ASCII letters only, keeping byte offsets stable.
func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
