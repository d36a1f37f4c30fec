package classify

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"chatscribe/internal/record"
)

// Verdict is the classification outcome for a single record.
type Verdict string

const (
	// Substantive marks a human-authored message worth keeping.
	Substantive Verdict = "substantive"
	// Automated marks system-generated chatter (join/leave notices,
	// encryption banners, missed-call rows, and similar fixed phrasings).
	Automated Verdict = "automated"
)

// Kind selects the matching strategy for a rule.
type Kind string

const (
	KindContains Kind = "contains"
	KindPrefix   Kind = "prefix"
	KindRegex    Kind = "regex"
)

// Rule is one entry in the classification policy table. Patterns for
// contains and prefix rules are matched case-insensitively against the
// folded record text; regex patterns are compiled as written and applied to
// the same folded text, so they should be lowercase.
type Rule struct {
	Kind    Kind
	Pattern string
}

type compiledRule struct {
	rule Rule
	// folded pattern for contains/prefix, compiled expression for regex
	pattern string
	re      *regexp.Regexp
}

// Classifier applies an ordered rule table to records.
type Classifier struct {
	rules []compiledRule
}

// sanitizer strips the invisible direction marks WhatsApp embeds in system
// rows and maps typographic punctuation onto the ASCII forms the rule table
// is written in.
var sanitizer = strings.NewReplacer(
	"‎", "", // left-to-right mark
	"‏", "", // right-to-left mark
	"​", "", // zero-width space
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
)

var folder = cases.Fold()

// Fold normalizes text for rule matching: punctuation sanitized, NFKC
// normalized, then case folded.
func Fold(text string) string {
	return folder.String(norm.NFKC.String(sanitizer.Replace(text)))
}

// New compiles a rule table into a Classifier. Rules are evaluated in the
// order given; the first match wins.
func New(rules []Rule) (*Classifier, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		pattern := strings.TrimSpace(rule.Pattern)
		if pattern == "" {
			continue
		}
		entry := compiledRule{rule: rule}
		switch rule.Kind {
		case KindContains, KindPrefix:
			entry.pattern = Fold(pattern)
		case KindRegex:
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("compile rule %q: %w", rule.Pattern, err)
			}
			entry.re = re
		default:
			return nil, fmt.Errorf("unknown rule kind %q", rule.Kind)
		}
		compiled = append(compiled, entry)
	}
	return &Classifier{rules: compiled}, nil
}

// Default returns a classifier loaded with the stock rule table.
func Default() *Classifier {
	c, err := New(DefaultRules())
	if err != nil {
		// The stock table is covered by tests; a compile failure here is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return c
}

// Classify labels a record. Only the record text participates in the
// decision; an empty text is Substantive unless a rule explicitly matches
// the empty string.
func (c *Classifier) Classify(rec record.Record) Verdict {
	if _, ok := c.Match(rec.Text); ok {
		return Automated
	}
	return Substantive
}

// Match returns the first rule matching the given text, if any.
func (c *Classifier) Match(text string) (Rule, bool) {
	folded := Fold(text)
	for _, entry := range c.rules {
		switch entry.rule.Kind {
		case KindContains:
			if strings.Contains(folded, entry.pattern) {
				return entry.rule, true
			}
		case KindPrefix:
			if strings.HasPrefix(folded, entry.pattern) {
				return entry.rule, true
			}
		case KindRegex:
			if entry.re.MatchString(folded) {
				return entry.rule, true
			}
		}
	}
	return Rule{}, false
}

// Len reports the number of active rules.
func (c *Classifier) Len() int {
	return len(c.rules)
}
