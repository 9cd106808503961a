package segment

import (
	"regexp"
	"strings"
)

// Classifier decides whether a line of text is a section heading.
type Classifier interface {
	IsHeading(line string) bool
}

// Rule is one heading pattern. Patterns are data, not code, so individual
// rules can be substituted or tested in isolation.
type Rule struct {
	Name           string
	Pattern        *regexp.Regexp
	RejectTrailDot bool // Reject lines ending in a period (prose, not a title).
}

// RuleClassifier classifies headings against an ordered rule table.
// A line longer than MaxLen or consisting only of digits never matches.
type RuleClassifier struct {
	MaxLen int
	Rules  []Rule
}

// NewRuleClassifier returns a classifier with the default rule table.
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{
		MaxLen: 100,
		Rules:  DefaultRules(),
	}
}

// DefaultRules is the built-in heading rule table.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:           "capitalized",
			Pattern:        regexp.MustCompile(`^[A-Z][a-z]+`),
			RejectTrailDot: true,
		},
		{
			Name:    "numbered",
			Pattern: regexp.MustCompile(`^\d+\.?\s+[A-Z]`),
		},
		{
			Name:    "roman",
			Pattern: regexp.MustCompile(`^[IVX]+\.?\s+`),
		},
		{
			Name:    "chapter",
			Pattern: regexp.MustCompile(`^Chapter\s+\d+`),
		},
		{
			Name:    "section",
			Pattern: regexp.MustCompile(`^Section\s+\d+`),
		},
		{
			Name:    "category",
			Pattern: regexp.MustCompile(`(?i)^(activities|attractions|restaurants|dining|cuisine|hotels|accommodation|tips|tricks|culture|traditions|history|cities|nightlife|shopping|transportation)\b`),
		},
	}
}

func (c *RuleClassifier) IsHeading(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || len(line) > c.MaxLen || isDigitsOnly(line) {
		return false
	}
	for _, r := range c.Rules {
		if !r.Pattern.MatchString(line) {
			continue
		}
		if r.RejectTrailDot && strings.HasSuffix(line, ".") {
			continue
		}
		return true
	}
	return false
}

func isDigitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
