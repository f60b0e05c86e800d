package filters

import (
	"regexp"
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

// ParseStringFilter creates a case insensitive matcher. Rules starting with re: are
// regular expressions, rules with * or ? are wildcards, anything else must be equal.
func ParseStringFilter(rule string) (func(string) bool, error) {
	rule = strings.TrimSpace(rule)

	switch {
	case rule == "":
		return func(s string) bool {
			return true
		}, nil

	case strings.HasPrefix(rule, "re:"):
		re, err := regexp.Compile("(?i)" + strings.TrimPrefix(rule, "re:"))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid regular expression: %v", rule)
		}

		return re.MatchString, nil

	case strings.ContainsAny(rule, "*?"):
		g, err := glob.Compile(strings.ToLower(rule))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid wildcard: %v", rule)
		}

		return func(s string) bool {
			return g.Match(strings.ToLower(s))
		}, nil

	default:
		return func(s string) bool {
			return strings.EqualFold(s, rule)
		}, nil
	}
}
