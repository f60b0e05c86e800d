package filters

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/pescuma/churn/lib/model"
)

type CommitFilter func(*model.Commit) bool

// ParseCommitFilters returns nil if there is nothing to filter. A commit must match all the rules.
func ParseCommitFilters(rules []string) (CommitFilter, error) {
	var fs []CommitFilter

	for _, rule := range rules {
		if strings.TrimSpace(rule) == "" {
			continue
		}

		f, err := ParseCommitFilter(rule)
		if err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}

	if len(fs) == 0 {
		return nil, nil
	}

	return func(c *model.Commit) bool {
		return lo.EveryBy(fs, func(f CommitFilter) bool { return f(c) })
	}, nil
}

// ParseCommitFilter parses rules like "author:*@example.com & !merge".
// Clauses can be combined with | or &, but not both in the same rule.
func ParseCommitFilter(rule string) (CommitFilter, error) {
	rule = strings.TrimSpace(rule)

	switch {
	case rule == "":
		return func(*model.Commit) bool {
			return true
		}, nil

	case strings.Contains(rule, "|"):
		clauses, err := parseClauses(strings.Split(rule, "|"))
		if err != nil {
			return nil, err
		}

		return func(c *model.Commit) bool {
			return lo.SomeBy(clauses, func(f CommitFilter) bool { return f(c) })
		}, nil

	case strings.Contains(rule, "&"):
		clauses, err := parseClauses(strings.Split(rule, "&"))
		if err != nil {
			return nil, err
		}

		return func(c *model.Commit) bool {
			return lo.EveryBy(clauses, func(f CommitFilter) bool { return f(c) })
		}, nil

	case strings.HasPrefix(rule, "!"):
		f, err := ParseCommitFilter(rule[1:])
		if err != nil {
			return nil, err
		}

		return func(c *model.Commit) bool {
			return !f(c)
		}, nil

	case rule == "merge":
		return func(c *model.Commit) bool {
			return c.Merge()
		}, nil

	case strings.HasPrefix(rule, "author:"):
		return developerFilter(rule[len("author:"):], func(c *model.Commit) model.Developer { return c.Author })

	case strings.HasPrefix(rule, "committer:"):
		return developerFilter(rule[len("committer:"):], func(c *model.Commit) model.Developer { return c.Committer })

	case strings.HasPrefix(rule, "msg:"):
		f, err := ParseStringFilter(rule[len("msg:"):])
		if err != nil {
			return nil, err
		}

		return func(c *model.Commit) bool {
			return f(strings.TrimSpace(c.Msg))
		}, nil

	default:
		hash := strings.ToLower(strings.TrimPrefix(rule, "hash:"))
		if hash == "" {
			return nil, errors.Errorf("invalid commit filter: %v", rule)
		}

		return func(c *model.Commit) bool {
			return strings.HasPrefix(c.Hash, hash)
		}, nil
	}
}

func developerFilter(rule string, get func(*model.Commit) model.Developer) (CommitFilter, error) {
	f, err := ParseStringFilter(rule)
	if err != nil {
		return nil, err
	}

	return func(c *model.Commit) bool {
		d := get(c)
		return f(strings.TrimSpace(d.Name)) || f(d.Key())
	}, nil
}

func parseClauses(split []string) ([]CommitFilter, error) {
	result := make([]CommitFilter, 0, len(split))

	for _, fi := range split {
		fi = strings.TrimSpace(fi)
		if fi == "" {
			return nil, errors.New("empty clause")
		}

		f, err := ParseCommitFilter(fi)
		if err != nil {
			return nil, err
		}

		result = append(result, f)
	}

	return result, nil
}
