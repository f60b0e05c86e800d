package filters

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-enry/go-enry/v2"
	"github.com/hashicorp/go-set/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// PathFilter decides if a file path (slash separated, relative to the repository root) should be considered.
type PathFilter func(path string) bool

type PathOptions struct {
	// Globs to include. A leading ! excludes.
	Patterns     []string
	FileTypes    []string
	SkipVendored bool
}

// ParsePathFilter returns nil if there is nothing to filter.
// The path must match one of the include globs (if any) and none of the excluded ones.
func ParsePathFilter(opts PathOptions) (PathFilter, error) {
	var includes []PathFilter
	var all []PathFilter

	for _, rule := range opts.Patterns {
		rule = strings.TrimSpace(rule)

		exclude := strings.HasPrefix(rule, "!")
		if exclude {
			rule = rule[1:]
		}

		f, err := parseGlob(rule)
		if err != nil {
			return nil, err
		}

		if exclude {
			all = append(all, func(p string) bool { return !f(p) })
		} else {
			includes = append(includes, f)
		}
	}

	if len(includes) > 0 {
		all = append(all, func(p string) bool {
			return lo.SomeBy(includes, func(f PathFilter) bool { return f(p) })
		})
	}

	if len(opts.FileTypes) > 0 {
		exts := set.New[string](len(opts.FileTypes))
		for _, e := range opts.FileTypes {
			e = strings.ToLower(strings.TrimSpace(e))
			if e == "" {
				continue
			}
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			exts.Insert(e)
		}

		all = append(all, func(p string) bool {
			return exts.Contains(strings.ToLower(path.Ext(p)))
		})
	}

	if opts.SkipVendored {
		all = append(all, func(p string) bool {
			return !enry.IsVendor(p)
		})
	}

	if len(all) == 0 {
		return nil, nil
	}

	return func(p string) bool {
		return lo.EveryBy(all, func(f PathFilter) bool { return f(p) })
	}, nil
}

func parseGlob(rule string) (PathFilter, error) {
	if rule == "" {
		return nil, errors.New("empty file glob")
	}

	if !doublestar.ValidatePattern(rule) {
		return nil, errors.Errorf("invalid file glob: %v", rule)
	}

	return func(p string) bool {
		m, err := doublestar.Match(rule, p)
		return err == nil && m
	}, nil
}
