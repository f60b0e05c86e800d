package metrics

import (
	"github.com/pescuma/churn/lib/model"
	"github.com/pescuma/churn/lib/renames"
)

type Lines struct {
	Added   int
	Removed int
}

func (l Lines) Total() int {
	return l.Added + l.Removed
}

// LinesCount sums the added and removed lines of each file.
type LinesCount struct {
	paths *renames.ForwardCanonicalizer
	lines map[string]*Lines
}

func NewLinesCount() *LinesCount {
	return &LinesCount{
		paths: renames.NewForwardCanonicalizer(),
		lines: map[string]*Lines{},
	}
}

func (a *LinesCount) Accumulate(_ *model.Commit, mod *model.Modification) error {
	path := a.paths.Observe(mod)

	added, err := mod.Added()
	if err != nil {
		return err
	}

	removed, err := mod.Removed()
	if err != nil {
		return err
	}

	l, ok := a.lines[path]
	if !ok {
		l = &Lines{}
		a.lines[path] = l
	}

	l.Added += added
	l.Removed += removed

	return nil
}

func (a *LinesCount) Finalize() map[string]Lines {
	result := make(map[string]Lines, len(a.lines))
	for path, l := range a.lines {
		if l.Total() > 0 {
			result[path] = *l
		}
	}
	return result
}
