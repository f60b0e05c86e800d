package metrics

import (
	"github.com/pescuma/churn/lib/model"
	"github.com/pescuma/churn/lib/renames"
	"github.com/pescuma/churn/lib/utils"
)

// Churn summarizes the net growth (added minus removed lines) of a file per change.
type Churn struct {
	Sum     int
	Max     int
	Avg     float64
	Changes int

	// Modified lines, only filled when ChurnCount.CountModifiedLines is set
	Modified int
}

// ChurnCount computes the code churn of each file.
type ChurnCount struct {
	// CountModifiedLines compares the contents before and after each change.
	// It runs a line diff on every change, so it is much slower.
	CountModifiedLines bool

	paths  *renames.ForwardCanonicalizer
	churns map[string]*churnState
}

type churnState struct {
	Churn
	activity int
}

func NewChurnCount() *ChurnCount {
	return &ChurnCount{
		paths:  renames.NewForwardCanonicalizer(),
		churns: map[string]*churnState{},
	}
}

func (a *ChurnCount) Accumulate(_ *model.Commit, mod *model.Modification) error {
	path := a.paths.Observe(mod)

	added, err := mod.Added()
	if err != nil {
		return err
	}

	removed, err := mod.Removed()
	if err != nil {
		return err
	}

	s, ok := a.churns[path]
	if !ok {
		s = &churnState{}
		s.Max = added - removed
		a.churns[path] = s
	}

	delta := added - removed
	s.Sum += delta
	s.Max = utils.Max(s.Max, delta)
	s.Changes++
	s.activity += added + removed

	if a.CountModifiedLines {
		counts, err := mod.Churn()
		if err != nil {
			return err
		}

		s.Modified += counts.Modified
	}

	return nil
}

func (a *ChurnCount) Finalize() map[string]Churn {
	result := make(map[string]Churn, len(a.churns))
	for path, s := range a.churns {
		if s.activity == 0 {
			continue
		}

		c := s.Churn
		c.Avg = float64(c.Sum) / float64(c.Changes)
		result[path] = c
	}
	return result
}
