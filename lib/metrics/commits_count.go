package metrics

import (
	"github.com/pescuma/churn/lib/model"
	"github.com/pescuma/churn/lib/renames"
)

// CommitsCount counts the commits that touched each file.
type CommitsCount struct {
	paths  *renames.ForwardCanonicalizer
	counts map[string]int
	seen   map[string]string
}

func NewCommitsCount() *CommitsCount {
	return &CommitsCount{
		paths:  renames.NewForwardCanonicalizer(),
		counts: map[string]int{},
		seen:   map[string]string{},
	}
}

func (a *CommitsCount) Accumulate(commit *model.Commit, mod *model.Modification) error {
	path := a.paths.Observe(mod)

	// A commit can touch the same canonical file twice, for example deleting
	// and re-adding it under an older name
	if a.seen[path] == commit.Hash {
		return nil
	}
	a.seen[path] = commit.Hash

	a.counts[path]++

	return nil
}

func (a *CommitsCount) Finalize() map[string]int {
	result := make(map[string]int, len(a.counts))
	for path, count := range a.counts {
		if count > 0 {
			result[path] = count
		}
	}
	return result
}
