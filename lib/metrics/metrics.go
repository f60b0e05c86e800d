package metrics

import (
	"github.com/pescuma/churn/lib/history"
	"github.com/pescuma/churn/lib/model"
	"github.com/pescuma/churn/lib/vcs"
)

// Aggregator folds the modifications of a traversal into a result.
// Accumulate is called once per modification, newest commit first.
type Aggregator[R any] interface {
	Accumulate(commit *model.Commit, mod *model.Modification) error
	Finalize() R
}

type Options struct {
	History history.Options

	// OnStart receives the number of commits in the traversal window.
	OnStart func(total int)
	// OnCommit is called after all modifications of a commit were accumulated.
	OnCommit func(commit *model.Commit)
}

// Compute traverses the repository and folds every modification into agg.
// The traversal is always newest first, independent of opts.History.Order.
func Compute[R any](repo vcs.Repository, agg Aggregator[R], opts *Options) (R, error) {
	var empty R

	if opts == nil {
		opts = &Options{}
	}

	hopts := opts.History
	hopts.Order = history.NewestFirst

	stream, err := history.Traverse(repo, &hopts)
	if err != nil {
		return empty, err
	}

	if opts.OnStart != nil {
		opts.OnStart(stream.Len())
	}

	err = stream.ForEach(func(commit *model.Commit) error {
		mods, err := commit.Modifications()
		if err != nil {
			return err
		}

		for _, mod := range mods {
			err = agg.Accumulate(commit, mod)
			if err != nil {
				return err
			}
		}

		if opts.OnCommit != nil {
			opts.OnCommit(commit)
		}

		return nil
	})
	if err != nil {
		return empty, err
	}

	return agg.Finalize(), nil
}
