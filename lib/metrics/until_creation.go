package metrics

import (
	"github.com/hashicorp/go-set/v2"
	"github.com/pkg/errors"

	"github.com/pescuma/churn/lib/history"
	"github.com/pescuma/churn/lib/model"
	"github.com/pescuma/churn/lib/renames"
	"github.com/pescuma/churn/lib/vcs"
)

type CountKind int

const (
	DistinctDevelopers CountKind = iota
	Commits
)

func (k CountKind) String() string {
	switch k {
	case DistinctDevelopers:
		return "distinct developers"
	case Commits:
		return "commits"
	default:
		return "unknown"
	}
}

type countState int

const (
	notStarted countState = iota
	counting
	done
)

// CountUntilCreation walks back from the head, starting at boundary (or at the
// head when it is empty), and counts the commits or distinct authors of the
// file until the commit that added it. Renames are followed to the older names.
func CountUntilCreation(repo vcs.Repository, filePath string, boundary string, kind CountKind) (int, error) {
	var start string
	if boundary != "" {
		commit, err := repo.ResolveCommit(boundary)
		if err != nil {
			return 0, err
		}

		start = commit.Hash
	}

	stream, err := history.Traverse(repo, &history.Options{})
	if err != nil {
		return 0, err
	}

	c := newCreationCounter(filePath, start, kind)

	err = stream.ForEach(func(commit *model.Commit) error {
		return c.visit(commit)
	})
	if err != nil {
		return 0, err
	}

	if c.state == notStarted {
		return 0, errors.Wrapf(vcs.ErrCommitNotFound, "%v is not reachable from the head", boundary)
	}

	return c.result(), nil
}

type creationCounter struct {
	kind    CountKind
	start   string
	tracker *renames.BackwardTracker
	state   countState

	commits    int
	developers *set.Set[string]
}

func newCreationCounter(filePath string, start string, kind CountKind) *creationCounter {
	c := &creationCounter{
		kind:       kind,
		start:      start,
		tracker:    renames.NewBackwardTracker(filePath),
		state:      notStarted,
		developers: set.New[string](10),
	}

	if start == "" {
		c.state = counting
	}

	return c
}

func (c *creationCounter) visit(commit *model.Commit) error {
	if c.state == notStarted && commit.Hash == c.start {
		c.state = counting
	}

	if c.state != counting {
		if c.state == done {
			return history.ErrStop
		}
		return nil
	}

	mods, err := commit.Modifications()
	if err != nil {
		return err
	}

	for _, mod := range mods {
		if !c.tracker.Matches(mod) {
			continue
		}

		c.commits++
		c.developers.Insert(commit.Author.Key())

		c.tracker.Follow(mod)

		if mod.ChangeType == model.ChangeAdd {
			c.state = done
			return history.ErrStop
		}

		break
	}

	return nil
}

func (c *creationCounter) result() int {
	switch c.kind {
	case Commits:
		return c.commits
	default:
		return c.developers.Size()
	}
}
