package history

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/pescuma/churn/lib/consoles"
	"github.com/pescuma/churn/lib/filters"
	"github.com/pescuma/churn/lib/git"
	"github.com/pescuma/churn/lib/model"
	"github.com/pescuma/churn/lib/vcs"
)

// ErrStop can be returned from a ForEach callback to stop the traversal without an error.
var ErrStop = errors.New("stop iteration")

// Stream is a lazy, single pass sequence of commits.
type Stream struct {
	repo    vcs.Repository
	console consoles.Console
	filter  filters.PathFilter
	accept  filters.CommitFilter
	commits []*vcs.CommitHandle
	next    int
}

// TraversePath opens the repository at path and traverses it.
func TraversePath(path string, opts *Options) (*Stream, error) {
	repo, err := git.Open(path)
	if err != nil {
		return nil, err
	}

	return Traverse(repo, opts)
}

func Traverse(repo vcs.Repository, opts *Options) (*Stream, error) {
	if opts == nil {
		opts = &Options{}
	}

	filter, err := filters.ParsePathFilter(opts.Paths)
	if err != nil {
		return nil, err
	}

	accept, err := filters.ParseCommitFilters(opts.Commits)
	if err != nil {
		return nil, err
	}

	from, err := resolveBoundary(repo, opts.From, opts.FromTag)
	if err != nil {
		return nil, err
	}

	to, err := resolveBoundary(repo, opts.To, opts.ToTag)
	if err != nil {
		return nil, err
	}

	all, err := repo.ListCommits(opts.Branch, opts.FirstParentOnly)
	if err != nil {
		return nil, err
	}

	commits, err := window(all, from, to)
	if err != nil {
		return nil, err
	}

	commits = lo.Filter(commits, func(c *vcs.CommitHandle, _ int) bool {
		return opts.acceptsDate(c.Committer.When)
	})

	if opts.Order == Reversed {
		commits = lo.Reverse(commits)
	}

	return &Stream{
		repo:    repo,
		console: opts.console(),
		filter:  filter,
		accept:  accept,
		commits: commits,
	}, nil
}

func resolveBoundary(repo vcs.Repository, id string, tag string) (string, error) {
	if id != "" && tag != "" {
		return "", errors.Errorf("only one of commit (%v) or tag (%v) can be used", id, tag)
	}

	if tag != "" {
		hash, err := repo.CommitFromTag(tag)
		if err != nil {
			return "", err
		}

		return hash, nil
	}

	if id == "" {
		return "", nil
	}

	commit, err := repo.ResolveCommit(id)
	if err != nil {
		return "", err
	}

	return commit.Hash, nil
}

// window selects [from, to] from commits ordered newest first.
func window(commits []*vcs.CommitHandle, from string, to string) ([]*vcs.CommitHandle, error) {
	start := 0
	if to != "" {
		_, i, ok := lo.FindIndexOf(commits, func(c *vcs.CommitHandle) bool { return c.Hash == to })
		if !ok {
			return nil, errors.Wrapf(vcs.ErrCommitNotFound, "%v is not reachable from the traversed branch", to)
		}

		start = i
	}

	end := len(commits)
	if from != "" {
		_, i, ok := lo.FindIndexOf(commits, func(c *vcs.CommitHandle) bool { return c.Hash == from })
		if !ok {
			return nil, errors.Wrapf(vcs.ErrCommitNotFound, "%v is not reachable from the traversed branch", from)
		}

		end = i + 1
	}

	if end <= start {
		return nil, nil
	}

	result := make([]*vcs.CommitHandle, end-start)
	copy(result, commits[start:end])
	return result, nil
}

// Len is the number of commits in the traversal window.
// Commits skipped by the path or commit filters are counted, so the final count may be smaller.
func (s *Stream) Len() int {
	return len(s.commits)
}

func (s *Stream) ChangeSets() []model.ChangeSet {
	return lo.Map(s.commits, func(c *vcs.CommitHandle, _ int) model.ChangeSet {
		return model.NewChangeSet(c.Hash, c.Committer.When)
	})
}

// Next returns io.EOF after the last commit.
func (s *Stream) Next() (*model.Commit, error) {
	for s.next < len(s.commits) {
		handle := s.commits[s.next]
		s.next++

		commit := s.newCommit(handle)

		if s.accept != nil && !s.accept(commit) {
			continue
		}

		if s.filter != nil {
			mods, err := commit.Modifications()
			if err != nil {
				return nil, err
			}

			if len(mods) == 0 {
				continue
			}
		}

		return commit, nil
	}

	return nil, io.EOF
}

func (s *Stream) ForEach(cb func(*model.Commit) error) error {
	for {
		commit, err := s.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		err = cb(commit)
		if err == ErrStop {
			return nil
		} else if err != nil {
			return err
		}
	}
}

func (s *Stream) newCommit(h *vcs.CommitHandle) *model.Commit {
	_, authorTZ := h.Author.When.Zone()
	_, committerTZ := h.Committer.When.Zone()

	return model.NewCommit(
		&model.Commit{
			Hash:              h.Hash,
			Author:            model.NewDeveloper(h.Author.Name, h.Author.Email),
			Committer:         model.NewDeveloper(h.Committer.Name, h.Committer.Email),
			AuthorDate:        h.Author.When,
			CommitterDate:     h.Committer.When,
			AuthorTimezone:    authorTZ,
			CommitterTimezone: committerTZ,
			Msg:               strings.TrimSpace(h.Message),
			Parents:           h.ParentHashes,
		},
		func() ([]*model.Modification, error) {
			mods, err := BuildModifications(s.repo, h, s.console)
			if err != nil {
				return nil, err
			}

			if s.filter != nil {
				mods = lo.Filter(mods, func(m *model.Modification, _ int) bool { return s.accepts(m) })
			}

			return mods, nil
		},
		func() ([]string, error) {
			return s.repo.BranchesContaining(h.Hash)
		},
	)
}

func (s *Stream) accepts(m *model.Modification) bool {
	return (m.NewPath != "" && s.filter(m.NewPath)) ||
		(m.OldPath != "" && s.filter(m.OldPath))
}
