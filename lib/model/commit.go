package model

import (
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"
)

type Commit struct {
	Hash              string
	Author            Developer
	Committer         Developer
	AuthorDate        time.Time
	CommitterDate     time.Time
	AuthorTimezone    int // seconds east of UTC
	CommitterTimezone int // seconds east of UTC
	Msg               string
	Parents           []string

	loadModifications func() ([]*Modification, error)
	loadBranches      func() ([]string, error)

	modificationsOnce sync.Once
	modifications     []*Modification
	modificationsErr  error
}

func NewCommit(c *Commit, loadModifications func() ([]*Modification, error), loadBranches func() ([]string, error)) *Commit {
	return &Commit{
		Hash:              c.Hash,
		Author:            c.Author,
		Committer:         c.Committer,
		AuthorDate:        c.AuthorDate,
		CommitterDate:     c.CommitterDate,
		AuthorTimezone:    c.AuthorTimezone,
		CommitterTimezone: c.CommitterTimezone,
		Msg:               c.Msg,
		Parents:           c.Parents,
		loadModifications: loadModifications,
		loadBranches:      loadBranches,
	}
}

func (c *Commit) Merge() bool {
	return len(c.Parents) > 1
}

func (c *Commit) ChangeSet() ChangeSet {
	return NewChangeSet(c.Hash, c.CommitterDate)
}

// Modifications are computed on first use and kept for the lifetime of the commit.
func (c *Commit) Modifications() ([]*Modification, error) {
	c.modificationsOnce.Do(func() {
		if c.loadModifications == nil {
			return
		}

		c.modifications, c.modificationsErr = c.loadModifications()
	})

	return c.modifications, c.modificationsErr
}

func (c *Commit) Branches() ([]string, error) {
	if c.loadBranches == nil {
		return nil, nil
	}

	return c.loadBranches()
}

func (c *Commit) InBranch(branch string) (bool, error) {
	branches, err := c.Branches()
	if err != nil {
		return false, err
	}

	return lo.Contains(branches, branch), nil
}

// Equal compares the commit metadata. Modifications are not loaded.
func (c *Commit) Equal(other *Commit) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil {
		return false
	}

	return c.Hash == other.Hash &&
		c.Author.Equal(other.Author) &&
		c.Committer.Equal(other.Committer) &&
		c.AuthorDate.Equal(other.AuthorDate) &&
		c.CommitterDate.Equal(other.CommitterDate) &&
		c.AuthorTimezone == other.AuthorTimezone &&
		c.CommitterTimezone == other.CommitterTimezone &&
		c.Msg == other.Msg &&
		slices.Equal(c.Parents, other.Parents)
}
