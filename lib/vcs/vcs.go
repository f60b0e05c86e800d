// Package vcs defines what the history traversal needs from a version control system.
package vcs

import (
	"time"

	"github.com/pkg/errors"
)

var (
	ErrRepositoryNotFound = errors.New("repository not found")
	ErrCommitNotFound     = errors.New("commit not found")
	ErrTagNotFound        = errors.New("tag not found")
)

type Repository interface {
	Head() (*CommitHandle, error)
	ResolveCommit(id string) (*CommitHandle, error)

	// ListCommits returns the commits reachable from ref (HEAD when empty), newest first.
	ListCommits(ref string, firstParentOnly bool) ([]*CommitHandle, error)
	Parents(commit *CommitHandle) ([]*CommitHandle, error)

	// DiffTrees compares the trees of base and target. A nil base means the empty tree.
	DiffTrees(base *CommitHandle, target *CommitHandle) ([]*FileChange, error)

	BranchesContaining(id string) ([]string, error)
	CommitFromTag(tag string) (string, error)
}

type Signature struct {
	Name  string
	Email string
	When  time.Time
}

type CommitHandle struct {
	Hash         string
	Author       Signature
	Committer    Signature
	Message      string
	ParentHashes []string
}

type ChangeCode string

const (
	CodeAdded    ChangeCode = "A"
	CodeCopied   ChangeCode = "C"
	CodeDeleted  ChangeCode = "D"
	CodeRenamed  ChangeCode = "R"
	CodeModified ChangeCode = "M"
)

// FileChange is one entry of a tree diff. The loaders are expensive and
// are expected to be called at most once per change.
type FileChange struct {
	OldPath string
	NewPath string
	Code    ChangeCode

	Patch         func() ([]byte, error)
	Content       func() ([]byte, error)
	ContentBefore func() ([]byte, error)
}
