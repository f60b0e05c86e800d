// Package gittest creates small git repositories on disk for tests.
package gittest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

type Repo struct {
	Dir string

	t        testing.TB
	gitRepo  *git.Repository
	worktree *git.Worktree
	when     time.Time
}

func NewRepo(t testing.TB) *Repo {
	dir := t.TempDir()

	gitRepo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	worktree, err := gitRepo.Worktree()
	require.NoError(t, err)

	return &Repo{
		Dir:      dir,
		t:        t,
		gitRepo:  gitRepo,
		worktree: worktree,
		when:     time.Date(2020, 1, 1, 10, 0, 0, 0, time.FixedZone("", 2*60*60)),
	}
}

func (r *Repo) Write(path string, content string) *Repo {
	full := filepath.Join(r.Dir, filepath.FromSlash(path))

	require.NoError(r.t, os.MkdirAll(filepath.Dir(full), 0o700))
	require.NoError(r.t, os.WriteFile(full, []byte(content), 0o600))

	_, err := r.worktree.Add(path)
	require.NoError(r.t, err)

	return r
}

func (r *Repo) Remove(path string) *Repo {
	_, err := r.worktree.Remove(path)
	require.NoError(r.t, err)

	return r
}

func (r *Repo) Move(from string, to string) *Repo {
	require.NoError(r.t, os.MkdirAll(filepath.Dir(filepath.Join(r.Dir, filepath.FromSlash(to))), 0o700))

	_, err := r.worktree.Move(from, to)
	require.NoError(r.t, err)

	return r
}

// Commit creates a commit one hour after the previous one and returns its hash.
func (r *Repo) Commit(msg string, name string, email string) string {
	r.when = r.when.Add(time.Hour)

	hash, err := r.worktree.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{
			Name:  name,
			Email: email,
			When:  r.when,
		},
	})
	require.NoError(r.t, err)

	return hash.String()
}

func (r *Repo) Tag(name string) {
	head, err := r.gitRepo.Head()
	require.NoError(r.t, err)

	_, err = r.gitRepo.CreateTag(name, head.Hash(), nil)
	require.NoError(r.t, err)
}

func (r *Repo) AnnotatedTag(name string, msg string) {
	head, err := r.gitRepo.Head()
	require.NoError(r.t, err)

	_, err = r.gitRepo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Message: msg,
		Tagger: &object.Signature{
			Name:  "Tagger",
			Email: "tagger@example.com",
			When:  r.when,
		},
	})
	require.NoError(r.t, err)
}

func (r *Repo) Branch(name string) {
	head, err := r.gitRepo.Head()
	require.NoError(r.t, err)

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), head.Hash())
	require.NoError(r.t, r.gitRepo.Storer.SetReference(ref))
}

func (r *Repo) Checkout(branch string) {
	err := r.worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
	})
	require.NoError(r.t, err)
}

// Merge creates a merge commit of the current branch with other, using the current tree.
func (r *Repo) Merge(other string, name string, email string) string {
	head, err := r.gitRepo.Head()
	require.NoError(r.t, err)

	otherRef, err := r.gitRepo.Reference(plumbing.NewBranchReferenceName(other), true)
	require.NoError(r.t, err)

	r.when = r.when.Add(time.Hour)

	hash, err := r.worktree.Commit("Merge "+other, &git.CommitOptions{
		Author: &object.Signature{
			Name:  name,
			Email: email,
			When:  r.when,
		},
		Parents:           []plumbing.Hash{head.Hash(), otherRef.Hash()},
		AllowEmptyCommits: true,
	})
	require.NoError(r.t, err)

	return hash.String()
}
