package git

import (
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"

	"github.com/pescuma/churn/lib/utils"
	"github.com/pescuma/churn/lib/vcs"
)

// Repository reads history using go-git. Checkout and Reset change the work
// tree and are serialized by the repository lock.
type Repository struct {
	Path string

	gitRepo *git.Repository
	lock    sync.Mutex
}

var _ vcs.Repository = (*Repository)(nil)

func Open(path string) (*Repository, error) {
	path, err := utils.PathAbs(path)
	if err != nil {
		return nil, err
	}

	gitRepo, err := git.PlainOpen(path)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, errors.Wrapf(vcs.ErrRepositoryNotFound, "%v", path)
	} else if err != nil {
		return nil, errors.Wrapf(err, "error opening %v", path)
	}

	return &Repository{
		Path:    path,
		gitRepo: gitRepo,
	}, nil
}

func (r *Repository) Head() (*vcs.CommitHandle, error) {
	gitHead, err := r.gitRepo.Head()
	if err != nil {
		return nil, errors.Wrap(err, "error reading HEAD")
	}

	return r.handle(gitHead.Hash())
}

func (r *Repository) ResolveCommit(id string) (*vcs.CommitHandle, error) {
	hash, err := r.resolve(id)
	if err != nil {
		return nil, err
	}

	return r.handle(hash)
}

func (r *Repository) resolve(id string) (plumbing.Hash, error) {
	if id == "" || id == "HEAD" {
		gitHead, err := r.gitRepo.Head()
		if err != nil {
			return plumbing.ZeroHash, errors.Wrap(err, "error reading HEAD")
		}

		return gitHead.Hash(), nil
	}

	revision, err := r.gitRepo.ResolveRevision(plumbing.Revision(id))
	if err != nil {
		return plumbing.ZeroHash, errors.Wrapf(vcs.ErrCommitNotFound, "%v", id)
	}

	return *revision, nil
}

func (r *Repository) handle(hash plumbing.Hash) (*vcs.CommitHandle, error) {
	gitCommit, err := r.gitRepo.CommitObject(hash)
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		return nil, errors.Wrapf(vcs.ErrCommitNotFound, "%v", hash)
	} else if err != nil {
		return nil, err
	}

	return toHandle(gitCommit), nil
}

func (r *Repository) commit(h *vcs.CommitHandle) (*object.Commit, error) {
	gitCommit, err := r.gitRepo.CommitObject(plumbing.NewHash(h.Hash))
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		return nil, errors.Wrapf(vcs.ErrCommitNotFound, "%v", h.Hash)
	}

	return gitCommit, err
}

func (r *Repository) ListCommits(ref string, firstParentOnly bool) ([]*vcs.CommitHandle, error) {
	from, err := r.resolve(ref)
	if err != nil {
		return nil, err
	}

	if firstParentOnly {
		return r.listFirstParents(from)
	}

	commitsIter, err := r.gitRepo.Log(&git.LogOptions{
		From:  from,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, err
	}

	var result []*vcs.CommitHandle
	err = commitsIter.ForEach(func(gitCommit *object.Commit) error {
		result = append(result, toHandle(gitCommit))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *Repository) listFirstParents(from plumbing.Hash) ([]*vcs.CommitHandle, error) {
	gitCommit, err := r.gitRepo.CommitObject(from)
	if err != nil {
		return nil, err
	}

	var result []*vcs.CommitHandle
	for {
		result = append(result, toHandle(gitCommit))

		if gitCommit.NumParents() == 0 {
			return result, nil
		}

		gitCommit, err = gitCommit.Parent(0)
		if err != nil {
			return nil, err
		}
	}
}

func (r *Repository) Parents(h *vcs.CommitHandle) ([]*vcs.CommitHandle, error) {
	result := make([]*vcs.CommitHandle, 0, len(h.ParentHashes))

	for _, p := range h.ParentHashes {
		parent, err := r.handle(plumbing.NewHash(p))
		if err != nil {
			return nil, err
		}

		result = append(result, parent)
	}

	return result, nil
}

func (r *Repository) BranchesContaining(id string) ([]string, error) {
	hash, err := r.resolve(id)
	if err != nil {
		return nil, err
	}

	gitCommit, err := r.gitRepo.CommitObject(hash)
	if err != nil {
		return nil, errors.Wrapf(vcs.ErrCommitNotFound, "%v", id)
	}

	branchesIter, err := r.gitRepo.Branches()
	if err != nil {
		return nil, err
	}

	var result []string
	err = branchesIter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Hash() == hash {
			result = append(result, ref.Name().Short())
			return nil
		}

		branchCommit, err := r.gitRepo.CommitObject(ref.Hash())
		if err != nil {
			return err
		}

		contains, err := gitCommit.IsAncestor(branchCommit)
		if err != nil {
			return err
		}

		if contains {
			result = append(result, ref.Name().Short())
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *Repository) CommitFromTag(tag string) (string, error) {
	ref, err := r.gitRepo.Tag(tag)
	if errors.Is(err, git.ErrTagNotFound) {
		return "", errors.Wrapf(vcs.ErrTagNotFound, "%v", tag)
	} else if err != nil {
		return "", err
	}

	tagObj, err := r.gitRepo.TagObject(ref.Hash())
	switch {
	case err == nil:
		gitCommit, err := tagObj.Commit()
		if err != nil {
			return "", err
		}

		return gitCommit.Hash.String(), nil

	case errors.Is(err, plumbing.ErrObjectNotFound):
		// Lightweight tag
		return ref.Hash().String(), nil

	default:
		return "", err
	}
}

func (r *Repository) TotalCommits() (int, error) {
	commits, err := r.ListCommits("", false)
	if err != nil {
		return 0, err
	}

	return len(commits), nil
}

// Files lists the files in the work tree, relative to the repository root.
// Files ignored by .gitignore are skipped.
func (r *Repository) Files() ([]string, error) {
	worktree, err := r.gitRepo.Worktree()
	if err != nil {
		return nil, err
	}

	patterns, err := gitignore.ReadPatterns(worktree.Filesystem, nil)
	if err != nil {
		return nil, err
	}

	matcher := gitignore.NewMatcher(patterns)

	var result []string
	err = walkFiles(worktree.Filesystem, "", matcher.Match, func(path string) {
		result = append(result, path)
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *Repository) Checkout(id string) error {
	hash, err := r.resolve(id)
	if err != nil {
		return err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	worktree, err := r.gitRepo.Worktree()
	if err != nil {
		return err
	}

	return worktree.Checkout(&git.CheckoutOptions{
		Hash:  hash,
		Force: true,
	})
}

// Reset discards local changes and goes back to the main branch.
func (r *Repository) Reset(branch string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	worktree, err := r.gitRepo.Worktree()
	if err != nil {
		return err
	}

	err = worktree.Reset(&git.ResetOptions{
		Mode: git.HardReset,
	})
	if err != nil {
		return err
	}

	if branch == "" {
		return nil
	}

	return worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Force:  true,
	})
}

func toHandle(gitCommit *object.Commit) *vcs.CommitHandle {
	parents := make([]string, 0, len(gitCommit.ParentHashes))
	for _, p := range gitCommit.ParentHashes {
		parents = append(parents, p.String())
	}

	return &vcs.CommitHandle{
		Hash:         gitCommit.Hash.String(),
		Author:       toSignature(gitCommit.Author),
		Committer:    toSignature(gitCommit.Committer),
		Message:      strings.TrimSpace(gitCommit.Message),
		ParentHashes: parents,
	}
}

func toSignature(s object.Signature) vcs.Signature {
	return vcs.Signature{
		Name:  s.Name,
		Email: s.Email,
		When:  s.When,
	}
}
