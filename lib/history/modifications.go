package history

import (
	"sync"
	"unicode/utf8"

	"github.com/go-enry/go-enry/v2"
	"github.com/pkg/errors"

	"github.com/pescuma/churn/lib/consoles"
	"github.com/pescuma/churn/lib/model"
	"github.com/pescuma/churn/lib/vcs"
)

// BuildModifications computes the changes of a commit against its first parent.
// Root commits are compared against the empty tree, so all their files are additions.
func BuildModifications(repo vcs.Repository, commit *vcs.CommitHandle, console consoles.Console) ([]*model.Modification, error) {
	parents, err := repo.Parents(commit)
	if err != nil {
		return nil, err
	}

	var base *vcs.CommitHandle
	if len(parents) > 0 {
		base = parents[0]
	}

	changes, err := repo.DiffTrees(base, commit)
	if err != nil {
		return nil, errors.Wrapf(err, "error computing diff of %v", commit.Hash)
	}

	cache := newDiffCache(commit.Hash, console)

	result := make([]*model.Modification, 0, len(changes))
	for _, change := range changes {
		changeType := toChangeType(change.Code)

		oldPath := change.OldPath
		newPath := change.NewPath
		switch changeType {
		case model.ChangeAdd:
			oldPath = ""
		case model.ChangeDelete:
			newPath = ""
		}

		if oldPath == "" && newPath == "" {
			continue
		}

		cache.add(oldPath, newPath, change)

		result = append(result, model.NewModification(oldPath, newPath, changeType, cache))
	}

	return result, nil
}

func toChangeType(code vcs.ChangeCode) model.ChangeType {
	switch code {
	case vcs.CodeAdded:
		return model.ChangeAdd
	case vcs.CodeCopied:
		return model.ChangeCopy
	case vcs.CodeDeleted:
		return model.ChangeDelete
	case vcs.CodeRenamed:
		return model.ChangeRename
	case vcs.CodeModified:
		return model.ChangeModify
	default:
		return model.ChangeUnknown
	}
}

type pathPair struct {
	oldPath string
	newPath string
}

// diffCache loads each file diff of one commit at most once.
type diffCache struct {
	hash    string
	console consoles.Console

	mutex   sync.Mutex
	changes map[pathPair]*vcs.FileChange
	loaded  map[pathPair]*model.FileDiff
}

func newDiffCache(hash string, console consoles.Console) *diffCache {
	return &diffCache{
		hash:    hash,
		console: console,
		changes: map[pathPair]*vcs.FileChange{},
		loaded:  map[pathPair]*model.FileDiff{},
	}
}

func (c *diffCache) add(oldPath string, newPath string, change *vcs.FileChange) {
	c.changes[pathPair{oldPath, newPath}] = change
}

func (c *diffCache) FileDiff(oldPath string, newPath string) (*model.FileDiff, error) {
	key := pathPair{oldPath, newPath}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if d, ok := c.loaded[key]; ok {
		return d, nil
	}

	change, ok := c.changes[key]
	if !ok {
		return nil, errors.Errorf("no change for %v -> %v in %v", oldPath, newPath, c.hash)
	}

	d, err := c.load(change)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading diff of %v in %v", change.NewPath, c.hash)
	}

	c.loaded[key] = d
	return d, nil
}

func (c *diffCache) load(change *vcs.FileChange) (*model.FileDiff, error) {
	patch, err := call(change.Patch)
	if err != nil {
		return nil, err
	}

	content, err := call(change.Content)
	if err != nil {
		return nil, err
	}

	contentBefore, err := call(change.ContentBefore)
	if err != nil {
		return nil, err
	}

	if !decodable(patch) || !decodable(content) || !decodable(contentBefore) {
		c.console.Debugf("Could not decode the diff or source code of %v in %v\n",
			firstNonEmpty(change.NewPath, change.OldPath), c.hash)

		return &model.FileDiff{DecodeFailed: true}, nil
	}

	result := &model.FileDiff{
		Diff:             string(patch),
		SourceCode:       string(content),
		SourceCodeBefore: string(contentBefore),
	}
	result.Added, result.Removed = model.CountDiffLines(result.Diff)

	return result, nil
}

func call(loader func() ([]byte, error)) ([]byte, error) {
	if loader == nil {
		return nil, nil
	}

	return loader()
}

func decodable(data []byte) bool {
	return utf8.Valid(data) && !enry.IsBinary(data)
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
