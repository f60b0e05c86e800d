package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"

	"github.com/pescuma/churn/lib/vcs"
)

func (r *Repository) DiffTrees(base *vcs.CommitHandle, target *vcs.CommitHandle) ([]*vcs.FileChange, error) {
	targetCommit, err := r.commit(target)
	if err != nil {
		return nil, err
	}

	targetTree, err := targetCommit.Tree()
	if err != nil {
		return nil, err
	}

	// nil means the empty tree
	var baseTree *object.Tree
	if base != nil {
		baseCommit, err := r.commit(base)
		if err != nil {
			return nil, err
		}

		baseTree, err = baseCommit.Tree()
		if err != nil {
			return nil, err
		}
	}

	changes, err := object.DiffTreeWithOptions(context.Background(), baseTree, targetTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, err
	}

	result := make([]*vcs.FileChange, 0, len(changes))
	for _, change := range changes {
		if isSubmodule(change) {
			continue
		}

		action, err := change.Action()
		if err != nil {
			return nil, err
		}

		fc := &vcs.FileChange{
			OldPath: change.From.Name,
			NewPath: change.To.Name,
		}

		switch {
		case action == merkletrie.Insert:
			fc.Code = vcs.CodeAdded
		case action == merkletrie.Delete:
			fc.Code = vcs.CodeDeleted
		case fc.OldPath != fc.NewPath:
			fc.Code = vcs.CodeRenamed
		default:
			fc.Code = vcs.CodeModified
		}

		loader := &changeLoader{change: change}
		fc.Patch = loader.patch
		fc.Content = loader.content
		fc.ContentBefore = loader.contentBefore

		result = append(result, fc)
	}

	return result, nil
}

func isSubmodule(change *object.Change) bool {
	return change.From.TreeEntry.Mode == filemode.Submodule || change.To.TreeEntry.Mode == filemode.Submodule
}

type changeLoader struct {
	change *object.Change
}

// patch returns only the hunks of the unified diff, without the file headers.
func (l *changeLoader) patch() ([]byte, error) {
	patch, err := l.change.PatchContext(context.Background())
	if err != nil {
		return nil, err
	}

	return []byte(hunksOnly(patch.String())), nil
}

func (l *changeLoader) content() ([]byte, error) {
	_, commitFile, err := l.change.Files()
	if err != nil {
		return nil, err
	}

	return fileContent(commitFile)
}

func (l *changeLoader) contentBefore() ([]byte, error) {
	parentFile, _, err := l.change.Files()
	if err != nil {
		return nil, err
	}

	return fileContent(parentFile)
}

func fileContent(f *object.File) ([]byte, error) {
	// Deleted side or submodule
	if f == nil {
		return nil, nil
	}

	content, err := f.Contents()
	if err != nil {
		return nil, err
	}

	return []byte(content), nil
}

func hunksOnly(patch string) string {
	if strings.HasPrefix(patch, "@@") {
		return patch
	}

	i := strings.Index(patch, "\n@@")
	if i < 0 {
		return ""
	}

	return patch[i+1:]
}

func walkFiles(fs billy.Filesystem, root string, ignored func(path []string, isDir bool) bool, cb func(path string)) error {
	return util.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel := filepath.ToSlash(strings.TrimPrefix(path, "/"))
		if rel == "" || rel == "." {
			return nil
		}

		isDir := info.IsDir()

		switch {
		case isDir && info.Name() == ".git":
			return filepath.SkipDir

		case ignored != nil && ignored(strings.Split(rel, "/"), isDir):
			if isDir {
				return filepath.SkipDir
			}
			return nil

		case isDir:
			return nil
		}

		cb(rel)
		return nil
	})
}
