package renames

import (
	"path"
	"strings"

	"github.com/pescuma/churn/lib/model"
)

// BackwardTracker follows one file while walking newest first. After a rename
// is seen, older commits know the file by its previous name.
type BackwardTracker struct {
	path string
}

func NewBackwardTracker(filePath string) *BackwardTracker {
	return &BackwardTracker{
		path: CleanPath(filePath),
	}
}

func (t *BackwardTracker) Path() string {
	return t.path
}

func (t *BackwardTracker) Matches(mod *model.Modification) bool {
	return mod.NewPath == t.path || mod.OldPath == t.path
}

// Follow switches the tracked path to the old name on renames.
func (t *BackwardTracker) Follow(mod *model.Modification) {
	if mod.ChangeType == model.ChangeRename {
		t.path = CleanPath(mod.OldPath)
	}
}

// CleanPath converts a user provided path to the form used in the history.
func CleanPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(p)
	return p
}
