// Package renames maps the paths seen while walking history to the path used to aggregate metrics.
//
// There are two strategies, used by different metrics, that resolve renames in opposite
// directions:
//
//   - ForwardCanonicalizer keeps all the history of a file under its most recent name.
//   - BackwardTracker follows a single file back in time, switching to its older names.
package renames

import (
	"github.com/pescuma/churn/lib/model"
)

// ForwardCanonicalizer must see the commits newest first, so that a rename is
// known before the older activity under the previous name.
type ForwardCanonicalizer struct {
	canonical map[string]string
}

func NewForwardCanonicalizer() *ForwardCanonicalizer {
	return &ForwardCanonicalizer{
		canonical: map[string]string{},
	}
}

func (c *ForwardCanonicalizer) Canonicalize(path string) string {
	result, ok := c.canonical[path]
	if !ok {
		return path
	}
	return result
}

// RecordRename points oldPath directly to the already resolved name of newPath.
func (c *ForwardCanonicalizer) RecordRename(oldPath string, newPath string) {
	c.canonical[oldPath] = c.Canonicalize(newPath)
}

// Observe returns the canonical path of the modification, recording it if it is a rename.
func (c *ForwardCanonicalizer) Observe(mod *model.Modification) string {
	path := c.Canonicalize(mod.Path())

	if mod.ChangeType == model.ChangeRename {
		c.canonical[mod.OldPath] = path
	}

	return path
}
