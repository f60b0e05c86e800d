package renames

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pescuma/churn/lib/model"
)

func rename(oldPath, newPath string) *model.Modification {
	return model.NewModification(oldPath, newPath, model.ChangeRename, nil)
}

func modify(p string) *model.Modification {
	return model.NewModification(p, p, model.ChangeModify, nil)
}

func add(p string) *model.Modification {
	return model.NewModification("", p, model.ChangeAdd, nil)
}

func TestForwardUnknownPathIsItself(t *testing.T) {
	t.Parallel()

	c := NewForwardCanonicalizer()

	assert.Equal(t, "a.py", c.Canonicalize("a.py"))
}

func TestForwardChainResolvesToLatestName(t *testing.T) {
	t.Parallel()

	c := NewForwardCanonicalizer()

	// Newest first: a -> b happened before b -> c
	assert.Equal(t, "c.py", c.Observe(rename("b.py", "c.py")))
	assert.Equal(t, "c.py", c.Observe(modify("b.py")))
	assert.Equal(t, "c.py", c.Observe(rename("a.py", "b.py")))
	assert.Equal(t, "c.py", c.Observe(add("a.py")))

	assert.Equal(t, "c.py", c.Canonicalize("a.py"))
	assert.Equal(t, "c.py", c.Canonicalize("b.py"))
}

func TestForwardRecordRename(t *testing.T) {
	t.Parallel()

	c := NewForwardCanonicalizer()
	c.RecordRename("b", "c")
	c.RecordRename("a", "b")

	assert.Equal(t, "c", c.Canonicalize("a"))
}

func TestForwardDeleteUsesOldPath(t *testing.T) {
	t.Parallel()

	c := NewForwardCanonicalizer()

	assert.Equal(t, "a.py", c.Observe(model.NewModification("a.py", "", model.ChangeDelete, nil)))
}

func TestBackwardFollowsOlderNames(t *testing.T) {
	t.Parallel()

	tr := NewBackwardTracker("./src/c.py")
	assert.Equal(t, "src/c.py", tr.Path())

	m := rename("src/b.py", "src/c.py")
	assert.True(t, tr.Matches(m))
	tr.Follow(m)
	assert.Equal(t, "src/b.py", tr.Path())

	assert.False(t, tr.Matches(modify("src/c.py")))
	assert.True(t, tr.Matches(modify("src/b.py")))
	assert.True(t, tr.Matches(add("src/b.py")))
}

func TestBackwardWindowsSeparators(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a/b.py", NewBackwardTracker("a\\b.py").Path())
}

// The two strategies answer different questions for the same history.
func TestStrategiesDiverge(t *testing.T) {
	t.Parallel()

	history := []*model.Modification{
		modify("b.py"),
		rename("a.py", "b.py"),
		modify("a.py"),
	}

	forward := NewForwardCanonicalizer()
	backward := NewBackwardTracker("b.py")

	var forwardPaths []string
	var backwardPaths []string
	for _, m := range history {
		forwardPaths = append(forwardPaths, forward.Observe(m))

		if backward.Matches(m) {
			backwardPaths = append(backwardPaths, backward.Path())
			backward.Follow(m)
		}
	}

	assert.Equal(t, []string{"b.py", "b.py", "b.py"}, forwardPaths)
	assert.Equal(t, []string{"b.py", "b.py", "a.py"}, backwardPaths)
	assert.Equal(t, "a.py", backward.Path())
}
