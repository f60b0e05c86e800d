package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountDiffLinesEmpty(t *testing.T) {
	t.Parallel()

	added, removed := CountDiffLines("")

	assert.Equal(t, 0, added)
	assert.Equal(t, 0, removed)
}

func TestCountDiffLines(t *testing.T) {
	t.Parallel()

	diff := "@@ -1,2 +1,3 @@\n a\n-b\n+c\n+d\n"

	added, removed := CountDiffLines(diff)

	assert.Equal(t, 2, added)
	assert.Equal(t, 1, removed)
}

func TestCountDiffLinesIgnoresFileHeaders(t *testing.T) {
	t.Parallel()

	diff := "--- a/x.py\n+++ b/x.py\n@@ -1 +1 @@\n-old\n+new\n"

	added, removed := CountDiffLines(diff)

	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)
}

func TestCountDiffLinesCRLF(t *testing.T) {
	t.Parallel()

	added, removed := CountDiffLines("@@ -1 +1,2 @@\r\n-a\r\n+b\r\n+c\r\n")

	assert.Equal(t, 2, added)
	assert.Equal(t, 1, removed)
}

func TestCountDiffLinesContentStartingWithMarkers(t *testing.T) {
	t.Parallel()

	// A removed line whose content is "--x" looks like a header and is not counted
	added, removed := CountDiffLines("@@ -1 +1 @@\n---x\n++y\n")

	assert.Equal(t, 1, added)
	assert.Equal(t, 0, removed)
}
