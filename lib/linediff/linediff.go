package linediff

import (
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

type Diff struct {
	Type  Operation
	Lines int
}

type Operation int8

const (
	DiffDelete Operation = Operation(diffmatchpatch.DiffDelete)
	DiffInsert Operation = Operation(diffmatchpatch.DiffInsert)
	DiffEqual  Operation = Operation(diffmatchpatch.DiffEqual)
)

const defaultTimeout = 5 * time.Second

func Do(src, dst string) []Diff {
	return DoWithTimeout(src, dst, defaultTimeout)
}

func DoWithTimeout(src, dst string, timeout time.Duration) []Diff {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = timeout
	wSrc, wDst := textsToLineIndexes(src, dst)
	dmpd := dmp.DiffMainRunes(wSrc, wDst, false)
	diffs := lineIndexesToDiff(dmpd)
	return diffs
}

type Counts struct {
	Added    int
	Deleted  int
	Modified int
}

func (c Counts) Total() int {
	return c.Added + c.Deleted + c.Modified
}

// Count summarizes the line changes from src to dst. Deletes and inserts
// that happen without an equal line between them are paired as modified.
func Count(src, dst string) Counts {
	var result Counts

	srcLines := countLines(src)
	dstLines := countLines(dst)

	switch {
	case srcLines == 0:
		result.Added = dstLines
		return result

	case dstLines == 0:
		result.Deleted = srcLines
		return result
	}

	add := 0
	del := 0
	flush := func() {
		m := min(add, del)
		result.Modified += m
		result.Added += add - m
		result.Deleted += del - m

		add = 0
		del = 0
	}

	for _, d := range Do(src, dst) {
		switch d.Type {
		case DiffInsert:
			add += d.Lines
		case DiffDelete:
			del += d.Lines
		default:
			flush()
		}
	}
	flush()

	return result
}

func countLines(text string) int {
	if text == "" {
		return 0
	}

	result := strings.Count(text, "\n")
	if text[len(text)-1] != '\n' {
		result++
	}
	return result
}

func lineIndexesToDiff(diffs []diffmatchpatch.Diff) []Diff {
	hydrated := make([]Diff, 0, len(diffs))
	for _, aDiff := range diffs {
		hydrated = append(hydrated, Diff{
			Type:  Operation(aDiff.Type),
			Lines: len([]rune(aDiff.Text)),
		})
	}
	return hydrated
}

func textsToLineIndexes(text1, text2 string) ([]rune, []rune) {
	lineToIndex := make(map[string]int)
	indexes1 := textToLineIndexes(text1, lineToIndex)
	indexes2 := textToLineIndexes(text2, lineToIndex)
	return indexes1, indexes2
}

func textToLineIndexes(text string, lineToIndex map[string]int) []rune {
	lines := strings.SplitAfter(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	result := make([]rune, len(lines))
	for i, line := range lines {
		lineValue, ok := lineToIndex[line]

		if !ok {
			lineValue = len(lineToIndex)
			lineToIndex[line] = lineValue
		}

		result[i] = rune(lineValue)
	}
	return result
}
