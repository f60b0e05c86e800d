package model

import (
	"fmt"
	"path"

	"github.com/pescuma/churn/lib/linediff"
)

// FileDiff holds the loaded diff of one file inside a commit.
type FileDiff struct {
	Diff             string
	SourceCode       string
	SourceCodeBefore string
	Added            int
	Removed          int
	DecodeFailed     bool
}

// DiffSource loads file diffs. It is shared by all the modifications of a commit.
type DiffSource interface {
	FileDiff(oldPath string, newPath string) (*FileDiff, error)
}

// Modification is the change of one file inside a commit. Empty paths mean
// the file did not exist on that side of the change.
type Modification struct {
	OldPath    string
	NewPath    string
	ChangeType ChangeType

	diffs DiffSource
}

func NewModification(oldPath string, newPath string, changeType ChangeType, diffs DiffSource) *Modification {
	if oldPath == "" && newPath == "" {
		panic("modification without paths")
	}

	return &Modification{
		OldPath:    oldPath,
		NewPath:    newPath,
		ChangeType: changeType,
		diffs:      diffs,
	}
}

// Path returns the new path, or the old one for deletions.
func (m *Modification) Path() string {
	if m.NewPath != "" {
		return m.NewPath
	}

	return m.OldPath
}

func (m *Modification) Filename() string {
	return path.Base(m.Path())
}

func (m *Modification) load() (*FileDiff, error) {
	if m.diffs == nil {
		return &FileDiff{}, nil
	}

	return m.diffs.FileDiff(m.OldPath, m.NewPath)
}

func (m *Modification) Diff() (string, error) {
	d, err := m.load()
	if err != nil {
		return "", err
	}

	return d.Diff, nil
}

func (m *Modification) SourceCode() (string, error) {
	d, err := m.load()
	if err != nil {
		return "", err
	}

	return d.SourceCode, nil
}

func (m *Modification) SourceCodeBefore() (string, error) {
	d, err := m.load()
	if err != nil {
		return "", err
	}

	return d.SourceCodeBefore, nil
}

func (m *Modification) Added() (int, error) {
	d, err := m.load()
	if err != nil {
		return 0, err
	}

	return d.Added, nil
}

func (m *Modification) Removed() (int, error) {
	d, err := m.load()
	if err != nil {
		return 0, err
	}

	return d.Removed, nil
}

func (m *Modification) DecodeFailed() (bool, error) {
	d, err := m.load()
	if err != nil {
		return false, err
	}

	return d.DecodeFailed, nil
}

// Churn compares the file before and after the change line by line.
// A modified line is a deleted line immediately replaced by an added one.
func (m *Modification) Churn() (linediff.Counts, error) {
	d, err := m.load()
	if err != nil {
		return linediff.Counts{}, err
	}

	if d.DecodeFailed {
		return linediff.Counts{}, nil
	}

	return linediff.Count(d.SourceCodeBefore, d.SourceCode), nil
}

// Equal compares the file identity of the change, without loading diffs.
func (m *Modification) Equal(other *Modification) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}

	return m.OldPath == other.OldPath &&
		m.NewPath == other.NewPath &&
		m.ChangeType == other.ChangeType
}

func (m *Modification) String() string {
	return fmt.Sprintf("%v %v -> %v", m.ChangeType, m.OldPath, m.NewPath)
}
