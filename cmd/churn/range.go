package main

import (
	"time"

	"github.com/pkg/errors"

	"github.com/pescuma/churn/lib/workspace"
)

type rangeFlags struct {
	Branch  string `short:"b" help:"Branch to traverse. Default is the current head."`
	From    string `help:"Oldest commit to include."`
	To      string `help:"Newest commit to include."`
	FromTag string `help:"Tag of the oldest commit to include."`
	ToTag   string `help:"Tag of the newest commit to include."`
	Since   string `help:"Only commits after this date (YYYY-MM-DD)."`
	Until   string `help:"Only commits before this date (YYYY-MM-DD)."`

	FirstParentOnly bool `help:"Follow only the first parent of merge commits."`

	Paths        []string `short:"p" help:"Globs of the files to include. Prefix with ! to exclude."`
	FileTypes    []string `short:"t" help:"Extensions of the files to include."`
	SkipVendored bool     `help:"Ignore vendored files."`

	Commits []string `short:"m" help:"Commit filters, like 'author:*@example.com & !merge'. All must match."`

	Progress bool `default:"true" negatable:"" help:"Show progress."`
}

func (f *rangeFlags) options() (*workspace.RangeOptions, error) {
	since, err := parseDate(f.Since)
	if err != nil {
		return nil, err
	}

	until, err := parseDate(f.Until)
	if err != nil {
		return nil, err
	}

	return &workspace.RangeOptions{
		Branch:          f.Branch,
		From:            f.From,
		To:              f.To,
		FromTag:         f.FromTag,
		ToTag:           f.ToTag,
		Since:           since,
		Until:           until,
		FirstParentOnly: f.FirstParentOnly,
		Paths:           f.Paths,
		FileTypes:       f.FileTypes,
		SkipVendored:    f.SkipVendored,
		Commits:         f.Commits,
		Progress:        f.Progress,
	}, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return &t, nil
		}
	}

	return nil, errors.Errorf("invalid date: %v", s)
}
