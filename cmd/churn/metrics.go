package main

import (
	"github.com/gertd/go-pluralize"

	"github.com/pescuma/churn/lib/workspace"
)

type SummaryCmd struct {
	rangeFlags
	outputFlags
}

func (c *SummaryCmd) Run(ctx *context) error {
	opts, err := c.options()
	if err != nil {
		return err
	}

	// Metrics run in parallel, so there is no single progress to show
	opts.Progress = false

	files, err := ctx.ws.Summary(opts)
	if err != nil {
		return err
	}

	r := &report{columns: []string{"commits", "added", "removed", "contributors", "minor", "churn"}}
	for _, f := range files {
		r.add(f.Path, float64(f.Commits),
			f.Commits, f.Lines.Added, f.Lines.Removed, f.Contributors.Contributors, f.Contributors.Minor, f.Churn.Sum)
	}

	return c.print(r)
}

type CommitsCmd struct {
	rangeFlags
	outputFlags
}

func (c *CommitsCmd) Run(ctx *context) error {
	opts, err := c.options()
	if err != nil {
		return err
	}

	result, err := ctx.ws.CommitsCount(opts)
	if err != nil {
		return err
	}

	r := &report{columns: []string{"commits"}}
	for path, count := range result {
		r.add(path, float64(count), count)
	}

	return c.print(r)
}

type LinesCmd struct {
	rangeFlags
	outputFlags
}

func (c *LinesCmd) Run(ctx *context) error {
	opts, err := c.options()
	if err != nil {
		return err
	}

	result, err := ctx.ws.LinesCount(opts)
	if err != nil {
		return err
	}

	r := &report{columns: []string{"added", "removed"}}
	for path, l := range result {
		r.add(path, float64(l.Total()), l.Added, l.Removed)
	}

	return c.print(r)
}

type ContributorsCmd struct {
	rangeFlags
	outputFlags
}

func (c *ContributorsCmd) Run(ctx *context) error {
	opts, err := c.options()
	if err != nil {
		return err
	}

	result, err := ctx.ws.ContributorsCount(opts)
	if err != nil {
		return err
	}

	r := &report{columns: []string{"contributors", "minor"}}
	for path, cs := range result {
		r.add(path, float64(cs.Contributors), cs.Contributors, cs.Minor)
	}

	return c.print(r)
}

type MinorContributorsCmd struct {
	rangeFlags
	outputFlags
}

func (c *MinorContributorsCmd) Run(ctx *context) error {
	opts, err := c.options()
	if err != nil {
		return err
	}

	result, err := ctx.ws.MinorContributorsCount(opts)
	if err != nil {
		return err
	}

	r := &report{columns: []string{"minor contributors"}}
	for path, count := range result {
		r.add(path, float64(count), count)
	}

	return c.print(r)
}

type ChurnCmd struct {
	rangeFlags
	outputFlags

	ModifiedLines bool `help:"Also count modified lines. Runs a line diff on every change, so it is slow."`
}

func (c *ChurnCmd) Run(ctx *context) error {
	opts, err := c.options()
	if err != nil {
		return err
	}

	result, err := ctx.ws.ChurnCount(opts, c.ModifiedLines)
	if err != nil {
		return err
	}

	columns := []string{"sum", "max", "avg"}
	if c.ModifiedLines {
		columns = append(columns, "modified")
	}

	r := &report{columns: columns}
	for path, ch := range result {
		if c.ModifiedLines {
			r.add(path, float64(ch.Sum), ch.Sum, ch.Max, ch.Avg, ch.Modified)
		} else {
			r.add(path, float64(ch.Sum), ch.Sum, ch.Max, ch.Avg)
		}
	}

	return c.print(r)
}

type untilCreationFlags struct {
	Path   string `arg:"" help:"File to count, relative to the repository root."`
	Commit string `help:"Start counting at this commit. Default is the head."`
}

type DevCountCmd struct {
	untilCreationFlags
}

func (c *DevCountCmd) Run(ctx *context) error {
	return c.run(ctx, (*workspace.Workspace).DevCount, "developer")
}

type CommitCountCmd struct {
	untilCreationFlags
}

func (c *CommitCountCmd) Run(ctx *context) error {
	return c.run(ctx, (*workspace.Workspace).CommitCount, "commit")
}

func (c *untilCreationFlags) run(ctx *context, count func(*workspace.Workspace, string, string) (int, error), noun string) error {
	result, err := count(ctx.ws, c.Path, c.Commit)
	if err != nil {
		return err
	}

	ctx.ws.Console().Printf("%v: %v\n", c.Path, pluralize.NewClient().Pluralize(noun, result, true))
	return nil
}
