package main

import (
	"fmt"
	"sort"

	"github.com/pescuma/churn/lib/workspace"
)

type FilesCmd struct {
	Paths        []string `short:"p" help:"Globs of the files to include. Prefix with ! to exclude."`
	FileTypes    []string `short:"t" help:"Extensions of the files to include."`
	SkipVendored bool     `help:"Ignore vendored files."`
}

func (c *FilesCmd) Run(ctx *context) error {
	files, err := ctx.ws.Files(&workspace.RangeOptions{
		Paths:        c.Paths,
		FileTypes:    c.FileTypes,
		SkipVendored: c.SkipVendored,
	})
	if err != nil {
		return err
	}

	sort.Strings(files)

	for _, f := range files {
		fmt.Println(f)
	}

	return nil
}

type CheckoutCmd struct {
	Commit string `arg:"" help:"Commit to check out."`
}

func (c *CheckoutCmd) Run(ctx *context) error {
	return ctx.ws.Checkout(c.Commit)
}

type ResetCmd struct {
	Branch string `arg:"" optional:"" help:"Branch to check out after the reset."`
}

func (c *ResetCmd) Run(ctx *context) error {
	return ctx.ws.Reset(c.Branch)
}
