package main

import (
	"fmt"
	"strings"

	"github.com/aquilax/truncate"

	"github.com/pescuma/churn/lib/history"
	"github.com/pescuma/churn/lib/model"
)

type LogCmd struct {
	rangeFlags

	Reverse bool `help:"Show the oldest commits first."`
	Files   bool `help:"Show the modified files."`
	Lines   bool `help:"Show the lines added and removed in each file."`
}

func (c *LogCmd) Run(ctx *context) error {
	opts, err := c.options()
	if err != nil {
		return err
	}
	opts.Progress = false

	order := history.NewestFirst
	if c.Reverse {
		order = history.Reversed
	}

	return ctx.ws.Log(opts, order, func(commit *model.Commit) error {
		msg, _, _ := strings.Cut(strings.TrimSpace(commit.Msg), "\n")

		fmt.Printf("%v %v %v %v\n",
			commit.Hash[:10],
			commit.CommitterDate.Format("2006-01-02 15:04"),
			commit.Author.Name,
			truncate.Truncate(msg, 72, "...", truncate.PositionEnd))

		if !c.Files && !c.Lines {
			return nil
		}

		mods, err := commit.Modifications()
		if err != nil {
			return err
		}

		for _, mod := range mods {
			err = c.printModification(mod)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (c *LogCmd) printModification(mod *model.Modification) error {
	name := mod.Path()
	if mod.ChangeType == model.ChangeRename {
		name = mod.OldPath + " -> " + mod.NewPath
	}

	if !c.Lines {
		fmt.Printf("    %-6v %v\n", mod.ChangeType, name)
		return nil
	}

	failed, err := mod.DecodeFailed()
	if err != nil {
		return err
	}
	if failed {
		fmt.Printf("    %-6v %v (binary)\n", mod.ChangeType, name)
		return nil
	}

	added, err := mod.Added()
	if err != nil {
		return err
	}

	removed, err := mod.Removed()
	if err != nil {
		return err
	}

	fmt.Printf("    %-6v %v +%v -%v\n", mod.ChangeType, name, added, removed)
	return nil
}
