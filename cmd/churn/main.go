package main

import (
	"github.com/alecthomas/kong"

	"github.com/pescuma/churn/lib/consoles"
	"github.com/pescuma/churn/lib/workspace"
)

var cli struct {
	Repo    string `short:"r" default:"." type:"existingdir" help:"Git repository to analyze."`
	Config  string `short:"c" type:"path" help:"Config file. Default is .churn.yaml inside the repository, if it exists."`
	Verbose bool   `short:"v" help:"Show debug messages."`

	Summary           SummaryCmd           `cmd:"" help:"Show all file metrics together."`
	Commits           CommitsCmd           `cmd:"" help:"Number of commits that touched each file."`
	Lines             LinesCmd             `cmd:"" help:"Lines added and removed in each file."`
	Contributors      ContributorsCmd      `cmd:"" help:"Number of distinct authors of each file."`
	MinorContributors MinorContributorsCmd `cmd:"" help:"Number of authors of each file that wrote only a small share of it."`
	Churn             ChurnCmd             `cmd:"" help:"Code churn (added minus removed lines) of each file."`
	DevCount          DevCountCmd          `cmd:"" help:"Distinct developers of one file until its creation."`
	CommitCount       CommitCountCmd       `cmd:"" help:"Commits of one file until its creation."`
	Log               LogCmd               `cmd:"" help:"List the commits in the range."`
	Files             FilesCmd             `cmd:"" help:"List the files in the working tree that match the filters."`
	Checkout          CheckoutCmd          `cmd:"" help:"Check out a commit in the working tree."`
	Reset             ResetCmd             `cmd:"" help:"Discard local changes and go back to a branch."`
}

type context struct {
	ws *workspace.Workspace
}

func main() {
	ctx := kong.Parse(&cli, kong.ShortUsageOnError())

	ws, err := workspace.NewWorkspace(cli.Repo, cli.Config, consoles.NewStdOutConsole(cli.Verbose))
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&context{
		ws: ws,
	})
	ctx.FatalIfErrorf(err)
}
