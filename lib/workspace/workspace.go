package workspace

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/pescuma/churn/lib/config"
	"github.com/pescuma/churn/lib/consoles"
	"github.com/pescuma/churn/lib/filters"
	"github.com/pescuma/churn/lib/git"
	"github.com/pescuma/churn/lib/history"
	"github.com/pescuma/churn/lib/metrics"
	"github.com/pescuma/churn/lib/model"
	"github.com/pescuma/churn/lib/utils"
)

type Workspace struct {
	console consoles.Console
	dir     string
	config  *config.Config

	// Traversals hold the read lock, checkout and reset the write lock
	worktree sync.RWMutex
}

func NewWorkspace(dir string, configFile string, console consoles.Console) (*Workspace, error) {
	dir, err := utils.PathAbs(dir)
	if err != nil {
		return nil, err
	}

	if configFile == "" {
		configFile, err = config.Find(dir)
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	if console == nil {
		console = consoles.NewNullConsole()
	}

	if configFile != "" {
		console.Debugf("Using config file %v\n", configFile)
	}

	return &Workspace{
		console: console,
		dir:     dir,
		config:  cfg,
	}, nil
}

func (w *Workspace) Console() consoles.Console {
	return w.console
}

func (w *Workspace) Dir() string {
	return w.dir
}

func (w *Workspace) Config() *config.Config {
	return w.config
}

type RangeOptions struct {
	Branch  string
	From    string
	To      string
	FromTag string
	ToTag   string
	Since   *time.Time
	Until   *time.Time

	FirstParentOnly bool

	Paths        []string
	FileTypes    []string
	SkipVendored bool

	Commits []string

	Progress bool
}

// historyOptions fills what was not set in opts with the config file values.
func (w *Workspace) historyOptions(opts *RangeOptions) history.Options {
	if opts == nil {
		opts = &RangeOptions{}
	}

	return history.Options{
		Branch:          lo.Ternary(opts.Branch != "", opts.Branch, w.config.Branch),
		From:            opts.From,
		To:              opts.To,
		FromTag:         opts.FromTag,
		ToTag:           opts.ToTag,
		Since:           opts.Since,
		Until:           opts.Until,
		FirstParentOnly: opts.FirstParentOnly || w.config.FirstParentOnly,
		Paths: filters.PathOptions{
			Patterns:     lo.Ternary(len(opts.Paths) > 0, opts.Paths, w.config.Paths),
			FileTypes:    lo.Ternary(len(opts.FileTypes) > 0, opts.FileTypes, w.config.FileTypes),
			SkipVendored: opts.SkipVendored || w.config.SkipVendored,
		},
		// Rules are and'ed, so the config ones always apply
		Commits: append(append([]string{}, w.config.Commits...), opts.Commits...),
		Console: w.console,
	}
}

func (w *Workspace) open() (*git.Repository, error) {
	return git.Open(w.dir)
}

func compute[R any](w *Workspace, agg metrics.Aggregator[R], opts *RangeOptions) (R, error) {
	var empty R

	w.worktree.RLock()
	defer w.worktree.RUnlock()

	repo, err := w.open()
	if err != nil {
		return empty, err
	}

	mopts := &metrics.Options{
		History: w.historyOptions(opts),
	}

	var bar *progressbar.ProgressBar
	if opts != nil && opts.Progress {
		mopts.OnStart = func(total int) {
			bar = utils.NewProgressBar(total)
		}
		mopts.OnCommit = func(*model.Commit) {
			_ = bar.Add(1)
		}
	}

	result, err := metrics.Compute[R](repo, agg, mopts)

	if bar != nil {
		_ = bar.Finish()
	}

	return result, err
}

func (w *Workspace) CommitsCount(opts *RangeOptions) (map[string]int, error) {
	return compute[map[string]int](w, metrics.NewCommitsCount(), opts)
}

func (w *Workspace) LinesCount(opts *RangeOptions) (map[string]metrics.Lines, error) {
	return compute[map[string]metrics.Lines](w, metrics.NewLinesCount(), opts)
}

func (w *Workspace) ContributorsCount(opts *RangeOptions) (map[string]metrics.Contributors, error) {
	agg := metrics.NewContributorsCount()
	agg.Threshold = w.config.MinorContributorThreshold

	return compute[map[string]metrics.Contributors](w, agg, opts)
}

func (w *Workspace) MinorContributorsCount(opts *RangeOptions) (map[string]int, error) {
	agg := metrics.NewMinorContributorsCount()
	agg.Threshold = w.config.MinorContributorThreshold

	return compute[map[string]int](w, agg, opts)
}

func (w *Workspace) ChurnCount(opts *RangeOptions, modifiedLines bool) (map[string]metrics.Churn, error) {
	agg := metrics.NewChurnCount()
	agg.CountModifiedLines = modifiedLines

	return compute[map[string]metrics.Churn](w, agg, opts)
}

func (w *Workspace) countUntilCreation(path string, boundary string, kind metrics.CountKind) (int, error) {
	w.worktree.RLock()
	defer w.worktree.RUnlock()

	repo, err := w.open()
	if err != nil {
		return 0, err
	}

	return metrics.CountUntilCreation(repo, path, boundary, kind)
}

func (w *Workspace) DevCount(path string, boundary string) (int, error) {
	return w.countUntilCreation(path, boundary, metrics.DistinctDevelopers)
}

func (w *Workspace) CommitCount(path string, boundary string) (int, error) {
	return w.countUntilCreation(path, boundary, metrics.Commits)
}

type FileSummary struct {
	Path string

	Commits      int
	Lines        metrics.Lines
	Contributors metrics.Contributors
	Churn        metrics.Churn
}

// Summary computes all the file metrics in parallel, each one over its own repository handle.
func (w *Workspace) Summary(opts *RangeOptions) ([]*FileSummary, error) {
	w.worktree.RLock()
	defer w.worktree.RUnlock()

	var commits map[string]int
	var lines map[string]metrics.Lines
	var contributors map[string]metrics.Contributors
	var churns map[string]metrics.Churn

	hopts := w.historyOptions(opts)

	g := errgroup.Group{}
	run := func(name string, f func(repo *git.Repository, mopts *metrics.Options) error) {
		g.Go(func() error {
			start := time.Now()

			repo, err := w.open()
			if err != nil {
				return err
			}

			err = f(repo, &metrics.Options{History: hopts})
			if err != nil {
				return err
			}

			w.console.Debugf("Computed %v in %v\n", name, time.Since(start).Round(time.Millisecond))
			return nil
		})
	}

	run("commits", func(repo *git.Repository, mopts *metrics.Options) (err error) {
		commits, err = metrics.Compute[map[string]int](repo, metrics.NewCommitsCount(), mopts)
		return
	})
	run("lines", func(repo *git.Repository, mopts *metrics.Options) (err error) {
		lines, err = metrics.Compute[map[string]metrics.Lines](repo, metrics.NewLinesCount(), mopts)
		return
	})
	run("contributors", func(repo *git.Repository, mopts *metrics.Options) (err error) {
		agg := metrics.NewContributorsCount()
		agg.Threshold = w.config.MinorContributorThreshold
		contributors, err = metrics.Compute[map[string]metrics.Contributors](repo, agg, mopts)
		return
	})
	run("churn", func(repo *git.Repository, mopts *metrics.Options) (err error) {
		churns, err = metrics.Compute[map[string]metrics.Churn](repo, metrics.NewChurnCount(), mopts)
		return
	})

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	result := lo.Map(lo.Keys(commits), func(path string, _ int) *FileSummary {
		return &FileSummary{
			Path:         path,
			Commits:      commits[path],
			Lines:        lines[path],
			Contributors: contributors[path],
			Churn:        churns[path],
		}
	})

	slices.SortFunc(result, func(a, b *FileSummary) int {
		return strings.Compare(a.Path, b.Path)
	})

	return result, nil
}

// Log streams the commits in the range. Only the modifications matching the path options are returned.
func (w *Workspace) Log(opts *RangeOptions, order history.Order, cb func(*model.Commit) error) error {
	w.worktree.RLock()
	defer w.worktree.RUnlock()

	repo, err := w.open()
	if err != nil {
		return err
	}

	hopts := w.historyOptions(opts)
	hopts.Order = order

	stream, err := history.Traverse(repo, &hopts)
	if err != nil {
		return err
	}

	return stream.ForEach(cb)
}

// Files lists the files in the working tree that match the path options.
func (w *Workspace) Files(opts *RangeOptions) ([]string, error) {
	w.worktree.RLock()
	defer w.worktree.RUnlock()

	repo, err := w.open()
	if err != nil {
		return nil, err
	}

	files, err := repo.Files()
	if err != nil {
		return nil, err
	}

	filter, err := filters.ParsePathFilter(w.historyOptions(opts).Paths)
	if err != nil {
		return nil, err
	}

	if filter != nil {
		files = lo.Filter(files, func(f string, _ int) bool { return filter(f) })
	}

	return files, nil
}

func (w *Workspace) Checkout(id string) error {
	w.worktree.Lock()
	defer w.worktree.Unlock()

	repo, err := w.open()
	if err != nil {
		return err
	}

	w.console.Printf("Checking out %v\n", id)

	return repo.Checkout(id)
}

func (w *Workspace) Reset(branch string) error {
	w.worktree.Lock()
	defer w.worktree.Unlock()

	repo, err := w.open()
	if err != nil {
		return err
	}

	w.console.Printf("Resetting to %v\n", branch)

	return repo.Reset(branch)
}
