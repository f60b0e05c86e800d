package metrics

import (
	"github.com/samber/lo"

	"github.com/pescuma/churn/lib/model"
	"github.com/pescuma/churn/lib/renames"
)

// MinorContributorThreshold is the share of the lines of a file below which
// a contributor is minor. The comparison is strictly less than.
const MinorContributorThreshold = 0.05

type Contributors struct {
	Contributors int
	Minor        int
}

// ContributorsCount counts the distinct authors of each file, by trimmed
// email, and how many of them authored only a small share of its lines.
type ContributorsCount struct {
	Threshold float64

	paths *renames.ForwardCanonicalizer
	lines map[string]map[string]int
}

func NewContributorsCount() *ContributorsCount {
	return &ContributorsCount{
		Threshold: MinorContributorThreshold,
		paths:     renames.NewForwardCanonicalizer(),
		lines:     map[string]map[string]int{},
	}
}

func (a *ContributorsCount) Accumulate(commit *model.Commit, mod *model.Modification) error {
	path := a.paths.Observe(mod)

	added, err := mod.Added()
	if err != nil {
		return err
	}

	removed, err := mod.Removed()
	if err != nil {
		return err
	}

	byAuthor, ok := a.lines[path]
	if !ok {
		byAuthor = map[string]int{}
		a.lines[path] = byAuthor
	}

	byAuthor[commit.Author.Key()] += added + removed

	return nil
}

func (a *ContributorsCount) Finalize() map[string]Contributors {
	result := make(map[string]Contributors, len(a.lines))

	for path, byAuthor := range a.lines {
		total := lo.Sum(lo.Values(byAuthor))
		if total == 0 {
			continue
		}

		minor := lo.CountBy(lo.Values(byAuthor), func(lines int) bool {
			return float64(lines)/float64(total) < a.Threshold
		})

		result[path] = Contributors{
			Contributors: len(byAuthor),
			Minor:        minor,
		}
	}

	return result
}

// MinorContributorsCount reports only the number of minor contributors of each file.
type MinorContributorsCount struct {
	*ContributorsCount
}

func NewMinorContributorsCount() *MinorContributorsCount {
	return &MinorContributorsCount{
		ContributorsCount: NewContributorsCount(),
	}
}

func (a *MinorContributorsCount) Finalize() map[string]int {
	return lo.MapValues(a.ContributorsCount.Finalize(), func(c Contributors, _ string) int {
		return c.Minor
	})
}
