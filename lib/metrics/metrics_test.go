package metrics

import (
	"strings"
	"testing"

	"github.com/bloomberg/go-testgroup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/churn/lib/filters"
	"github.com/pescuma/churn/lib/git"
	"github.com/pescuma/churn/lib/git/gittest"
	"github.com/pescuma/churn/lib/history"
	"github.com/pescuma/churn/lib/model"
)

func lines(n int, prefix string) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteString(prefix)
		sb.WriteString(strings.Repeat("x", i%7))
		sb.WriteString("\n")
	}
	return sb.String()
}

func open(t testing.TB, r *gittest.Repo) *git.Repository {
	repo, err := git.Open(r.Dir)
	require.NoError(t, err)
	return repo
}

func TestRenames(t *testing.T) {
	testgroup.RunInParallel(t, &RenameTests{})
}

type RenameTests struct{}

func (g *RenameTests) setup(t *testgroup.T) *git.Repository {
	r := gittest.NewRepo(t.T)
	r.Write("a.py", "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n").Commit("add", "X", "x@example.com")
	r.Move("a.py", "b.py").Write("b.py", "1\n2\n3\n4\n5\n6\n7\n8\n9\n11\n").Commit("rename", "Y", "y@example.com")
	return open(t.T, r)
}

func (g *RenameTests) CommitsCountFollowsRenames(t *testgroup.T) {
	result, err := Compute[map[string]int](g.setup(t), NewCommitsCount(), nil)
	t.Require.NoError(err)

	t.Equal(map[string]int{"b.py": 2}, result)
}

func (g *RenameTests) LinesCountFollowsRenames(t *testgroup.T) {
	result, err := Compute[map[string]Lines](g.setup(t), NewLinesCount(), nil)
	t.Require.NoError(err)

	t.Equal(map[string]Lines{"b.py": {Added: 11, Removed: 1}}, result)
}

func (g *RenameTests) ContributorsCountFollowsRenames(t *testgroup.T) {
	result, err := Compute[map[string]Contributors](g.setup(t), NewContributorsCount(), nil)
	t.Require.NoError(err)

	t.Equal(map[string]Contributors{"b.py": {Contributors: 2, Minor: 0}}, result)
}

func (g *RenameTests) OrderOptionIsIgnored(t *testgroup.T) {
	result, err := Compute[map[string]int](g.setup(t), NewCommitsCount(), &Options{
		History: history.Options{Order: history.Reversed},
	})
	t.Require.NoError(err)

	t.Equal(map[string]int{"b.py": 2}, result)
}

func TestRenameChain(t *testing.T) {
	t.Parallel()

	content := lines(20, "l")

	r := gittest.NewRepo(t)
	r.Write("a.go", content).Commit("add", "X", "x@example.com")
	r.Move("a.go", "b.go").Commit("first rename", "X", "x@example.com")
	r.Move("b.go", "c/d.go").Commit("second rename", "X", "x@example.com")
	r.Write("c/d.go", content+"more\n").Commit("modify", "X", "x@example.com")

	result, err := Compute[map[string]int](open(t, r), NewCommitsCount(), nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"c/d.go": 4}, result)
}

func TestLinesCountIsTheSumOfTheDiffs(t *testing.T) {
	t.Parallel()

	r := gittest.NewRepo(t)
	r.Write("a.txt", "1\n2\n3\n").Commit("c1", "X", "x@example.com")
	r.Write("a.txt", "1\n2\n4\n").Commit("c2", "X", "x@example.com")
	r.Write("a.txt", "1\n2\n4\n5\n6\n").Commit("c3", "X", "x@example.com")
	r.Write("b.txt", "b\n").Commit("c4", "X", "x@example.com")

	result, err := Compute[map[string]Lines](open(t, r), NewLinesCount(), nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]Lines{
		"a.txt": {Added: 6, Removed: 1},
		"b.txt": {Added: 1, Removed: 0},
	}, result)
}

func TestMinorContributors(t *testing.T) {
	t.Parallel()

	r := gittest.NewRepo(t)
	r.Write("a.py", lines(96, "x")).Commit("c1", "X", "x@example.com")
	r.Write("a.py", lines(96, "x")+lines(4, "y")).Commit("c2", "Y", " y@example.com ")

	repo := open(t, r)

	contributors, err := Compute[map[string]Contributors](repo, NewContributorsCount(), nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]Contributors{"a.py": {Contributors: 2, Minor: 1}}, contributors)

	minor, err := Compute[map[string]int](repo, NewMinorContributorsCount(), nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a.py": 1}, minor)
}

func TestMinorContributorsThresholdIsStrict(t *testing.T) {
	t.Parallel()

	r := gittest.NewRepo(t)
	r.Write("a.py", lines(95, "x")).Commit("c1", "X", "x@example.com")
	r.Write("a.py", lines(95, "x")+lines(5, "y")).Commit("c2", "Y", "y@example.com")

	result, err := Compute[map[string]Contributors](open(t, r), NewContributorsCount(), nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]Contributors{"a.py": {Contributors: 2, Minor: 0}}, result)
}

func TestContributorsCustomThreshold(t *testing.T) {
	t.Parallel()

	r := gittest.NewRepo(t)
	r.Write("a.py", lines(80, "x")).Commit("c1", "X", "x@example.com")
	r.Write("a.py", lines(80, "x")+lines(20, "y")).Commit("c2", "Y", "y@example.com")

	agg := NewContributorsCount()
	agg.Threshold = 0.25

	result, err := Compute[map[string]Contributors](open(t, r), agg, nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]Contributors{"a.py": {Contributors: 2, Minor: 1}}, result)
}

func TestFilesWithoutActivityAreDropped(t *testing.T) {
	t.Parallel()

	r := gittest.NewRepo(t)
	r.Write("empty.txt", "").Write("a.txt", "a\n").Commit("c1", "X", "x@example.com")

	repo := open(t, r)

	lc, err := Compute[map[string]Lines](repo, NewLinesCount(), nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]Lines{"a.txt": {Added: 1}}, lc)

	contributors, err := Compute[map[string]Contributors](repo, NewContributorsCount(), nil)
	require.NoError(t, err)
	assert.NotContains(t, contributors, "empty.txt")

	churns, err := Compute[map[string]Churn](repo, NewChurnCount(), nil)
	require.NoError(t, err)
	assert.NotContains(t, churns, "empty.txt")
}

func TestChurnCount(t *testing.T) {
	t.Parallel()

	r := gittest.NewRepo(t)
	r.Write("a.txt", "1\n2\n3\n").Commit("c1", "X", "x@example.com")
	r.Write("a.txt", "1\n3\n").Commit("c2", "X", "x@example.com")
	r.Write("a.txt", "1\n4\n").Commit("c3", "X", "x@example.com")

	agg := NewChurnCount()
	agg.CountModifiedLines = true

	result, err := Compute[map[string]Churn](open(t, r), agg, nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]Churn{
		"a.txt": {Sum: 2, Max: 3, Avg: 2.0 / 3.0, Changes: 3, Modified: 1},
	}, result)
}

func TestComputeWithWindowAndFilter(t *testing.T) {
	t.Parallel()

	r := gittest.NewRepo(t)
	c1 := r.Write("a.go", "1\n").Write("a.txt", "1\n").Commit("c1", "X", "x@example.com")
	c2 := r.Write("a.go", "2\n").Write("a.txt", "2\n").Commit("c2", "X", "x@example.com")
	r.Write("a.go", "3\n").Commit("c3", "X", "x@example.com")

	var total int
	var visited []string

	result, err := Compute[map[string]int](open(t, r), NewCommitsCount(), &Options{
		History: history.Options{
			From:  c1,
			To:    c2,
			Paths: filters.PathOptions{FileTypes: []string{"go"}},
		},
		OnStart: func(n int) { total = n },
		OnCommit: func(c *model.Commit) {
			visited = append(visited, c.Hash)
		},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"a.go": 2}, result)
	assert.Equal(t, 2, total)
	assert.Equal(t, []string{c2, c1}, visited)
}

func TestComputeUnknownBoundary(t *testing.T) {
	t.Parallel()

	r := gittest.NewRepo(t)
	r.Write("a.txt", "1\n").Commit("c1", "X", "x@example.com")

	_, err := Compute[map[string]int](open(t, r), NewCommitsCount(), &Options{
		History: history.Options{From: "0000000000000000000000000000000000000001"},
	})

	assert.Error(t, err)
}
