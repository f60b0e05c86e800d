package metrics

import (
	"testing"

	"github.com/bloomberg/go-testgroup"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/churn/lib/git"
	"github.com/pescuma/churn/lib/git/gittest"
	"github.com/pescuma/churn/lib/vcs"
)

func TestCountUntilCreation(t *testing.T) {
	testgroup.RunSerially(t, &CountUntilCreationTests{})
}

type CountUntilCreationTests struct {
	repo    *git.Repository
	commits []string
	other   string
}

func (g *CountUntilCreationTests) PreTest(t *testgroup.T) {
	content := "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n"

	r := gittest.NewRepo(t.T)
	r.Write("before.txt", "b\n").Commit("c0", "W", "w@example.com")
	r.Branch("side")

	g.commits = []string{
		r.Write("a.py", content).Commit("c1", "X", "x@example.com"),
		r.Write("a.py", content+"11\n").Commit("c2", "Y", "y@example.com"),
		r.Move("a.py", "b.py").Commit("c3", "Z", "z@example.com"),
		r.Write("b.py", content+"12\n").Commit("c4", "Y", "y@example.com"),
		r.Write("other.py", "o\n").Commit("c5", "X", "x@example.com"),
	}

	r.Checkout("side")
	g.other = r.Write("side.txt", "s\n").Commit("side", "W", "w@example.com")
	r.Checkout("master")

	var err error
	g.repo, err = git.Open(r.Dir)
	t.Require.NoError(err)
}

func (g *CountUntilCreationTests) count(t *testgroup.T, path string, boundary string, kind CountKind) int {
	result, err := CountUntilCreation(g.repo, path, boundary, kind)
	t.Require.NoError(err)
	return result
}

func (g *CountUntilCreationTests) DevelopersFromHead(t *testgroup.T) {
	t.Equal(3, g.count(t, "b.py", "", DistinctDevelopers))
}

func (g *CountUntilCreationTests) CommitsFromHead(t *testgroup.T) {
	t.Equal(4, g.count(t, "b.py", "", Commits))
}

func (g *CountUntilCreationTests) BoundaryAtCreation(t *testgroup.T) {
	t.Equal(1, g.count(t, "a.py", g.commits[0], DistinctDevelopers))
	t.Equal(1, g.count(t, "a.py", g.commits[0], Commits))
}

func (g *CountUntilCreationTests) BoundaryBeforeRename(t *testgroup.T) {
	t.Equal(2, g.count(t, "a.py", g.commits[1], DistinctDevelopers))
	t.Equal(2, g.count(t, "a.py", g.commits[1], Commits))
}

func (g *CountUntilCreationTests) BoundaryAtRename(t *testgroup.T) {
	t.Equal(3, g.count(t, "b.py", g.commits[2], DistinctDevelopers))
	t.Equal(3, g.count(t, "b.py", g.commits[2], Commits))
}

func (g *CountUntilCreationTests) WindowsSeparators(t *testgroup.T) {
	t.Equal(1, g.count(t, ".\\other.py", "", Commits))
}

func (g *CountUntilCreationTests) UnknownBoundary(t *testgroup.T) {
	_, err := CountUntilCreation(g.repo, "b.py", "0000000000000000000000000000000000000001", Commits)
	t.True(errors.Is(err, vcs.ErrCommitNotFound))
}

func (g *CountUntilCreationTests) UnreachableBoundary(t *testgroup.T) {
	_, err := CountUntilCreation(g.repo, "b.py", g.other, Commits)
	t.True(errors.Is(err, vcs.ErrCommitNotFound))
}

func TestCountUntilCreationStopsAtTheAdd(t *testing.T) {
	t.Parallel()

	r := gittest.NewRepo(t)
	c1 := r.Write("a.py", "1\n").Commit("c1", "X", "x@example.com")
	r.Write("a.py", "2\n").Commit("c2", "Y", "y@example.com")

	repo := open(t, r)

	all, err := CountUntilCreation(repo, "a.py", "", DistinctDevelopers)
	require.NoError(t, err)
	assert.Equal(t, 2, all)

	first, err := CountUntilCreation(repo, "a.py", c1, DistinctDevelopers)
	require.NoError(t, err)
	assert.Equal(t, 1, first)
}
