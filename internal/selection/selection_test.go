package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voyagen/m3ugroups/internal/models"
)

var (
	testEntries = []models.Channel{
		{ID: 1, GroupTitle: "News", Title: "BBC One"},
		{ID: 2, GroupTitle: "Sports", Title: "ESPN"},
		{ID: 3, GroupTitle: "News", Title: "CNN"},
		{ID: 4, GroupTitle: "Ungrouped", Title: "Local"},
	}
	testGroups = []models.Group{
		{ID: 1, Name: "News", Count: 2},
		{ID: 2, Name: "Sports", Count: 1},
		{ID: 3, Name: "Ungrouped", Count: 1},
	}
)

func titles(entries []models.Channel) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Title)
	}
	return out
}

func TestFilterAllAndNone(t *testing.T) {
	assert.Equal(t, testEntries, Filter(testEntries, testGroups, All(testGroups)))

	none := Filter(testEntries, testGroups, None())
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestFilterPreservesOrder(t *testing.T) {
	got := Filter(testEntries, testGroups, FromIDs([]int64{3, 1}))
	assert.Equal(t, []string{"BBC One", "CNN", "Local"}, titles(got))
}

func TestFilterUnknownIDs(t *testing.T) {
	assert.Empty(t, Filter(testEntries, testGroups, FromIDs([]int64{42})))
}

func TestFilterDuplicateGroupNames(t *testing.T) {
	groups := append([]models.Group{}, testGroups...)
	groups = append(groups, models.Group{ID: 9, Name: "News", Count: 2})

	got := Filter(testEntries, groups, FromIDs([]int64{1, 9}))
	assert.Equal(t, []string{"BBC One", "CNN"}, titles(got))

	// Selecting either id alone selects the shared name.
	got = Filter(testEntries, groups, FromIDs([]int64{9}))
	assert.Equal(t, []string{"BBC One", "CNN"}, titles(got))
}

func TestToggle(t *testing.T) {
	s := None()
	s.Toggle(2)
	assert.True(t, s.Has(2))
	s.Toggle(1)
	assert.Equal(t, []int64{1, 2}, s.IDs())
	s.Toggle(2)
	assert.False(t, s.Has(2))
	assert.Equal(t, []int64{1}, s.IDs())
}

func TestAllAndPrune(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 3}, All(testGroups).IDs())

	pruned := Prune(FromIDs([]int64{1, 7, 3}), testGroups)
	assert.Equal(t, []int64{1, 3}, pruned.IDs())
}

func TestSelectedGroups(t *testing.T) {
	got := SelectedGroups(testGroups, FromIDs([]int64{3, 2}))
	assert.Equal(t, []models.Group{testGroups[1], testGroups[2]}, got)
	assert.Empty(t, SelectedGroups(testGroups, None()))
}

func TestByNames(t *testing.T) {
	s, missing := ByNames(testGroups, []string{"Sports", "Movies", "News"})
	assert.Equal(t, []int64{1, 2}, s.IDs())
	assert.Equal(t, []string{"Movies"}, missing)

	s, missing = ByNames(testGroups, nil)
	assert.Empty(t, s)
	assert.Nil(t, missing)
}
