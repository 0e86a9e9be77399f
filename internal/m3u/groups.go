package m3u

import (
	"sort"

	"golang.org/x/text/collate"

	"github.com/voyagen/m3ugroups/internal/models"
)

// deriveGroups builds one group per distinct GroupTitle in first-appearance
// order. IDs start at 1 and count entries sharing the exact title.
func deriveGroups(entries []models.Channel) []models.Group {
	groups := []models.Group{}
	index := make(map[string]int)
	for _, e := range entries {
		if i, ok := index[e.GroupTitle]; ok {
			groups[i].Count++
			continue
		}
		index[e.GroupTitle] = len(groups)
		groups = append(groups, models.Group{
			ID:    int64(len(groups) + 1),
			Name:  e.GroupTitle,
			Count: 1,
		})
	}
	return groups
}

// sortGroups orders groups by name using the parser's locale collation; the
// zero Locale is the root locale. IDs keep their discovery values.
func (p Parser) sortGroups(groups []models.Group) []models.Group {
	c := collate.New(p.Locale)
	sort.SliceStable(groups, func(i, j int) bool {
		return c.CompareString(groups[i].Name, groups[j].Name) < 0
	})
	return groups
}
