// Package selection tracks which groups of a parsed playlist are selected and
// resolves a selection to the channels it covers.
package selection

import (
	"sort"

	"github.com/voyagen/m3ugroups/internal/models"
)

// Set is a set of selected group ids.
type Set map[int64]struct{}

// None returns an empty selection.
func None() Set {
	return Set{}
}

// All selects every group.
func All(groups []models.Group) Set {
	s := make(Set, len(groups))
	for _, g := range groups {
		s[g.ID] = struct{}{}
	}
	return s
}

// FromIDs builds a set from ids, ignoring duplicates.
func FromIDs(ids []int64) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is selected.
func (s Set) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Toggle adds id when absent and removes it when present.
func (s Set) Toggle(id int64) {
	if s.Has(id) {
		delete(s, id)
		return
	}
	s[id] = struct{}{}
}

// IDs returns the selected ids in ascending order.
func (s Set) IDs() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Prune returns a copy of s without ids that reference no group.
func Prune(s Set, groups []models.Group) Set {
	out := make(Set, len(s))
	for _, g := range groups {
		if s.Has(g.ID) {
			out[g.ID] = struct{}{}
		}
	}
	return out
}

// SelectedGroups returns the selected groups in the order of groups.
func SelectedGroups(groups []models.Group, s Set) []models.Group {
	out := []models.Group{}
	for _, g := range groups {
		if s.Has(g.ID) {
			out = append(out, g)
		}
	}
	return out
}

// Filter returns the entries whose GroupTitle names a selected group, in their
// playlist order. Membership is by name, so groups sharing a name under
// different ids behave as one group and no entry is returned twice.
func Filter(entries []models.Channel, groups []models.Group, s Set) []models.Channel {
	names := make(map[string]struct{})
	for _, g := range SelectedGroups(groups, s) {
		names[g.Name] = struct{}{}
	}

	out := []models.Channel{}
	if len(names) == 0 {
		return out
	}
	for _, e := range entries {
		if _, ok := names[e.GroupTitle]; ok {
			out = append(out, e)
		}
	}
	return out
}

// ByNames selects every group whose name is in names. Names that match no
// group are returned in missing, in input order.
func ByNames(groups []models.Group, names []string) (s Set, missing []string) {
	s = None()
	for _, name := range names {
		found := false
		for _, g := range groups {
			if g.Name == name {
				s[g.ID] = struct{}{}
				found = true
			}
		}
		if !found {
			missing = append(missing, name)
		}
	}
	return s, missing
}
