package models

import "time"

// Snapshot is the complete state of one loaded playlist: entries, derived groups
// and the current group selection. It is replaced as a whole on every load.
type Snapshot struct {
	Entries  []Channel `json:"entries"`
	Groups   []Group   `json:"groups"`
	Selected []int64   `json:"selected"`
	Status   string    `json:"status"`
	Message  string    `json:"message"`
	Source   string    `json:"source,omitempty"`
	LoadedAt time.Time `json:"loaded_at"`
}

// GroupByID returns the group with the given id, if any.
func (s *Snapshot) GroupByID(id int64) (Group, bool) {
	for _, g := range s.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}
