package models

// Group represents a group-title bucket. IDs follow first-discovery order and are
// not renumbered when the list is sorted by name.
type Group struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}
