package models

// Default values applied when an EXTINF line omits the attribute or title.
const (
	DefaultGroupTitle = "Ungrouped"
	DefaultTitle      = "Unnamed Channel"
)

// Channel represents a single playlist entry parsed from an EXTINF/URL line pair.
type Channel struct {
	ID         int64  `json:"id"`
	TvgID      string `json:"tvg_id"`
	TvgName    string `json:"tvg_name"`
	TvgLogo    string `json:"tvg_logo"`
	GroupTitle string `json:"group_title"`
	Title      string `json:"title"`
	URL        string `json:"url"`
}
