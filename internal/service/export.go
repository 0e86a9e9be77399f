package service

import (
	"errors"
	"time"

	"github.com/voyagen/m3ugroups/internal/m3u"
	"github.com/voyagen/m3ugroups/internal/metrics"
	"github.com/voyagen/m3ugroups/internal/models"
	"github.com/voyagen/m3ugroups/internal/selection"
)

var (
	// ErrNothingSelected is returned when an export is requested with no group selected.
	ErrNothingSelected = errors.New("please select at least one group to export")
	// ErrNoChannelsSelected is returned when the selected groups hold no channels.
	ErrNoChannelsSelected = errors.New("no channels found in selected groups")
)

// Export is a generated playlist ready to hand to a byte sink.
type Export struct {
	Filename string `json:"filename"`
	Content  string `json:"-"`
	Channels int    `json:"channels"`
}

// BuildExport generates the M3U text for the selected groups. It fails with
// ErrNothingSelected or ErrNoChannelsSelected instead of producing an empty file.
func BuildExport(entries []models.Channel, groups []models.Group, set selection.Set, now time.Time) (*Export, error) {
	if len(selection.SelectedGroups(groups, set)) == 0 {
		metrics.PlaylistExportsTotal.WithLabelValues("nothing_selected").Inc()
		return nil, ErrNothingSelected
	}
	channels := selection.Filter(entries, groups, set)
	if len(channels) == 0 {
		metrics.PlaylistExportsTotal.WithLabelValues("no_channels").Inc()
		return nil, ErrNoChannelsSelected
	}
	metrics.PlaylistExportsTotal.WithLabelValues("ok").Inc()
	return &Export{
		Filename: m3u.ExportFilename(now),
		Content:  m3u.Generate(channels),
		Channels: len(channels),
	}, nil
}
