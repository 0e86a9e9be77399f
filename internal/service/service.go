// Package service ties the loader, the M3U core and the session store together.
// Each session holds one snapshot that every load replaces as a whole.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/voyagen/m3ugroups/internal/fetcher"
	"github.com/voyagen/m3ugroups/internal/m3u"
	"github.com/voyagen/m3ugroups/internal/metrics"
	"github.com/voyagen/m3ugroups/internal/models"
	"github.com/voyagen/m3ugroups/internal/selection"
	"github.com/voyagen/m3ugroups/internal/store"
)

// ErrUnknownGroup is returned when a group id references no group of the snapshot.
var ErrUnknownGroup = errors.New("group not found")

// StatusNotLoaded is the status of a session that has not loaded a playlist yet.
const StatusNotLoaded = "not_loaded"

// Summary is what a renderer needs besides the lists themselves.
type Summary struct {
	SessionID        string    `json:"session_id"`
	Status           string    `json:"status"`
	Message          string    `json:"message"`
	Source           string    `json:"source,omitempty"`
	Channels         int       `json:"channels"`
	Groups           int       `json:"groups"`
	SelectedGroups   int       `json:"selected_groups"`
	SelectedChannels int       `json:"selected_channels"`
	LoadedAt         time.Time `json:"loaded_at"`
}

// GroupState is a group plus whether it is currently selected.
type GroupState struct {
	models.Group
	Selected bool `json:"selected"`
}

// Service manages playlist sessions.
type Service struct {
	store  store.Store
	parser m3u.Parser
	fetch  fetcher.Options
	log    logrus.FieldLogger
	now    func() time.Time
}

// New creates a Service. parser controls group collation; opts apply to URL loads.
func New(s store.Store, parser m3u.Parser, opts fetcher.Options, log logrus.FieldLogger) *Service {
	return &Service{store: s, parser: parser, fetch: opts, log: log, now: time.Now}
}

// NewSession creates an empty session and returns its id.
func (s *Service) NewSession(ctx context.Context) (string, error) {
	id := uuid.NewString()
	snap := &models.Snapshot{
		Entries:  []models.Channel{},
		Groups:   []models.Group{},
		Selected: []int64{},
		Status:   StatusNotLoaded,
		Message:  "No playlist loaded",
	}
	if err := s.store.Create(ctx, id, snap); err != nil {
		return "", fmt.Errorf("NewSession: %w", err)
	}
	s.log.WithField("session", id).Debug("session created")
	return id, nil
}

// EndSession discards a session.
func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// LoadURL fetches a playlist and replaces the session snapshot with its parse.
// On a fetch failure the previous snapshot is left untouched.
func (s *Service) LoadURL(ctx context.Context, sessionID, rawURL string) (*Summary, error) {
	if _, err := s.store.Get(ctx, sessionID); err != nil {
		return nil, err
	}
	text, err := fetcher.Fetch(ctx, rawURL, s.fetch)
	if err != nil {
		metrics.PlaylistLoadFailuresTotal.WithLabelValues("url").Inc()
		s.log.WithFields(logrus.Fields{"session": sessionID, "url": rawURL}).WithError(err).Warn("playlist fetch failed")
		return nil, err
	}
	return s.LoadText(ctx, sessionID, text, rawURL)
}

// LoadText parses text and replaces the session snapshot, resetting the selection.
// Zero-entry outcomes still replace the snapshot; they are reported through Summary.Status.
func (s *Service) LoadText(ctx context.Context, sessionID, text, source string) (*Summary, error) {
	res := s.parser.Parse(m3u.SplitLines(text))
	metrics.PlaylistParsesTotal.WithLabelValues(res.Status.String()).Inc()
	metrics.PlaylistEntriesParsed.Observe(float64(len(res.Entries)))

	loaded := models.Snapshot{
		Entries:  res.Entries,
		Groups:   res.Groups,
		Selected: []int64{},
		Status:   res.Status.String(),
		Message:  res.Message(),
		Source:   source,
		LoadedAt: s.now().UTC(),
	}
	snap, err := s.store.Update(ctx, sessionID, func(cur *models.Snapshot) error {
		*cur = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	entry := s.log.WithFields(logrus.Fields{
		"session": sessionID,
		"status":  loaded.Status,
		"entries": len(loaded.Entries),
		"groups":  len(loaded.Groups),
	})
	if res.Err() != nil {
		entry.Warn(loaded.Message)
	} else {
		entry.Info(loaded.Message)
	}
	return summarize(sessionID, snap), nil
}

// Summary returns the session's counters and status.
func (s *Service) Summary(ctx context.Context, sessionID string) (*Summary, error) {
	snap, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return summarize(sessionID, snap), nil
}

// Groups returns the groups in display order with their selection state.
func (s *Service) Groups(ctx context.Context, sessionID string) ([]GroupState, error) {
	snap, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	set := selection.FromIDs(snap.Selected)
	out := make([]GroupState, 0, len(snap.Groups))
	for _, g := range snap.Groups {
		out = append(out, GroupState{Group: g, Selected: set.Has(g.ID)})
	}
	return out, nil
}

// Channels returns all entries, or only those in selected groups.
func (s *Service) Channels(ctx context.Context, sessionID string, selectedOnly bool) ([]models.Channel, error) {
	snap, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !selectedOnly {
		return snap.Entries, nil
	}
	return selection.Filter(snap.Entries, snap.Groups, selection.FromIDs(snap.Selected)), nil
}

// ToggleGroup flips the selection state of one group.
func (s *Service) ToggleGroup(ctx context.Context, sessionID string, groupID int64) (*Summary, error) {
	return s.updateSelection(ctx, sessionID, func(snap *models.Snapshot, set selection.Set) (selection.Set, error) {
		if _, ok := snap.GroupByID(groupID); !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownGroup, groupID)
		}
		set.Toggle(groupID)
		return set, nil
	})
}

// SelectAll selects every group of the snapshot.
func (s *Service) SelectAll(ctx context.Context, sessionID string) (*Summary, error) {
	return s.updateSelection(ctx, sessionID, func(snap *models.Snapshot, _ selection.Set) (selection.Set, error) {
		return selection.All(snap.Groups), nil
	})
}

// DeselectAll clears the selection.
func (s *Service) DeselectAll(ctx context.Context, sessionID string) (*Summary, error) {
	return s.updateSelection(ctx, sessionID, func(*models.Snapshot, selection.Set) (selection.Set, error) {
		return selection.None(), nil
	})
}

// Export generates the playlist for the current selection.
func (s *Service) Export(ctx context.Context, sessionID string) (*Export, error) {
	snap, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	exp, err := BuildExport(snap.Entries, snap.Groups, selection.FromIDs(snap.Selected), s.now())
	if err != nil {
		s.log.WithField("session", sessionID).Warn(err.Error())
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"session": sessionID, "channels": exp.Channels, "file": exp.Filename}).Info("playlist exported")
	return exp, nil
}

func (s *Service) updateSelection(ctx context.Context, sessionID string, fn func(*models.Snapshot, selection.Set) (selection.Set, error)) (*Summary, error) {
	snap, err := s.store.Update(ctx, sessionID, func(cur *models.Snapshot) error {
		next, err := fn(cur, selection.FromIDs(cur.Selected))
		if err != nil {
			return err
		}
		cur.Selected = selection.Prune(next, cur.Groups).IDs()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summarize(sessionID, snap), nil
}

func summarize(sessionID string, snap *models.Snapshot) *Summary {
	set := selection.FromIDs(snap.Selected)
	return &Summary{
		SessionID:        sessionID,
		Status:           snap.Status,
		Message:          snap.Message,
		Source:           snap.Source,
		Channels:         len(snap.Entries),
		Groups:           len(snap.Groups),
		SelectedGroups:   len(selection.SelectedGroups(snap.Groups, set)),
		SelectedChannels: len(selection.Filter(snap.Entries, snap.Groups, set)),
		LoadedAt:         snap.LoadedAt,
	}
}
