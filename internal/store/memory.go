package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/voyagen/m3ugroups/internal/models"
)

type memoryEntry struct {
	snap    *models.Snapshot
	expires time.Time
}

// Memory is an in-process Store. Sessions expire ttl after their last write.
type Memory struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

// NewMemory creates a Memory store whose sessions live for ttl after each write.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, now: time.Now, sessions: make(map[string]memoryEntry)}
}

func (m *Memory) Create(_ context.Context, sessionID string, snap *models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(sessionID, snap)
	return nil
}

func (m *Memory) Get(_ context.Context, sessionID string) (*models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return clone(snap), nil
}

func (m *Memory) Update(_ context.Context, sessionID string, fn func(*models.Snapshot) error) (*models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	next := clone(snap)
	if err := fn(next); err != nil {
		return nil, err
	}
	m.put(sessionID, next)
	return clone(next), nil
}

func (m *Memory) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.lookup(sessionID); err != nil {
		return err
	}
	delete(m.sessions, sessionID)
	return nil
}

// Sweep drops every expired session and returns how many were removed.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ttl <= 0 {
		return 0
	}
	now := m.now()
	n := 0
	for id, e := range m.sessions {
		if now.After(e.expires) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// lookup returns the live snapshot, dropping it if expired. Caller holds mu.
func (m *Memory) lookup(sessionID string) (*models.Snapshot, error) {
	e, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	if m.ttl > 0 && m.now().After(e.expires) {
		delete(m.sessions, sessionID)
		return nil, ErrNotFound
	}
	return e.snap, nil
}

func (m *Memory) put(sessionID string, snap *models.Snapshot) {
	m.sessions[sessionID] = memoryEntry{snap: clone(snap), expires: m.now().Add(m.ttl)}
}

// clone copies the snapshot's slices so callers cannot mutate stored state.
func clone(s *models.Snapshot) *models.Snapshot {
	c := *s
	c.Entries = slices.Clone(s.Entries)
	c.Groups = slices.Clone(s.Groups)
	c.Selected = slices.Clone(s.Selected)
	return &c
}
