package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// maxPlaylistBytes bounds uploaded playlist bodies.
const maxPlaylistBytes = 64 << 20

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- session handlers ---

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.svc.NewSession(r.Context())
	if err != nil {
		s.writeServiceErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"session_id": id})
}

func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.Summary(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.EndSession(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceErr(w, err)
		return
	}
	writeNoContent(w)
}

type loadPlaylistRequest struct {
	URL string `json:"url"`
}

// handleLoadPlaylist accepts either {"url": "..."} as JSON or the raw playlist text.
func (s *Server) handleLoadPlaylist(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	r.Body = http.MaxBytesReader(w, r.Body, maxPlaylistBytes)

	if isJSON(r) {
		var req loadPlaylistRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
			return
		}
		if req.URL == "" {
			s.writeErr(w, http.StatusBadRequest, fmt.Errorf("url is required"))
			return
		}
		if u, err := url.ParseRequestURI(req.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			s.writeErr(w, http.StatusBadRequest, fmt.Errorf("url must be a valid http or https URL"))
			return
		}
		sum, err := s.svc.LoadURL(r.Context(), sessionID, req.URL)
		if err != nil {
			s.writeServiceErr(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, sum)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeErr(w, http.StatusRequestEntityTooLarge, fmt.Errorf("playlist exceeds %d bytes", tooLarge.Limit))
			return
		}
		s.writeErr(w, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return
	}
	source := r.URL.Query().Get("name")
	if source == "" {
		source = "upload"
	}
	sum, err := s.svc.LoadText(r.Context(), sessionID, string(body), source)
	if err != nil {
		s.writeServiceErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sum)
}

// --- group handlers ---

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.svc.Groups(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleToggleGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := parseID(r, "groupID")
	if err != nil {
		s.writeErr(w, http.StatusBadRequest, err)
		return
	}
	sum, err := s.svc.ToggleGroup(r.Context(), r.PathValue("id"), groupID)
	if err != nil {
		s.writeServiceErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleSelectAll(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.SelectAll(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleDeselectAll(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.DeselectAll(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sum)
}

// --- channel handlers ---

func (s *Server) handleListChannels(w http.ResponseWriter, r *http.Request) {
	selectedOnly := false
	if v := r.URL.Query().Get("selected"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid selected: %s", v))
			return
		}
		selectedOnly = b
	}
	channels, err := s.svc.Channels(r.Context(), r.PathValue("id"), selectedOnly)
	if err != nil {
		s.writeServiceErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, channels)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	exp, err := s.svc.Export(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "audio/x-mpegurl")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": exp.Filename}))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, exp.Content); err != nil {
		s.log.WithError(err).Warn("write export")
	}
}

func isJSON(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && strings.EqualFold(ct, "application/json")
}
