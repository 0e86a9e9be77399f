package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/voyagen/m3ugroups/internal/fetcher"
	"github.com/voyagen/m3ugroups/internal/service"
	"github.com/voyagen/m3ugroups/internal/store"
)

// APIError is the standard error envelope for all error responses.
type APIError struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// statusFor maps service and store errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, service.ErrUnknownGroup):
		return http.StatusNotFound
	case errors.Is(err, store.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, service.ErrNothingSelected), errors.Is(err, service.ErrNoChannelsSelected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, fetcher.ErrLoad):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeServiceErr(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= 500 {
		s.log.WithError(err).WithField("status", status).Error("request failed")
	}
	s.writeErr(w, status, err)
}

// parseID extracts a path parameter by name and parses it as int64.
func parseID(r *http.Request, param string) (int64, error) {
	v := r.PathValue(param)
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", param, v)
	}
	return id, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Warn("writeJSON")
	}
}

func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeErr(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, APIError{
		Status: status,
		Error:  http.StatusText(status),
		Detail: err.Error(),
	})
}
