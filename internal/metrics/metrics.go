// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Playlist metrics
var (
	PlaylistParsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "m3ugroups_playlist_parses_total",
			Help: "Total number of playlist parses by outcome status",
		},
		[]string{"status"},
	)

	PlaylistEntriesParsed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "m3ugroups_playlist_entries",
			Help:    "Number of channel entries per parsed playlist",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	PlaylistLoadFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "m3ugroups_playlist_load_failures_total",
			Help: "Total number of failed playlist reads or fetches",
		},
		[]string{"source"}, // "url", "file"
	)

	PlaylistExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "m3ugroups_playlist_exports_total",
			Help: "Total number of export attempts by outcome",
		},
		[]string{"outcome"}, // "ok", "nothing_selected", "no_channels"
	)
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "m3ugroups_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "m3ugroups_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)
