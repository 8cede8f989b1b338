package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

type dbPinger interface {
	Ping(ctx context.Context) error
}

type templateLister interface {
	List() ([]string, error)
}

// HealthHandler serves the probes.
type HealthHandler struct {
	db        dbPinger
	templates templateLister
	version   string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db dbPinger, templates templateLister, version string) *HealthHandler {
	return &HealthHandler{db: db, templates: templates, version: version}
}

// HealthResponse is the JSON body of every probe.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of one dependency.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Live always answers 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 200 when the pool can reach the database, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "down", Timestamp: time.Now()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Health reports the database and the template store with the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	components := make(map[string]CompStatus, 2)
	overall := "ok"

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		components["database"] = CompStatus{Status: "down"}
		overall = "down"
	} else {
		components["database"] = CompStatus{Status: "ok", Latency: time.Since(start).String()}
	}

	switch names, err := h.templates.List(); {
	case err != nil:
		components["templates"] = CompStatus{Status: "down"}
		overall = "down"
	case len(names) == 0:
		components["templates"] = CompStatus{Status: "down", Detail: "no templates"}
		overall = "down"
	default:
		components["templates"] = CompStatus{Status: "ok", Detail: strconv.Itoa(len(names)) + " templates"}
	}

	status := http.StatusOK
	if overall != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}
