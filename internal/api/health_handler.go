package api

import (
	"net/http"

	"github.com/lzjever/ledger-audit/internal/core"
)

const (
	serviceName = "audit-service"
	language    = "go"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type VersionResponse struct {
	Version  string `json:"version"`
	Service  string `json:"service"`
	Language string `json:"language"`
}

type ReadyResponse struct {
	Ready  bool              `json:"ready"`
	Checks map[string]string `json:"checks"`
}

// HealthHandler reports liveness with the current UTC time.
func (a *API) HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: core.ISOTimestamp(a.now()),
	})
}

// VersionHandler reports the configured version.
func (a *API) VersionHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, VersionResponse{
		Version:  a.cfg.Version,
		Service:  serviceName,
		Language: language,
	})
}

// ReadyHandler reports readiness. The service has no backing dependencies,
// so the checks are static.
func (a *API) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, ReadyResponse{
		Ready: true,
		Checks: map[string]string{
			"database": "ok",
			"queue":    "ok",
		},
	})
}

// NotFound answers unknown routes. Only GET and POST are served anywhere, so
// any other method is refused before the path is considered.
func (a *API) NotFound(w http.ResponseWriter, r *http.Request) {
	if !servedMethod(r.Method) {
		WriteError(w, core.NewAppError(core.ErrMethodNotAllowed, core.MsgMethodNotAllowed))
		return
	}
	WriteError(w, core.NewAppError(core.ErrNotFound, core.MsgNotFound))
}

// MethodNotAllowed answers a known path hit with the wrong method. GET and
// POST on a path registered for the other method are unknown routes.
func (a *API) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	a.NotFound(w, r)
}

func servedMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodPost
}
