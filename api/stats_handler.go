package api

import (
	"net/http"

	"chat-relay/observability"
)

// StatsHandler exposes the relay counters for humans and probes.
type StatsHandler struct {
	Monitor *observability.Monitor
}

func (h StatsHandler) Snapshot(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.Monitor.Snapshot())
}
