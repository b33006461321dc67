package web

import (
	"encoding/json"
	"net/http"

	"github.com/0xdowz/auto-draw-bot/internal/state"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type runResponse struct {
	ID     string `json:"id,omitempty"`
	Source string `json:"source,omitempty"`
	Style  string `json:"style,omitempty"`
	Target string `json:"target,omitempty"`
}

type progressResponse struct {
	SegmentsDone  int    `json:"segmentsDone"`
	SegmentsTotal int    `json:"segmentsTotal"`
	Color         string `json:"color,omitempty"`
}

type statusResponse struct {
	Phase    string           `json:"phase"`
	Run      runResponse      `json:"run"`
	Progress progressResponse `json:"progress"`
	Err      string           `json:"error,omitempty"`
}

func apiV1Router(store *state.Store, cancelFunc func()) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		handleStatus(w, r, store)
	})
	mux.HandleFunc("/cancel", func(w http.ResponseWriter, r *http.Request) {
		handleCancel(w, r, cancelFunc)
	})
	return mux
}

func handleStatus(w http.ResponseWriter, r *http.Request, store *state.Store) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if store == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "status not configured")
		return
	}
	snap := store.Snapshot()
	writeJSON(w, http.StatusOK, statusResponse{
		Phase: snap.Phase.String(),
		Run: runResponse{
			ID:     snap.Run.ID,
			Source: snap.Run.Source,
			Style:  snap.Run.Style,
			Target: snap.Run.Target,
		},
		Progress: progressResponse{
			SegmentsDone:  snap.Progress.SegmentsDone,
			SegmentsTotal: snap.Progress.SegmentsTotal,
			Color:         snap.Progress.Color,
		},
		Err: snap.Err,
	})
}

func handleCancel(w http.ResponseWriter, r *http.Request, cancelFunc func()) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if cancelFunc == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "cancel not configured")
		return
	}
	cancelFunc()
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
