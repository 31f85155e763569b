package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/mmrzaf/datemath/internal/app"
	"github.com/mmrzaf/datemath/internal/datemath"
	"github.com/mmrzaf/datemath/internal/domain"
)

type Handler struct {
	evalService  *app.EvalService
	historyLimit int
}

func NewHandler(evalService *app.EvalService, historyLimit int) *Handler {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &Handler{evalService: evalService, historyLimit: historyLimit}
}

// Eval evaluates one date math input. Invalid inputs come back as 400 with
// the recorded evaluation (status "error") when evaluation got far enough
// to be recorded.
func (h *Handler) Eval(w http.ResponseWriter, r *http.Request) {
	var req domain.EvalRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	ev, err := h.evalService.Evaluate(&req)
	if err != nil {
		if ev != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(ev)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, ev)
}

func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units := datemath.Units()
	out := make([]domain.UnitAlias, 0, len(units))
	for alias, unit := range units {
		out = append(out, domain.UnitAlias{Alias: alias, Unit: unit.String()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Alias < out[j].Alias })
	writeJSON(w, out)
}

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	limit := h.historyLimit
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n <= 2000 {
			limit = n
		}
	}
	status := r.URL.Query().Get("status")

	list, err := h.evalService.History(limit, status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}

func (h *Handler) GetEvaluation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ev, err := h.evalService.GetEvaluation(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, ev)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSONStrict(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}
