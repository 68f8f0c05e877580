package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"oilwatch-backend/internal/catalog"
	"oilwatch-backend/internal/condition"
	"oilwatch-backend/internal/dataset"
	"oilwatch-backend/internal/session"
	"oilwatch-backend/internal/source"
)

type Handler struct {
	Store   *session.Store
	Params  []catalog.Parameter
	Timeout time.Duration

	// NewSource is swappable so tests can avoid real database drivers.
	NewSource func(source.Config) (source.RowSource, error)
}

type createSessionRequest struct {
	Source       *source.Config   `json:"source"`
	SamplesTable string           `json:"samplesTable"`
	RulesTable   string           `json:"rulesTable"`
	Limit        int              `json:"limit"`
	Rows         []map[string]any `json:"rows"`
	RuleRows     []map[string]any `json:"ruleRows"`
}

type createSessionResponse struct {
	SessionID uuid.UUID `json:"sessionId"`
	Version   uuid.UUID `json:"datasetVersion"`
	LoadedAt  time.Time `json:"loadedAt"`
	FleetSize int       `json:"fleetSize"`
	Samples   int       `json:"samples"`
	Equipment []string  `json:"equipment"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions", h.handleSessionCreate)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Delete("/", h.handleSessionDelete)
		r.Get("/summary", h.handleSummary)
		r.Get("/equipment", h.handleEquipmentList)
		r.Get("/equipment/{name}", h.handleEquipmentGet)
		r.Get("/trend", h.handleTrend)
		r.Get("/projections", h.handleProjections)
		r.Get("/wear-rates", h.handleWearRates)
	})
}

func (h *Handler) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "message": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	rows, ruleRows, err := h.loadRows(ctx, req)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]any{"ok": false, "message": err.Error()})
		return
	}
	if len(rows) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "message": "no rows provided"})
		return
	}
	ds, err := dataset.New(rows, h.Params)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"ok": false, "message": err.Error()})
		return
	}
	rules, err := dataset.RulesFromRows(ruleRows)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"ok": false, "message": err.Error()})
		return
	}
	sess := h.Store.Create(ds, h.Params, rules)
	writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: sess.ID,
		Version:   ds.Version,
		LoadedAt:  ds.LoadedAt,
		FleetSize: len(ds.Equipments()),
		Samples:   len(ds.Samples),
		Equipment: ds.Equipments(),
	})
}

func (h *Handler) loadRows(ctx context.Context, req createSessionRequest) ([]map[string]any, []map[string]any, error) {
	if req.Source == nil {
		return req.Rows, req.RuleRows, nil
	}
	newSource := h.NewSource
	if newSource == nil {
		newSource = source.New
	}
	src, err := newSource(*req.Source)
	if err != nil {
		return nil, nil, err
	}
	defer src.Close()
	if err := src.TestConnection(ctx); err != nil {
		return nil, nil, err
	}
	rows, err := src.FetchTable(ctx, req.SamplesTable, req.Limit)
	if err != nil {
		return nil, nil, err
	}
	ruleRows := req.RuleRows
	if req.RulesTable != "" {
		ruleRows, err = src.FetchTable(ctx, req.RulesTable, req.Limit)
		if err != nil {
			return nil, nil, err
		}
	}
	return rows, ruleRows, nil
}

func (h *Handler) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "message": "invalid session id"})
		return
	}
	if err := h.Store.Delete(id); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"ok": false, "message": "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "message": "invalid session id"})
		return nil, false
	}
	sess, err := h.Store.Get(id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{"ok": false, "message": "session not found"})
		} else {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "message": "failed to load session"})
		}
		return nil, false
	}
	return sess, true
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	trend := sess.Trend()
	var current condition.MonthlyTrendPoint
	if len(trend) > 0 {
		current = trend[len(trend)-1]
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"datasetVersion": sess.Dataset.Version,
		"loadedAt":       sess.Dataset.LoadedAt,
		"fleetSize":      current.FleetSize,
		"severity":       current.Severity,
		"totalAnomalies": current.TotalAnomalies,
		"groups":         current.Groups,
		"indicators":     current.Indicators,
		"equipment":      sess.Dataset.Equipments(),
	})
}

func (h *Handler) handleEquipmentList(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	states := sess.LatestState()
	list := make([]condition.EquipmentState, 0, len(states))
	for _, name := range sess.Dataset.Equipments() {
		if state, found := states[name]; found {
			list = append(list, state)
		}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleEquipmentGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	name := chi.URLParam(r, "name")
	state, found := sess.LatestState()[name]
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]any{"ok": false, "message": "equipment not found"})
		return
	}
	window := queryInt(r, "window", 0)
	history := condition.EquipmentHistory(sess.Dataset.Samples, name)
	writeJSON(w, http.StatusOK, map[string]any{
		"state":       state,
		"history":     history,
		"statistics":  condition.SummarizeHistory(history, sess.Params),
		"baseline":    sess.Baseline,
		"projections": sess.Projections(name, window),
	})
}

func (h *Handler) handleTrend(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Trend())
}

type equipmentProjections struct {
	Equipment   string                 `json:"equipment"`
	Projections []condition.Projection `json:"projections"`
}

func (h *Handler) handleProjections(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	window := queryInt(r, "window", 0)
	if name := r.URL.Query().Get("equipment"); name != "" {
		writeJSON(w, http.StatusOK, sess.Projections(name, window))
		return
	}
	result := []equipmentProjections{}
	for _, name := range sess.Dataset.Equipments() {
		projections := sess.Projections(name, window)
		if len(projections) == 0 {
			continue
		}
		result = append(result, equipmentProjections{Equipment: name, Projections: projections})
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleWearRates(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.WearRates())
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
