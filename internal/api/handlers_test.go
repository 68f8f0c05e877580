package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"oilwatch-backend/internal/catalog"
	"oilwatch-backend/internal/session"
)

func fptr(v float64) *float64 {
	return &v
}

func newTestServer() (*Handler, *httptest.Server) {
	handler := &Handler{
		Store: session.NewStore(),
		Params: []catalog.Parameter{
			{Name: "Hierro (Fe)", Column: "Fe", Max: fptr(70), Group: catalog.GroupWearMetals},
			{Name: "Viscosidad 100°C", Column: "Viscosidad", Min: fptr(13), Max: fptr(17), Group: catalog.GroupOilCondition},
		},
		Timeout: 5 * time.Second,
	}
	r := chi.NewRouter()
	r.Get("/healthz", handler.HandleHealth)
	handler.RegisterRoutes(r)
	return handler, httptest.NewServer(r)
}

func createSessionBody() []byte {
	body := map[string]any{
		"rows": []map[string]any{
			{"Equipo": "EX-201", "Fecha": "2025-03-05", "Horometro": 1000, "Fe": 20, "Viscosidad": 15},
			{"Equipo": "EX-201", "Fecha": "2025-04-05", "Horometro": 1200, "Fe": 45, "Viscosidad": 15},
			{"Equipo": "EX-201", "Fecha": "2025-05-05", "Horometro": 1400, "Fe": 60, "Viscosidad": 15},
			{"Equipo": "EX-202", "Fecha": "2025-03-06", "Horometro": 800, "Fe": 10, "Viscosidad": 11},
		},
		"ruleRows": []map[string]any{
			{"Indicador": "Fe", "Tipo": "ALTA", "Severidad Típica": "Crítico", "Posible Motivo": "Desgaste", "Acción Recomendada": "Inspección"},
			{"Indicador": "Viscosidad", "Tipo": "BAJA", "Severidad Típica": "Precaución"},
		},
	}
	raw, _ := json.Marshal(body)
	return raw
}

func postSession(t *testing.T, server *httptest.Server) createSessionResponse {
	t.Helper()
	resp, err := http.Post(server.URL+"/sessions", "application/json", bytes.NewReader(createSessionBody()))
	if err != nil {
		t.Fatalf("post session: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created createSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return created
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	if v != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestSessionCreate(t *testing.T) {
	_, server := newTestServer()
	defer server.Close()

	created := postSession(t, server)
	if created.FleetSize != 2 || created.Samples != 4 {
		t.Errorf("unexpected session shape: %+v", created)
	}
	if len(created.Equipment) != 2 || created.Equipment[0] != "EX-201" {
		t.Errorf("unexpected equipment list: %v", created.Equipment)
	}
}

func TestSessionCreateRejectsBadRows(t *testing.T) {
	_, server := newTestServer()
	defer server.Close()

	body, _ := json.Marshal(map[string]any{
		"rows": []map[string]any{{"Equipo": "EX-201", "Fecha": "not a date", "Horometro": 100}},
	})
	resp, err := http.Post(server.URL+"/sessions", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post session: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestSessionCreateRejectsUnknownFields(t *testing.T) {
	_, server := newTestServer()
	defer server.Close()

	resp, err := http.Post(server.URL+"/sessions", "application/json", bytes.NewReader([]byte(`{"bogus": true}`)))
	if err != nil {
		t.Fatalf("post session: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	_, server := newTestServer()
	defer server.Close()
	created := postSession(t, server)

	var summary struct {
		FleetSize int `json:"fleetSize"`
		Severity  []struct {
			Label   string `json:"label"`
			Percent int    `json:"percent"`
		} `json:"severity"`
		TotalAnomalies int `json:"totalAnomalies"`
	}
	status := getJSON(t, fmt.Sprintf("%s/sessions/%s/summary", server.URL, created.SessionID), &summary)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if summary.FleetSize != 2 {
		t.Errorf("expected fleet size 2, got %d", summary.FleetSize)
	}
	total := 0
	for _, bucket := range summary.Severity {
		total += bucket.Percent
	}
	if total != 100 {
		t.Errorf("severity percents must total 100, got %d", total)
	}
	// EX-202 breaches the viscosity floor in its latest sample.
	if summary.TotalAnomalies != 1 {
		t.Errorf("expected 1 anomaly in the current state, got %d", summary.TotalAnomalies)
	}
}

func TestEquipmentEndpoints(t *testing.T) {
	_, server := newTestServer()
	defer server.Close()
	created := postSession(t, server)

	var list []struct {
		Equipment string `json:"equipment"`
		Metrics   struct {
			MaxPriority int `json:"maxPriority"`
		} `json:"metrics"`
	}
	status := getJSON(t, fmt.Sprintf("%s/sessions/%s/equipment", server.URL, created.SessionID), &list)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 equipment entries, got %d", len(list))
	}
	if list[1].Equipment != "EX-202" || list[1].Metrics.MaxPriority != 2 {
		t.Errorf("expected EX-202 at Precaución, got %+v", list[1])
	}

	var detail struct {
		History []struct {
			HourMeter float64 `json:"hourMeter"`
		} `json:"history"`
		Projections []struct {
			Parameter string `json:"parameter"`
		} `json:"projections"`
	}
	status = getJSON(t, fmt.Sprintf("%s/sessions/%s/equipment/EX-201", server.URL, created.SessionID), &detail)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(detail.History) != 3 {
		t.Errorf("expected 3 history samples, got %d", len(detail.History))
	}
	if len(detail.Projections) != 1 || detail.Projections[0].Parameter != "Hierro (Fe)" {
		t.Errorf("expected an Fe projection, got %+v", detail.Projections)
	}

	status = getJSON(t, fmt.Sprintf("%s/sessions/%s/equipment/EX-999", server.URL, created.SessionID), nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown equipment, got %d", status)
	}
}

func TestTrendAndProjectionEndpoints(t *testing.T) {
	_, server := newTestServer()
	defer server.Close()
	created := postSession(t, server)

	var trend []struct {
		FleetSize int `json:"fleetSize"`
	}
	status := getJSON(t, fmt.Sprintf("%s/sessions/%s/trend", server.URL, created.SessionID), &trend)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(trend) != 3 {
		t.Fatalf("expected 3 monthly points, got %d", len(trend))
	}

	var all []equipmentProjections
	status = getJSON(t, fmt.Sprintf("%s/sessions/%s/projections", server.URL, created.SessionID), &all)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(all) != 1 || all[0].Equipment != "EX-201" {
		t.Errorf("expected projections for EX-201 only, got %+v", all)
	}
}

func TestWearRatesEndpoint(t *testing.T) {
	_, server := newTestServer()
	defer server.Close()
	created := postSession(t, server)

	var rates []struct {
		Equipment  string  `json:"equipment"`
		Metal      string  `json:"metal"`
		RatePer1kh float64 `json:"ratePer1kh"`
	}
	status := getJSON(t, fmt.Sprintf("%s/sessions/%s/wear-rates", server.URL, created.SessionID), &rates)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(rates) != 1 || rates[0].Equipment != "EX-201" || rates[0].Metal != "Hierro (Fe)" {
		t.Fatalf("unexpected wear rates: %+v", rates)
	}
	if rates[0].RatePer1kh <= 0 {
		t.Errorf("expected a positive wear rate, got %v", rates[0].RatePer1kh)
	}
}

func TestSessionDelete(t *testing.T) {
	handler, server := newTestServer()
	defer server.Close()
	created := postSession(t, server)

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/sessions/%s", server.URL, created.SessionID), nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete session: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if handler.Store.Len() != 0 {
		t.Errorf("expected empty store, got %d sessions", handler.Store.Len())
	}

	status := getJSON(t, fmt.Sprintf("%s/sessions/%s/summary", server.URL, created.SessionID), nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", status)
	}
}

func TestHealthEndpoint(t *testing.T) {
	_, server := newTestServer()
	defer server.Close()

	var health struct {
		Ok       bool `json:"ok"`
		Sessions int  `json:"sessions"`
	}
	status := getJSON(t, server.URL+"/healthz", &health)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !health.Ok || health.Sessions != 0 {
		t.Errorf("unexpected health payload: %+v", health)
	}
}
