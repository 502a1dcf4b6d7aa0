package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"prancheta/internal/config"
	"prancheta/internal/core"
	"prancheta/internal/services"
)

type nullStore struct{}

func (nullStore) LoadOrders(context.Context) []core.Order                  { return nil }
func (nullStore) SaveOrders(context.Context, []core.Order) error           { return nil }
func (nullStore) LoadStatuses(context.Context) []core.MonthlyStatus        { return nil }
func (nullStore) SaveStatuses(context.Context, []core.MonthlyStatus) error { return nil }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Load()
	tracker := services.NewTracker(context.Background(), nullStore{}, cfg.PricePerPosition)
	return NewServer(":0", tracker, cfg)
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func validOrderForm() url.Values {
	return url.Values{
		"date":           {"2024-06-01"},
		"orderNumber":    {"4500123"},
		"internalId":     {"INT-1"},
		"branch":         {"SPE"},
		"region":         {"SUDESTE"},
		"boardName":      {"Prancha 1", ""},
		"boardPositions": {"5", "3"},
	}
}

func TestIndexServesShell(t *testing.T) {
	srv := newTestServer(t)

	rec := get(srv, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Prancheta") {
		t.Error("index page should carry the app shell")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}

	if rec := get(srv, "/no-such-page"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown path = %d, want 404", rec.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		if rec := get(srv, path); rec.Code != http.StatusOK {
			t.Errorf("%s = %d, want 200", path, rec.Code)
		}
	}
}

func TestCreateOrderFromForm(t *testing.T) {
	srv := newTestServer(t)

	rec := postForm(srv, "/orders", validOrderForm())
	if rec.Code != http.StatusOK {
		t.Fatalf("create = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "8 posições") {
		t.Errorf("success message should carry the position total, got %s", rec.Body.String())
	}
	if rec.Header().Get("HX-Trigger") == "" {
		t.Error("create should announce order:created")
	}

	list := get(srv, "/ui/orders")
	if !strings.Contains(list.Body.String(), "4500123") {
		t.Error("created order should appear in the list partial")
	}
}

func TestCreateOrderBoundaryValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(url.Values)
	}{
		{"unknown branch", func(f url.Values) { f.Set("branch", "XXX") }},
		{"unknown region", func(f url.Values) { f.Set("region", "OESTE") }},
		{"non-numeric positions", func(f url.Values) { f["boardPositions"] = []string{"five"} }},
		{"blank order number", func(f url.Values) { f.Set("orderNumber", "  ") }},
		{"zero positions", func(f url.Values) { f["boardPositions"] = []string{"0"} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t)
			form := validOrderForm()
			tc.mutate(form)

			rec := postForm(srv, "/orders", form)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("create = %d, want 422 (body %s)", rec.Code, rec.Body.String())
			}
			if list := get(srv, "/ui/orders"); strings.Contains(list.Body.String(), "order-card") {
				t.Error("rejected order must not be stored")
			}
		})
	}

	srv := newTestServer(t)
	if rec := get(srv, "/orders"); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /orders = %d, want 405", rec.Code)
	}
}

func TestDeleteOrder(t *testing.T) {
	srv := newTestServer(t)
	postForm(srv, "/orders", validOrderForm())

	var snap core.Snapshot
	if err := json.Unmarshal(get(srv, "/export").Body.Bytes(), &snap); err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(snap.Orders) != 1 {
		t.Fatalf("expected one stored order, got %d", len(snap.Orders))
	}

	rec := postForm(srv, "/orders/delete", url.Values{"id": {snap.Orders[0].ID}})
	if rec.Code != http.StatusOK {
		t.Fatalf("delete = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "order-card") {
		t.Error("list partial should be empty after delete")
	}
}

func TestCycleStatusEndpoint(t *testing.T) {
	srv := newTestServer(t)
	postForm(srv, "/orders", validOrderForm())

	rec := postForm(srv, "/status/cycle", url.Values{"monthKey": {"2024-06"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("cycle = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "badge-invoiced") {
		t.Errorf("first cycle should show the invoiced badge, got %s", rec.Body.String())
	}

	if rec := postForm(srv, "/status/cycle", url.Values{"monthKey": {"junho"}}); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("malformed month key = %d, want 422", rec.Code)
	}
}

func TestExportDownload(t *testing.T) {
	srv := newTestServer(t)
	postForm(srv, "/orders", validOrderForm())

	rec := get(srv, "/export")
	if rec.Code != http.StatusOK {
		t.Fatalf("export = %d", rec.Code)
	}
	wantName := "prancheta_backup_" + time.Now().Format("2006-01-02") + ".json"
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, wantName) {
		t.Errorf("Content-Disposition = %q, want filename %s", cd, wantName)
	}

	var snap core.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("export body is not a snapshot: %v", err)
	}
	if snap.Version != core.SnapshotVersion {
		t.Errorf("version = %q, want %q", snap.Version, core.SnapshotVersion)
	}
}

func TestRestoreUpload(t *testing.T) {
	srv := newTestServer(t)
	postForm(srv, "/orders", validOrderForm())
	postForm(srv, "/status/cycle", url.Values{"monthKey": {"2024-06"}})
	exported := get(srv, "/export").Body.Bytes()

	fresh := newTestServer(t)
	rec := uploadSnapshot(t, fresh, exported)
	if rec.Code != http.StatusOK {
		t.Fatalf("restore = %d, body %s", rec.Code, rec.Body.String())
	}
	if list := get(fresh, "/ui/orders"); !strings.Contains(list.Body.String(), "4500123") {
		t.Error("restored order should appear in the list partial")
	}
	if hist := get(fresh, "/ui/history"); !strings.Contains(hist.Body.String(), "badge-invoiced") {
		t.Error("restored status should survive")
	}

	if rec := uploadSnapshot(t, fresh, []byte(`{"orders":[]}`)); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("malformed snapshot = %d, want 422", rec.Code)
	}
}

func uploadSnapshot(t *testing.T, srv *Server, payload []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("snapshot", "backup.json")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/restore", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestMonthLabel(t *testing.T) {
	cases := []struct{ in, want string }{
		{"2024-06", "junho 2024"},
		{"2025-01", "janeiro 2025"},
		{"not-a-month", "not-a-month"},
	}
	for _, tc := range cases {
		if got := monthLabel(tc.in); got != tc.want {
			t.Errorf("monthLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
