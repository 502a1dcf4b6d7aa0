package http

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"prancheta/internal/core"
	applog "prancheta/internal/log"
)

// maxSnapshotBytes bounds restore uploads; state files are small.
const maxSnapshotBytes = 16 << 20

// handleHistory renders the monthly payment history partial: one card per
// month with revenue, positions, order count and the cycling status badge.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	price := s.tracker.PricePerPosition()
	groups := core.GroupByMonth(s.tracker.Orders())

	type monthCard struct {
		MonthKey   string
		MonthLabel string
		Revenue    string
		Positions  int
		OrderCount int
		Status     core.Status
	}
	data := struct {
		Months []monthCard
	}{}
	for _, g := range groups {
		data.Months = append(data.Months, monthCard{
			MonthKey:   g.MonthKey,
			MonthLabel: monthLabel(g.MonthKey),
			Revenue:    formatReais(core.Revenue(g.TotalPositions, price)),
			Positions:  g.TotalPositions,
			OrderCount: len(g.Orders),
			Status:     s.tracker.Status(g.MonthKey),
		})
	}
	s.render(w, r, "history.html", data)
}

// handleCycleStatus advances a month's payment status one step and
// re-renders the history partial.
func (s *Server) handleCycleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	monthKey := r.Form.Get("monthKey")
	if !core.ValidMonthKey(monthKey) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}
	status := s.tracker.CycleStatus(r.Context(), monthKey)
	slog.InfoContext(r.Context(), "Status cycled",
		applog.FieldComponent, applog.ComponentHTTP,
		applog.FieldMonthKey, monthKey,
		"status", status)
	s.handleHistory(w, r)
}

// handleExport streams the backup document with the dated filename the
// original backups use.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.tracker.ExportSnapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Export error", applog.FieldError, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	filename := "prancheta_backup_" + time.Now().Format("2006-01-02") + ".json"
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(data)
}

// handleRestore replaces the application state with an uploaded backup.
func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(maxSnapshotBytes); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Arquivo de backup inválido</div>`))
		return
	}
	file, _, err := r.FormFile("snapshot")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Nenhum arquivo enviado</div>`))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSnapshotBytes))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Falha na leitura do arquivo</div>`))
		return
	}
	if err := s.tracker.RestoreSnapshot(r.Context(), data); err != nil {
		slog.ErrorContext(r.Context(), "Restore error", applog.FieldError, err)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Backup não reconhecido</div>`))
		return
	}
	w.Header().Set("HX-Trigger", `{"state:restored": {}}`)
	_, _ = w.Write([]byte(`<div class="success">Backup restaurado</div>`))
}
