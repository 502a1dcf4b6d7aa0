package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"prancheta/internal/core"
	applog "prancheta/internal/log"
	"prancheta/internal/services"
)

// handleEntryForm renders the order entry form partial.
func (s *Server) handleEntryForm(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Today    string
		Branches []string
		Regions  []string
	}{
		Today:    time.Now().Format("2006-01-02"),
		Branches: s.cfg.BranchOptions,
		Regions:  s.cfg.RegionOptions,
	}
	s.render(w, r, "entry.html", data)
}

// handleCreateOrder creates an order from the entry form. Branch and region
// are checked against the configured closed sets here, at the boundary; the
// domain model stores what it is given.
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", applog.FieldError, err)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Formato de requisição inválido</div>`))
		return
	}

	req := services.CreateOrderRequest{
		Date:        sanitizeInput(r.Form.Get("date")),
		OrderNumber: sanitizeInput(r.Form.Get("orderNumber")),
		InternalID:  sanitizeInput(r.Form.Get("internalId")),
		Branch:      sanitizeInput(r.Form.Get("branch")),
		Region:      sanitizeInput(r.Form.Get("region")),
		Observation: sanitizeInput(r.Form.Get("observation")),
	}

	names := r.Form["boardName"]
	counts := r.Form["boardPositions"]
	for i, raw := range counts {
		raw = sanitizeInput(raw)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Posições inválidas: ` + template.HTMLEscapeString(raw) + `</div>`))
			return
		}
		board := services.BoardInput{PositionCount: n}
		if i < len(names) {
			board.Name = sanitizeInput(names[i])
		}
		req.Boards = append(req.Boards, board)
	}

	if !s.cfg.ValidBranch(req.Branch) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Filial desconhecida</div>`))
		return
	}
	if !s.cfg.ValidRegion(req.Region) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Região desconhecida</div>`))
		return
	}

	order, err := s.tracker.CreateOrder(r.Context(), req)
	if err != nil {
		if core.IsValidation(err) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Dados inválidos: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
			return
		}
		slog.ErrorContext(r.Context(), "Order create error", applog.FieldError, err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Erro no salvamento</div>`))
		return
	}

	w.Header().Set("HX-Trigger", `{"order:created": {"id": "`+order.ID+`"}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Pedido ` +
		template.HTMLEscapeString(order.OrderNumber) + ` registrado: ` +
		strconv.Itoa(order.TotalPositions) + ` posições em ` +
		strconv.Itoa(len(order.Boards)) + ` pranchas</div>`))
}

// handleOrdersList renders the saved orders partial, newest first.
func (s *Server) handleOrdersList(w http.ResponseWriter, r *http.Request) {
	orders := s.tracker.Orders()

	type row struct {
		core.Order
		Revenue string
	}
	data := struct {
		Orders []row
		Total  int
	}{}
	for _, o := range orders {
		data.Orders = append(data.Orders, row{
			Order:   o,
			Revenue: formatReais(core.Revenue(o.TotalPositions, s.tracker.PricePerPosition())),
		})
		data.Total += o.TotalPositions
	}
	s.render(w, r, "orders.html", data)
}

// handleDeleteOrder removes an order by identity and re-renders the list.
// Intent is confirmed client-side; deleting an unknown id is a no-op.
func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.tracker.DeleteOrder(r.Context(), r.Form.Get("id"))
	s.handleOrdersList(w, r)
}
