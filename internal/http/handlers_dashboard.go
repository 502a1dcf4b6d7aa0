package http

import (
	"net/http"
	"strings"
	"time"

	"prancheta/internal/core"
)

// handleDashboard renders the current-month revenue overview: estimated
// total, position count, days worked and the daily revenue series. A month
// query overrides the default of today's month.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	monthKey := currentMonthKey(now)
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" && core.ValidMonthKey(v) {
		monthKey = v
	}

	price := s.tracker.PricePerPosition()
	orders := s.tracker.Orders()
	monthOrders := core.FilterByMonth(orders, monthKey)
	positions := core.SumPositions(monthOrders)

	series := core.DailySeries(orders, monthKey, core.DaysInMonth(monthKey), price)

	// Hide trailing future days with no revenue; the engine itself always
	// returns the full month.
	visible := series
	if monthKey == currentMonthKey(now) {
		cut := len(series)
		for cut > now.Day() && series[cut-1].Positions == 0 {
			cut--
		}
		visible = series[:cut]
	}

	type bar struct {
		Day     int
		Revenue string
		Width   int
		Today   bool
	}
	var maxCents int64
	for _, d := range visible {
		if d.Revenue.Cents > maxCents {
			maxCents = d.Revenue.Cents
		}
	}
	data := struct {
		MonthKey   string
		MonthLabel string
		Revenue    string
		Positions  int
		UnitPrice  string
		DaysWorked int
		Bars       []bar
	}{
		MonthKey:   monthKey,
		MonthLabel: monthLabel(monthKey),
		Revenue:    formatReais(core.Revenue(positions, price)),
		Positions:  positions,
		UnitPrice:  formatReais(price),
		DaysWorked: core.DaysWorked(monthOrders),
	}
	for _, d := range visible {
		width := 0
		if maxCents > 0 && d.Revenue.Cents > 0 {
			width = int((d.Revenue.Cents*100 + maxCents/2) / maxCents) // rounded percent
			if width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		data.Bars = append(data.Bars, bar{
			Day:     d.Day,
			Revenue: formatReais(d.Revenue),
			Width:   width,
			Today:   monthKey == currentMonthKey(now) && d.Day == now.Day(),
		})
	}
	s.render(w, r, "dashboard.html", data)
}
