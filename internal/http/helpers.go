package http

import (
	"html/template"
	"strings"
	"time"

	"prancheta/internal/core"
)

var monthNames = []string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money":      formatReais,
		"monthLabel": monthLabel,
	}
}

// formatReais renders a cent amount as "R$ 12,34".
func formatReais(m core.Money) string {
	return "R$ " + m.Format()
}

// monthLabel renders a YYYY-MM key as a human month name ("junho 2024").
// Malformed keys pass through unchanged.
func monthLabel(monthKey string) string {
	t, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return monthKey
	}
	return monthNames[t.Month()-1] + " " + t.Format("2006")
}

// currentMonthKey returns the YYYY-MM key of today.
func currentMonthKey(now time.Time) string {
	return now.Format("2006-01")
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
