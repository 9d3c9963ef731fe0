package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"expenses/internal/core"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		Today      string
		Categories []string
		Windows    []windowOption
	}{
		Today:      core.DateOf(time.Now()).String(),
		Categories: s.categories,
		Windows:    windowOptions,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Malformed request</div>`))
		return
	}

	dateStr := strings.TrimSpace(r.Form.Get("date"))
	date := core.DateOf(time.Now())
	if dateStr != "" {
		var err error
		if date, err = core.ParseDate(dateStr); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Invalid date</div>`))
			return
		}
	}

	category := sanitizeInput(r.Form.Get("category"))
	description := sanitizeInput(r.Form.Get("description"))
	amountStr := strings.TrimSpace(r.Form.Get("amount"))

	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid amount</div>`))
		return
	}

	rec := core.Record{
		Date:        date,
		Category:    category,
		Amount:      core.Money{Cents: cents},
		Description: description,
	}
	if err := rec.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid expense: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	ref, err := s.service.CreateExpense(r.Context(), rec)
	if err != nil {
		slog.ErrorContext(r.Context(), "Expense append error", "error", err, "category", rec.Category, "amount_cents", rec.Amount.Cents)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Could not save the expense</div>`))
		return
	}

	w.Header().Set("HX-Trigger", `{"expense:created": {}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Expense recorded (#` + template.HTMLEscapeString(ref) + `): ` +
		template.HTMLEscapeString(rec.Category) +
		` ` + template.HTMLEscapeString(rec.Amount.Decimal()) +
		` on ` + template.HTMLEscapeString(rec.Date.String()) + `</div>`))
}

// handleExpensesTable renders the all-expenses table partial, most
// recent first, with the all-time total underneath.
func (s *Server) handleExpensesTable(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	records, err := s.service.ListExpenses(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses error", "error", err)
		_, _ = w.Write([]byte(`<section id="expenses" class="expenses"><div class="placeholder">Could not load expenses</div></section>`))
		return
	}

	skipped, err := s.service.SkippedRows(r.Context())
	if err != nil {
		skipped = nil
	}

	type row struct {
		Date        string
		Category    string
		Amount      string
		Description string
	}
	data := struct {
		Rows    []row
		Total   string
		Count   int
		Skipped int
	}{Count: len(records), Skipped: len(skipped)}

	var total int64
	for _, rec := range records {
		total += rec.Amount.Cents
		data.Rows = append(data.Rows, row{
			Date:        rec.Date.String(),
			Category:    rec.Category,
			Amount:      rec.Amount.Decimal(),
			Description: rec.Description,
		})
	}
	data.Total = core.Money{Cents: total}.Decimal()

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="expenses" class="expenses"><div class="placeholder">Total spent: ` + data.Total + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "expenses.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "expenses.html")
		_, _ = w.Write([]byte(`<section id="expenses" class="expenses"><div class="placeholder">Could not render expenses</div></section>`))
	}
}
