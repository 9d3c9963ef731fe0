package http

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"expenses/internal/core"
	applog "expenses/internal/log"
)

type windowOption struct {
	Value string
	Label string
}

var windowOptions = []windowOption{
	{Value: string(core.WindowAll), Label: "All time"},
	{Value: string(core.WindowWeek), Label: "This week"},
	{Value: string(core.WindowMonth), Label: "This month"},
}

// chartPalette colors pie slices and their legend entries.
var chartPalette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

type (
	pieSlice struct {
		Name    string
		Amount  string
		Percent string
		Color   string
	}

	barRow struct {
		Label  string
		Amount string
		Width  int
	}
)

// handleSummary renders the summary partial for the requested window:
// total, a spending-by-category pie and a per-day bar chart.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	window := core.Window(strings.TrimSpace(r.URL.Query().Get("window")))
	if window == "" {
		window = core.WindowAll
	}
	if !window.IsValid() {
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Invalid window parameter", applog.FieldWindow, string(window))
		window = core.WindowAll
	}

	sum, err := s.service.Summarize(r.Context(), window, time.Now())
	if err != nil {
		slog.ErrorContext(r.Context(), "Summary error", "error", err, "window", string(window))
		_, _ = w.Write([]byte(`<section id="summary" class="summary"><div class="placeholder">Could not load summary</div></section>`))
		return
	}

	data := struct {
		Window   string
		Label    string
		Total    string
		Empty    bool
		Slices   []pieSlice
		Gradient template.CSS
		Bars     []barRow
	}{
		Window: string(window),
		Label:  windowLabel(window),
		Total:  sum.Total.Decimal(),
		Empty:  len(sum.ByDay) == 0,
	}

	slices, gradient := pieGeometry(sum)
	data.Slices = slices
	// conic-gradient stops are built from palette constants and numbers
	// only, so they are safe to mark as trusted CSS
	data.Gradient = template.CSS(gradient)
	data.Bars = barGeometry(sum)

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="summary" class="summary"><div class="placeholder">Total spent: ` + data.Total + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "summary.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "summary.html", "window", string(window))
		_, _ = w.Write([]byte(`<section id="summary" class="summary"><div class="placeholder">Could not render summary</div></section>`))
	}
}

func windowLabel(w core.Window) string {
	for _, opt := range windowOptions {
		if opt.Value == string(w) {
			return opt.Label
		}
	}
	return string(w)
}

// pieGeometry turns ByCategory into pie slices sorted largest first,
// plus the conic-gradient stop list rendering them.
func pieGeometry(sum core.Summary) ([]pieSlice, string) {
	if sum.Total.Cents <= 0 || len(sum.ByCategory) == 0 {
		return nil, ""
	}

	type catAmount struct {
		name  string
		cents int64
	}
	cats := make([]catAmount, 0, len(sum.ByCategory))
	for name, amount := range sum.ByCategory {
		cats = append(cats, catAmount{name: name, cents: amount.Cents})
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].cents != cats[j].cents {
			return cats[i].cents > cats[j].cents
		}
		return cats[i].name < cats[j].name
	})

	slices := make([]pieSlice, 0, len(cats))
	var stops []string
	cursor := 0.0
	for i, c := range cats {
		pct := float64(c.cents) * 100 / float64(sum.Total.Cents)
		color := chartPalette[i%len(chartPalette)]
		slices = append(slices, pieSlice{
			Name:    c.name,
			Amount:  core.Money{Cents: c.cents}.Decimal(),
			Percent: fmt.Sprintf("%.1f", pct),
			Color:   color,
		})
		from := cursor
		cursor += pct
		// The last stop closes at exactly 100% so rounding never leaves a gap
		to := cursor
		if i == len(cats)-1 {
			to = 100
		}
		stops = append(stops, fmt.Sprintf("%s %.2f%% %.2f%%", color, from, to))
	}

	return slices, strings.Join(stops, ", ")
}

// barGeometry turns ByDay into chronological bars whose widths are
// percentages of the busiest day.
func barGeometry(sum core.Summary) []barRow {
	if len(sum.ByDay) == 0 {
		return nil
	}

	days := make([]core.Date, 0, len(sum.ByDay))
	var maxCents int64
	for day, amount := range sum.ByDay {
		days = append(days, day)
		if amount.Cents > maxCents {
			maxCents = amount.Cents
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j].Time) })

	bars := make([]barRow, 0, len(days))
	for _, day := range days {
		cents := sum.ByDay[day].Cents
		width := 0
		if maxCents > 0 && cents > 0 {
			width = int((cents*100 + maxCents/2) / maxCents) // rounded percent
			if width < 2 {                                   // keep tiny bars visible
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		bars = append(bars, barRow{
			Label:  day.String(),
			Amount: core.Money{Cents: cents}.Decimal(),
			Width:  width,
		})
	}
	return bars
}
