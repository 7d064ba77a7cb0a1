// Package templates holds the HTML components of the dashboard. Components
// are written in .templ files; run templ generate after editing them.
package templates

//go:generate templ generate

import (
	"net/url"

	"github.com/JonMunkholm/novareport/internal/report"
)

// StatusOptions are offered in the status filter.
var StatusOptions = []struct{ Value, Label string }{
	{"paid", "Pago"},
	{"pending", "Pendente"},
	{"canceled", "Cancelado"},
	{"refunded", "Reembolsado"},
	{"expired", "Expirado"},
}

// DashboardView is everything the dashboard page shows.
type DashboardView struct {
	Status      string
	InitialDate string
	FinalDate   string
	Search      string

	// Query is the current query string, used to build sort and export links.
	Query url.Values

	Notice *report.Notice
	Table  report.Table
	// Fetched is false when the fetch failed; counters are hidden then.
	Fetched bool
}

// SortHref links to the dashboard sorted by next.
func (v DashboardView) SortHref(next report.SortState) string {
	q := cloneQuery(v.Query)
	q.Set("sort", next.Column)
	q.Set("dir", string(next.Dir))
	return "/?" + q.Encode()
}

// ExportHref links to the export of the current view.
func (v DashboardView) ExportHref(f report.Format) string {
	q := cloneQuery(v.Query)
	q.Set("format", string(f))
	return "/export?" + q.Encode()
}

func cloneQuery(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, vs := range q {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

// pageCSS is inlined in the page head.
const pageCSS = `body{font-family:system-ui,sans-serif;background:#f9fafb;color:#111827;margin:0}
.container{max-width:100%;padding:1.5rem}
h1{font-size:1.5rem;margin:0 0 1rem}
form.filters{display:flex;flex-wrap:wrap;gap:.75rem;align-items:flex-end;margin-bottom:1rem}
form.filters label{display:flex;flex-direction:column;font-size:.8rem;color:#4b5563}
form.filters input,form.filters select{padding:.4rem;border:1px solid #d1d5db;border-radius:.25rem}
.button{background:#4f46e5;color:#fff;border:0;border-radius:.25rem;padding:.5rem 1rem;text-decoration:none;display:inline-flex}
.notice{border:1px solid;border-radius:.25rem;padding:.75rem 1rem;margin-bottom:1rem}
.notice-info{background:#dbeafe;border-color:#60a5fa;color:#1d4ed8}
.notice-error{background:#fee2e2;border-color:#f87171;color:#b91c1c}
.toolbar{display:flex;justify-content:space-between;align-items:center;margin-bottom:.5rem;font-size:.875rem;color:#4b5563}
.table-wrapper{overflow-x:auto}
table{min-width:100%;border-collapse:collapse;background:#fff}
th{padding:.75rem 1.5rem;text-align:left;font-size:.75rem;text-transform:uppercase;color:#6b7280;background:#f9fafb;white-space:nowrap}
th a{color:inherit;text-decoration:none}
td{padding:1rem 1.5rem;white-space:nowrap;font-size:.875rem;color:#374151;border-top:1px solid #e5e7eb}
tr:nth-child(even) td{background:#f9fafb}
td a{color:#4f46e5}
[hidden]{display:none}`
