package web

// Query parsing and report state construction shared by the page, export
// and API handlers.

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/JonMunkholm/novareport/internal/core"
	"github.com/JonMunkholm/novareport/internal/nova"
	"github.com/JonMunkholm/novareport/internal/report"
)

// reportQuery is a parsed dashboard or export request.
type reportQuery struct {
	Filters core.OrderFilters
	Sort    report.SortState
	Search  string
}

// parseFilters extracts the upstream filters. The status defaults to paid.
func parseFilters(r *http.Request) core.OrderFilters {
	q := r.URL.Query()
	status := strings.TrimSpace(q.Get("status"))
	if status == "" {
		status = nova.DefaultStatus
	}
	return core.OrderFilters{
		Status:      status,
		InitialDate: strings.TrimSpace(q.Get("initial_date")),
		FinalDate:   strings.TrimSpace(q.Get("final_date")),
	}
}

// parseSortState reads sort and dir. A column the layout does not have
// falls back to the default sort.
func parseSortState(r *http.Request, layout report.Layout) report.SortState {
	q := r.URL.Query()
	return layout.ParseSort(strings.TrimSpace(q.Get("sort")), q.Get("dir"))
}

func (s *Server) layout() report.Layout {
	return report.DefaultLayout(s.cfg.Report.StudentSlots)
}

func (s *Server) parseReportQuery(r *http.Request) reportQuery {
	return reportQuery{
		Filters: parseFilters(r),
		Sort:    parseSortState(r, s.layout()),
		Search:  strings.TrimSpace(r.URL.Query().Get("search")),
	}
}

// values is q as a canonical query string, omitting empty parameters.
func (q reportQuery) values() url.Values {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("status", q.Filters.Status)
	set("initial_date", q.Filters.InitialDate)
	set("final_date", q.Filters.FinalDate)
	set("sort", q.Sort.Column)
	set("dir", string(q.Sort.Dir))
	set("search", q.Search)
	return v
}

// buildState builds the report view of rows for q.
func (s *Server) buildState(rows []core.Record, q reportQuery) *report.State {
	state := report.NewState(rows, report.Options{
		Layout:   s.layout(),
		Sort:     q.Sort,
		LinkBase: s.cfg.Report.OrderLinkBase,
	})
	state.SetSearch(q.Search)
	return state
}
