package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/novareport/internal/core"
	"github.com/JonMunkholm/novareport/internal/logging"
	"github.com/JonMunkholm/novareport/internal/report"
	"github.com/JonMunkholm/novareport/internal/web/templates"
	"github.com/a-h/templ"
)

// handleListOrders returns the enriched orders as a JSON array.
func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.service.FetchOrders(r.Context(), parseFilters(r))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, orders)
}

// handleDashboard renders the report page for the query's filters, sort
// and search.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := s.parseReportQuery(r)
	view := templates.DashboardView{
		Status:      q.Filters.Status,
		InitialDate: q.Filters.InitialDate,
		FinalDate:   q.Filters.FinalDate,
		Search:      q.Search,
		Query:       q.values(),
	}

	status := http.StatusOK
	rows, err := s.service.FetchOrders(r.Context(), q.Filters)
	if err != nil {
		msg := core.MapError(err)
		logging.FromContext(r.Context()).Error("dashboard fetch failed",
			"error", err.Error(),
			"code", msg.Code,
		)
		notice := report.ErrorNotice(core.FormatUserError(err))
		view.Notice = &notice
		status = statusFor(err)
	} else {
		view.Table = s.buildState(rows, q).Render()
		view.Fetched = true
		if view.Table.Empty() {
			notice := report.EmptyNotice()
			view.Notice = &notice
		}
	}

	renderHTML(w, r, status, templates.Dashboard(view))
}

// handleExport downloads the rendered table as xlsx or csv.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q := s.parseReportQuery(r)
	rows, err := s.service.FetchOrders(r.Context(), q.Filters)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	table := s.buildState(rows, q).Render()

	var buf bytes.Buffer
	err = report.Export(&buf, table, format, s.cfg.Report.SheetName)
	if errors.Is(err, report.ErrEmptyExport) {
		renderHTML(w, r, http.StatusNotFound, templates.Notice(report.EmptyNotice()))
		return
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	filename := report.ExportFilename(s.cfg.Report.ExportFileName, format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Error("export write failed", "error", err)
	}
}

// handleHealth reports liveness and whether Nova credentials are set.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":          "ok",
		"nova_configured": s.cfg.Nova.Configured(),
	})
}

// renderHTML writes c with the given status.
func renderHTML(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "error", err)
	}
}
