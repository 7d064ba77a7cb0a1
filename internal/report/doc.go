// Package report is the table engine behind the orders dashboard.
//
// It turns enriched order records into a rendered table: the column layout
// (a fixed prefix plus a generated block of student columns), per-column
// value resolution, sorting, cell formatting, text search and export. All of
// it is pure and request-scoped; the web layer and the CLI build a State from
// fetched rows and render it.
package report
