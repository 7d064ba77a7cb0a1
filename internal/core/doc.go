// Package core provides the business logic of the orders report.
//
// It is independent of any transport: the web handlers and the reportctl CLI
// both drive it through [Service].
//
// # Pipeline
//
// [Service.FetchOrders] runs two branches concurrently:
//
//  1. every page of the orders endpoint, filtered by status and date range
//  2. the checkout pages endpoint
//
// When both succeed, each order is passed through [SanitizeRecord] and
// enriched with the title of the checkout page it was placed through. If
// either branch fails the whole call fails; partial results are never
// returned.
//
// # Sanitization
//
// [Sanitize] removes the fields in [IgnoredKeys] from every nested record.
// For a record stored under the key "meta" it also drops keys starting with
// "_", one level deep. Arrays are passed through untouched.
//
// # Error Handling
//
// Errors from the upstream client are returned unchanged. At the boundary
// they are mapped to user-facing messages with [MapError]:
//
//   - CFG001: Nova credentials missing or placeholders
//   - API001-API004: upstream rejected the request or sent an invalid payload
//   - NET001: upstream unreachable
//   - REQ001-REQ002: request cancelled or timed out
//   - REQ003: too many reports in progress, see [ReportLimiter]
package core
