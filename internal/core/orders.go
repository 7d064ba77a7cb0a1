package core

import (
	"context"
	"encoding/json"

	"github.com/JonMunkholm/novareport/internal/logging"
	"github.com/JonMunkholm/novareport/internal/nova"
	"golang.org/x/sync/errgroup"
)

// Field names used by the enrichment join.
const (
	FieldCheckoutPageID = "checkout_page_id"
	FieldPageTitle      = "page_title"
	FieldID             = "id"
)

// Service runs the order report pipeline.
type Service struct {
	source  OrderSource
	limiter *ReportLimiter
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLimiter bounds concurrent FetchOrders calls with l.
func WithLimiter(l *ReportLimiter) ServiceOption {
	return func(s *Service) { s.limiter = l }
}

// NewService creates a Service reading from source.
func NewService(source OrderSource, opts ...ServiceOption) *Service {
	s := &Service{source: source}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Drain waits for in-flight reports to finish. Without a limiter it
// returns immediately.
func (s *Service) Drain(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	return s.limiter.Drain(ctx)
}

// FetchOrders returns every order matching f, sanitized and enriched with
// the title of its checkout page. Orders and checkout pages are fetched
// concurrently; if either fails the error is returned and no orders are.
// The returned slice is never nil.
func (s *Service) FetchOrders(ctx context.Context, f OrderFilters) ([]Record, error) {
	log := logging.WithFields(ctx,
		"status", f.Status,
		"initial_date", f.InitialDate,
		"final_date", f.FinalDate,
	)

	if s.limiter != nil {
		if err := s.limiter.Acquire(ctx); err != nil {
			log.Warn("report not started", "error", err)
			return nil, err
		}
		defer s.limiter.Release()
	}

	var orders, pages []Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.source.ListOrders(gctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		pages, err = s.source.ListCheckoutPages(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	titles := pageTitles(pages)
	log.Info("orders received, processing", "orders", len(orders), "checkout_pages", len(pages))

	out := make([]Record, 0, len(orders))
	for _, order := range orders {
		if order == nil {
			continue
		}
		enriched := SanitizeRecord(order)
		if key, ok := lookupKey(nova.Field(order, FieldCheckoutPageID)); ok {
			if title, found := titles[key]; found {
				enriched.Set(FieldPageTitle, title)
			}
		}
		out = append(out, enriched)
	}

	log.Info("processing complete", "orders", len(out))
	return out, nil
}

// pageTitles maps checkout page id to its title. Pages without a usable id
// or with an empty title are skipped, so their orders get no page_title.
func pageTitles(pages []Record) map[any]any {
	titles := make(map[any]any, len(pages))
	for _, page := range pages {
		key, ok := lookupKey(nova.Field(page, FieldID))
		if !ok {
			continue
		}
		title := nova.Field(page, FieldPageTitle)
		if title == nil || title == "" {
			continue
		}
		titles[key] = title
	}
	return titles
}

// lookupKey returns v if it can be used as a join key. Only scalars are
// comparable; the dynamic type is part of the key, so the number 7 and the
// string "7" do not match.
func lookupKey(v any) (any, bool) {
	switch v.(type) {
	case string, json.Number, float64, int, int64, bool:
		return v, true
	default:
		return nil, false
	}
}
