package nova

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/novareport/internal/logging"
	"golang.org/x/sync/errgroup"
)

// MaxPages bounds meta.total_pages. A larger count is treated as a bad
// payload rather than fetched.
const MaxPages = 10000

// envelope is one response of a paginated Nova endpoint: {"data": [...],
// "meta": {"total_pages": N}}.
type envelope struct {
	Data       []Record
	TotalPages int
}

// parsePage reads the envelope. A missing meta or total_pages means a single
// page.
func parsePage(v any) (envelope, error) {
	env, ok := v.(Record)
	if !ok || env == nil {
		return envelope{}, fmt.Errorf("expected an object, got %T", v)
	}

	data, err := recordList(Field(env, "data"))
	if err != nil {
		return envelope{}, fmt.Errorf("data: %w", err)
	}

	total, err := totalPages(Field(env, "meta"))
	if err != nil {
		return envelope{}, err
	}
	return envelope{Data: data, TotalPages: total}, nil
}

// totalPages returns meta.total_pages, or 1 when meta or the count is absent
// or not a number. Fractional counts are truncated.
func totalPages(meta any) (int, error) {
	m, ok := meta.(Record)
	if !ok {
		return 1, nil
	}
	raw, ok := Field(m, "total_pages").(json.Number)
	if !ok {
		return 1, nil
	}

	if n, err := raw.Int64(); err == nil {
		return checkPages(float64(n), raw)
	}
	f, err := raw.Float64()
	if err != nil {
		return 0, fmt.Errorf("total_pages %s out of range", raw)
	}
	return checkPages(f, raw)
}

func checkPages(n float64, raw json.Number) (int, error) {
	if math.IsNaN(n) || n > MaxPages {
		return 0, fmt.Errorf("total_pages %s exceeds the limit of %d", raw, MaxPages)
	}
	if n < 0 {
		return 0, nil
	}
	return int(n), nil
}

// FetchAll fetches every page of a paginated resource starting at rawURL.
//
// Page 1 is fetched first to learn total_pages; pages 2..N are then requested
// concurrently. Items are returned in page order regardless of which request
// finishes first. The first failing page cancels the rest and its error is
// returned unchanged; no partial result is ever returned.
func (c *Client) FetchAll(ctx context.Context, rawURL string) ([]Record, error) {
	log := logging.WithFields(ctx, "url", rawURL)

	log.Info("fetching initial page")
	first, err := c.getPage(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	total := first.TotalPages
	if total <= 1 {
		return first.Data, nil
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}

	// One slot per page; each goroutine writes only its own slot.
	rest := make([][]Record, total-1)

	g, gctx := errgroup.WithContext(ctx)
	if c.cfg.MaxConcurrentPages > 0 {
		g.SetLimit(c.cfg.MaxConcurrentPages)
	}

	for page := 2; page <= total; page++ {
		pageURL := withPage(base, page)
		log.Debug("queueing page", "page", page, "total_pages", total)

		g.Go(func() error {
			resp, err := c.getPage(gctx, pageURL)
			if err != nil {
				return err
			}
			rest[page-2] = resp.Data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	size := len(first.Data)
	for _, items := range rest {
		size += len(items)
	}

	all := make([]Record, 0, size)
	all = append(all, first.Data...)
	for _, items := range rest {
		all = append(all, items...)
	}

	log.Info("fetched all pages", "total_pages", total, "items", len(all))
	return all, nil
}

// withPage returns base with a page query parameter added.
func withPage(base *url.URL, page int) string {
	u := *base
	q := u.Query()
	q.Add("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

// getPage fetches and parses one page. Envelope errors are reported like
// any other undecodable response.
func (c *Client) getPage(ctx context.Context, pageURL string) (envelope, error) {
	v, err := c.getJSON(ctx, pageURL)
	if err != nil {
		return envelope{}, err
	}
	p, err := parsePage(v)
	if err != nil {
		return envelope{}, fmt.Errorf("decode response from %s: %w", pageURL, err)
	}
	return p, nil
}
