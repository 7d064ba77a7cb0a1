package nova

import (
	"context"
	"fmt"
	"net/url"

	"github.com/JonMunkholm/novareport/internal/logging"
)

// DefaultStatus is the order status requested when no filter is given.
const DefaultStatus = "paid"

// OrderFilters are the query filters forwarded to the orders endpoint.
// Dates are passed through verbatim.
type OrderFilters struct {
	Status      string
	InitialDate string
	FinalDate   string
}

// OrdersURL builds the page-1 URL of the orders endpoint for the filters.
func (c *Client) OrdersURL(f OrderFilters) (string, error) {
	base, err := c.tenantURL("/orders")
	if err != nil {
		return "", err
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse orders url: %w", err)
	}

	status := f.Status
	if status == "" {
		status = DefaultStatus
	}

	q := u.Query()
	q.Add("status[]", status)
	if f.InitialDate != "" {
		q.Add("initial_date", f.InitialDate)
	}
	if f.FinalDate != "" {
		q.Add("final_date", f.FinalDate)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// ListOrders fetches every order matching the filters across all pages.
func (c *Client) ListOrders(ctx context.Context, f OrderFilters) ([]Record, error) {
	u, err := c.OrdersURL(f)
	if err != nil {
		return nil, err
	}
	return c.FetchAll(ctx, u)
}

// ListCheckoutPages fetches all checkout pages in a single request.
// The endpoint returns either a {"data": [...]} envelope or a bare list.
func (c *Client) ListCheckoutPages(ctx context.Context) ([]Record, error) {
	u, err := c.tenantURL("/checkout_pages")
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("fetching checkout pages")

	raw, err := c.getJSON(ctx, u)
	if err != nil {
		return nil, err
	}

	pages, err := checkoutPages(raw)
	if err != nil {
		return nil, fmt.Errorf("decode checkout pages: %w", err)
	}

	logging.FromContext(ctx).Info("checkout pages received", "count", len(pages))
	return pages, nil
}

// checkoutPages accepts both payload shapes. An object without a data list,
// or a null payload, yields no pages.
func checkoutPages(v any) ([]Record, error) {
	if env, ok := v.(Record); ok {
		return recordList(Field(env, "data"))
	}
	return recordList(v)
}
