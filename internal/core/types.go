package core

import (
	"context"

	"github.com/JonMunkholm/novareport/internal/nova"
)

// Record is a decoded JSON object, as returned by the Nova API.
type Record = nova.Record

// OrderFilters are the report filters forwarded upstream.
type OrderFilters = nova.OrderFilters

// OrderSource fetches the raw upstream data. Satisfied by *nova.Client.
type OrderSource interface {
	ListOrders(ctx context.Context, f OrderFilters) ([]Record, error)
	ListCheckoutPages(ctx context.Context) ([]Record, error)
}
