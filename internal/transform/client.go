package transform

import (
	"context"

	"prepkit/internal/ops"
)

// Client applies catalog operations to literal values.
type Client interface {
	Apply(ctx context.Context, op string, input any, p ops.Params) (any, error)
	Operations(ctx context.Context) ([]string, error)
	Close() error
}

// InProcessClient applies operations from a catalog compiled into the binary.
type InProcessClient struct {
	catalog *ops.Catalog
}

func NewInProcessClient(catalog *ops.Catalog) *InProcessClient {
	return &InProcessClient{catalog: catalog}
}

func (c *InProcessClient) Apply(ctx context.Context, op string, input any, p ops.Params) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.catalog.Apply(op, input, p)
}

func (c *InProcessClient) Operations(context.Context) ([]string, error) {
	return c.catalog.Names(), nil
}

func (c *InProcessClient) Close() error { return nil }
