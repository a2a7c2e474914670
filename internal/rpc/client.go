package rpc

import (
	"context"
	"fmt"

	"github.com/alfagnish/itemsd/internal/items"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client wraps a gRPC connection to an Items service.
type Client struct {
	conn *grpc.ClientConn
}

// NewClient connects to the Items service at addr. The connection is
// established in the background (no blocking dial). Extra dial options
// are appended after the insecure transport credentials.
func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) invoke(ctx context.Context, method string, req, resp any) error {
	return c.conn.Invoke(ctx, "/"+ServiceName+"/"+method, req, resp, grpc.CallContentSubtype(codecName))
}

// List returns every item in insertion order.
func (c *Client) List(ctx context.Context) ([]items.Item, error) {
	var resp ListResponse
	if err := c.invoke(ctx, "List", &ListRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Get fetches one item. A missing item yields a codes.NotFound status.
func (c *Client) Get(ctx context.Context, id int) (items.Item, error) {
	var it items.Item
	err := c.invoke(ctx, "Get", &IDRequest{ID: id}, &it)
	return it, err
}

// Create adds an item.
func (c *Client) Create(ctx context.Context, d items.Draft) (items.Item, error) {
	var it items.Item
	err := c.invoke(ctx, "Create", &d, &it)
	return it, err
}

// Update merges p onto the item with the given id.
func (c *Client) Update(ctx context.Context, id int, p items.Patch) (items.Item, error) {
	var it items.Item
	err := c.invoke(ctx, "Update", &UpdateRequest{ID: id, Title: p.Title, Completed: p.Completed}, &it)
	return it, err
}

// Delete returns the item with the given id; the item is kept.
func (c *Client) Delete(ctx context.Context, id int) (items.Item, error) {
	var it items.Item
	err := c.invoke(ctx, "Delete", &IDRequest{ID: id}, &it)
	return it, err
}

// Conn returns the underlying gRPC client connection.
func (c *Client) Conn() *grpc.ClientConn {
	return c.conn
}

// Close closes the underlying gRPC connection.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
