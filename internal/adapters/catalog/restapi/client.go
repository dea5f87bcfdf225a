package restapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/phenrril/lojamobile/internal/adapters/rest"
	"github.com/phenrril/lojamobile/internal/domain"
)

// Client es el catálogo de productos remoto.
type Client struct {
	rc *rest.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{rc: rest.New(baseURL, timeout, nil)}
}

func productPath(id int64) string {
	return "/products/" + strconv.FormatInt(id, 10)
}

func (c *Client) List(ctx context.Context) ([]domain.Product, error) {
	var list []domain.Product
	if err := c.rc.Do(ctx, http.MethodGet, "/products", nil, &list); err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	return list, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := c.rc.Do(ctx, http.MethodGet, productPath(id), nil, &p); err != nil {
		return nil, fmt.Errorf("buscar producto %d: %w", id, err)
	}
	return &p, nil
}

func (c *Client) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	var out domain.Product
	if err := c.rc.Do(ctx, http.MethodPost, "/products", p, &out); err != nil {
		return nil, fmt.Errorf("crear producto: %w", err)
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id int64, p domain.Product) (*domain.Product, error) {
	var out domain.Product
	if err := c.rc.Do(ctx, http.MethodPut, productPath(id), p, &out); err != nil {
		return nil, fmt.Errorf("actualizar producto %d: %w", id, err)
	}
	return &out, nil
}
