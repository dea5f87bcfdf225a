package viacep

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/phenrril/lojamobile/internal/adapters/rest"
	"github.com/phenrril/lojamobile/internal/domain"
)

type Client struct {
	rc *rest.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{rc: rest.New(baseURL, timeout, nil)}
}

type response struct {
	domain.Address
	Erro any `json:"erro,omitempty"`
}

// Lookup consulta un CEP de 8 dígitos. ViaCEP contesta 200 con "erro" cuando
// el CEP no existe.
func (c *Client) Lookup(ctx context.Context, cep string) (*domain.Address, error) {
	var r response
	if err := c.rc.Do(ctx, http.MethodGet, "/"+cep+"/json/", nil, &r); err != nil {
		return nil, fmt.Errorf("buscar CEP %s: %w", cep, err)
	}
	switch v := r.Erro.(type) {
	case bool:
		if v {
			return nil, fmt.Errorf("CEP %s: %w", cep, domain.ErrNotFound)
		}
	case string:
		if v == "true" {
			return nil, fmt.Errorf("CEP %s: %w", cep, domain.ErrNotFound)
		}
	}
	a := r.Address
	return &a, nil
}
