package springapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/phenrril/lojamobile/internal/adapters/rest"
	"github.com/phenrril/lojamobile/internal/domain"
)

// Client lee los clientes del sistema de registro.
type Client struct {
	rc *rest.Client
}

type Options struct {
	BaseURL string
	Timeout time.Duration
	// Con TokenURL, ClientID y ClientSecret cada request lleva un token
	// obtenido con client credentials.
	TokenURL     string
	ClientID     string
	ClientSecret string
}

func NewClient(opts Options) *Client {
	var hc *http.Client
	if opts.TokenURL != "" && opts.ClientID != "" && opts.ClientSecret != "" {
		cc := &clientcredentials.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			TokenURL:     opts.TokenURL,
		}
		// el contexto de fondo solo se usa para pedir tokens
		hc = cc.Client(context.Background())
		hc.Timeout = opts.Timeout
	}
	return &Client{rc: rest.New(opts.BaseURL, opts.Timeout, hc)}
}

func (c *Client) FetchCustomers(ctx context.Context) ([]domain.Customer, error) {
	var list []domain.Customer
	if err := c.rc.Do(ctx, http.MethodGet, "/clientes", nil, &list); err != nil {
		return nil, fmt.Errorf("buscar clientes en la fuente primaria: %w", err)
	}
	if list == nil {
		list = []domain.Customer{}
	}
	// el id de la fuente primaria es la clave local; el del backup no viene de acá
	for i := range list {
		c := &list[i]
		if c.ID == "" {
			c.ID = c.BackupID
		}
		c.BackupID = ""
	}
	return list, nil
}
