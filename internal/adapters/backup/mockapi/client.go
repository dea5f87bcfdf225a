package mockapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phenrril/lojamobile/internal/adapters/rest"
	"github.com/phenrril/lojamobile/internal/domain"
)

const resource = "/clientes"

// Client habla con el recurso "clientes" del backup remoto.
type Client struct {
	rc *rest.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{rc: rest.New(baseURL, timeout, nil)}
}

func itemPath(id string) string {
	return resource + "/" + url.PathEscape(id)
}

func (c *Client) List(ctx context.Context) ([]domain.Customer, error) {
	var list []domain.Customer
	if err := c.rc.Do(ctx, http.MethodGet, resource, nil, &list); err != nil {
		return nil, fmt.Errorf("listar clientes del backup: %w", err)
	}
	if list == nil {
		list = []domain.Customer{}
	}
	return list, nil
}

// Create devuelve el registro con el id que asignó el backup.
func (c *Client) Create(ctx context.Context, cust domain.Customer) (*domain.Customer, error) {
	cust.BackupID = ""
	var out domain.Customer
	if err := c.rc.Do(ctx, http.MethodPost, resource, cust, &out); err != nil {
		return nil, fmt.Errorf("crear cliente en backup: %w", err)
	}
	return &out, nil
}

// Update reemplaza el registro con ese id del backup. El clienteId viaja en
// el cuerpo.
func (c *Client) Update(ctx context.Context, backupID string, cust domain.Customer) (*domain.Customer, error) {
	if strings.TrimSpace(backupID) == "" {
		return nil, errors.New("id de backup vacío")
	}
	cust.BackupID = backupID
	var out domain.Customer
	if err := c.rc.Do(ctx, http.MethodPut, itemPath(backupID), cust, &out); err != nil {
		return nil, fmt.Errorf("actualizar cliente %s en backup: %w", backupID, err)
	}
	return &out, nil
}
