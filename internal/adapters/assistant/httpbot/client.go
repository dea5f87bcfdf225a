package httpbot

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/phenrril/lojamobile/internal/adapters/rest"
)

// NoReply se devuelve cuando el servicio contesta sin texto.
const NoReply = "Sem acesso com a IA"

// Client llama al endpoint de inferencia del asistente.
type Client struct {
	rc *rest.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{rc: rest.New(baseURL, timeout, nil)}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (c *Client) Reply(ctx context.Context, message string) (string, error) {
	var out chatResponse
	if err := c.rc.Do(ctx, http.MethodPost, "/assistente/chat", chatRequest{Message: message}, &out); err != nil {
		return "", fmt.Errorf("asistente: %w", err)
	}
	if strings.TrimSpace(out.Reply) == "" {
		return NoReply, nil
	}
	return out.Reply, nil
}
