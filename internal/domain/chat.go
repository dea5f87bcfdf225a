package domain

import (
	"context"
	"time"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Assistant answers a single user message.
type Assistant interface {
	Reply(ctx context.Context, message string) (string, error)
}

type User struct {
	Email string `json:"email"`
}
