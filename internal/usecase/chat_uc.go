package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/lojamobile/internal/domain"
)

// ApologyMessage is appended as the bot answer when the assistant fails.
const ApologyMessage = "Falha de comunicação com a IA. Por favor, cheque sua conexão."

type ChatUC struct {
	store     domain.KVStore
	assistant domain.Assistant
	now       func() time.Time

	mu       sync.Mutex
	messages []domain.ChatMessage
	busy     bool
}

func NewChatUC(store domain.KVStore, assistant domain.Assistant) *ChatUC {
	return &ChatUC{store: store, assistant: assistant, now: time.Now, messages: []domain.ChatMessage{}}
}

// Open loads the persisted history.
func (uc *ChatUC) Open(ctx context.Context) error {
	raw, err := uc.store.Get(ctx, domain.KeyChatHistory)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("leer historial del chat: %w", err)
	}
	var list []domain.ChatMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("decodificar historial del chat: %w", err)
	}
	uc.mu.Lock()
	uc.messages = list
	uc.mu.Unlock()
	return nil
}

func (uc *ChatUC) History() []domain.ChatMessage {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return append([]domain.ChatMessage{}, uc.messages...)
}

// Busy reports whether the assistant is answering.
func (uc *ChatUC) Busy() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.busy
}

// Send appends the user message and the bot answer. Only one exchange runs
// at a time.
func (uc *ChatUC) Send(ctx context.Context, text string) (domain.ChatMessage, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return domain.ChatMessage{}, domain.ErrEmptyMessage
	}

	uc.mu.Lock()
	if uc.busy {
		uc.mu.Unlock()
		return domain.ChatMessage{}, domain.ErrAssistantBusy
	}
	uc.busy = true
	uc.mu.Unlock()
	defer func() {
		uc.mu.Lock()
		uc.busy = false
		uc.mu.Unlock()
	}()

	uc.append(ctx, uc.message(t, domain.SenderUser))

	reply, err := uc.assistant.Reply(ctx, t)
	if err != nil {
		log.Warn().Err(err).Msg("el asistente no respondió")
		reply = ApologyMessage
	}
	bot := uc.message(reply, domain.SenderBot)
	uc.append(ctx, bot)
	return bot, nil
}

// Clear drops the history, in memory and in the store.
func (uc *ChatUC) Clear(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.busy {
		return domain.ErrAssistantBusy
	}
	if err := uc.store.Delete(ctx, domain.KeyChatHistory); err != nil {
		return fmt.Errorf("borrar historial del chat: %w", err)
	}
	uc.messages = []domain.ChatMessage{}
	return nil
}

func (uc *ChatUC) message(text string, s domain.Sender) domain.ChatMessage {
	return domain.ChatMessage{ID: uuid.NewString(), Text: text, Sender: s, Timestamp: uc.now()}
}

// append stores m and saves the history. A failed save is only logged.
func (uc *ChatUC) append(ctx context.Context, m domain.ChatMessage) {
	uc.mu.Lock()
	uc.messages = append(uc.messages, m)
	raw, err := json.Marshal(uc.messages)
	uc.mu.Unlock()
	if err == nil {
		err = uc.store.Set(ctx, domain.KeyChatHistory, raw)
	}
	if err != nil {
		log.Error().Err(err).Msg("guardar historial del chat")
	}
}
