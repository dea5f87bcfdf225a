package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/lojamobile/internal/domain"
)

type fakeAssistant struct {
	reply   string
	err     error
	got     []string
	entered chan struct{}
	release chan struct{}
}

func (f *fakeAssistant) Reply(_ context.Context, msg string) (string, error) {
	f.got = append(f.got, msg)
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	return f.reply, f.err
}

func TestChatUC_Send(t *testing.T) {
	store := newMemKV()
	bot := &fakeAssistant{reply: "Temos sim!"}
	uc := NewChatUC(store, bot)
	uc.now = func() time.Time { return fixedNow }

	m, err := uc.Send(context.Background(), "  tem capa?  ")
	require.NoError(t, err)
	assert.Equal(t, domain.SenderBot, m.Sender)
	assert.Equal(t, "Temos sim!", m.Text)
	assert.Equal(t, []string{"tem capa?"}, bot.got)

	h := uc.History()
	require.Len(t, h, 2)
	assert.Equal(t, domain.SenderUser, h[0].Sender)
	assert.Equal(t, "tem capa?", h[0].Text)
	assert.NotEqual(t, h[0].ID, h[1].ID)

	raw, err := store.Get(context.Background(), domain.KeyChatHistory)
	require.NoError(t, err)
	var saved []domain.ChatMessage
	require.NoError(t, json.Unmarshal(raw, &saved))
	assert.Equal(t, h, saved)

	reopened := NewChatUC(store, bot)
	require.NoError(t, reopened.Open(context.Background()))
	assert.Equal(t, h, reopened.History())
}

func TestChatUC_Send_Empty(t *testing.T) {
	uc := NewChatUC(newMemKV(), &fakeAssistant{})
	_, err := uc.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	assert.Empty(t, uc.History())
}

func TestChatUC_Send_AssistantFails(t *testing.T) {
	uc := NewChatUC(newMemKV(), &fakeAssistant{err: errors.New("timeout")})
	m, err := uc.Send(context.Background(), "oi")
	require.NoError(t, err)
	assert.Equal(t, ApologyMessage, m.Text)
	assert.Len(t, uc.History(), 2)
	assert.False(t, uc.Busy())
}

func TestChatUC_Send_Busy(t *testing.T) {
	bot := &fakeAssistant{reply: "ok", entered: make(chan struct{}), release: make(chan struct{})}
	uc := NewChatUC(newMemKV(), bot)

	done := make(chan error, 1)
	go func() {
		_, err := uc.Send(context.Background(), "primeira")
		done <- err
	}()
	<-bot.entered
	assert.True(t, uc.Busy())

	_, err := uc.Send(context.Background(), "segunda")
	assert.ErrorIs(t, err, domain.ErrAssistantBusy)
	assert.ErrorIs(t, uc.Clear(context.Background()), domain.ErrAssistantBusy)

	close(bot.release)
	require.NoError(t, <-done)
	assert.Len(t, uc.History(), 2)
	assert.False(t, uc.Busy())
}

func TestChatUC_Open_Empty(t *testing.T) {
	uc := NewChatUC(newMemKV(), &fakeAssistant{})
	require.NoError(t, uc.Open(context.Background()))
	assert.Empty(t, uc.History())
}

func TestChatUC_Clear(t *testing.T) {
	store := newMemKV()
	uc := NewChatUC(store, &fakeAssistant{reply: "ok"})
	_, err := uc.Send(context.Background(), "oi")
	require.NoError(t, err)

	require.NoError(t, uc.Clear(context.Background()))
	assert.Empty(t, uc.History())
	_, err = store.Get(context.Background(), domain.KeyChatHistory)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	reopened := NewChatUC(store, &fakeAssistant{})
	require.NoError(t, reopened.Open(context.Background()))
	assert.Empty(t, reopened.History())
}
