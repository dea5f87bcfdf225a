package localfs

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/lojamobile/internal/domain"
)

func TestKV_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	kv, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = kv.Get(ctx, domain.KeyChatHistory)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, kv.Set(ctx, domain.KeyChatHistory, []byte(`[]`)))
	got, err := kv.Get(ctx, domain.KeyChatHistory)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, kv.Set(ctx, domain.KeyChatHistory, []byte(`[1]`)))
	got, err = kv.Get(ctx, domain.KeyChatHistory)
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))

	require.NoError(t, kv.Delete(ctx, domain.KeyChatHistory))
	_, err = kv.Get(ctx, domain.KeyChatHistory)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// borrar una clave ausente no falla
	require.NoError(t, kv.Delete(ctx, "@nada"))
}

func TestKV_KeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	kv, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, kv.Set(ctx, domain.KeyCustomers, []byte("a")))
	require.NoError(t, kv.Set(ctx, domain.KeyLastSync, []byte("b")))

	a, err := kv.Get(ctx, domain.KeyCustomers)
	require.NoError(t, err)
	b, err := kv.Get(ctx, domain.KeyLastSync)
	require.NoError(t, err)
	assert.Equal(t, "a", string(a))
	assert.Equal(t, "b", string(b))
}

func TestKV_CustomerListRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	kv, err := New(dir)
	require.NoError(t, err)

	list := []domain.Customer{
		{ID: "2", Name: "Bia", CPF: "12345678901", Email: "bia@mail.com", Phone: "11999999999", Number: "10"},
		{ID: "1", Name: "Ana", CPF: "10987654321", Email: "ana@mail.com", Phone: "11888888888", Number: "7", Complement: "apto 3",
			Address: &domain.Address{CEP: "01001000", Street: "Praça da Sé", City: "São Paulo", State: "SP"}, Pending: true},
	}
	raw, err := json.Marshal(list)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, domain.KeyCustomers, raw))

	// una instancia nueva sobre el mismo directorio ve lo persistido
	kv2, err := New(dir)
	require.NoError(t, err)
	back, err := kv2.Get(ctx, domain.KeyCustomers)
	require.NoError(t, err)
	var got []domain.Customer
	require.NoError(t, json.Unmarshal(back, &got))
	assert.Equal(t, list, got)
}

func TestKV_CanceledContext(t *testing.T) {
	kv, err := New(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, kv.Set(ctx, "k", []byte("v")), context.Canceled)
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
