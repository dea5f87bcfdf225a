package usecase

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/lojamobile/internal/domain"
)

const maxInstallments = 12

// CartUC is the in-memory cart of the current session.
type CartUC struct {
	mu    sync.Mutex
	items []domain.CartItem
	now   func() time.Time
}

func NewCartUC() *CartUC {
	return &CartUC{now: time.Now}
}

// Add puts one unit of p in the cart. A product already present gets its
// quantity incremented.
func (uc *CartUC) Add(p domain.Product) domain.CartItem {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for i := range uc.items {
		if uc.items[i].ProductID == p.ID {
			uc.items[i].Quantity++
			return uc.items[i]
		}
	}
	it := domain.CartItem{ProductID: p.ID, Title: p.Title, Price: p.Price, Image: p.Image, Quantity: 1}
	uc.items = append(uc.items, it)
	return it
}

// Remove drops the whole line for productID.
func (uc *CartUC) Remove(productID int64) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for i := range uc.items {
		if uc.items[i].ProductID == productID {
			uc.items = append(uc.items[:i], uc.items[i+1:]...)
			return true
		}
	}
	return false
}

func (uc *CartUC) Clear() {
	uc.mu.Lock()
	uc.items = nil
	uc.mu.Unlock()
}

func (uc *CartUC) Items() []domain.CartItem {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return append([]domain.CartItem{}, uc.items...)
}

func (uc *CartUC) Total() float64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return total(uc.items)
}

func total(items []domain.CartItem) float64 {
	var t float64
	for _, it := range items {
		t += it.Price * float64(it.Quantity)
	}
	return roundCents(t)
}

// Checkout simulates the payment of the cart and empties it on success.
func (uc *CartUC) Checkout(req domain.CheckoutRequest) (*domain.Receipt, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if len(uc.items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if !req.Method.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPayment, req.Method)
	}

	r := &domain.Receipt{
		Method: req.Method,
		Items:  append([]domain.CartItem{}, uc.items...),
		Total:  total(uc.items),
		PaidAt: uc.now(),
	}
	switch req.Method {
	case domain.PaymentCash:
		if req.Received <= 0 || req.Received < r.Total {
			return nil, domain.ErrInsufficientAmount
		}
		r.Received = req.Received
		r.Change = roundCents(req.Received - r.Total)
	case domain.PaymentCredit:
		n := req.Installments
		if n == 0 {
			n = 1
		}
		if n < 1 || n > maxInstallments {
			return nil, fmt.Errorf("%w: cuotas entre 1 y %d", domain.ErrInvalidPayment, maxInstallments)
		}
		r.Installments = n
	case domain.PaymentPix:
		r.PixCode = pixCode(r.Total)
	}

	uc.items = nil
	log.Info().Str("metodo", string(r.Method)).Float64("total", r.Total).Msg("pago simulado")
	return r, nil
}

// pixCode builds a BR Code-like payload for the amount. It is not a valid
// EMV payload, the checksum is left empty.
func pixCode(amount float64) string {
	key := strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
	return fmt.Sprintf("00020126580014br.gov.bcb.pix0136%s520400005303986540%.2f5802BR5913Loja6009SAO PAULO62070503***6304", key, amount)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
