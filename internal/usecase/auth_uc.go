package usecase

import (
	"fmt"
	"strings"
	"sync"

	"github.com/phenrril/lojamobile/internal/domain"
)

// AuthUC keeps the signed-in user. There is no password check.
type AuthUC struct {
	mu   sync.RWMutex
	user *domain.User
}

func (uc *AuthUC) Login(email string) (*domain.User, error) {
	e := strings.TrimSpace(email)
	if !domain.ValidEmail(e) {
		return nil, fmt.Errorf("%w: email", domain.ErrValidation)
	}
	u := &domain.User{Email: e}
	uc.mu.Lock()
	uc.user = u
	uc.mu.Unlock()
	return u, nil
}

func (uc *AuthUC) Logout() {
	uc.mu.Lock()
	uc.user = nil
	uc.mu.Unlock()
}

// Current returns nil when nobody is signed in.
func (uc *AuthUC) Current() *domain.User {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.user == nil {
		return nil
	}
	u := *uc.user
	return &u
}
