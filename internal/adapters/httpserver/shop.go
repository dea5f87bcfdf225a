package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phenrril/lojamobile/internal/domain"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	u, err := s.auth.Login(req.Email)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.Logout()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u := s.auth.Current()
	if u == nil {
		writeError(w, http.StatusUnauthorized, "sin sesión")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func productID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id de producto", domain.ErrValidation)
	}
	return id, nil
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := s.products.List(r.Context(), domain.ProductFilter{Query: q.Get("q"), Category: q.Get("category")})
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list, "total": len(list)})
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	p, err := s.products.Get(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if err := decodeJSON(w, r, &p); err != nil {
		fail(w, r, err)
		return
	}
	created, err := s.products.Create(r.Context(), p)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	var p domain.Product
	if err := decodeJSON(w, r, &p); err != nil {
		fail(w, r, err)
		return
	}
	updated, err := s.products.Update(r.Context(), id, p)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.products.Categories(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) writeCart(w http.ResponseWriter, code int) {
	writeJSON(w, code, map[string]any{"items": s.cart.Items(), "total": s.cart.Total()})
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	s.writeCart(w, http.StatusOK)
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	s.cart.Clear()
	s.writeCart(w, http.StatusOK)
}

// handleCartAdd toma el producto del catálogo por id.
func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int64 `json:"id"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	p, err := s.products.Get(r.Context(), req.ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	s.cart.Add(*p)
	s.writeCart(w, http.StatusOK)
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if !s.cart.Remove(id) {
		writeError(w, http.StatusNotFound, "producto fuera del carrito")
		return
	}
	s.writeCart(w, http.StatusOK)
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	receipt, err := s.cart.Checkout(req)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}
