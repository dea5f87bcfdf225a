package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phenrril/lojamobile/internal/usecase"
)

type Server struct {
	router    chi.Router
	auth      *usecase.AuthUC
	products  *usecase.ProductUC
	cart      *usecase.CartUC
	customers *usecase.CustomerUC
	chat      *usecase.ChatUC
}

func New(auth *usecase.AuthUC, products *usecase.ProductUC, cart *usecase.CartUC, customers *usecase.CustomerUC, chat *usecase.ChatUC) http.Handler {
	s := &Server{
		router:    chi.NewRouter(),
		auth:      auth,
		products:  products,
		cart:      cart,
		customers: customers,
		chat:      chat,
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(Logging)
	s.router.Use(middleware.Recoverer)
	s.router.Use(Metrics)
	s.routes()
	return s.router
}

func (s *Server) routes() {
	r := s.router
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.Get("/me", s.handleMe)

		r.Get("/products", s.handleProducts)
		r.Post("/products", s.handleProductCreate)
		r.Get("/products/{id}", s.handleProduct)
		r.Put("/products/{id}", s.handleProductUpdate)
		r.Get("/categories", s.handleCategories)

		r.Get("/cart", s.handleCart)
		r.Delete("/cart", s.handleCartClear)
		r.Post("/cart/items", s.handleCartAdd)
		r.Delete("/cart/items/{id}", s.handleCartRemove)
		r.Post("/checkout", s.handleCheckout)

		r.Route("/clientes", func(r chi.Router) {
			r.Get("/", s.handleCustomers)
			r.Post("/", s.handleCustomerCreate)
			r.Put("/{id}", s.handleCustomerUpdate)
			r.Post("/load", s.handleCustomersLoad)
			r.Post("/sync", s.handleCustomersSync)
			r.Post("/restore", s.handleCustomersRestore)
			r.Get("/differences", s.handleCustomersDifferences)
			r.Get("/status", s.handleCustomersStatus)
			r.Get("/backup", s.handleCustomersBackup)
			r.Get("/export.xlsx", s.handleCustomersExport)
		})
		r.Get("/cep/{cep}", s.handleCEP)

		r.Get("/chat/messages", s.handleChatHistory)
		r.Post("/chat/messages", s.handleChatSend)
		r.Delete("/chat/messages", s.handleChatClear)
	})
}
