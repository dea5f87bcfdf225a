package httpserver

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/phenrril/lojamobile/internal/adapters/export/xlsx"
	"github.com/phenrril/lojamobile/internal/domain"
)

func (s *Server) handleCustomers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.customers.Search(r.URL.Query().Get("q")))
}

func (s *Server) handleCustomerCreate(w http.ResponseWriter, r *http.Request) {
	var c domain.Customer
	if err := decodeJSON(w, r, &c); err != nil {
		fail(w, r, err)
		return
	}
	created, err := s.customers.Add(r.Context(), c)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleCustomerUpdate(w http.ResponseWriter, r *http.Request) {
	var patch domain.CustomerPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		fail(w, r, err)
		return
	}
	updated, err := s.customers.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleCustomersLoad(w http.ResponseWriter, r *http.Request) {
	if err := s.customers.Load(r.Context()); err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.customers.Customers())
}

func (s *Server) handleCustomersSync(w http.ResponseWriter, r *http.Request) {
	report, err := s.customers.Sync(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleCustomersRestore(w http.ResponseWriter, r *http.Request) {
	list, err := s.customers.Restore(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCustomersDifferences(w http.ResponseWriter, r *http.Request) {
	d, err := s.customers.Differences(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

type statusResponse struct {
	Status   domain.SyncStatus `json:"status"`
	LastSync *time.Time        `json:"lastSync"`
	Local    int               `json:"local"`
}

func (s *Server) handleCustomersStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:   s.customers.Status(),
		LastSync: s.customers.LastSync(),
		Local:    len(s.customers.Customers()),
	})
}

func (s *Server) handleCustomersBackup(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.customers.BackupCustomers())
}

func (s *Server) handleCustomersExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := xlsx.WriteCustomers(&buf, s.customers.Customers()); err != nil {
		fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="clientes.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleCEP(w http.ResponseWriter, r *http.Request) {
	a, err := s.customers.LookupAddress(r.Context(), chi.URLParam(r, "cep"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
