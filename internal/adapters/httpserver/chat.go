package httpserver

import "net/http"

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"messages": s.chat.History(), "busy": s.chat.Busy()})
}

func (s *Server) handleChatClear(w http.ResponseWriter, r *http.Request) {
	if err := s.chat.Clear(r.Context()); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChatSend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	m, err := s.chat.Send(r.Context(), req.Text)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}
