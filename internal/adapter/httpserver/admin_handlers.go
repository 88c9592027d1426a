package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ApproveRefundHandler moves an awaiting_review claim to approved.
func (s *Server) ApproveRefundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Notes string `json:"notes" validate:"max=2000"`
		}
		if !decodeValid(w, r, &req) {
			return
		}
		if err := s.Refunds.Approve(r.Context(), chi.URLParam(r, "id"), req.Notes); err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "approved"})
	}
}

// RejectRefundHandler terminates a claim; notes are mandatory so the user
// learns why.
func (s *Server) RejectRefundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Notes string `json:"notes" validate:"required,max=2000"`
		}
		if !decodeValid(w, r, &req) {
			return
		}
		if err := s.Refunds.Reject(r.Context(), chi.URLParam(r, "id"), req.Notes); err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
	}
}

// CompleteRefundHandler settles an approved claim and credits the ledger.
func (s *Server) CompleteRefundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Refunds.Complete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
	}
}
