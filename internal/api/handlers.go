package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kashifm/lunchledger/internal/ledger"
	"github.com/kashifm/lunchledger/internal/models"
)

func (a *API) getBalances(w http.ResponseWriter, r *http.Request) {
	filter, err := ledger.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	res, err := a.ledger.Balances(r.Context(), filter)
	if err != nil {
		slog.Error("balance computation failed", "filter", filter, "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "unable to compute balances"})
		return
	}

	ledgerComputations.WithLabelValues(string(filter)).Inc()
	respondJSON(w, http.StatusOK, res)
}

func (a *API) listMembers(w http.ResponseWriter, r *http.Request) {
	members, err := a.members.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if members == nil {
		members = []models.Member{}
	}
	respondJSON(w, http.StatusOK, members)
}

func (a *API) addMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	m, err := a.members.Add(r.Context(), req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, m)
}

func (a *API) removeMember(w http.ResponseWriter, r *http.Request) {
	if err := a.members.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) memberRemovable(w http.ResponseWriter, r *http.Request) {
	removable, err := a.ledger.CanRemoveMember(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"removable": removable})
}

func (a *API) listOrders(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateParam(r.URL.Query().Get("from"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid from date"})
		return
	}
	to, err := parseDateParam(r.URL.Query().Get("to"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid to date"})
		return
	}

	orders, err := a.orders.List(r.Context(), from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

type orderRequest struct {
	Restaurant string         `json:"restaurant"`
	PayerID    string         `json:"payerId"`
	Shares     []models.Share `json:"shares"`
}

func (a *API) createOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	o, err := a.orders.Create(r.Context(), req.Restaurant, req.PayerID, req.Shares)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, o)
}

func (a *API) updateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	o, err := a.orders.Update(r.Context(), chi.URLParam(r, "id"), req.Restaurant, req.PayerID, req.Shares)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (a *API) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := a.orders.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := a.ledger.ListSettlements(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if settlements == nil {
		settlements = []models.Settlement{}
	}
	respondJSON(w, http.StatusOK, settlements)
}

func (a *API) createSettlement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From   string  `json:"from"`
		To     string  `json:"to"`
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	st, err := a.ledger.RecordSettlement(r.Context(), req.From, req.To, req.Amount)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, st)
}

func (a *API) listAdjustments(w http.ResponseWriter, r *http.Request) {
	adjustments, err := a.ledger.ListAdjustments(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if adjustments == nil {
		adjustments = []models.Adjustment{}
	}
	respondJSON(w, http.StatusOK, adjustments)
}

func (a *API) createAdjustment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From   string  `json:"from"`
		To     string  `json:"to"`
		Amount float64 `json:"amount"`
		Note   string  `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	adj, err := a.ledger.RecordAdjustment(r.Context(), req.From, req.To, req.Amount, req.Note)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, adj)
}

// parseDateParam accepts RFC 3339 timestamps or plain dates.
func parseDateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}
