package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"cardvault.org/internal/audit"
	"cardvault.org/internal/auth"
	"cardvault.org/internal/card"
)

type createCardRequest struct {
	ID      *int64  `json:"id"`
	Amount  float64 `json:"amount"`
	Owner   *string `json:"owner"`
	OwnerID *int64  `json:"ownerId"`
}

type updateCardRequest struct {
	ID      *int64  `json:"id"`
	Amount  float64 `json:"amount"`
	Owner   *string `json:"owner"`
	OwnerID *int64  `json:"ownerId"`
}

func (a *API) handleCardsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listCards(w, r)
	case http.MethodPost:
		a.createCard(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleCardResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/cashcards/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	// A non-numeric id is indistinguishable from a missing card.
	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "card not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.getCard(w, r, id)
	case http.MethodPut:
		a.updateCard(w, r, id)
	case http.MethodDelete:
		a.deleteCard(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) listCards(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusForbidden, "authentication required")
		return
	}

	page, err := parsePageRequest(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	cards, err := a.cards.List(r.Context(), identity, page)
	if err != nil {
		handleCardError(w, r, err)
		return
	}
	if cards == nil {
		cards = []card.Card{}
	}
	writeJSON(w, http.StatusOK, cards)
}

func (a *API) createCard(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusForbidden, "authentication required")
		return
	}

	var req createCardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	c, err := a.cards.Create(r.Context(), identity, req.Amount)
	if err != nil {
		handleCardError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "card.create", map[string]any{
		"card_id": c.ID,
		"amount":  c.Amount,
	})

	w.Header().Set("Location", "/cashcards/"+strconv.FormatInt(c.ID, 10))
	w.WriteHeader(http.StatusCreated)
}

func (a *API) getCard(w http.ResponseWriter, r *http.Request, id int64) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusForbidden, "authentication required")
		return
	}

	c, err := a.cards.Get(r.Context(), identity, id)
	if err != nil {
		handleCardError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (a *API) updateCard(w http.ResponseWriter, r *http.Request, id int64) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusForbidden, "authentication required")
		return
	}

	var req updateCardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.cards.Update(r.Context(), identity, id, req.Amount); err != nil {
		handleCardError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "card.update", map[string]any{
		"card_id": id,
		"amount":  req.Amount,
	})

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) deleteCard(w http.ResponseWriter, r *http.Request, id int64) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusForbidden, "authentication required")
		return
	}

	if err := a.cards.Delete(r.Context(), identity, id); err != nil {
		handleCardError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "card.delete", map[string]any{
		"card_id": id,
	})

	w.WriteHeader(http.StatusNoContent)
}

func parsePageRequest(r *http.Request) (card.PageRequest, error) {
	var page card.PageRequest
	q := r.URL.Query()
	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return page, errors.New("page must be a non-negative integer")
		}
		page.Page = v
	}
	if raw := strings.TrimSpace(q.Get("size")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return page, errors.New("size must be a positive integer")
		}
		page.Size = v
	}
	page.Sort = strings.TrimSpace(q.Get("sort"))
	return page, nil
}

func handleCardError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, card.ErrInvalidAmount), errors.Is(err, card.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, card.ErrForbidden):
		writeError(w, r, http.StatusForbidden, "forbidden")
	case errors.Is(err, card.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "card not found")
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
