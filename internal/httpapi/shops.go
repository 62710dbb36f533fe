package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"elampillai/internal/app/shops"
	"elampillai/internal/logging"
)

// shopRequest is the JSON body of a create or update submission. Rating is
// accepted as a number or as the raw text of a number input.
type shopRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Address     *string         `json:"address"`
	Category    *string         `json:"category"`
	Rating      json.RawMessage `json:"rating"`
	Phone       *string         `json:"phone"`
}

func (req shopRequest) draft() (shops.Draft, error) {
	d := shops.Draft{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Category:    req.Category,
		Phone:       req.Phone,
	}

	raw := bytes.TrimSpace(req.Rating)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return d, nil
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return d, shops.ErrInvalidRating
		}
	}
	rating, err := shops.ParseRating(text)
	if err != nil {
		return d, err
	}
	d.Rating = &rating
	return d, nil
}

type formResponse struct {
	Mode        string      `json:"mode"`
	ID          string      `json:"id,omitempty"`
	Draft       shops.Draft `json:"draft"`
	SubmitLabel string      `json:"submitLabel"`
}

func newFormResponse(form *shops.Form) formResponse {
	resp := formResponse{Mode: "empty", Draft: form.Draft(), SubmitLabel: form.SubmitLabel()}
	switch st := form.State().(type) {
	case shops.Editing:
		resp.Mode = "editing"
		resp.ID = st.ID
	case shops.Creating:
		resp.Mode = "creating"
	}
	return resp
}

func (s *Server) handleListShops(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Shops []shops.Shop `json:"shops"`
	}{Shops: s.shops.List()})
}

func (s *Server) handleGetShop(w http.ResponseWriter, r *http.Request) {
	shop, err := s.shops.Get(r.PathValue("id"))
	if err != nil {
		writeShopError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, shop)
}

func (s *Server) handleEditShop(w http.ResponseWriter, r *http.Request) {
	form := shops.NewForm()
	if err := s.shops.Edit(form, r.PathValue("id")); err != nil {
		writeShopError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newFormResponse(form))
}

func (s *Server) handleCreateShop(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	created, err := s.shops.Submit(r.Context(), shops.FormFor(shops.Creating{Draft: draft}))
	if err != nil {
		writeShopError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateShop(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	form := shops.FormFor(shops.Editing{ID: r.PathValue("id"), Draft: draft})
	updated, err := s.shops.Submit(r.Context(), form)
	if err != nil {
		writeShopError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleConfirmShopDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.shops.Get(id); err != nil {
		writeShopError(w, r, err)
		return
	}

	s.issueConfirmation(w, kindShop, id, "Are you sure you want to delete this shop?")
}

func (s *Server) handleDeleteShop(w http.ResponseWriter, r *http.Request) {
	prompt := s.confirm.Prompt(confirmToken(r), kindShop)
	if err := s.shops.Delete(r.Context(), r.PathValue("id"), prompt); err != nil {
		writeShopError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeDraft(w http.ResponseWriter, r *http.Request) (shops.Draft, bool) {
	var req shopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return shops.Draft{}, false
	}

	draft, err := req.draft()
	if err != nil {
		writeShopError(w, r, err)
		return shops.Draft{}, false
	}
	return draft, true
}

func writeShopError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, shops.ErrShopNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "shop not found"})
	case errors.Is(err, shops.ErrNameRequired), errors.Is(err, shops.ErrInvalidRating):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, shops.ErrNotConfirmed):
		writeJSON(w, http.StatusPreconditionRequired, errorResponse{Error: err.Error()})
	default:
		logging.FromContext(r.Context()).Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("shop request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

