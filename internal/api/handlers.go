package api

import (
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-chi/chi/v5"

	"github.com/starford/phonebook/internal/apperr"
	"github.com/starford/phonebook/internal/contactservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *contactservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *contactservice.Service) *Handler {
	return &Handler{svc: svc}
}

// ListContacts handles GET /api/persons.
//
//	@Summary		List the whole directory in insertion order
//	@Tags			persons
//	@Produce		json
//	@Success		200	{array}	Contact
//	@Security		BearerAuth
//	@Router			/persons [get]
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.svc.List(r.Context())
	if err != nil {
		slog.Error("list contacts failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

// GetContact handles GET /api/persons/{id}.
//
//	@Summary		Get a single contact
//	@Tags			persons
//	@Produce		json
//	@Param			id	path		string	true	"Contact id"
//	@Success		200	{object}	Contact
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/persons/{id} [get]
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, "get contact", id, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateContact handles POST /api/persons.
//
//	@Summary		Create a contact; the service assigns the id
//	@Tags			persons
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ContactRequest	true	"Contact to create"
//	@Success		201		{object}	Contact
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/persons [post]
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	c, err := h.svc.Create(r.Context(), req.input())
	if err != nil {
		h.writeError(w, "create contact", "", err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// UpdateContact handles PUT /api/persons/{id}.
//
//	@Summary		Replace a contact's name and number
//	@Tags			persons
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Contact id"
//	@Param			body	body		ContactRequest	true	"Replacement contact"
//	@Success		200		{object}	Contact
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/persons/{id} [put]
func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	c, err := h.svc.Update(r.Context(), id, req.input())
	if err != nil {
		h.writeError(w, "update contact", id, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteContact handles DELETE /api/persons/{id}.
//
//	@Summary		Delete a contact
//	@Tags			persons
//	@Param			id	path	string	true	"Contact id"
//	@Success		204	"Contact deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/persons/{id} [delete]
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeError(w, "delete contact", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps service errors onto HTTP responses.
func (h *Handler) writeError(w http.ResponseWriter, op, id string, err error) {
	var fieldErrs validation.Errors
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.As(err, &fieldErrs):
		body := errorBody("validation failed")
		body.Fields = make(map[string]string, len(fieldErrs))
		for field, fe := range fieldErrs {
			body.Fields[field] = fe.Error()
		}
		writeJSON(w, http.StatusBadRequest, body)
	case errors.Is(err, apperr.ErrInvalid):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	default:
		slog.Error(op+" failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
