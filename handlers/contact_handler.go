package handlers

import (
	"net/http"
	"strings"

	"portfolio-backend/models"
	"portfolio-backend/repository"
)

type ContactHandler struct {
	Repo    repository.ContactRepository
	Users   repository.UserRepository
	Captcha CaptchaVerifier
}

type contactInput struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Msg            string `json:"msg" validate:"required"`
	RecaptchaToken string `json:"recaptchaToken"`
}

var contactMessages = map[string]string{
	"name":  "Name is required",
	"email": "Email is required",
	"msg":   "Message is required",
}

type contactResponse struct {
	Contact *models.Contact `json:"contact"`
	Success bool            `json:"success"`
}

// AddContact handles POST /api/contacts/addcontact. It is public.
func (h *ContactHandler) AddContact(w http.ResponseWriter, r *http.Request) {
	var in contactInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Msg = strings.TrimSpace(in.Msg)

	if !passesCaptcha(w, r, h.Captcha, in.RecaptchaToken) {
		return
	}
	if errs := validateStruct(in, contactMessages); len(errs) > 0 {
		writeErrors(w, http.StatusBadRequest, errs...)
		return
	}

	c := &models.Contact{Name: in.Name, Email: in.Email, Msg: in.Msg}
	if err := h.Repo.CreateContact(r.Context(), c); err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contactResponse{Contact: c, Success: true})
}

// GetContacts handles POST /api/contacts/getcontacts (superuser only).
func (h *ContactHandler) GetContacts(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSuperuser(w, r, h.Users); !ok {
		return
	}

	list, err := h.Repo.ListContacts(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// DeleteContact handles DELETE /api/contacts/deletecontact/{id} (superuser only).
func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSuperuser(w, r, h.Users); !ok {
		return
	}

	deleted, err := h.Repo.DeleteContact(r.Context(), r.PathValue("id"))
	if err != nil {
		serverError(w, r, err)
		return
	}
	if deleted == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, contactResponse{Contact: deleted, Success: true})
}
