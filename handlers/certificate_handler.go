package handlers

import (
	"context"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"portfolio-backend/models"
	"portfolio-backend/repository"
)

const certificateUploads = "certificates"

// PDFRenderer prints certificates into a PDF document.
type PDFRenderer interface {
	CertificatesPDF(ctx context.Context, certs []*models.Certificate) ([]byte, error)
}

type CertificateHandler struct {
	Repo    repository.CertificateRepository
	Users   repository.UserRepository
	Uploads *Uploader
	PDF     PDFRenderer
}

type certificateInput struct {
	CompName string `json:"compName" validate:"required,min=5"`
	Year     int    `json:"year" validate:"required,gte=1900,lte=2100"`
	Field    string `json:"field" validate:"required"`
	Winner   bool   `json:"winner"`
}

type certificatePatchInput struct {
	CompName string `json:"compName" validate:"omitempty,min=5"`
	Year     int    `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	Field    string `json:"field"`
	Winner   *bool  `json:"winner"`
}

var certificateMessages = map[string]string{
	"compName": "Name of Competition is required & minimum 5 characters",
	"year":     "Year is required",
	"field":    "Field is required",
}

type certificateResponse struct {
	Certificate *models.Certificate `json:"certificate"`
	Success     bool                `json:"success"`
}

type pageError struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// GetCertificates handles POST /api/certificates/getcertificates.
func (h *CertificateHandler) GetCertificates(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListCertificates(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetSomeCertificates handles GET /api/certificates/getsomecertificates?page=&size=.
// Results are ordered by year, newest first; page numbering starts at 1.
func (h *CertificateHandler) GetSomeCertificates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := strconv.ParseInt(q.Get("page"), 10, 64)
	if err != nil || page < 1 {
		writeJSON(w, http.StatusBadRequest, pageError{Error: true, Message: "invalid page number, should start with 1"})
		return
	}
	size, err := strconv.ParseInt(q.Get("size"), 10, 64)
	if err != nil || size < 1 {
		writeJSON(w, http.StatusBadRequest, pageError{Error: true, Message: "invalid page size"})
		return
	}

	// a skip past MaxInt64 is beyond any stored page
	if page-1 > math.MaxInt64/size {
		writeJSON(w, http.StatusOK, []*models.Certificate{})
		return
	}

	list, err := h.Repo.ListCertificatesPage(r.Context(), size*(page-1), size)
	if err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetNumCertificates handles GET /api/certificates/getnumcertificates.
func (h *CertificateHandler) GetNumCertificates(w http.ResponseWriter, r *http.Request) {
	n, err := h.Repo.CountCertificates(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// GetFields handles GET /api/certificates/getfields.
func (h *CertificateHandler) GetFields(w http.ResponseWriter, r *http.Request) {
	fields, err := h.Repo.DistinctFields(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fields)
}

// GetCertificatesByField handles GET /api/certificates/getcertificatesbyfield?field=.
func (h *CertificateHandler) GetCertificatesByField(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	if field == "" {
		writeErrors(w, http.StatusBadRequest, ErrorItem{Msg: certificateMessages["field"], Param: "field", Location: "query"})
		return
	}

	list, err := h.Repo.ListCertificatesByField(r.Context(), field)
	if err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetCertificateByID handles GET /api/certificates/getcertificatebyid/{id}.
func (h *CertificateHandler) GetCertificateByID(w http.ResponseWriter, r *http.Request) {
	c, err := h.Repo.GetCertificateByID(r.Context(), r.PathValue("id"))
	if err != nil {
		serverError(w, r, err)
		return
	}
	if c == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// AddCertificate handles POST /api/certificates/addcertificate (superuser only).
func (h *CertificateHandler) AddCertificate(w http.ResponseWriter, r *http.Request) {
	in, fh, ok := h.readInput(w, r)
	if !ok {
		return
	}
	if errs := validateStruct(in, certificateMessages); len(errs) > 0 {
		writeErrors(w, http.StatusBadRequest, errs...)
		return
	}

	actor, ok := requireSuperuser(w, r, h.Users)
	if !ok {
		return
	}

	img, err := h.Uploads.embed(r.Context(), certificateUploads, fh)
	if err != nil {
		serverError(w, r, err)
		return
	}

	c := &models.Certificate{
		User:     actor.ID,
		CompName: in.CompName,
		Year:     in.Year,
		Field:    strings.TrimSpace(in.Field),
		Image:    img,
		Winner:   in.Winner,
	}
	if err := h.Repo.CreateCertificate(r.Context(), c); err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, certificateResponse{Certificate: c, Success: true})
}

func (h *CertificateHandler) readInput(w http.ResponseWriter, r *http.Request) (certificateInput, *multipart.FileHeader, bool) {
	var in certificateInput
	if !isMultipart(r) {
		return in, nil, decodeJSON(w, r, &in)
	}

	fh, err := h.Uploads.parseForm(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return in, nil, false
	}
	in.CompName = r.FormValue("compName")
	in.Year, _ = strconv.Atoi(strings.TrimSpace(r.FormValue("year")))
	in.Field = r.FormValue("field")
	in.Winner = formBool(r.FormValue("winner"))
	return in, fh, true
}

// UpdateCertificate handles PUT /api/certificates/updatecertificate/{id} (superuser owner only).
func (h *CertificateHandler) UpdateCertificate(w http.ResponseWriter, r *http.Request) {
	var in certificatePatchInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if errs := validateStruct(in, certificateMessages); len(errs) > 0 {
		writeErrors(w, http.StatusBadRequest, errs...)
		return
	}
	if _, ok := requireSuperuser(w, r, h.Users); !ok {
		return
	}

	id := r.PathValue("id")
	existing, err := h.Repo.GetCertificateByID(r.Context(), id)
	if err != nil {
		serverError(w, r, err)
		return
	}
	if existing == nil {
		notFound(w)
		return
	}
	if !requireOwner(w, r, existing.User) {
		return
	}

	patch := models.CertificatePatch{
		CompName: in.CompName,
		Year:     in.Year,
		Field:    strings.TrimSpace(in.Field),
		Winner:   in.Winner,
	}
	updated, err := h.Repo.UpdateCertificate(r.Context(), id, patch)
	if err != nil {
		serverError(w, r, err)
		return
	}
	if updated == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, certificateResponse{Certificate: updated, Success: true})
}

// DeleteCertificate handles DELETE /api/certificates/deletecertificate/{id} (superuser owner only).
func (h *CertificateHandler) DeleteCertificate(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSuperuser(w, r, h.Users); !ok {
		return
	}

	id := r.PathValue("id")
	existing, err := h.Repo.GetCertificateByID(r.Context(), id)
	if err != nil {
		serverError(w, r, err)
		return
	}
	if existing == nil {
		notFound(w)
		return
	}
	if !requireOwner(w, r, existing.User) {
		return
	}

	deleted, err := h.Repo.DeleteCertificate(r.Context(), id)
	if err != nil {
		serverError(w, r, err)
		return
	}
	if deleted == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, certificateResponse{Certificate: deleted, Success: true})
}

// ExportPDF handles GET /api/certificates/exportpdf.
func (h *CertificateHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	if h.PDF == nil {
		writeError(w, http.StatusServiceUnavailable, "PDF export is disabled")
		return
	}

	n, err := h.Repo.CountCertificates(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	certs, err := h.Repo.ListCertificatesPage(r.Context(), 0, n)
	if err != nil {
		serverError(w, r, err)
		return
	}

	pdf, err := h.PDF.CertificatesPDF(r.Context(), certs)
	if err != nil {
		serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="certificates.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func formBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
