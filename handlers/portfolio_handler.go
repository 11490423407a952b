package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"portfolio-backend/models"
	"portfolio-backend/repository"
)

const portfolioUploads = "portfolio"

type PortfolioHandler struct {
	Repo    repository.PortfolioRepository
	Users   repository.UserRepository
	Uploads *Uploader
}

type portfolioInput struct {
	Title       string   `json:"title" validate:"required,min=5"`
	Description string   `json:"desc"`
	Type        string   `json:"type"`
	Slug        string   `json:"slug" validate:"omitempty,max=200"`
	Links       []string `json:"links"`
	GithubLink  string   `json:"githubLink" validate:"omitempty,url"`
	WebsiteLink string   `json:"websiteLink" validate:"omitempty,url"`
}

type portfolioPatchInput struct {
	Title       string   `json:"title" validate:"omitempty,min=5"`
	Description string   `json:"desc"`
	Type        string   `json:"type"`
	Slug        string   `json:"slug" validate:"omitempty,max=200"`
	Links       []string `json:"links"`
	GithubLink  string   `json:"githubLink" validate:"omitempty,url"`
	WebsiteLink string   `json:"websiteLink" validate:"omitempty,url"`
}

var portfolioMessages = map[string]string{
	"title":       "Title is required & minimum 5 characters",
	"slug":        "Slug must be at most 200 characters",
	"githubLink":  "Invalid GitHub link",
	"websiteLink": "Invalid website link",
}

type portfolioResponse struct {
	Portfolio *models.Portfolio `json:"portfolio"`
	Success   bool              `json:"success"`
}

// GetPortfolios handles POST /api/portfolios/getportfolios.
func (h *PortfolioHandler) GetPortfolios(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListPortfolios(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetPortfolio handles GET /api/portfolios/getportfolio/{slug}.
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	p, err := h.Repo.GetPortfolioBySlug(r.Context(), r.PathValue("slug"))
	h.writeOne(w, r, p, err)
}

// GetPortfolioFromID handles GET /api/portfolios/getportfoliofromid/{id}.
func (h *PortfolioHandler) GetPortfolioFromID(w http.ResponseWriter, r *http.Request) {
	p, err := h.Repo.GetPortfolioByID(r.Context(), r.PathValue("id"))
	h.writeOne(w, r, p, err)
}

func (h *PortfolioHandler) writeOne(w http.ResponseWriter, r *http.Request, p *models.Portfolio, err error) {
	if err != nil {
		serverError(w, r, err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, msgPortfolioNone)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// AddPortfolio handles POST /api/portfolios/addportfolio. The body is either
// multipart (with an optional "image" file) or JSON.
func (h *PortfolioHandler) AddPortfolio(w http.ResponseWriter, r *http.Request) {
	in, fh, ok := h.readInput(w, r)
	if !ok {
		return
	}
	if errs := validateStruct(in, portfolioMessages); len(errs) > 0 {
		writeErrors(w, http.StatusBadRequest, errs...)
		return
	}

	actor, ok := requireSuperuser(w, r, h.Users)
	if !ok {
		return
	}

	img, err := h.Uploads.embed(r.Context(), portfolioUploads, fh)
	if err != nil {
		serverError(w, r, err)
		return
	}

	p := &models.Portfolio{
		User:        actor.ID,
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Slug:        strings.TrimSpace(in.Slug),
		Image:       img,
		Links:       cleanLinks(in.Links),
		GithubLink:  in.GithubLink,
		WebsiteLink: in.WebsiteLink,
	}
	if err := h.Repo.CreatePortfolio(r.Context(), p); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			writeError(w, http.StatusBadRequest, msgSlugTaken)
			return
		}
		serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, portfolioResponse{Portfolio: p, Success: true})
}

func (h *PortfolioHandler) readInput(w http.ResponseWriter, r *http.Request) (portfolioInput, *multipart.FileHeader, bool) {
	var in portfolioInput
	if !isMultipart(r) {
		return in, nil, decodeJSON(w, r, &in)
	}

	fh, err := h.Uploads.parseForm(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return in, nil, false
	}
	in.Title = r.FormValue("title")
	in.Description = r.FormValue("desc")
	in.Type = r.FormValue("type")
	in.Slug = r.FormValue("slug")
	in.Links = formList(r, "links")
	in.GithubLink = r.FormValue("githubLink")
	in.WebsiteLink = r.FormValue("websiteLink")
	return in, fh, true
}

// UpdatePortfolio handles PUT /api/portfolios/updateportfolio/{id}. The caller
// must be a superuser and the owner; empty fields are left untouched.
func (h *PortfolioHandler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	var in portfolioPatchInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if errs := validateStruct(in, portfolioMessages); len(errs) > 0 {
		writeErrors(w, http.StatusBadRequest, errs...)
		return
	}
	if _, ok := requireSuperuser(w, r, h.Users); !ok {
		return
	}

	id := r.PathValue("id")
	existing, err := h.Repo.GetPortfolioByID(r.Context(), id)
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

	patch := models.PortfolioPatch{
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Slug:        strings.TrimSpace(in.Slug),
		Links:       cleanLinks(in.Links),
		GithubLink:  in.GithubLink,
		WebsiteLink: in.WebsiteLink,
	}
	updated, err := h.Repo.UpdatePortfolio(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			writeError(w, http.StatusBadRequest, msgSlugTaken)
			return
		}
		serverError(w, r, err)
		return
	}
	if updated == nil {
		notFound(w)
		return
	}

	writeJSON(w, http.StatusOK, portfolioResponse{Portfolio: updated, Success: true})
}

// DeletePortfolio handles DELETE /api/portfolios/deleteportfolio/{id} (superuser owner only).
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSuperuser(w, r, h.Users); !ok {
		return
	}

	id := r.PathValue("id")
	existing, err := h.Repo.GetPortfolioByID(r.Context(), id)
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

	deleted, err := h.Repo.DeletePortfolio(r.Context(), id)
	if err != nil {
		serverError(w, r, err)
		return
	}
	if deleted == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, portfolioResponse{Portfolio: deleted, Success: true})
}

// formList collects repeated form values, accepting both "links" and "links[]".
func formList(r *http.Request, key string) []string {
	if r.MultipartForm == nil {
		return nil
	}
	values := append([]string{}, r.MultipartForm.Value[key]...)
	return append(values, r.MultipartForm.Value[key+"[]"]...)
}

func cleanLinks(links []string) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
