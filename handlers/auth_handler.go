package handlers

import (
	"errors"
	"net/http"

	"portfolio-backend/auth"
	"portfolio-backend/logger"
	"portfolio-backend/models"
	"portfolio-backend/repository"
)

type AuthHandler struct {
	Repo    repository.UserRepository
	Tokens  *auth.TokenService
	Captcha CaptchaVerifier
	Policy  PasswordPolicy
}

type signupRequest struct {
	Name           string `json:"name" validate:"required,min=3"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password"`
	RecaptchaToken string `json:"recaptchaToken"`
}

var signupMessages = map[string]string{
	"name":  "Enter a name with atleast 3 letters",
	"email": "Invalid Email",
}

type loginRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required"`
	RecaptchaToken string `json:"recaptchaToken"`
}

var loginMessages = map[string]string{
	"email":    "Invalid Email",
	"password": "Password is required",
}

type tokenResponse struct {
	AuthToken string `json:"authToken"`
	Success   bool   `json:"success"`
}

type userResponse struct {
	User    *models.User `json:"user"`
	Success bool         `json:"success"`
}

// Signup handles POST /api/auth/signup. Field and password errors are reported
// together; an email that is already registered is reported before the
// password policy is applied.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !passesCaptcha(w, r, h.Captcha, req.RecaptchaToken) {
		return
	}
	errs := validateStruct(req, signupMessages)

	var existing *models.User
	if !hasParam(errs, "email") {
		var err error
		existing, err = h.Repo.GetUserByEmail(r.Context(), req.Email)
		if err != nil {
			serverError(w, r, err)
			return
		}
	}
	if existing != nil && len(errs) == 0 {
		writeError(w, http.StatusBadRequest, msgUserExists)
		return
	}
	if existing == nil {
		if bad := h.Policy.Check(req.Password); bad != nil {
			errs = append(errs, *bad)
		}
	}
	if len(errs) > 0 {
		writeErrors(w, http.StatusBadRequest, errs...)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		serverError(w, r, err)
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleNormal,
	}
	if err := h.Repo.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, msgUserExists)
			return
		}
		serverError(w, r, err)
		return
	}

	h.respondToken(w, r, user.ID)
}

// Login handles POST /api/auth/login. Unknown email and wrong password share
// one response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !passesCaptcha(w, r, h.Captcha, req.RecaptchaToken) {
		return
	}
	if errs := validateStruct(req, loginMessages); len(errs) > 0 {
		writeErrors(w, http.StatusBadRequest, errs...)
		return
	}

	user, err := h.Repo.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		serverError(w, r, err)
		return
	}
	if user == nil || !auth.CheckPassword(user.Password, req.Password) {
		writeError(w, http.StatusBadRequest, msgInvalidCreds)
		return
	}

	h.respondToken(w, r, user.ID)
}

func (h *AuthHandler) respondToken(w http.ResponseWriter, r *http.Request, userID string) {
	token, err := h.Tokens.Issue(userID)
	if err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AuthToken: token, Success: true})
}

// GetUser handles POST /api/auth/getuser.
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := auth.FromContext(r.Context())
	if id == nil {
		accessDenied(w)
		return
	}

	user, err := h.Repo.GetUserByID(r.Context(), id.ID)
	if err != nil {
		serverError(w, r, err)
		return
	}
	if user == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{User: user, Success: true})
}

// GetUsers handles POST /api/auth/getusers (superuser only).
func (h *AuthHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSuperuser(w, r, h.Repo); !ok {
		return
	}

	users, err := h.Repo.ListUsers(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// DeleteUser handles DELETE /api/auth/deleteuser/{id} (superuser only).
func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireSuperuser(w, r, h.Repo)
	if !ok {
		return
	}

	deleted, err := h.Repo.DeleteUser(r.Context(), r.PathValue("id"))
	if err != nil {
		serverError(w, r, err)
		return
	}
	if deleted == nil {
		notFound(w)
		return
	}

	logger.Infof("user %s deleted by %s", deleted.ID, actor.ID)
	writeJSON(w, http.StatusOK, userResponse{User: deleted, Success: true})
}
