package handlers

import (
	"context"
	"net"
	"net/http"

	"portfolio-backend/auth"
	"portfolio-backend/logger"
	"portfolio-backend/models"
	"portfolio-backend/repository"
)

// CaptchaVerifier checks a client side bot-mitigation token.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

// requireSuperuser loads the caller and answers 401 unless it is a superuser.
// It must run before any protected data is read.
func requireSuperuser(w http.ResponseWriter, r *http.Request, users repository.UserRepository) (*models.User, bool) {
	id := auth.FromContext(r.Context())
	if id == nil {
		accessDenied(w)
		return nil, false
	}

	user, err := users.GetUserByID(r.Context(), id.ID)
	if err != nil {
		serverError(w, r, err)
		return nil, false
	}
	if !user.IsSuperuser() {
		logger.Warningf("non-superuser %s denied on %s", id.ID, r.URL.Path)
		accessDenied(w)
		return nil, false
	}
	return user, true
}

// requireOwner answers 401 unless the caller owns the record.
func requireOwner(w http.ResponseWriter, r *http.Request, ownerID string) bool {
	id := auth.FromContext(r.Context())
	if id == nil || ownerID == "" || id.ID != ownerID {
		accessDenied(w)
		return false
	}
	return true
}

// passesCaptcha runs the optional bot gate. A nil verifier disables it.
func passesCaptcha(w http.ResponseWriter, r *http.Request, v CaptchaVerifier, token string) bool {
	if v == nil {
		return true
	}

	ok, err := v.Verify(r.Context(), token, remoteIP(r))
	if err != nil {
		serverError(w, r, err)
		return false
	}
	if !ok {
		writeError(w, http.StatusBadRequest, msgBotSuspected)
		return false
	}
	return true
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
