package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio-backend/auth"
	"portfolio-backend/models"

	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type testEnv struct {
	users        *memUsers
	portfolios   *memPortfolios
	certificates *memCertificates
	contacts     *memContacts
	tokens       *auth.TokenService

	auth        *AuthHandler
	portfolio   *PortfolioHandler
	certificate *CertificateHandler
	contact     *ContactHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:        newMemUsers(),
		portfolios:   &memPortfolios{},
		certificates: &memCertificates{},
		contacts:     &memContacts{},
		tokens:       auth.NewTokenService(testSecret),
	}
	uploads := &Uploader{Dir: t.TempDir(), MaxBytes: 1 << 20}

	env.auth = &AuthHandler{Repo: env.users, Tokens: env.tokens, Policy: PasswordPolicy{MinLength: 7, Alphanumeric: true}}
	env.portfolio = &PortfolioHandler{Repo: env.portfolios, Users: env.users, Uploads: uploads}
	env.certificate = &CertificateHandler{Repo: env.certificates, Users: env.users, Uploads: uploads}
	env.contact = &ContactHandler{Repo: env.contacts, Users: env.users}
	return env
}

// do runs fn behind the auth middleware when protected is set.
func (e *testEnv) do(fn http.HandlerFunc, protected bool, req *http.Request) *httptest.ResponseRecorder {
	if protected {
		fn = FetchUser(e.tokens)(fn)
	}
	rec := httptest.NewRecorder()
	RecoverWrapper(fn)(rec, req)
	return rec
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withToken(req *http.Request, token string) *http.Request {
	req.Header.Set(tokenHeader, token)
	return req
}

func withPath(req *http.Request, name, value string) *http.Request {
	req.SetPathValue(name, value)
	return req
}

// signup registers a user through the handler and returns its token.
func (e *testEnv) signup(t *testing.T, name, email, password string) string {
	t.Helper()
	rec := e.do(e.auth.Signup, false, jsonRequest(t, http.MethodPost, "/api/auth/signup",
		map[string]string{"name": name, "email": email, "password": password}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.True(t, out.Success)
	require.NotEmpty(t, out.AuthToken)
	return out.AuthToken
}

// superuser registers a user and promotes it directly in the store.
func (e *testEnv) superuser(t *testing.T, email string) string {
	t.Helper()
	token := e.signup(t, "Admin User", email, "admin123")
	u, err := e.users.GetUserByEmail(t.Context(), email)
	require.NoError(t, err)
	e.users.mu.Lock()
	e.users.users[u.ID].Role = models.RoleSuperuser
	e.users.mu.Unlock()
	return token
}

func decodeErrors(t *testing.T, rec *httptest.ResponseRecorder) ErrorsResponse {
	t.Helper()
	var out ErrorsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// demote drops a user back to the normal role, keeping its token valid.
func (e *testEnv) demote(t *testing.T, email string) {
	t.Helper()
	u, err := e.users.GetUserByEmail(t.Context(), email)
	require.NoError(t, err)
	e.users.mu.Lock()
	e.users.users[u.ID].Role = models.RoleNormal
	e.users.mu.Unlock()
}
