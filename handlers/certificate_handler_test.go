package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCertificates(t *testing.T, env *testEnv, token string, years ...int) {
	t.Helper()
	for i, year := range years {
		field := "web"
		if i%2 == 1 {
			field = "robotics"
		}
		body := map[string]any{"compName": fmt.Sprintf("Contest number %d", i), "year": year, "field": field, "winner": i == 0}
		rec := env.do(env.certificate.AddCertificate, true, withToken(jsonRequest(t, http.MethodPost, "/api/certificates/addcertificate", body), token))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
}

func getPage(t *testing.T, env *testEnv, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/certificates/getsomecertificates?"+query, nil)
	return env.do(env.certificate.GetSomeCertificates, false, req)
}

func TestCertificatePagesAreDisjointAndOrdered(t *testing.T) {
	env := newTestEnv(t)
	admin := env.superuser(t, "root@example.com")
	seedCertificates(t, env, admin, 2018, 2021, 2019, 2023, 2020)

	seen := map[string]bool{}
	years := []int{}
	for page := 1; page <= 3; page++ {
		rec := getPage(t, env, fmt.Sprintf("page=%d&size=2", page))
		require.Equal(t, http.StatusOK, rec.Code)
		var certs []*models.Certificate
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &certs))
		for _, c := range certs {
			assert.False(t, seen[c.ID], "certificate %s appeared twice", c.ID)
			seen[c.ID] = true
			years = append(years, c.Year)
		}
	}
	assert.Len(t, seen, 5)
	assert.Equal(t, []int{2023, 2021, 2020, 2019, 2018}, years)

	rec := getPage(t, env, "page=4&size=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCertificatePageErrors(t *testing.T) {
	env := newTestEnv(t)

	for _, q := range []string{"page=0&size=2", "page=abc&size=2", "size=2"} {
		rec := getPage(t, env, q)
		require.Equal(t, http.StatusBadRequest, rec.Code, q)
		assert.JSONEq(t, `{"error":true,"message":"invalid page number, should start with 1"}`, rec.Body.String())
	}

	rec := getPage(t, env, "page=1&size=0")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":true,"message":"invalid page size"}`, rec.Body.String())
}

func TestCertificateCountFieldsAndFilter(t *testing.T) {
	env := newTestEnv(t)
	admin := env.superuser(t, "root@example.com")
	seedCertificates(t, env, admin, 2020, 2021, 2022)

	rec := env.do(env.certificate.GetNumCertificates, false, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `3`, rec.Body.String())

	rec = env.do(env.certificate.GetFields, false, httptest.NewRequest(http.MethodGet, "/", nil))
	var fields []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	assert.ElementsMatch(t, []string{"web", "robotics"}, fields)

	rec = env.do(env.certificate.GetCertificatesByField, false, httptest.NewRequest(http.MethodGet, "/?field=web", nil))
	var web []*models.Certificate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &web))
	assert.Len(t, web, 2)

	rec = env.do(env.certificate.GetCertificatesByField, false, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddCertificateValidationAndRole(t *testing.T) {
	env := newTestEnv(t)
	normal := env.signup(t, "Ada Lovelace", "ada@example.com", "engine42")
	admin := env.superuser(t, "root@example.com")

	good := map[string]any{"compName": "Robotics Cup", "year": 2022, "field": "robotics"}
	rec := env.do(env.certificate.AddCertificate, true, withToken(jsonRequest(t, http.MethodPost, "/", good), normal))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	bad := map[string]any{"compName": "Cup", "field": ""}
	rec = env.do(env.certificate.AddCertificate, true, withToken(jsonRequest(t, http.MethodPost, "/", bad), admin))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	params := []string{}
	for _, e := range decodeErrors(t, rec).Errors {
		params = append(params, e.Param)
	}
	assert.ElementsMatch(t, []string{"compName", "year", "field"}, params)
	assert.Empty(t, env.certificates.list)
}

func TestCertificateUpdateDeleteOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := env.superuser(t, "root@example.com")
	other := env.superuser(t, "other@example.com")
	seedCertificates(t, env, owner, 2020)
	id := env.certificates.list[0].ID

	no := false
	patch := map[string]any{"winner": no, "year": 2021}
	rec := env.do(env.certificate.UpdateCertificate, true, withPath(withToken(jsonRequest(t, http.MethodPut, "/", patch), other), "id", id))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(env.certificate.UpdateCertificate, true, withPath(withToken(jsonRequest(t, http.MethodPut, "/", patch), owner), "id", id))
	require.Equal(t, http.StatusOK, rec.Code)
	var out certificateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.False(t, out.Certificate.Winner)
	assert.Equal(t, 2021, out.Certificate.Year)
	assert.Equal(t, "Contest number 0", out.Certificate.CompName)

	rec = env.do(env.certificate.GetCertificateByID, false, withPath(httptest.NewRequest(http.MethodGet, "/", nil), "id", id))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(env.certificate.DeleteCertificate, true, withPath(withToken(jsonRequest(t, http.MethodDelete, "/", nil), other), "id", id))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = env.do(env.certificate.DeleteCertificate, true, withPath(withToken(jsonRequest(t, http.MethodDelete, "/", nil), owner), "id", id))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(env.certificate.GetCertificateByID, false, withPath(httptest.NewRequest(http.MethodGet, "/", nil), "id", id))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportPDF(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(env.certificate.ExportPDF, false, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	admin := env.superuser(t, "root@example.com")
	seedCertificates(t, env, admin, 2019, 2022)
	pdf := &stubPDF{}
	env.certificate.PDF = pdf

	rec = env.do(env.certificate.ExportPDF, false, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	require.Len(t, pdf.got, 2)
	assert.Equal(t, 2022, pdf.got[0].Year)
}

func TestListCertificatesStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	env.certificates.err = errStoreDown

	rec := env.do(env.certificate.GetCertificates, false, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, msgServerError, rec.Body.String())
}

func TestDemotedOwnerCannotChangeCertificate(t *testing.T) {
	env := newTestEnv(t)
	owner := env.superuser(t, "root@example.com")
	seedCertificates(t, env, owner, 2020)
	id := env.certificates.list[0].ID
	env.demote(t, "root@example.com")

	rec := env.do(env.certificate.UpdateCertificate, true, withPath(withToken(jsonRequest(t, http.MethodPut, "/", map[string]any{"year": 2022}), owner), "id", id))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = env.do(env.certificate.DeleteCertificate, true, withPath(withToken(jsonRequest(t, http.MethodDelete, "/", nil), owner), "id", id))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	require.Len(t, env.certificates.list, 1)
	assert.Equal(t, 2020, env.certificates.list[0].Year)
}

func TestCertificatePageBeyondRangeIsEmpty(t *testing.T) {
	env := newTestEnv(t)
	admin := env.superuser(t, "root@example.com")
	seedCertificates(t, env, admin, 2021, 2018)

	for _, q := range []string{
		"page=4611686018427387905&size=4",
		"page=9223372036854775807&size=2",
		"page=2&size=9223372036854775807",
	} {
		rec := getPage(t, env, q)
		require.Equal(t, http.StatusOK, rec.Code, q)
		assert.JSONEq(t, `[]`, rec.Body.String(), q)
	}
}
