package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siteVerifyServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "captcha-secret", r.PostForm.Get("secret"))
		w.Header().Set("Content-Type", "application/json")
		if r.PostForm.Get("response") == "human" {
			_, _ = w.Write([]byte(`{"success": true}`))
			return
		}
		_, _ = w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRecaptchaVerifier(t *testing.T) {
	srv := siteVerifyServer(t)
	v := NewRecaptchaVerifier("captcha-secret", srv.URL)

	ok, err := v.Verify(context.Background(), "human", "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.Verify(context.Background(), "bot", "")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = v.Verify(context.Background(), "", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecaptchaVerifierUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewRecaptchaVerifier("s", srv.URL).Verify(context.Background(), "token", "")
	assert.Error(t, err)
}
