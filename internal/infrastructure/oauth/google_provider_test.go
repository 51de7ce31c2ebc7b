package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"keephy.backend/internal/domain/gateways"
)

var _ gateways.IdentityProvider = (*GoogleProvider)(nil)

func newTestProvider(t *testing.T, userInfoStatus int, userInfoBody string) *GoogleProvider {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		assert.Equal(t, "postmessage", r.PostForm.Get("redirect_uri"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(userInfoStatus)
		_, _ = w.Write([]byte(userInfoBody))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	p := NewGoogleProvider("client", "secret", "postmessage")
	p.config.Endpoint = oauth2.Endpoint{TokenURL: srv.URL + "/token", AuthStyle: oauth2.AuthStyleInParams}
	p.userInfoURL = srv.URL + "/userinfo"
	return p
}

func TestGoogleProvider_ExchangeEmail(t *testing.T) {
	p := newTestProvider(t, http.StatusOK, `{"email":"g@keephy.io","email_verified":true}`)

	email, err := p.ExchangeEmail(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, "g@keephy.io", email)
}

func TestGoogleProvider_ExchangeFails(t *testing.T) {
	p := newTestProvider(t, http.StatusOK, `{}`)

	_, err := p.ExchangeEmail(context.Background(), "bad-code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exchange code")
}

func TestGoogleProvider_UserInfoFailures(t *testing.T) {
	p := newTestProvider(t, http.StatusUnauthorized, `{"error":"invalid_token"}`)
	_, err := p.ExchangeEmail(context.Background(), "good-code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 401")

	p = newTestProvider(t, http.StatusOK, `{"name":"no email"}`)
	_, err = p.ExchangeEmail(context.Background(), "good-code")
	require.ErrorIs(t, err, ErrNoEmail)
}
