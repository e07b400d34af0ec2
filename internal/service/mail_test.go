package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"bitwise74/social-api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResendMailer(t *testing.T, h http.HandlerFunc) *resendMailer {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	m, err := NewMailer(config.Mail{Provider: "resend", From: "noreply@x.io", ResendAPIKey: "re_test"})
	require.NoError(t, err)

	rm := m.(*resendMailer)
	rm.client.BaseURL, err = url.Parse(srv.URL + "/")
	require.NoError(t, err)

	return rm
}

func TestResendMailerSend(t *testing.T) {
	var got map[string]any
	m := newTestResendMailer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "emails"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"mail-1"}`))
	})

	require.NoError(t, m.Send(context.Background(), resetPasswordMail("ann@x.io", "Secret12")))
	assert.Equal(t, "noreply@x.io", got["from"])
	assert.Equal(t, []any{"ann@x.io"}, got["to"])
	assert.Contains(t, got["html"], "Secret12")
}

func TestResendMailerHonoursContext(t *testing.T) {
	called := false
	m := newTestResendMailer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte(`{"id":"mail-1"}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, m.Send(ctx, resetPasswordMail("ann@x.io", "Secret12")))
	assert.False(t, called)
}

func TestNewMailerUnknownProvider(t *testing.T) {
	_, err := NewMailer(config.Mail{Provider: "pigeon"})
	assert.Error(t, err)
}
