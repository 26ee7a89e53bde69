package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEmailBody(t *testing.T) {
	body, err := RegisterEmailBody("Ada", "http://localhost:8080/users/verify/abc123", time.Now().Add(15*time.Minute))
	require.NoError(t, err)
	assert.Contains(t, body, "Ada")
	assert.Contains(t, body, "/users/verify/abc123")
}

func TestResetEmailBody(t *testing.T) {
	body, err := ResetEmailBody("Ada", "123456", time.Now().Add(10*time.Minute))
	require.NoError(t, err)
	assert.Contains(t, body, "123456")
}

func TestBrevoSend(t *testing.T) {
	var got sendEmailReq
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewBrevoClient("key", "noreply@example.com", "Blog", srv.URL)
	err := c.Send(context.Background(), "ada@example.com", "hello", "<p>hi</p>")
	require.NoError(t, err)

	assert.Equal(t, "key", apiKey)
	assert.Equal(t, "hello", got.Subject)
	require.Len(t, got.To, 1)
	assert.Equal(t, "ada@example.com", got.To[0]["email"])
	assert.Equal(t, "noreply@example.com", got.Sender["email"])
}

func TestBrevoSendAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"bad key"}`))
	}))
	defer srv.Close()

	c := NewBrevoClient("wrong", "noreply@example.com", "Blog", srv.URL)
	err := c.Send(context.Background(), "ada@example.com", "hello", "<p>hi</p>")
	assert.Error(t, err)
}

func TestBrevoSendRejectsEmptyFields(t *testing.T) {
	c := NewBrevoClient("key", "noreply@example.com", "Blog", "")
	assert.Error(t, c.Send(context.Background(), "", "s", "b"))
	assert.Error(t, c.Send(context.Background(), "to@example.com", "", "b"))
	assert.Error(t, c.Send(context.Background(), "to@example.com", "s", ""))
}
