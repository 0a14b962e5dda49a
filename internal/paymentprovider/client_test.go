package paymentprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreatePaymentIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "1000", r.PostForm.Get("amount"))
		assert.Equal(t, "lkr", r.PostForm.Get("currency"))
		assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", r.PostForm.Get("metadata[user_uid]"))
		assert.Equal(t, "Test Donor", r.PostForm.Get("metadata[user_name]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "pi_123",
			"client_secret": "pi_123_secret_456",
			"status": "requires_payment_method",
			"amount": 1000,
			"currency": "lkr"
		}`))
	}))
	defer srv.Close()

	client := NewClientWithURL("sk_test_123", srv.URL)

	intent, err := client.CreatePaymentIntent(context.Background(), CreatePaymentIntentRequest{
		Amount:   1000,
		Currency: "lkr",
		Metadata: map[string]string{
			"user_uid":  "550e8400-e29b-41d4-a716-446655440000",
			"user_name": "Test Donor",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret_456", intent.ClientSecret)
	assert.Equal(t, int64(1000), intent.Amount)
}

func TestClient_CreatePaymentIntent_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error": {"type": "card_error", "message": "Your card was declined."}}`))
	}))
	defer srv.Close()

	client := NewClientWithURL("sk_test_123", srv.URL)

	intent, err := client.CreatePaymentIntent(context.Background(), CreatePaymentIntentRequest{
		Amount:   1000,
		Currency: "lkr",
	})
	require.Error(t, err)
	assert.Nil(t, intent)
	assert.Contains(t, err.Error(), "declined")
}
