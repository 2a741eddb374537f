package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchpoint-app/backend/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.PaymentsConfig{
		BaseURL: baseURL,
		APIKey:  "sk_test",
		Timeout: 2 * time.Second,
	})
}

func TestCreateCharge(t *testing.T) {
	ctx := context.Background()

	t.Run("successful charge", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/charges", r.URL.Path)
			assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
			assert.Equal(t, "key-1", r.Header.Get("Idempotency-Key"))

			var req ChargeRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, 4200, req.AmountCents)

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"ch_1","status":"succeeded"}`))
		}))
		defer srv.Close()

		charge, err := newTestClient(srv.URL).CreateCharge(ctx, &ChargeRequest{
			AmountCents:    4200,
			Currency:       "EUR",
			Reference:      "order-1",
			IdempotencyKey: "key-1",
		})
		require.NoError(t, err)
		assert.Equal(t, "ch_1", charge.ID)
		assert.Equal(t, StatusSucceeded, charge.Status)
	})

	t.Run("declined charge is not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"ch_2","status":"declined"}`))
		}))
		defer srv.Close()

		charge, err := newTestClient(srv.URL).CreateCharge(ctx, &ChargeRequest{AmountCents: 100})
		require.NoError(t, err)
		assert.Equal(t, StatusDeclined, charge.Status)
	})

	t.Run("processor error surfaces as error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"boom"}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).CreateCharge(ctx, &ChargeRequest{AmountCents: 100})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("unreachable processor", func(t *testing.T) {
		_, err := newTestClient("http://127.0.0.1:1").CreateCharge(ctx, &ChargeRequest{AmountCents: 100})
		assert.Error(t, err)
	})
}
