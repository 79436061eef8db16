package gateway

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

func successPayload(number string) sendResponse {
	return sendResponse{SMSMessageData: SMSMessageData{
		Message: "Sent to 1/1 Total Cost: KES 0.8000",
		Recipients: []Recipient{
			{Number: number, Status: "Success", StatusCode: 101, MessageID: "ATXid_1", Cost: "KES 0.8000"},
		},
	}}
}

func newClient(apiURL string) *AfricasTalkingClient {
	return NewAfricasTalkingClient(Config{
		APIURL:   apiURL,
		Username: "sandbox",
		APIKey:   "test-api-key",
		SenderID: "KBenedict",
		Timeout:  2 * time.Second,
	})
}

func TestAfricasTalkingClient_Send(t *testing.T) {
	t.Run("sends credentials and form fields", func(t *testing.T) {
		var gotAPIKey, gotUsername, gotTo, gotMessage, gotFrom string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotAPIKey = r.Header.Get("apiKey")
			gotUsername = r.PostFormValue("username")
			gotTo = r.PostFormValue("to")
			gotMessage = r.PostFormValue("message")
			gotFrom = r.PostFormValue("from")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(successPayload(gotTo))
		}))
		defer srv.Close()

		recipient, err := newClient(srv.URL).Send(context.Background(), "+254701234567", "hello")
		require.NoError(t, err)

		assert.Equal(t, "test-api-key", gotAPIKey)
		assert.Equal(t, "sandbox", gotUsername)
		assert.Equal(t, "+254701234567", gotTo)
		assert.Equal(t, "hello", gotMessage)
		assert.Equal(t, "KBenedict", gotFrom)
		assert.Equal(t, "ATXid_1", recipient.MessageID)
	})

	t.Run("non-2xx response is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := newClient(srv.URL).Send(context.Background(), "+254701234567", "hello")
		assert.Error(t, err)
	})

	t.Run("rejected recipient is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(sendResponse{SMSMessageData: SMSMessageData{
				Recipients: []Recipient{{Number: "+254701234567", Status: "InvalidPhoneNumber", StatusCode: 403}},
			}})
		}))
		defer srv.Close()

		_, err := newClient(srv.URL).Send(context.Background(), "+254701234567", "hello")
		assert.ErrorIs(t, err, ErrRecipientFailure)
	})

	t.Run("empty recipient list is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(sendResponse{SMSMessageData: SMSMessageData{Message: "InvalidSenderId"}})
		}))
		defer srv.Close()

		_, err := newClient(srv.URL).Send(context.Background(), "+254701234567", "hello")
		assert.ErrorIs(t, err, ErrNoRecipients)
	})

	t.Run("unreachable gateway is an error", func(t *testing.T) {
		_, err := newClient("http://127.0.0.1:1").Send(context.Background(), "+254701234567", "hello")
		assert.Error(t, err)
	})
}
