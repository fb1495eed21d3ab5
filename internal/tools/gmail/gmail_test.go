package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes/internal/adapters/google"
	"hermes/internal/auth"
	"hermes/internal/tools/shared"
	"hermes/pkg/logger"
)

func testDeps(t *testing.T, handler http.HandlerFunc) shared.Deps {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := google.NewClient(google.Config{BaseURL: server.URL})
	return shared.Deps{
		Gmail:  google.NewGmailClient(client),
		Tokens: auth.StaticTokenProvider{AccessToken: "tok-1"},
		Log:    logger.Get(),
	}
}

func TestMessagesList(t *testing.T) {
	deps := testDeps(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gmail/v1/users/me/messages", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "from:alice", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("maxResults"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"messages": []map[string]string{
				{"id": "m1", "threadId": "t1"},
				{"id": "m2", "threadId": "t1"},
			},
			"nextPageToken":      "page-2",
			"resultSizeEstimate": 2,
		})
	})

	result, err := messagesList(context.Background(), deps, map[string]interface{}{
		"q":           "from:alice",
		"max_results": float64(5),
	})
	require.NoError(t, err)

	messages := result["messages"].([]map[string]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "m1", messages[0]["id"])
	assert.Equal(t, "page-2", result["next_page_token"])
	assert.Equal(t, 2, result["result_size_estimate"])
}

func TestMessagesGetDecodesPlainText(t *testing.T) {
	body := base64.URLEncoding.EncodeToString([]byte("Hello from Alice"))
	deps := testDeps(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gmail/v1/users/me/messages/m1", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "m1",
			"threadId": "t1",
			"snippet":  "Hello...",
			"payload": map[string]interface{}{
				"mimeType": "multipart/alternative",
				"headers": []map[string]string{
					{"name": "Subject", "value": "Greetings"},
					{"name": "From", "value": "alice@example.com"},
				},
				"parts": []map[string]interface{}{
					{
						"mimeType": "text/plain",
						"body":     map[string]interface{}{"size": 16, "data": body},
					},
				},
			},
		})
	})

	result, err := messagesGet(context.Background(), deps, map[string]interface{}{"id": "m1"})
	require.NoError(t, err)
	assert.Equal(t, "Greetings", result["subject"])
	assert.Equal(t, "alice@example.com", result["from"])
	assert.Equal(t, "Hello from Alice", result["body"])
}

func TestMessagesGetRequiresID(t *testing.T) {
	deps := testDeps(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := messagesGet(context.Background(), deps, map[string]interface{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'id' is required")
}

func TestMessagesSend(t *testing.T) {
	deps := testDeps(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/gmail/v1/users/me/messages/send", r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "ZW5jb2RlZA==", payload["raw"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "sent-1",
			"threadId": "t9",
			"labelIds": []string{"SENT"},
		})
	})

	result, err := messagesSend(context.Background(), deps, map[string]interface{}{"raw": "ZW5jb2RlZA=="})
	require.NoError(t, err)
	assert.Equal(t, "sent-1", result["id"])
}

func TestMessagesSendRelaysAPIError(t *testing.T) {
	deps := testDeps(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"code": 403, "message": "Insufficient Permission"},
		})
	})

	_, err := messagesSend(context.Background(), deps, map[string]interface{}{"raw": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Insufficient Permission")
}

func TestGetProfile(t *testing.T) {
	deps := testDeps(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gmail/v1/users/me/profile", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"emailAddress":  "user@example.com",
			"messagesTotal": 120,
			"threadsTotal":  80,
			"historyId":     "12345",
		})
	})

	result, err := getProfile(context.Background(), deps)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", result["email_address"])
	assert.Equal(t, 120, result["messages_total"])
}

func TestRawMessage(t *testing.T) {
	deps := shared.Deps{Log: logger.Get()}

	result, err := rawMessage(context.Background(), deps, map[string]interface{}{
		"to":      "bob@example.com",
		"subject": "Lunch",
		"body":    "Noon?",
	})
	require.NoError(t, err)

	raw, ok := result["raw"].(string)
	require.True(t, ok)
	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "To: bob@example.com\r\n")
	assert.Contains(t, string(decoded), "Subject: Lunch\r\n")
	assert.Contains(t, string(decoded), "\r\n\r\nNoon?")
}

func TestRawMessageRequiresRecipient(t *testing.T) {
	deps := shared.Deps{Log: logger.Get()}

	_, err := rawMessage(context.Background(), deps, map[string]interface{}{"body": "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'to' is required")
}

func TestToolsRequireGmailClient(t *testing.T) {
	deps := shared.Deps{Log: logger.Get()}

	_, err := messagesList(context.Background(), deps, map[string]interface{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
