package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"hermes/pkg/errors"
)

func TestStatusErrorUnwrap(t *testing.T) {
	assert.True(t, errors.Is(&StatusError{Status: 401}, errors.ErrAuth))
	assert.True(t, errors.Is(&StatusError{Status: 403}, errors.ErrAuth))
	assert.True(t, errors.Is(&StatusError{Status: 400}, errors.ErrAPI))
	assert.True(t, errors.Is(&StatusError{Status: 500}, errors.ErrAPI))
	assert.False(t, errors.Is(&StatusError{Status: 500}, errors.ErrAuth))
}

func TestErrorMessageStructuredEnvelope(t *testing.T) {
	body := []byte(`{"error":{"code":403,"message":"Insufficient Permission","status":"PERMISSION_DENIED"}}`)
	assert.Equal(t, "Insufficient Permission", errorMessage(body))
}

func TestErrorMessageLegacyEnvelope(t *testing.T) {
	body := []byte(`{"error":"invalid_token","error_description":"Invalid Value"}`)
	assert.Equal(t, "invalid_token: Invalid Value", errorMessage(body))
}

func TestErrorMessageFallsBackToRawBody(t *testing.T) {
	assert.Equal(t, "gateway timeout", errorMessage([]byte("gateway timeout")))
}

func TestRoundTripIgnoresUnknownFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"known":"yes","unknown_future_field":{"nested":1}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	var target struct {
		Known string `json:"known"`
	}
	err := client.get(context.Background(), "test", "test", "/anything", nil, "", &target)
	require.NoError(t, err)
	assert.Equal(t, "yes", target.Known)
}

func TestRoundTripLimiterHonorsDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	// A drained 1-per-hour limiter forces Wait to exceed the deadline.
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	require.True(t, limiter.Allow())

	client := NewClient(Config{BaseURL: srv.URL, Limiter: limiter})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := client.get(ctx, "test", "test", "/anything", nil, "", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTimeout))
}

func TestRoundTripNilTargetSkipsDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`definitely not json`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	assert.NoError(t, client.get(context.Background(), "test", "test", "/anything", nil, "", nil))
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "success", statusLabel(nil))
	assert.Equal(t, "auth_error", statusLabel(&StatusError{Status: 401}))
	assert.Equal(t, "api_error", statusLabel(&StatusError{Status: 500}))
	assert.Equal(t, "timeout", statusLabel(errors.Wrap(errors.ErrTimeout, "x")))
	assert.Equal(t, "transport_error", statusLabel(errors.Wrap(errors.ErrTransport, "x")))
	assert.Equal(t, "decode_error", statusLabel(errors.Wrap(errors.ErrDecode, "x")))
}
