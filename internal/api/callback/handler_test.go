package callback

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes/pkg/logger"
)

func TestServeHTTPCapturesCode(t *testing.T) {
	h := New(logger.Get())

	req := httptest.NewRequest(http.MethodGet, "/callback?code=4%2Fabc&state=s1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "return to the terminal")

	select {
	case result := <-h.Results():
		assert.Equal(t, "4/abc", result.Code)
		assert.Equal(t, "s1", result.State)
		assert.Empty(t, result.Err)
	default:
		t.Fatal("expected a captured result")
	}
}

func TestServeHTTPCapturesDenial(t *testing.T) {
	h := New(logger.Get())

	req := httptest.NewRequest(http.MethodGet, "/callback?error=access_denied&state=s1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), "denied")

	result := <-h.Results()
	assert.Equal(t, "access_denied", result.Err)
	assert.Empty(t, result.Code)
}

func TestServeHTTPDropsWhenNobodyWaits(t *testing.T) {
	h := New(logger.Get())

	// Fill the buffer, then reload the page.
	first := httptest.NewRequest(http.MethodGet, "/callback?code=one", nil)
	h.ServeHTTP(httptest.NewRecorder(), first)

	second := httptest.NewRequest(http.MethodGet, "/callback?code=two", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, second)
	assert.Equal(t, http.StatusOK, rec.Code)

	result := <-h.Results()
	assert.Equal(t, "one", result.Code)

	select {
	case extra := <-h.Results():
		t.Fatalf("unexpected extra result %+v", extra)
	default:
	}
}

func TestServeHTTPRejectsPost(t *testing.T) {
	h := New(logger.Get())

	req := httptest.NewRequest(http.MethodPost, "/callback", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
