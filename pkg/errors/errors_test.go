package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrap(ErrAuth, "userinfo call")
	require.Error(t, err)
	assert.True(t, Is(err, ErrAuth))
	assert.Contains(t, err.Error(), "userinfo call")
}

func TestWrapfPreservesSentinel(t *testing.T) {
	err := Wrapf(ErrAPI, "google http %d", 500)
	require.Error(t, err)
	assert.True(t, Is(err, ErrAPI))
	assert.Contains(t, err.Error(), "google http 500")
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "context"))
	assert.NoError(t, Wrapf(nil, "context %d", 1))
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrInvalidArgument, ErrAuth, ErrTransport, ErrTimeout, ErrDecode, ErrAPI, ErrConsent}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, Is(a, b), "%v should not match %v", a, b)
		}
	}
}
