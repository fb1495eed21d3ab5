package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes/internal/tools/shared"
	"hermes/pkg/logger"
)

func TestNow(t *testing.T) {
	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	deps := shared.Deps{
		Now: func() time.Time { return fixed },
		Log: logger.Get(),
	}

	result, err := now(deps, "Asia/Colombo")
	require.NoError(t, err)

	// UTC noon is 17:30 in Colombo (+05:30).
	assert.Equal(t, "2026-08-30", result["date"])
	assert.Equal(t, "17:30:00", result["time"])
	assert.Equal(t, "Sunday", result["weekday"])
	assert.Equal(t, "Asia/Colombo", result["time_zone"])
}

func TestNowRejectsUnknownZone(t *testing.T) {
	deps := shared.Deps{Log: logger.Get()}

	_, err := now(deps, "Mars/Olympus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown time zone")
}
