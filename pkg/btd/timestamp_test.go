package btd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	parsed, err := ParseTimestamp("2024-01-01 08:00:00")
	require.NoError(t, err)

	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, 8, parsed.Hour())

	_, err = ParseTimestamp("08:00:00")
	assert.Error(t, err)
}

func TestHoursBetween(t *testing.T) {
	t.Run("one minute", func(t *testing.T) {
		hours, err := HoursBetween("2024-01-01 08:00:00", "2024-01-01 08:01:00")
		require.NoError(t, err)

		assert.InDelta(t, 1.0/60.0, hours, 1e-9)
	})

	t.Run("negative when reversed", func(t *testing.T) {
		hours, err := HoursBetween("2024-01-01 08:01:00", "2024-01-01 08:00:00")
		require.NoError(t, err)

		assert.InDelta(t, -1.0/60.0, hours, 1e-9)
	})

	t.Run("across midnight", func(t *testing.T) {
		hours, err := HoursBetween("2024-01-01 23:30:00", "2024-01-02 00:30:00")
		require.NoError(t, err)

		assert.InDelta(t, 1.0, hours, 1e-9)
	})
}
