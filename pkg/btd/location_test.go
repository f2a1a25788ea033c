package btd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("identical points have zero distance", func(t *testing.T) {
		assert.Zero(t, HaversineDistance(52.2297, 21.0122, 52.2297, 21.0122))
	})

	t.Run("symmetric", func(t *testing.T) {
		forward := HaversineDistance(52.2300, 21.0100, 52.2310, 21.0120)
		backward := HaversineDistance(52.2310, 21.0120, 52.2300, 21.0100)

		assert.Equal(t, forward, backward)
	})

	t.Run("known city scale distance", func(t *testing.T) {
		// Warsaw Palace of Culture to the Old Town, roughly 2 km.
		distance := HaversineDistance(52.2319, 21.0067, 52.2497, 21.0122)

		assert.InDelta(t, 2.01, distance, 0.05)
	})

	t.Run("one minute of latitude is about 1.85 km", func(t *testing.T) {
		distance := HaversineDistance(52.0, 21.0, 52.0+1.0/60.0, 21.0)

		assert.InDelta(t, 1.853, distance, 0.01)
	})
}

func TestNewPointLocation(t *testing.T) {
	location := NewPointLocation(52.23, 21.01)

	assert.Equal(t, "Point", location.Type)
	assert.Equal(t, 52.23, location.Latitude())
	assert.Equal(t, 21.01, location.Longitude())
}
