package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("zero distance for same point", func(t *testing.T) {
		d := HaversineDistance(13.0827, 80.2707, 13.0827, 80.2707)
		assert.Equal(t, 0.0, d)
	})

	t.Run("symmetric", func(t *testing.T) {
		d1 := HaversineDistance(13.0827, 80.2707, 12.9716, 77.5946)
		d2 := HaversineDistance(12.9716, 77.5946, 13.0827, 80.2707)
		assert.InDelta(t, d1, d2, 0.0001)
	})

	t.Run("known distance Chennai to Bengaluru", func(t *testing.T) {
		// по прямой около 290 км
		d := HaversineDistance(13.0827, 80.2707, 12.9716, 77.5946)
		assert.InDelta(t, 290, d, 10)
	})
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(13.0827, 80.2707))
	assert.True(t, ValidateCoordinates(-90, -180))
	assert.True(t, ValidateCoordinates(90, 180))
	assert.False(t, ValidateCoordinates(90.1, 0))
	assert.False(t, ValidateCoordinates(0, 180.1))
	assert.False(t, ValidateCoordinates(-91, 0))
}

func TestRoundKm(t *testing.T) {
	assert.Equal(t, 346.2, RoundKm(346.153))
	assert.Equal(t, 0.1, RoundKm(0.05))
	assert.Equal(t, 0.0, RoundKm(0.04))
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 83.33, RoundMoney(83.333))
	assert.Equal(t, 83.34, RoundMoney(83.335000001))
	assert.Equal(t, 2100.0, RoundMoney(2100))
}
