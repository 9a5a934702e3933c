package qubobb

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCentralPoint(t *testing.T) {
	got := CentralPoint(3)
	assert.Equal(t, []float64{0.5, 0.5, 0.5}, got)
}

func TestRandomBinaryPoint_respectsSparsityExtremes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	allZero := RandomBinaryPoint(20, rng, 0.0)
	for _, v := range allZero {
		assert.Equal(t, 0.0, v)
	}

	allOne := RandomBinaryPoint(20, rng, 1.0)
	for _, v := range allOne {
		assert.Equal(t, 1.0, v)
	}
}
