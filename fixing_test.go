package qubobb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixing_withDoesNotMutateParent(t *testing.T) {
	parent := Fixing{0: 1.0}
	child := parent.with(1, 0.0)

	assert.Len(t, parent, 1)
	assert.Len(t, child, 2)
	assert.True(t, parent.isFree(1))
	assert.False(t, child.isFree(1))
}

func TestFixing_complete(t *testing.T) {
	f := Fixing{0: 1.0, 1: 0.0}
	assert.False(t, f.complete(3))
	assert.True(t, f.complete(2))
}

func TestFixing_materialize(t *testing.T) {
	f := Fixing{1: 1.0}
	got := f.materialize(3, []float64{0.2, 0.7, 0.4})
	assert.Equal(t, []float64{0.2, 1.0, 0.4}, got)
}
