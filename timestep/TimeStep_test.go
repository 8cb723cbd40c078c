package timestep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndType(t *testing.T) {
	step := New(Mid, -1, 0.9, nil, 4)
	step.SetEnd(Timeout)
	assert.Equal(t, Unknown, step.EndType())

	step.StepType = Last
	assert.Equal(t, Timeout, step.EndType())
	assert.Equal(t, "Timeout", step.EndType().String())
	assert.True(t, step.Last())
	assert.False(t, step.Mid())
}

func TestString(t *testing.T) {
	step := New(First, 0, 1, nil, 0)
	assert.True(t, step.First())
	assert.Equal(t, "TimeStep | Type: First  |  Reward:  0.00  |  "+
		"Discount: 1.00  |  Step Number:  0", step.String())
}
