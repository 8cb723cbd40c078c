package floatutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClip(t *testing.T) {
	assert.Equal(t, 1.0, Clip(3, -1, 1))
	assert.Equal(t, -1.0, Clip(-3, -1, 1))
	assert.Equal(t, 0.5, Clip(0.5, -1, 1))
}

func TestRound(t *testing.T) {
	tests := []struct {
		value  float64
		places int
		want   float64
	}{
		{1.123456, 5, 1.12346},
		{2.000004, 5, 2},
		{-0.25, 1, -0.3},
		{7.5, 0, 8},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, Round(test.value, test.places),
			"Round(%v, %v)", test.value, test.places)
	}
}

func TestRoundInt(t *testing.T) {
	assert.Equal(t, 2, RoundInt(2.5))
	assert.Equal(t, 4, RoundInt(3.5))
	assert.Equal(t, -2, RoundInt(-2.5))
	assert.Equal(t, 0, RoundInt(0.5))
	assert.Equal(t, 2, RoundInt(2.4999))
	assert.Equal(t, 0, RoundInt(-0.4))
}
