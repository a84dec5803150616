package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP()
	assert.Len(t, otp, 6)
	for _, r := range otp {
		assert.True(t, r >= '0' && r <= '9')
	}
}

func TestRoundPercentage(t *testing.T) {
	p := RoundPercentage(3, 5)
	require.NotNil(t, p)
	assert.Equal(t, 60.0, *p)

	p = RoundPercentage(1, 3)
	require.NotNil(t, p)
	assert.Equal(t, 33.33, *p)

	p = RoundPercentage(0, 10)
	require.NotNil(t, p)
	assert.Equal(t, 0.0, *p)
}

func TestRoundPercentageZeroMax(t *testing.T) {
	assert.Nil(t, RoundPercentage(5, 0))
	assert.Nil(t, RoundPercentage(5, -1))
}
