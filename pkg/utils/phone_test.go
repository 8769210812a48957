package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	got, err := NormalizePhone("+44 20 7183 8750", "US")
	require.NoError(t, err)
	assert.Equal(t, "+442071838750", got)

	got, err = NormalizePhone("020 7183 8750", "GB")
	require.NoError(t, err)
	assert.Equal(t, "+442071838750", got)

	got, err = NormalizePhone("(650) 253-0000", "US")
	require.NoError(t, err)
	assert.Equal(t, "+16502530000", got)

	for _, raw := range []string{"", "not a phone", "12"} {
		_, err := NormalizePhone(raw, "US")
		assert.ErrorIs(t, err, ErrInvalidPhone, raw)
	}
}
