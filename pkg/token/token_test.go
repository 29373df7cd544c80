package token_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authsvc/pkg/token"
)

func TestNewHex(t *testing.T) {
	t.Parallel()

	t.Run("length and format", func(t *testing.T) {
		t.Parallel()

		got, err := token.NewHex(32)
		require.NoError(t, err)
		assert.Len(t, got, 64)
		assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]+$`), got)
	})

	t.Run("unique per call", func(t *testing.T) {
		t.Parallel()

		a, err := token.NewHex(32)
		require.NoError(t, err)
		b, err := token.NewHex(32)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("invalid length", func(t *testing.T) {
		t.Parallel()

		_, err := token.NewHex(0)
		assert.ErrorIs(t, err, token.ErrInvalidLength)
	})
}

func TestNewNumeric(t *testing.T) {
	t.Parallel()

	t.Run("six digits", func(t *testing.T) {
		t.Parallel()

		for range 50 {
			got, err := token.NewNumeric(6)
			require.NoError(t, err)
			assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), got)
		}
	})

	t.Run("invalid lengths", func(t *testing.T) {
		t.Parallel()

		_, err := token.NewNumeric(0)
		assert.ErrorIs(t, err, token.ErrInvalidLength)

		_, err = token.NewNumeric(19)
		assert.ErrorIs(t, err, token.ErrInvalidLength)
	})
}
