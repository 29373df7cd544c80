package validator_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authsvc/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.RequiredString("email", "user@example.com"),
			validator.ValidEmail("email", "user@example.com"),
			validator.MinLenString("password", "password123", 8),
		)
		assert.NoError(t, err)
	})

	t.Run("collects all failures", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.RequiredString("email", ""),
			validator.MinLenString("password", "short", 8),
		)
		require.Error(t, err)

		verrs := validator.Extract(err)
		require.Len(t, verrs, 2)
		assert.True(t, verrs.Has("email"))
		assert.True(t, verrs.Has("password"))
		assert.False(t, verrs.Has("name"))
	})

	t.Run("get returns field messages", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.RequiredString("email", ""),
			validator.ValidEmail("email", ""),
		)
		require.Error(t, err)

		verrs := validator.Extract(err)
		assert.Len(t, verrs.Get("email"), 2)
		assert.Nil(t, verrs.Get("password"))
	})
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, validator.Extract(nil))
	})

	t.Run("non validation error", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, validator.Extract(fmt.Errorf("boom")))
		assert.False(t, validator.IsValidationError(fmt.Errorf("boom")))
	})

	t.Run("wrapped validation error", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(validator.RequiredString("email", ""))
		wrapped := fmt.Errorf("request rejected: %w", err)

		assert.True(t, validator.IsValidationError(wrapped))
		assert.Len(t, validator.Extract(wrapped), 1)
	})
}

func TestRequiredString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value string
		ok    bool
	}{
		{"hello", true},
		{"", false},
		{"   ", false},
		{"\t\n", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, validator.RequiredString("field", tc.value).Check(), "value %q", tc.value)
	}
}

func TestLenRules(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.MinLenString("f", "12345678", 8).Check())
	assert.False(t, validator.MinLenString("f", "1234567", 8).Check())
	assert.True(t, validator.MaxLenString("f", "abc", 3).Check())
	assert.False(t, validator.MaxLenString("f", "abcd", 3).Check())

	// multibyte counted as runes, not bytes
	assert.True(t, validator.MinLenString("f", "пароль12", 8).Check())
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value string
		ok    bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.com", true},
		{"", false},
		{"not-an-email", false},
		{"user@", false},
		{"User Name <user@example.com>", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, validator.ValidEmail("email", tc.value).Check(), "value %q", tc.value)
	}
}

func TestEqualStrings(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.EqualStrings("confirmPassword", "secret", "secret").Check())
	assert.False(t, validator.EqualStrings("confirmPassword", "secret", "other").Check())
}
