package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authsvc/pkg/config"
)

type testConfig struct {
	Name  string `env:"TEST_CONFIG_NAME" envDefault:"default-name"`
	Count int    `env:"TEST_CONFIG_COUNT" envDefault:"3"`
}

type requiredConfig struct {
	Secret string `env:"TEST_CONFIG_REQUIRED_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		config.ResetCache()

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "default-name", cfg.Name)
		assert.Equal(t, 3, cfg.Count)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("TEST_CONFIG_NAME", "from-env")
		t.Setenv("TEST_CONFIG_COUNT", "42")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "from-env", cfg.Name)
		assert.Equal(t, 42, cfg.Count)
	})

	t.Run("cached between calls", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("TEST_CONFIG_NAME", "first")

		var first testConfig
		require.NoError(t, config.Load(&first))

		// A later change to the environment must not affect the cached value.
		t.Setenv("TEST_CONFIG_NAME", "second")

		var second testConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Name)
	})

	t.Run("missing required variable", func(t *testing.T) {
		config.ResetCache()

		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	config.ResetCache()

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
