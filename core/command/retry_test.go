package command_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/smartcommand/core/command"
)

func TestCountedRetry(t *testing.T) {
	t.Parallel()

	t.Run("allows exactly max attempts", func(t *testing.T) {
		t.Parallel()

		r := command.NewCountedRetry(3)

		for range 3 {
			assert.True(t, r.CanRetry())
			r.Retry()
		}
		assert.False(t, r.CanRetry())
		assert.Equal(t, 3, r.Attempts())
	})

	t.Run("saturates at max", func(t *testing.T) {
		t.Parallel()

		r := command.NewCountedRetry(2)
		for range 5 {
			r.Retry()
		}

		assert.Equal(t, 2, r.Attempts())
		assert.False(t, r.CanRetry())
	})

	t.Run("reset restores full budget", func(t *testing.T) {
		t.Parallel()

		r := command.NewCountedRetry(1)
		r.Retry()
		assert.False(t, r.CanRetry())

		r.ResetRetry()
		assert.True(t, r.CanRetry())
		assert.Equal(t, 0, r.Attempts())
	})

	t.Run("zero max never allows an attempt", func(t *testing.T) {
		t.Parallel()

		r := command.NewCountedRetry(0)
		assert.False(t, r.CanRetry())
		assert.Equal(t, 0, r.MaxAttempts())
	})

	t.Run("negative max is clamped to zero", func(t *testing.T) {
		t.Parallel()

		r := command.NewCountedRetry(-4)
		assert.False(t, r.CanRetry())
		assert.Equal(t, 0, r.MaxAttempts())
	})

	t.Run("default is a single attempt", func(t *testing.T) {
		t.Parallel()

		r := command.NewCountedRetry(command.DefaultMaxAttempts)
		assert.True(t, r.CanRetry())
		r.Retry()
		assert.False(t, r.CanRetry())
	})
}

func TestCountedRetryProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("N retries leave CanRetry true iff N < max", prop.ForAll(
		func(maxAttempts, n int) bool {
			r := command.NewCountedRetry(maxAttempts)
			for range n {
				r.Retry()
			}
			return r.CanRetry() == (n < maxAttempts)
		},
		gen.IntRange(0, 50),
		gen.IntRange(0, 100),
	))

	properties.Property("reset makes CanRetry true for any positive max", prop.ForAll(
		func(maxAttempts, n int) bool {
			r := command.NewCountedRetry(maxAttempts)
			for range n {
				r.Retry()
			}
			r.ResetRetry()
			return r.CanRetry() && r.Attempts() == 0
		},
		gen.IntRange(1, 50),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}
