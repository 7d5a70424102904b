package guard_test

import (
	"errors"
	"testing"

	"rental/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("constructed_guard_passes_validation", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		errNotConstructed := errors.New("query must be created via its constructor")

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuard_EmbeddedUsage checks the intended embedding pattern:
// a value object whose constructor sets the guard, and whose Validate method
// rejects zero-value instances.
func TestConstructorGuard_EmbeddedUsage(t *testing.T) {
	type rentalWindow struct {
		days  int
		guard guard.ConstructorGuard
	}

	errWindowNotConstructed := errors.New("rentalWindow must be created via newRentalWindow")

	newRentalWindow := func(days int) (rentalWindow, error) {
		if days < 0 {
			return rentalWindow{}, errors.New("days cannot be negative")
		}
		return rentalWindow{days: days, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_instance_is_valid", func(t *testing.T) {
		w, err := newRentalWindow(5)

		require.NoError(t, err)
		require.NoError(t, w.guard.Validate(errWindowNotConstructed))
		assert.Equal(t, 5, w.days)
	})

	t.Run("zero_value_instance_is_rejected", func(t *testing.T) {
		var w rentalWindow

		err := w.guard.Validate(errWindowNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errWindowNotConstructed, err)
	})
}
