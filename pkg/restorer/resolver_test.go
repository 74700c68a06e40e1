package restorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restorebot/internal/constants"
)

func TestResolvePicksFirstNonNullTag(t *testing.T) {
	resolver := NewTypeTagResolver()

	tag, err := resolver.Resolve([]constants.TypeTag{constants.TypeInt, constants.TypeDouble})
	require.NoError(t, err)
	assert.Equal(t, constants.TypeInt, tag)

	tag, err = resolver.Resolve([]constants.TypeTag{constants.TypeNull, constants.TypeString, constants.TypeInt})
	require.NoError(t, err)
	assert.Equal(t, constants.TypeString, tag)
}

func TestResolveAllNullYieldsNull(t *testing.T) {
	resolver := NewTypeTagResolver()

	tag, err := resolver.Resolve([]constants.TypeTag{constants.TypeNull})
	require.NoError(t, err)
	assert.Equal(t, constants.TypeNull, tag)
}

func TestResolveUnknownFails(t *testing.T) {
	resolver := NewTypeTagResolver()

	_, err := resolver.Resolve([]constants.TypeTag{constants.TypeUnknown})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = resolver.Resolve([]constants.TypeTag{constants.TypeNull, constants.TypeUnknown})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = resolver.Resolve(nil)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestResolveIsDeterministic(t *testing.T) {
	tags := []constants.TypeTag{constants.TypeNull, constants.TypeDouble, constants.TypeInt, constants.TypeString}

	first, err := NewTypeTagResolver().Resolve(tags)
	require.NoError(t, err)

	// No randomness in the tie-break: every resolver instance and every
	// invocation picks the same tag for the same recorded order.
	for i := 0; i < 100; i++ {
		tag, err := NewTypeTagResolver().Resolve(tags)
		require.NoError(t, err)
		assert.Equal(t, first, tag)
	}
}
