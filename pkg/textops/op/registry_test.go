package op_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-textops/pkg/textops/op"
)

func TestRegistryLookupUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := op.Builtin().Lookup("unknown-op")
	require.ErrorIs(t, err, op.ErrUnknownKind)

	var uErr *op.UnknownKindError
	require.ErrorAs(t, err, &uErr)
	assert.Equal(t, op.Kind("unknown-op"), uErr.Kind)
}

func TestRegistryRegisterDuplicate(t *testing.T) {
	t.Parallel()

	reg := op.NewRegistry()
	require.NoError(t, reg.Register(op.Trim()))
	require.Error(t, reg.Register(op.Trim()))
}

func TestRegistryListIsRestartable(t *testing.T) {
	t.Parallel()

	reg := op.Builtin()

	collect := func() []op.Kind {
		kinds := make([]op.Kind, 0)
		for desc := range reg.List() {
			kinds = append(kinds, desc.Kind)
		}

		return kinds
	}

	first := collect()
	second := collect()

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestRegistryListRegistrationOrder(t *testing.T) {
	t.Parallel()

	reg := op.NewRegistry()
	require.NoError(t, reg.Register(op.Dedupe()))
	require.NoError(t, reg.Register(op.Trim()))

	kinds := make([]op.Kind, 0, 2)
	labels := make([]string, 0, 2)

	for desc := range reg.List() {
		kinds = append(kinds, desc.Kind)
		labels = append(labels, desc.Label)
	}

	assert.Equal(t, []op.Kind{op.KindDedupe, op.KindTrim}, kinds)
	assert.Equal(t, []string{"Remove duplicate lines", "Trim whitespace"}, labels)
}

func TestRegistryListEarlyStop(t *testing.T) {
	t.Parallel()

	count := 0
	for range op.Builtin().List() {
		count++

		break
	}

	assert.Equal(t, 1, count)
}

func TestRegistryDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg, err := op.Builtin().DefaultConfig(op.KindDedupe)
	require.NoError(t, err)
	assert.Equal(t, op.DedupeConfig{Keep: op.KeepFirst, CaseSensitive: true}, cfg)

	_, err = op.Builtin().DefaultConfig("nope")
	require.ErrorIs(t, err, op.ErrUnknownKind)
}

func TestRegistryValidate(t *testing.T) {
	t.Parallel()

	reg := op.Builtin()

	violations, err := reg.Validate(op.KindDedupe, map[string]any{"keep": "last"})
	require.NoError(t, err)
	assert.Empty(t, violations)

	violations, err = reg.Validate(op.KindDedupe, map[string]any{"keep": "middle", "bogus": 1})
	require.NoError(t, err)
	require.Len(t, violations, 2)
	assert.Equal(t, "keep", violations[0].Field)
	assert.Equal(t, "bogus", violations[1].Field)

	_, err = reg.Validate("nope", nil)
	require.ErrorIs(t, err, op.ErrUnknownKind)
}

func TestRegistryApply(t *testing.T) {
	t.Parallel()

	got, err := op.Builtin().Apply(op.KindTrim, op.TrimConfig{}, "  x  ")
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	_, err = op.Builtin().Apply("nope", op.TrimConfig{}, "x")
	require.ErrorIs(t, err, op.ErrUnknownKind)
}
