package op_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-textops/pkg/textops/op"
)

func TestFilterLinesDefaultKeepsEverything(t *testing.T) {
	t.Parallel()

	cfg := op.FilterLinesConfig{Expression: "true"}

	got, err := op.FilterLines().Apply(cfg, "a\nb\nc")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc", got)
}

func TestFilterLinesDropsEmptyLines(t *testing.T) {
	t.Parallel()

	cfg := op.FilterLinesConfig{Expression: "len(line) > 0"}

	got, err := op.FilterLines().Apply(cfg, "a\n\nb\n\n")
	require.NoError(t, err)
	assert.Equal(t, "a\nb", got)
}

func TestFilterLinesInvert(t *testing.T) {
	t.Parallel()

	cfg := op.FilterLinesConfig{Expression: `hasPrefix(line, "#")`, Invert: true}

	got, err := op.FilterLines().Apply(cfg, "# comment\ncode\n# more")
	require.NoError(t, err)
	assert.Equal(t, "code", got)
}

func TestFilterLinesIndexEnv(t *testing.T) {
	t.Parallel()

	cfg := op.FilterLinesConfig{Expression: "index % 2 == 0"}

	got, err := op.FilterLines().Apply(cfg, "a\nb\nc\nd")
	require.NoError(t, err)
	assert.Equal(t, "a\nc", got)
}

func TestFilterLinesEmptyText(t *testing.T) {
	t.Parallel()

	got, err := op.FilterLines().Apply(op.FilterLinesConfig{Expression: "true"}, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilterLinesDecodeConfigRejectsBadExpression(t *testing.T) {
	t.Parallel()

	_, err := op.FilterLines().DecodeConfig(map[string]any{"expression": "line +"})

	var vErr *op.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Violations, 1)
	assert.Equal(t, "expression", vErr.Violations[0].Field)
}

func TestFilterLinesDecodeConfigRejectsNonBool(t *testing.T) {
	t.Parallel()

	_, err := op.FilterLines().DecodeConfig(map[string]any{"expression": "len(line)"})

	var vErr *op.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "expression", vErr.Violations[0].Field)
}

func TestFilterLinesRuntimeFailureIsExecutionError(t *testing.T) {
	t.Parallel()

	// Compiles fine, divides by zero on the first line (index 0).
	cfg := op.FilterLinesConfig{Expression: "total / index >= 0"}

	_, err := op.FilterLines().Apply(cfg, "a\nb")
	require.ErrorIs(t, err, op.ErrExecution)
}
