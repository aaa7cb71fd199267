package textops_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-textops/pkg/textops"
	"github.com/askiada/go-textops/pkg/textops/model"
	"github.com/askiada/go-textops/pkg/textops/op"
)

type failConfig struct{}

func (failConfig) Kind() op.Kind {
	return "always-fail"
}

func (failConfig) Raw() map[string]any {
	return map[string]any{}
}

// failOp fails on every apply, standing in for a pathological operation.
type failOp struct{}

func (failOp) Kind() op.Kind {
	return "always-fail"
}

func (failOp) Label() string {
	return "Always fail"
}

func (failOp) DefaultConfig() op.Config {
	return failConfig{}
}

func (failOp) DecodeConfig(_ map[string]any) (op.Config, error) {
	return failConfig{}, nil
}

func (failOp) Apply(_ op.Config, _ string) (string, error) {
	return "", &op.ExecutionError{Kind: "always-fail", Err: assert.AnError}
}

func TestExecuteNilPipeline(t *testing.T) {
	t.Parallel()

	_, err := textops.NewExecutor().Execute(context.Background(), nil, "text")
	require.ErrorIs(t, err, textops.ErrPipelineMustBeSet)
}

func TestExecuteEmptyPipelineIsIdentity(t *testing.T) {
	t.Parallel()

	res, err := textops.NewExecutor().Execute(context.Background(), textops.New(), "as is")
	require.NoError(t, err)
	assert.Equal(t, "as is", res.Output)
	assert.Empty(t, res.Diagnostics)
}

func TestExecuteAllDisabledIsIdentity(t *testing.T) {
	t.Parallel()

	pipe := textops.New()

	for _, kind := range []op.Kind{op.KindTrim, op.KindChangeCase, op.KindDedupe} {
		step, err := pipe.AddStep(kind, nil)
		require.NoError(t, err)
		_, err = pipe.ToggleStep(step.ID())
		require.NoError(t, err)
	}

	input := "  Anything At All  \nfoo\nfoo"

	res, err := textops.NewExecutor().Execute(context.Background(), pipe, input)
	require.NoError(t, err)
	assert.Equal(t, input, res.Output)

	require.Len(t, res.Diagnostics, 3)
	for _, diag := range res.Diagnostics {
		assert.Equal(t, model.StatusSkipped, diag.Status)
	}
}

func TestExecuteTrimThenUppercase(t *testing.T) {
	t.Parallel()

	pipe := textops.New()

	_, err := pipe.AddStep(op.KindTrim, map[string]any{"lines": false})
	require.NoError(t, err)
	_, err = pipe.AddStep(op.KindChangeCase, map[string]any{"mode": "upper"})
	require.NoError(t, err)

	res, err := textops.NewExecutor().Execute(context.Background(), pipe, "  hello world  ")
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD", res.Output)

	require.Len(t, res.Diagnostics, 2)
	assert.Equal(t, model.StatusOK, res.Diagnostics[0].Status)
	assert.Equal(t, model.StatusOK, res.Diagnostics[1].Status)
}

func TestExecuteDedupeCaseInsensitive(t *testing.T) {
	t.Parallel()

	pipe := textops.New()

	_, err := pipe.AddStep(op.KindDedupe, map[string]any{"keep": "first", "caseSensitive": false})
	require.NoError(t, err)

	res, err := textops.NewExecutor().Execute(context.Background(), pipe, "Foo\nfoo\nBar")
	require.NoError(t, err)
	assert.Equal(t, "Foo\nBar", res.Output)
}

func TestExecuteDisabledStepIsSkipped(t *testing.T) {
	t.Parallel()

	pipe := textops.New()

	_, err := pipe.AddStep(op.KindTrim, map[string]any{"lines": false})
	require.NoError(t, err)
	upper, err := pipe.AddStep(op.KindChangeCase, map[string]any{"mode": "upper"})
	require.NoError(t, err)

	_, err = pipe.ToggleStep(upper.ID())
	require.NoError(t, err)

	res, err := textops.NewExecutor().Execute(context.Background(), pipe, "  hello world  ")
	require.NoError(t, err)
	assert.Equal(t, "hello world", res.Output)
	assert.Equal(t, model.StatusSkipped, res.Diagnostics[1].Status)
}

func TestExecuteIsolatesFailingStep(t *testing.T) {
	t.Parallel()

	reg := op.Builtin()
	require.NoError(t, reg.Register(failOp{}))

	pipe := textops.New(textops.PipelineRegistry(reg))

	_, err := pipe.AddStep(op.KindTrim, nil)
	require.NoError(t, err)
	_, err = pipe.AddStep("always-fail", nil)
	require.NoError(t, err)
	_, err = pipe.AddStep(op.KindChangeCase, map[string]any{"mode": "upper"})
	require.NoError(t, err)

	res, err := textops.NewExecutor().Execute(context.Background(), pipe, "  hi  ")
	require.NoError(t, err)

	// The failing step leaves the text unchanged, downstream still runs.
	assert.Equal(t, "HI", res.Output)

	require.Len(t, res.Diagnostics, 3)
	assert.Equal(t, model.StatusOK, res.Diagnostics[0].Status)
	assert.Equal(t, model.StatusFailed, res.Diagnostics[1].Status)
	assert.Equal(t, model.StatusOK, res.Diagnostics[2].Status)
	require.ErrorIs(t, res.Diagnostics[1].Err, op.ErrExecution)
}

func TestExecuteDeterministic(t *testing.T) {
	t.Parallel()

	pipe := textops.New()

	_, err := pipe.AddStep(op.KindSortLines, nil)
	require.NoError(t, err)
	_, err = pipe.AddStep(op.KindDedupe, nil)
	require.NoError(t, err)

	exec := textops.NewExecutor()

	first, err := exec.Execute(context.Background(), pipe, "b\na\nb\nc")
	require.NoError(t, err)

	second, err := exec.Execute(context.Background(), pipe, "b\na\nb\nc")
	require.NoError(t, err)

	assert.Equal(t, first.Output, second.Output)
}

func TestExecuteCancelledContext(t *testing.T) {
	t.Parallel()

	pipe := textops.New()

	_, err := pipe.AddStep(op.KindTrim, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = textops.NewExecutor().Execute(ctx, pipe, "text")
	require.ErrorIs(t, err, context.Canceled)
}
