package preview_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-textops/pkg/textops"
	"github.com/askiada/go-textops/pkg/textops/measure"
	"github.com/askiada/go-textops/pkg/textops/op"
	"github.com/askiada/go-textops/pkg/textops/preview"
)

type slowConfig struct{}

func (slowConfig) Kind() op.Kind {
	return "slow-echo"
}

func (slowConfig) Raw() map[string]any {
	return map[string]any{}
}

// slowOp takes long enough that a newer request can arrive mid-run.
type slowOp struct {
	delay time.Duration
}

func (slowOp) Kind() op.Kind {
	return "slow-echo"
}

func (slowOp) Label() string {
	return "Slow echo"
}

func (slowOp) DefaultConfig() op.Config {
	return slowConfig{}
}

func (slowOp) DecodeConfig(_ map[string]any) (op.Config, error) {
	return slowConfig{}, nil
}

func (o slowOp) Apply(_ op.Config, text string) (string, error) {
	time.Sleep(o.delay)

	return "slow:" + text, nil
}

func trimPipeline(t *testing.T) *textops.Pipeline {
	t.Helper()

	pipe := textops.New()
	_, err := pipe.AddStep(op.KindTrim, nil)
	require.NoError(t, err)

	return pipe
}

func awaitUpdate(t *testing.T, updates <-chan preview.Snapshot) preview.Snapshot {
	t.Helper()

	select {
	case snap := <-updates:
		return snap
	case <-time.After(5 * time.Second):
		t.Fatal("no update within deadline")

		return preview.Snapshot{}
	}
}

func TestRequestCoalescesWithinWindow(t *testing.T) {
	t.Parallel()

	pipe := trimPipeline(t)
	msr := measure.NewDefaultMeasure()
	exec := textops.NewExecutor(textops.ExecutorObserver(measure.ExecutorMeasure(msr)))

	updates := make(chan preview.Snapshot, 16)
	ctrl := preview.NewController(exec,
		preview.Window(50*time.Millisecond),
		preview.OnUpdate(func(snap preview.Snapshot) { updates <- snap }),
	)
	defer func() { require.NoError(t, ctrl.Close()) }()

	ctrl.Request(pipe, "  first  ")
	ctrl.Request(pipe, "  second  ")
	ctrl.Request(pipe, "  final  ")

	snap := awaitUpdate(t, updates)
	assert.Equal(t, "final", snap.Output)
	assert.False(t, snap.Stale)

	// Only the last request before the window elapsed was executed.
	assert.Equal(t, int64(1), msr.GetMetric(measure.RunMetricName).Count())
}

func TestSnapshotIsStaleWhilePending(t *testing.T) {
	t.Parallel()

	ctrl := preview.NewController(textops.NewExecutor(), preview.Window(time.Hour))
	defer func() { require.NoError(t, ctrl.Close()) }()

	assert.False(t, ctrl.Snapshot().Stale)

	ctrl.Request(trimPipeline(t), "  text  ")
	assert.True(t, ctrl.Snapshot().Stale)
}

func TestFlushBypassesWindow(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	exec := textops.NewExecutor(textops.ExecutorObserver(measure.ExecutorMeasure(msr)))
	ctrl := preview.NewController(exec, preview.Window(time.Hour))
	defer func() { require.NoError(t, ctrl.Close()) }()

	ctrl.Request(trimPipeline(t), "  now  ")

	snap, err := ctrl.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "now", snap.Output)
	assert.False(t, snap.Stale)
	assert.Equal(t, int64(1), msr.GetMetric(measure.RunMetricName).Count())
}

func TestFlushWithoutPendingReturnsLatest(t *testing.T) {
	t.Parallel()

	ctrl := preview.NewController(textops.NewExecutor())
	defer func() { require.NoError(t, ctrl.Close()) }()

	snap, err := ctrl.Flush(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Output)
}

func TestCloseBeforeWindowRunsNothing(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	exec := textops.NewExecutor(textops.ExecutorObserver(measure.ExecutorMeasure(msr)))
	ctrl := preview.NewController(exec, preview.Window(time.Hour))

	pipe := trimPipeline(t)
	ctrl.Request(pipe, "  never  ")
	require.NoError(t, ctrl.Close())

	assert.Nil(t, msr.GetMetric(measure.RunMetricName))

	// Requests after Close are no-ops.
	ctrl.Request(pipe, "  still never  ")
	assert.Nil(t, msr.GetMetric(measure.RunMetricName))
}

func TestSupersededRunIsDiscarded(t *testing.T) {
	t.Parallel()

	reg := op.NewRegistry()
	require.NoError(t, reg.Register(slowOp{delay: 400 * time.Millisecond}))

	pipe := textops.New(textops.PipelineRegistry(reg))
	_, err := pipe.AddStep("slow-echo", nil)
	require.NoError(t, err)

	updates := make(chan preview.Snapshot, 16)
	ctrl := preview.NewController(textops.NewExecutor(),
		preview.Window(20*time.Millisecond),
		preview.OnUpdate(func(snap preview.Snapshot) { updates <- snap }),
	)
	defer func() { require.NoError(t, ctrl.Close()) }()

	ctrl.Request(pipe, "one")

	// Let the first run start, then supersede it while it is in flight.
	time.Sleep(150 * time.Millisecond)
	ctrl.Request(pipe, "two")

	snap := awaitUpdate(t, updates)
	assert.Equal(t, "slow:two", snap.Output)

	// The first run finished after the second request existed, so its
	// result was discarded without an update.
	select {
	case stray := <-updates:
		t.Fatalf("unexpected extra update: %+v", stray)
	case <-time.After(200 * time.Millisecond):
	}
}
