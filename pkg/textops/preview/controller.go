// Package preview decouples "the user is still typing" from "run the
// executor". A Controller debounces recomputation requests and runs only
// the most recent one once the window elapses; a completed run is
// committed only if its request is still the latest, so an older run
// finishing late can never overwrite a newer result.
package preview

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-textops/pkg/textops"
)

const defaultWindow = 250 * time.Millisecond

// Snapshot is the controller's latest observable state.
type Snapshot struct {
	Output      string
	Diagnostics []textops.Diagnostic
	// Stale reports that a newer request is pending or running, the
	// output shown is about to be replaced.
	Stale bool
	// Err is set when the latest run failed with a defect-level error;
	// Output and Diagnostics then still hold the last good result.
	Err error
}

// Controller debounces and coalesces executor runs.
type Controller struct {
	exec     *textops.Executor
	window   time.Duration
	logger   zerolog.Logger
	onUpdate func(Snapshot)

	mu          sync.Mutex
	timer       *time.Timer
	epoch       uint64
	pendingPipe *textops.Pipeline
	pendingText string
	hasPending  bool
	latest      Snapshot
	closed      bool

	grp    errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc
}

// NewController creates a controller around exec with a 250ms window
// unless Window overrides it.
func NewController(exec *textops.Executor, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())

	ctrl := &Controller{
		exec:   exec,
		window: defaultWindow,
		logger: zerolog.Nop(),
		ctx:    ctx,
		cancel: cancel,
	}

	for _, opt := range opts {
		opt(ctrl)
	}

	return ctrl
}

// Request records the latest (pipeline, input) pair and restarts the
// debounce window. Only the most recent request before the window
// elapses is ever executed.
func (c *Controller) Request(pipe *textops.Pipeline, input string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.epoch++
	epoch := c.epoch
	c.pendingPipe = pipe
	c.pendingText = input
	c.hasPending = true
	c.latest.Stale = true

	if c.timer != nil {
		c.timer.Stop()
	}

	c.timer = time.AfterFunc(c.window, func() {
		c.fire(epoch)
	})

	c.logger.Debug().Uint64("epoch", epoch).Msg("recompute scheduled")
}

// fire runs when the debounce window elapses.
func (c *Controller) fire(epoch uint64) {
	c.mu.Lock()

	if c.closed || epoch != c.epoch || !c.hasPending {
		c.mu.Unlock()
		c.logger.Debug().Uint64("epoch", epoch).Msg("request superseded before start")

		return
	}

	pipe := c.pendingPipe
	text := c.pendingText
	c.hasPending = false

	c.grp.Go(func() error {
		res, err := c.exec.Execute(c.ctx, pipe, text)
		c.commit(epoch, res, err)

		return nil
	})

	c.mu.Unlock()
}

// commit applies a finished run to the latest snapshot unless a newer
// request exists: epochs only grow, so a stale run is simply discarded.
func (c *Controller) commit(epoch uint64, res *textops.Result, err error) Snapshot {
	c.mu.Lock()

	if epoch != c.epoch {
		latest := c.latest
		c.mu.Unlock()
		c.logger.Debug().Uint64("epoch", epoch).Msg("result superseded, discarded")

		return latest
	}

	snap := Snapshot{
		Output:      c.latest.Output,
		Diagnostics: c.latest.Diagnostics,
	}

	if err != nil {
		snap.Err = err
	} else {
		snap.Output = res.Output
		snap.Diagnostics = res.Diagnostics
	}

	c.latest = snap
	onUpdate := c.onUpdate
	c.mu.Unlock()

	c.logger.Debug().Uint64("epoch", epoch).Err(err).Msg("result committed")

	if onUpdate != nil {
		onUpdate(snap)
	}

	return snap
}

// Flush runs the pending request immediately, bypassing the window, and
// returns the resulting snapshot. Without a pending request it returns
// the latest snapshot unchanged.
func (c *Controller) Flush(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()

	if c.closed || !c.hasPending {
		latest := c.latest
		c.mu.Unlock()

		return latest, nil
	}

	if c.timer != nil {
		c.timer.Stop()
	}

	epoch := c.epoch
	pipe := c.pendingPipe
	text := c.pendingText
	c.hasPending = false
	c.mu.Unlock()

	res, err := c.exec.Execute(ctx, pipe, text)

	return c.commit(epoch, res, err), err
}

// Snapshot returns the most recently committed result.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.latest
}

// Close cancels anything pending, waits for in-flight runs to drain and
// makes further requests no-ops.
func (c *Controller) Close() error {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()

		return nil
	}

	c.closed = true
	c.hasPending = false

	if c.timer != nil {
		c.timer.Stop()
	}

	c.mu.Unlock()

	c.cancel()

	return c.grp.Wait()
}
