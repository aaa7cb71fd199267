package preview

import (
	"time"

	"github.com/rs/zerolog"
)

type Option func(c *Controller)

// Window sets the debounce window.
func Window(window time.Duration) Option {
	return func(c *Controller) {
		c.window = window
	}
}

// Logger sets the controller's logger.
func Logger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// OnUpdate registers a callback invoked after every committed run. It
// runs on the controller's goroutine, keep it short.
func OnUpdate(fn func(Snapshot)) Option {
	return func(c *Controller) {
		c.onUpdate = fn
	}
}
