// Package closer collects named shutdown hooks and runs them in reverse
// registration order when the application stops.
package closer

import (
	"context"
	"sync"

	"github.com/you-humble/dealership/internal/logger"
)

type hook struct {
	name string
	fn   func(ctx context.Context) error
}

var (
	mu    sync.Mutex
	hooks []hook
)

// AddNamed registers a shutdown hook under a human-readable name.
func AddNamed(name string, fn func(ctx context.Context) error) {
	mu.Lock()
	defer mu.Unlock()
	hooks = append(hooks, hook{name: name, fn: fn})
}

// CloseAll runs every registered hook, last registered first. Errors are
// logged, not returned: shutdown keeps going.
func CloseAll(ctx context.Context) {
	mu.Lock()
	defer mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		if err := h.fn(ctx); err != nil {
			logger.Error(ctx, "close resource",
				logger.String("resource", h.name),
				logger.ErrorF(err),
			)
			continue
		}
		logger.Info(ctx, "resource closed", logger.String("resource", h.name))
	}
	hooks = nil
}
