package srv

import (
	"context"
	"errors"
)

// cleanupService implements Service interface.
type cleanupService struct {
	cleanups []func() error
}

func (c *cleanupService) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (c *cleanupService) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(c.cleanups) - 1; i >= 0; i-- {
		if err := c.cleanups[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewCleanup wraps resources that only need closing on shutdown.
// Functions run in reverse order.
func NewCleanup(fns ...func() error) Service {
	return &cleanupService{cleanups: fns}
}
