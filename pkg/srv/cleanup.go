package srv

import (
	"context"
	"fmt"
)

// cleanupService adapts a close function into a Service so resource
// teardown rides the ordinary shutdown sequence.
type cleanupService struct {
	name    string
	cleanup func() error
}

func (c *cleanupService) Start(ctx context.Context) error {
	return nil
}

func (c *cleanupService) Shutdown(ctx context.Context) error {
	if c.cleanup == nil {
		return nil
	}
	if err := c.cleanup(); err != nil {
		return fmt.Errorf("close %s: %w", c.name, err)
	}
	return nil
}

// NewCleanup wraps fn as a shutdown-only Service; name identifies the
// resource in shutdown error logs.
func NewCleanup(name string, fn func() error) Service {
	return &cleanupService{name: name, cleanup: fn}
}
