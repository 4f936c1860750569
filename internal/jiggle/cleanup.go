package jiggle

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// CleanupManager runs shutdown steps once, in registration order, bounded by a timeout.
type CleanupManager struct {
	mu          sync.Mutex
	resources   []CleanupResource
	timeout     time.Duration
	log         logrus.FieldLogger
	cleanupOnce sync.Once
	errs        []error
}

// CleanupResource is something that must be released on shutdown.
type CleanupResource interface {
	Cleanup() error
	Name() string
}

type cleanupFunc struct {
	name string
	fn   func() error
}

func (c *cleanupFunc) Cleanup() error { return c.fn() }
func (c *cleanupFunc) Name() string   { return c.name }

// NewCleanupManager creates a manager. A non-positive timeout means 5s;
// a nil logger means the logrus standard logger.
func NewCleanupManager(timeout time.Duration, log logrus.FieldLogger) *CleanupManager {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CleanupManager{
		timeout: timeout,
		log:     log.WithField("component", "cleanup"),
	}
}

// Register adds a resource to be cleaned up.
func (cm *CleanupManager) Register(resource CleanupResource) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.resources = append(cm.resources, resource)
}

// RegisterFunc registers a cleanup function under name.
func (cm *CleanupManager) RegisterFunc(name string, fn func() error) {
	cm.Register(&cleanupFunc{name: name, fn: fn})
}

// Execute cleans up every registered resource. Only the first call does any
// work; later calls return the same errors.
func (cm *CleanupManager) Execute() []error {
	cm.cleanupOnce.Do(func() {
		cm.errs = cm.executeWithTimeout()
	})
	return cm.errs
}

func (cm *CleanupManager) executeWithTimeout() []error {
	cm.mu.Lock()
	resources := make([]CleanupResource, len(cm.resources))
	copy(resources, cm.resources)
	cm.mu.Unlock()

	if len(resources) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cm.timeout)
	defer cancel()

	done := make(chan struct{})
	var cleanupErrors []error
	var mu sync.Mutex

	go func() {
		defer close(done)
		for _, resource := range resources {
			func() {
				defer func() {
					if r := recover(); r != nil {
						mu.Lock()
						cleanupErrors = append(cleanupErrors, errors.New("panic during cleanup of "+resource.Name()))
						mu.Unlock()
						cm.log.Errorf("panic cleaning up %s: %v", resource.Name(), r)
					}
				}()

				if err := resource.Cleanup(); err != nil {
					mu.Lock()
					cleanupErrors = append(cleanupErrors, err)
					mu.Unlock()
					cm.log.WithError(err).Errorf("error cleaning up %s", resource.Name())
				} else {
					cm.log.Debugf("cleaned up %s", resource.Name())
				}
			}()
		}
	}()

	select {
	case <-done:
		return cleanupErrors
	case <-ctx.Done():
		cm.log.Warnf("timeout after %v, some resources may not have been cleaned up", cm.timeout)
		mu.Lock()
		out := append([]error(nil), cleanupErrors...)
		mu.Unlock()
		return append(out, errors.New("cleanup timeout exceeded"))
	}
}
