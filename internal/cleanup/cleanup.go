// Package cleanup runs deferred release hooks (open log files and the like)
// before the process exits.
package cleanup

import (
	"errors"
	"fmt"
	"sync"
)

// Stack holds hooks executed in LIFO order. The zero value is ready to use.
type Stack struct {
	mu    sync.Mutex
	hooks []func() error
}

// Push adds a hook. Nil hooks are ignored.
func (s *Stack) Push(hook func() error) {
	if hook == nil {
		return
	}
	s.mu.Lock()
	s.hooks = append(s.hooks, hook)
	s.mu.Unlock()
}

// Len reports the number of pending hooks.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hooks)
}

// Run executes and clears all hooks, returning every failure joined.
func (s *Stack) Run() error {
	s.mu.Lock()
	local := s.hooks
	s.hooks = nil
	s.mu.Unlock()

	var errs []error
	for i := len(local) - 1; i >= 0; i-- {
		if err := local[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("cleanup failed: %w", errors.Join(errs...))
}

var process Stack

// Register adds a hook to the process-wide stack.
func Register(hook func() error) { process.Push(hook) }

// RunAll executes the process-wide stack.
func RunAll() error { return process.Run() }
