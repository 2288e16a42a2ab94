package coverart

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"coverfinder/internal/services"
)

var (
	// ErrTaskPanic marks a task that panicked inside a combinator.
	ErrTaskPanic = errors.New("task panicked")
	// ErrSuperseded is the cancellation cause of a run replaced by a newer one.
	ErrSuperseded = errors.New("superseded by a newer request")
)

// Task is a unit of work run by the combinators.
type Task[T any] func(ctx context.Context) (T, error)

// Outcome captures how one task settled.
type Outcome[T any] struct {
	Value T
	Err   error
}

// OK reports whether the task succeeded.
func (o Outcome[T]) OK() bool {
	return o.Err == nil
}

func runTask[T any](ctx context.Context, task Task[T]) (out Outcome[T]) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome[T]{Err: fmt.Errorf("%w: %v\n%s", ErrTaskPanic, r, debug.Stack())}
		}
	}()
	value, err := task(ctx)
	return Outcome[T]{Value: value, Err: err}
}

// SettleBoth runs a and b concurrently and waits for both. Neither outcome
// affects the other.
func SettleBoth[A, B any](ctx context.Context, a Task[A], b Task[B]) (Outcome[A], Outcome[B]) {
	var (
		wg   sync.WaitGroup
		outA Outcome[A]
		outB Outcome[B]
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		outA = runTask(ctx, a)
	}()
	go func() {
		defer wg.Done()
		outB = runTask(ctx, b)
	}()
	wg.Wait()
	return outA, outB
}

// SettleAll runs every task concurrently and returns their outcomes in input
// order once all have settled.
func SettleAll[T any](ctx context.Context, tasks []Task[T]) []Outcome[T] {
	outcomes := make([]Outcome[T], len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = runTask(ctx, task)
		}()
	}
	wg.Wait()
	return outcomes
}

// Superseder cancels the previous run registered under a key when a new run
// starts under the same key.
type Superseder struct {
	mu     sync.Mutex
	active map[string]*supersedeRun
}

type supersedeRun struct {
	cancel context.CancelCauseFunc
}

// NewSuperseder returns an empty Superseder.
func NewSuperseder() *Superseder {
	return &Superseder{active: make(map[string]*supersedeRun)}
}

// Begin registers a run under key, cancelling any earlier run with cause
// ErrSuperseded. The returned release func must be called when the run ends.
// An empty key disables supersession.
func (s *Superseder) Begin(ctx context.Context, key string) (context.Context, func()) {
	runCtx, cancel := context.WithCancelCause(ctx)
	if key == "" {
		return runCtx, func() { cancel(nil) }
	}
	run := &supersedeRun{cancel: cancel}

	s.mu.Lock()
	if prev, ok := s.active[key]; ok {
		prev.cancel(ErrSuperseded)
	}
	s.active[key] = run
	s.mu.Unlock()

	release := func() {
		s.mu.Lock()
		if s.active[key] == run {
			delete(s.active, key)
		}
		s.mu.Unlock()
		cancel(nil)
	}
	return runCtx, release
}

// Run executes fn under key. A run replaced by a newer one returns an error
// matching both services.ErrCancelled and ErrSuperseded.
func (s *Superseder) Run(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	runCtx, release := s.Begin(ctx, key)
	defer release()

	err := fn(runCtx)
	if cause := context.Cause(runCtx); errors.Is(cause, ErrSuperseded) {
		return services.Cancelled("engine", "supersede", cause)
	}
	return err
}

// Active returns the number of keys with a run in progress.
func (s *Superseder) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}
