package taskz

import (
	"errors"
	"sync"

	"github.com/go-logr/logr"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

var ErrNoExecutors = errors.New("taskz: app has no executors")

// App bundles a set of named executors under one lifecycle. Compositions
// themselves are plain values; the App only owns the execution contexts
// they run on.
type App struct {
	log       logr.Logger
	executors []*Executor

	eg *errgroup.Group
}

func New(opts ...Option) *App {
	a := &App{
		log: logr.Discard(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// NewExecutor creates an executor and registers it with the app. All
// executors must be created before Run is called.
func (a *App) NewExecutor(name string) *Executor {
	e := NewExecutor(a.log.WithName("executor"), name)
	a.executors = append(a.executors, e)
	return e
}

// Run blocks until all executors have exited, either by an error or by a
// graceful shutdown triggered by a call to Close.
func (a *App) Run() error {
	if len(a.executors) == 0 {
		return ErrNoExecutors
	}

	grp := errgroup.Group{}
	a.eg = &grp
	for _, e := range a.executors {
		grp.Go(e.Run)
	}
	return grp.Wait()
}

// Close gracefully shuts down all executors in parallel and waits for the
// run group to finish.
func (a *App) Close() error {
	var (
		mu  sync.Mutex
		err error
	)

	var wg sync.WaitGroup
	for _, e := range a.executors {
		wg.Add(1)
		go func(e *Executor) {
			defer wg.Done()
			closeErr := e.Close()
			mu.Lock()
			err = multierr.Append(err, closeErr)
			mu.Unlock()
		}(e)
	}
	wg.Wait()

	if a.eg != nil {
		err = multierr.Append(err, a.eg.Wait())
	}
	return err
}
