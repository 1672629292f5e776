package runner

import (
	"context"
	"time"
)

// Task is the unit of work a run executes between provisioning and the
// commit step.
type Task interface {
	Name() string
	Execute(ctx context.Context) error
}

// Runner drives one workflow: provision, execute the task, commit output.
type Runner interface {
	// RunOnce executes the fixed step sequence a single time.
	RunOnce(ctx context.Context) error
	// Schedule runs immediately and then on every interval tick until the
	// context is cancelled. Failed runs are logged, the schedule keeps going.
	Schedule(ctx context.Context, interval time.Duration) error
}

// NewTask wraps a function as a named Task.
func NewTask(name string, fn func(ctx context.Context) error) Task {
	return &funcTask{name: name, fn: fn}
}

type funcTask struct {
	name string
	fn   func(ctx context.Context) error
}

func (t *funcTask) Name() string                      { return t.name }
func (t *funcTask) Execute(ctx context.Context) error { return t.fn(ctx) }
