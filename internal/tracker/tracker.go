// Package tracker exposes the task/job tree as rows and columns, runs the
// active timer and turns user actions into storage writes plus change events.
package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tasktimer/internal/model"
	"tasktimer/internal/tree"
)

// Storage is the backing store the tracker writes through.
type Storage interface {
	tree.Source
	CreateTask(ctx context.Context, name string) (*model.Task, error)
	RenameTask(ctx context.Context, id uint, name string) error
	DeleteTask(ctx context.Context, id uint) error
	AddJob(ctx context.Context, taskID uint, start, end int64) (*model.Job, error)
	DeleteJob(ctx context.Context, taskID, jobID uint) error
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithLocation sets the zone job timestamps are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		t.loc = loc
	}
}

// Tracker is not safe for concurrent use; drive it from one goroutine.
type Tracker struct {
	store Storage
	tree  *tree.Tree
	now   func() time.Time
	loc   *time.Location

	active      *tree.Task
	activeStart int64

	subs    []subscriber
	nextSub int
}

// New loads every task and job from store.
func New(ctx context.Context, store Storage, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store: store,
		now:   time.Now,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(t)
	}

	tr, err := tree.Load(ctx, store)
	if err != nil {
		return nil, err
	}
	t.tree = tr
	return t, nil
}

// Tasks returns the root rows in display order.
func (t *Tracker) Tasks() []*tree.Task {
	return t.tree.Tasks()
}

// CreateTask registers a new, empty task and appends it as the last row.
func (t *Tracker) CreateTask(ctx context.Context, name string) (*tree.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: task name is empty", ErrValidation)
	}

	rec, err := t.store.CreateTask(ctx, name)
	if err != nil {
		return nil, err
	}

	task := t.tree.AddTask(rec.ID, rec.Name)
	t.emitTask(Inserted, t.tree.TaskRow(task), task.ID)
	return task, nil
}

// Rename changes the name of the task at addr.
func (t *Tracker) Rename(ctx context.Context, addr Address, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: task name is empty", ErrValidation)
	}
	task, job, err := t.lookup(addr)
	if err != nil {
		return err
	}
	if job != nil {
		return fmt.Errorf("%w: jobs have no name", ErrValidation)
	}

	if err := t.store.RenameTask(ctx, task.ID, name); err != nil {
		return err
	}
	task.Name = name
	t.emitTask(Updated, addr.Row, task.ID)
	return nil
}

// Remove deletes the task or job at addr. Removing the active task discards
// its running interval.
func (t *Tracker) Remove(ctx context.Context, addr Address) error {
	task, job, err := t.lookup(addr)
	if err != nil {
		return err
	}
	if job != nil {
		return t.removeJob(ctx, task, job)
	}
	return t.removeTask(ctx, task)
}

func (t *Tracker) removeTask(ctx context.Context, task *tree.Task) error {
	if err := t.store.DeleteTask(ctx, task.ID); err != nil {
		return err
	}
	if t.active == task {
		t.active = nil
		t.activeStart = 0
	}
	row := t.tree.RemoveTask(task)
	t.emitTask(Removed, row, task.ID)
	return nil
}

func (t *Tracker) removeJob(ctx context.Context, task *tree.Task, job *tree.Job) error {
	if err := t.store.DeleteJob(ctx, task.ID, job.ID); err != nil {
		return err
	}
	taskRow := t.tree.TaskRow(task)
	row := t.tree.RemoveJob(task, job)
	t.emitJob(Removed, taskRow, row, task.ID, job.ID)
	t.emitTask(Updated, taskRow, task.ID)
	return nil
}
