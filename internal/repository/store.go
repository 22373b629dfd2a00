package repository

import (
	"context"
	"iter"

	"gorm.io/gorm"

	"tasktimer/internal/model"
)

// Store is the storage backend of the tracker: the task registry plus the
// per-task job record-sets.
type Store struct {
	tasks *TaskRepository
	jobs  *JobRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		tasks: NewTaskRepository(db),
		jobs:  NewJobRepository(db),
	}
}

func (s *Store) ListTasks(ctx context.Context) iter.Seq2[model.Task, error] {
	return s.tasks.List(ctx)
}

func (s *Store) ListJobs(ctx context.Context, taskID uint) iter.Seq2[model.Job, error] {
	return s.jobs.ListByTask(ctx, taskID)
}

func (s *Store) CreateTask(ctx context.Context, name string) (*model.Task, error) {
	return s.tasks.Create(ctx, name)
}

func (s *Store) RenameTask(ctx context.Context, id uint, name string) error {
	return s.tasks.Rename(ctx, id, name)
}

func (s *Store) DeleteTask(ctx context.Context, id uint) error {
	return s.tasks.Delete(ctx, id)
}

func (s *Store) AddJob(ctx context.Context, taskID uint, start, end int64) (*model.Job, error) {
	return s.jobs.Add(ctx, taskID, start, end)
}

func (s *Store) DeleteJob(ctx context.Context, taskID, jobID uint) error {
	return s.jobs.Delete(ctx, taskID, jobID)
}
