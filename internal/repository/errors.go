package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrStorage marks every failure coming out of the backing store.
	ErrStorage = errors.New("storage error")
	// ErrTaskNotFound is returned when a task id has no registry row.
	ErrTaskNotFound = errors.New("task not found")
	// ErrJobNotFound is returned when a job id does not belong to the task.
	ErrJobNotFound = errors.New("job not found")
	// ErrInvalidName is returned for names the tasks table cannot hold.
	ErrInvalidName = errors.New("invalid task name")
	// ErrInvalidInterval is returned for jobs that end before they start.
	ErrInvalidInterval = errors.New("job ends before it starts")
)

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
