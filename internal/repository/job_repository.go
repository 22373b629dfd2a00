package repository

import (
	"context"
	"iter"

	"gorm.io/gorm"

	"tasktimer/internal/model"
)

// JobRepository handles the committed intervals of tasks.
type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// ListByTask streams the jobs of one task in insertion order.
func (r *JobRepository) ListByTask(ctx context.Context, taskID uint) iter.Seq2[model.Job, error] {
	return func(yield func(model.Job, error) bool) {
		db := r.db.WithContext(ctx)
		rows, err := db.Model(&model.Job{}).Where("task_id = ?", taskID).Order("id ASC").Rows()
		if err != nil {
			yield(model.Job{}, storageErr("list jobs", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var job model.Job
			if err := db.ScanRows(rows, &job); err != nil {
				yield(model.Job{}, storageErr("scan job", err))
				return
			}
			if !yield(job, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(model.Job{}, storageErr("list jobs", err))
		}
	}
}

// Add appends a completed interval to the task. The task must exist.
func (r *JobRepository) Add(ctx context.Context, taskID uint, start, end int64) (*model.Job, error) {
	if end < start {
		return nil, storageErr("add job", ErrInvalidInterval)
	}
	job := model.Job{TaskID: taskID, Start: start, End: end}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := taskExists(tx, taskID); err != nil {
			return err
		}
		return tx.Create(&job).Error
	})
	if err != nil {
		return nil, storageErr("add job", err)
	}
	return &job, nil
}

func (r *JobRepository) Delete(ctx context.Context, taskID, jobID uint) error {
	result := r.db.WithContext(ctx).Where("task_id = ? AND id = ?", taskID, jobID).Delete(&model.Job{})
	if err := result.Error; err != nil {
		return storageErr("delete job", err)
	}
	if result.RowsAffected == 0 {
		return storageErr("delete job", ErrJobNotFound)
	}
	return nil
}
