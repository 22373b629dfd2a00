package repository

import (
	"context"
	"errors"
	"iter"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"tasktimer/internal/model"
)

const maxNameLen = 100

// TaskRepository handles the task registry.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// List streams all tasks in id order. Each call runs a fresh query.
func (r *TaskRepository) List(ctx context.Context) iter.Seq2[model.Task, error] {
	return func(yield func(model.Task, error) bool) {
		db := r.db.WithContext(ctx)
		rows, err := db.Model(&model.Task{}).Order("id ASC").Rows()
		if err != nil {
			yield(model.Task{}, storageErr("list tasks", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var task model.Task
			if err := db.ScanRows(rows, &task); err != nil {
				yield(model.Task{}, storageErr("scan task", err))
				return
			}
			if !yield(task, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(model.Task{}, storageErr("list tasks", err))
		}
	}
}

func (r *TaskRepository) Create(ctx context.Context, name string) (*model.Task, error) {
	if err := validName(name); err != nil {
		return nil, storageErr("create task", err)
	}
	task := model.Task{Name: name}
	if err := r.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, storageErr("create task", err)
	}
	return &task, nil
}

func (r *TaskRepository) Rename(ctx context.Context, id uint, name string) error {
	if err := validName(name); err != nil {
		return storageErr("rename task", err)
	}
	result := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Update("name", name)
	if err := result.Error; err != nil {
		return storageErr("rename task", err)
	}
	if result.RowsAffected == 0 {
		return storageErr("rename task", ErrTaskNotFound)
	}
	return nil
}

// Delete removes the task together with all of its jobs in one transaction.
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&model.Job{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Task{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTaskNotFound
		}
		return nil
	})
	if err != nil {
		return storageErr("delete task", err)
	}
	return nil
}

func taskExists(tx *gorm.DB, id uint) error {
	var task model.Task
	err := tx.Select("id").Where("id = ?", id).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTaskNotFound
	}
	return err
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" || utf8.RuneCountInString(name) > maxNameLen {
		return ErrInvalidName
	}
	return nil
}
