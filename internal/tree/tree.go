// Package tree holds the in-memory two-level view of tasks and their jobs.
package tree

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"tasktimer/internal/model"
)

// Task is a root node. Spend is the sum of its jobs' durations in seconds.
type Task struct {
	ID    uint
	Name  string
	Jobs  []*Job
	Spend int64
}

// Job is a leaf node owned by the task whose id is TaskID.
type Job struct {
	ID     uint
	TaskID uint
	Start  int64
	End    int64
}

func (j *Job) Duration() int64 {
	return j.End - j.Start
}

// JobAt returns the job at row, or nil when row is out of range.
func (t *Task) JobAt(row int) *Job {
	if row < 0 || row >= len(t.Jobs) {
		return nil
	}
	return t.Jobs[row]
}

// Source is what the tree is loaded from.
type Source interface {
	ListTasks(ctx context.Context) iter.Seq2[model.Task, error]
	ListJobs(ctx context.Context, taskID uint) iter.Seq2[model.Job, error]
}

// Tree keeps tasks in insertion order, which is also display order.
type Tree struct {
	tasks []*Task
}

func New() *Tree {
	return &Tree{}
}

// Load builds a tree from src. Tasks are read completely before any job
// query runs, so a single-connection store never sees nested cursors.
func Load(ctx context.Context, src Source) (*Tree, error) {
	t := New()
	for rec, err := range src.ListTasks(ctx) {
		if err != nil {
			return nil, fmt.Errorf("load tasks: %w", err)
		}
		t.AddTask(rec.ID, rec.Name)
	}
	for _, task := range t.tasks {
		for rec, err := range src.ListJobs(ctx, task.ID) {
			if err != nil {
				return nil, fmt.Errorf("load jobs of task %d: %w", task.ID, err)
			}
			t.AddJob(task, rec.ID, rec.Start, rec.End)
		}
	}
	return t, nil
}

func (t *Tree) Len() int {
	return len(t.tasks)
}

// Tasks returns the root sequence. Callers must not modify it.
func (t *Tree) Tasks() []*Task {
	return t.tasks
}

// TaskAt returns the task at row, or nil when row is out of range.
func (t *Tree) TaskAt(row int) *Task {
	if row < 0 || row >= len(t.tasks) {
		return nil
	}
	return t.tasks[row]
}

// Find returns the task with the given id.
func (t *Tree) Find(id uint) *Task {
	for _, task := range t.tasks {
		if task.ID == id {
			return task
		}
	}
	return nil
}

func (t *Tree) AddTask(id uint, name string) *Task {
	task := &Task{ID: id, Name: name}
	t.tasks = append(t.tasks, task)
	return task
}

func (t *Tree) AddJob(task *Task, id uint, start, end int64) *Job {
	job := &Job{ID: id, TaskID: task.ID, Start: start, End: end}
	task.Jobs = append(task.Jobs, job)
	task.Spend += job.Duration()
	return job
}

// RemoveTask drops task from the root and returns the row it occupied, or -1.
func (t *Tree) RemoveTask(task *Task) int {
	row := t.TaskRow(task)
	if row < 0 {
		return -1
	}
	t.tasks = slices.Delete(t.tasks, row, row+1)
	return row
}

// RemoveJob drops job from task and returns the row it occupied, or -1.
func (t *Tree) RemoveJob(task *Task, job *Job) int {
	row := t.JobRow(task, job)
	if row < 0 {
		return -1
	}
	task.Jobs = slices.Delete(task.Jobs, row, row+1)
	task.Spend -= job.Duration()
	return row
}

func (t *Tree) TaskRow(task *Task) int {
	return slices.Index(t.tasks, task)
}

func (t *Tree) JobRow(task *Task, job *Job) int {
	if task == nil {
		return -1
	}
	return slices.Index(task.Jobs, job)
}
