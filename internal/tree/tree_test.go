package tree

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktimer/internal/model"
)

type fakeSource struct {
	tasks   []model.Task
	jobs    map[uint][]model.Job
	failJob uint
}

func (f *fakeSource) ListTasks(ctx context.Context) iter.Seq2[model.Task, error] {
	return func(yield func(model.Task, error) bool) {
		for _, task := range f.tasks {
			if !yield(task, nil) {
				return
			}
		}
	}
}

func (f *fakeSource) ListJobs(ctx context.Context, taskID uint) iter.Seq2[model.Job, error] {
	return func(yield func(model.Job, error) bool) {
		if taskID == f.failJob {
			yield(model.Job{}, errors.New("disk on fire"))
			return
		}
		for _, job := range f.jobs[taskID] {
			if !yield(job, nil) {
				return
			}
		}
	}
}

func spendOf(task *Task) int64 {
	var total int64
	for _, job := range task.Jobs {
		total += job.Duration()
	}
	return total
}

func TestLoad(t *testing.T) {
	src := &fakeSource{
		tasks: []model.Task{{ID: 3, Name: "Writing"}, {ID: 7, Name: "Reading"}},
		jobs: map[uint][]model.Job{
			3: {{ID: 1, TaskID: 3, Start: 100, End: 160}, {ID: 2, TaskID: 3, Start: 200, End: 230}},
		},
	}

	tr, err := Load(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, 2, tr.Len())

	writing := tr.TaskAt(0)
	assert.Equal(t, "Writing", writing.Name)
	assert.Len(t, writing.Jobs, 2)
	assert.Equal(t, int64(90), writing.Spend)
	assert.Equal(t, uint(3), writing.Jobs[1].TaskID)

	reading := tr.Find(7)
	require.NotNil(t, reading)
	assert.Zero(t, reading.Spend)
	assert.Empty(t, reading.Jobs)
	assert.Nil(t, tr.Find(99))
}

func TestLoad_Error(t *testing.T) {
	src := &fakeSource{tasks: []model.Task{{ID: 1, Name: "a"}}, failJob: 1}
	_, err := Load(context.Background(), src)
	assert.ErrorContains(t, err, "disk on fire")
}

func TestTree_Mutations(t *testing.T) {
	tr := New()
	a := tr.AddTask(1, "a")
	b := tr.AddTask(2, "b")
	assert.Equal(t, 0, tr.TaskRow(a))
	assert.Equal(t, 1, tr.TaskRow(b))

	j1 := tr.AddJob(a, 10, 0, 100)
	j2 := tr.AddJob(a, 11, 200, 260)
	j3 := tr.AddJob(a, 12, 300, 301)
	assert.Equal(t, int64(161), a.Spend)
	assert.Equal(t, spendOf(a), a.Spend)
	assert.Equal(t, 1, tr.JobRow(a, j2))
	assert.Equal(t, -1, tr.JobRow(b, j2))

	assert.Equal(t, 1, tr.RemoveJob(a, j2))
	assert.Equal(t, int64(101), a.Spend)
	assert.Equal(t, spendOf(a), a.Spend)
	assert.Equal(t, []*Job{j1, j3}, a.Jobs)
	assert.Equal(t, -1, tr.RemoveJob(a, j2))
	assert.Equal(t, int64(101), a.Spend)

	assert.Equal(t, 0, tr.RemoveTask(a))
	assert.Equal(t, -1, tr.RemoveTask(a))
	assert.Equal(t, 0, tr.TaskRow(b))
	assert.Nil(t, tr.TaskAt(1))
	assert.Nil(t, tr.TaskAt(-1))
	assert.Nil(t, b.JobAt(0))
}
