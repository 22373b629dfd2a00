package tracker

import (
	"context"
	"time"

	"tasktimer/internal/tree"
)

// The active timer is either idle (active == nil) or running on one task
// since activeStart. Only these methods move between the two states.

// Activate starts timing the task at addr. A different running task is
// committed first; re-activating the running task and job addresses are
// no-ops.
func (t *Tracker) Activate(ctx context.Context, addr Address) error {
	task, job, err := t.lookup(addr)
	if err != nil {
		return err
	}
	if job != nil || t.active == task {
		return nil
	}
	if t.active != nil {
		if err := t.commitActive(ctx); err != nil {
			return err
		}
	}

	t.active = task
	t.activeStart = t.now().Unix()
	t.emitTask(Updated, t.tree.TaskRow(task), task.ID)
	return nil
}

// Deactivate stops timing the task at addr and commits the running job. It
// is a no-op unless addr is the active task.
func (t *Tracker) Deactivate(ctx context.Context, addr Address) error {
	task, job, err := t.lookup(addr)
	if err != nil {
		return err
	}
	if job != nil || t.active != task {
		return nil
	}
	return t.commitActive(ctx)
}

// Stop commits the running job, if any, without needing an address.
func (t *Tracker) Stop(ctx context.Context) error {
	if t.active == nil {
		return nil
	}
	return t.commitActive(ctx)
}

// Close flushes the running job to storage. Call it before dropping the
// tracker so no interval is lost on shutdown.
func (t *Tracker) Close(ctx context.Context) error {
	return t.Stop(ctx)
}

// Active reports the running task and when it started.
func (t *Tracker) Active() (*tree.Task, time.Time, bool) {
	if t.active == nil {
		return nil, time.Time{}, false
	}
	return t.active, time.Unix(t.activeStart, 0), true
}

// Elapsed is task.Spend plus the running interval when task is active.
func (t *Tracker) Elapsed(task *tree.Task) int64 {
	total := task.Spend
	if task == t.active {
		if running := t.now().Unix() - t.activeStart; running > 0 {
			total += running
		}
	}
	return total
}

// commitActive persists the running interval as a job and goes idle. On a
// storage failure nothing changes.
func (t *Tracker) commitActive(ctx context.Context) error {
	task := t.active
	start := t.activeStart
	end := t.now().Unix()
	if end < start {
		end = start
	}

	rec, err := t.store.AddJob(ctx, task.ID, start, end)
	if err != nil {
		return err
	}

	job := t.tree.AddJob(task, rec.ID, start, end)
	t.active = nil
	t.activeStart = 0

	taskRow := t.tree.TaskRow(task)
	t.emitJob(Inserted, taskRow, t.tree.JobRow(task, job), task.ID, job.ID)
	t.emitTask(Updated, taskRow, task.ID)
	return nil
}
