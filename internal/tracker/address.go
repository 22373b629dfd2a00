package tracker

import (
	"fmt"

	"tasktimer/internal/tree"
)

// Root is the Parent of a task address.
const Root = -1

// Columns of every row.
const (
	ColName = iota
	ColStart
	ColEnd

	columnCount
)

// Address locates a row: a task when Parent is Root, otherwise job Row of the
// task at row Parent.
type Address struct {
	Parent int
	Row    int
}

func TaskAddr(row int) Address {
	return Address{Parent: Root, Row: row}
}

func JobAddr(taskRow, row int) Address {
	return Address{Parent: taskRow, Row: row}
}

func (a Address) IsTask() bool {
	return a.Parent == Root
}

func (a Address) String() string {
	if a.IsTask() {
		return fmt.Sprintf("row %d", a.Row)
	}
	return fmt.Sprintf("row %d.%d", a.Parent, a.Row)
}

// Ref is a resolved cell reference. The zero Ref is invalid.
type Ref struct {
	Addr   Address
	Column int
	task   *tree.Task
	job    *tree.Job
}

func (r Ref) Valid() bool {
	return r.task != nil
}

// Task is the referenced task, or the owner of the referenced job.
func (r Ref) Task() *tree.Task {
	return r.task
}

// Job is the referenced job, nil for task rows.
func (r Ref) Job() *tree.Job {
	return r.job
}

// Cell is the display value of one row/column pair.
type Cell struct {
	Text string
	// Highlight marks the active task's row.
	Highlight bool
}

func (t *Tracker) ColumnCount() int {
	return columnCount
}

// RowCount returns the number of tasks when parent is Root, otherwise the
// number of jobs of the task at row parent. Unknown parents have no rows.
func (t *Tracker) RowCount(parent int) int {
	if parent == Root {
		return t.tree.Len()
	}
	task := t.tree.TaskAt(parent)
	if task == nil {
		return 0
	}
	return len(task.Jobs)
}

// Index resolves a row/column pair under parent. Anything out of bounds
// yields an invalid Ref.
func (t *Tracker) Index(row, column, parent int) Ref {
	if column < 0 || column >= columnCount {
		return Ref{}
	}
	addr := Address{Parent: parent, Row: row}
	task, job, err := t.lookup(addr)
	if err != nil {
		return Ref{}
	}
	return Ref{Addr: addr, Column: column, task: task, job: job}
}

// Parent returns the task row owning ref, column 0, or an invalid Ref for
// task rows.
func (t *Tracker) Parent(ref Ref) Ref {
	if !ref.Valid() || ref.Addr.IsTask() {
		return Ref{}
	}
	return t.Index(ref.Addr.Parent, ColName, Root)
}

// Resolve returns the display value of ref.
func (t *Tracker) Resolve(ref Ref) Cell {
	if !ref.Valid() {
		return Cell{}
	}
	if job := ref.job; job != nil {
		switch ref.Column {
		case ColStart:
			return Cell{Text: FormatStamp(job.Start, t.loc)}
		case ColEnd:
			return Cell{Text: FormatStamp(job.End, t.loc)}
		default:
			return Cell{}
		}
	}

	task := ref.task
	cell := Cell{Highlight: t.active == task}
	switch ref.Column {
	case ColName:
		cell.Text = task.Name
	case ColStart:
		cell.Text = FormatSpend(t.Elapsed(task))
	}
	return cell
}

// Data is Resolve(Index(row, column, parent)).
func (t *Tracker) Data(row, column, parent int) Cell {
	return t.Resolve(t.Index(row, column, parent))
}

func (t *Tracker) lookup(addr Address) (*tree.Task, *tree.Job, error) {
	if addr.IsTask() {
		task := t.tree.TaskAt(addr.Row)
		if task == nil {
			return nil, nil, fmt.Errorf("%w: no task at %s", ErrNotFound, addr)
		}
		return task, nil, nil
	}
	task := t.tree.TaskAt(addr.Parent)
	if task == nil {
		return nil, nil, fmt.Errorf("%w: no task at row %d", ErrNotFound, addr.Parent)
	}
	job := task.JobAt(addr.Row)
	if job == nil {
		return nil, nil, fmt.Errorf("%w: no job at %s", ErrNotFound, addr)
	}
	return task, job, nil
}
