package tracker

import "fmt"

// Kind says what happened to the node an Event points at.
type Kind int

const (
	Inserted Kind = iota
	Removed
	Updated
)

func (k Kind) String() string {
	switch k {
	case Inserted:
		return "inserted"
	case Removed:
		return "removed"
	case Updated:
		return "updated"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Scope is the level of the node an Event points at.
type Scope int

const (
	ScopeTask Scope = iota
	ScopeJob
)

// Event is a change notification. Addr is the node's address at the time of
// the change; for Removed events that is the row it occupied before removal.
type Event struct {
	Kind   Kind
	Scope  Scope
	Addr   Address
	TaskID uint
	JobID  uint
}

func (e Event) String() string {
	if e.Scope == ScopeJob {
		return fmt.Sprintf("%s job %d of task %d at %s", e.Kind, e.JobID, e.TaskID, e.Addr)
	}
	return fmt.Sprintf("%s task %d at %s", e.Kind, e.TaskID, e.Addr)
}

type subscriber struct {
	id int
	fn func(Event)
}

// Subscribe registers fn for every future Event, in subscription order. The
// returned function removes the subscription.
func (t *Tracker) Subscribe(fn func(Event)) (cancel func()) {
	t.nextSub++
	id := t.nextSub
	t.subs = append(t.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range t.subs {
			if s.id == id {
				t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
				return
			}
		}
	}
}

func (t *Tracker) emit(ev Event) {
	for _, s := range t.subs {
		s.fn(ev)
	}
}

func (t *Tracker) emitTask(kind Kind, row int, taskID uint) {
	t.emit(Event{Kind: kind, Scope: ScopeTask, Addr: TaskAddr(row), TaskID: taskID})
}

func (t *Tracker) emitJob(kind Kind, taskRow, row int, taskID, jobID uint) {
	t.emit(Event{Kind: kind, Scope: ScopeJob, Addr: JobAddr(taskRow, row), TaskID: taskID, JobID: jobID})
}
