// Package shell is a line-oriented front end for the tracker: it reads
// commands, runs them against the tracker and prints the results.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"tasktimer/internal/repository"
	"tasktimer/internal/service"
	"tasktimer/internal/tracker"
)

const prompt = "> "

type confirmationRequest struct {
	addr tracker.Address
}

// Session runs every tracker call on the goroutine that called Run. Other
// goroutines hand work over with Post.
type Session struct {
	tracker *tracker.Tracker
	summary *service.SummaryService
	in      io.Reader
	out     io.Writer

	pending *confirmationRequest
	posted  chan func(context.Context)
	done    chan struct{}
}

func New(tr *tracker.Tracker, summary *service.SummaryService, in io.Reader, out io.Writer) *Session {
	return &Session{
		tracker: tr,
		summary: summary,
		in:      in,
		out:     out,
		posted:  make(chan func(context.Context)),
		done:    make(chan struct{}),
	}
}

// Post queues fn to run on the session loop. It returns false when the
// session has already finished.
func (s *Session) Post(fn func(context.Context)) bool {
	select {
	case s.posted <- fn:
		return true
	case <-s.done:
		return false
	}
}

// Run reads commands until input ends, "quit", or ctx is cancelled. Before
// returning it commits the running job, if any.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)

	cancel := s.tracker.Subscribe(func(ev tracker.Event) {
		log.Printf("[info] %s", ev)
	})
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-s.done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.Printf("[warn] read input: %v", err)
		}
	}()

	runErr := s.loop(ctx, lines)

	if err := s.tracker.Close(context.WithoutCancel(ctx)); err != nil {
		return errors.Join(runErr, fmt.Errorf("flush active job: %w", err))
	}
	return runErr
}

func (s *Session) loop(ctx context.Context, lines <-chan string) error {
	if err := s.write(prompt); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-s.posted:
			fn(ctx)
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := s.handleLine(ctx, line)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			if err := s.write(prompt); err != nil {
				return err
			}
		}
	}
}

func (s *Session) handleLine(ctx context.Context, line string) (bool, error) {
	text := strings.TrimSpace(line)

	if s.pending != nil {
		req := *s.pending
		s.pending = nil
		if isConfirmInput(text) {
			return false, s.remove(ctx, req.addr)
		}
		return false, s.sendText("Cancelled.")
	}

	if text == "" {
		return false, nil
	}
	command, args, _ := strings.Cut(text, " ")
	args = strings.TrimSpace(args)
	return s.handleCommand(ctx, strings.ToLower(command), args)
}

func (s *Session) handleCommand(ctx context.Context, command, args string) (bool, error) {
	switch command {
	case "quit", "exit":
		return true, nil
	case "help", "?":
		return false, s.handleHelp()
	case "ls", "list":
		return false, s.sendText(s.summary.Render(s.tracker, args != "-s"))
	case "status":
		return false, s.sendText(s.summary.Status(s.tracker))
	case "new", "add":
		return false, s.handleNew(ctx, args)
	case "start":
		return false, s.handleStart(ctx, args)
	case "stop":
		return false, s.handleStop(ctx, args)
	case "rm", "remove", "delete":
		return false, s.askDeleteConfirmation(args)
	case "rename":
		return false, s.handleRename(ctx, args)
	default:
		return false, s.sendText(fmt.Sprintf("Unknown command %q. Type help for the list of commands.", command))
	}
}

func (s *Session) handleHelp() error {
	text := "Commands:\n" +
		"  ls [-s]             list tasks and their jobs (-s: tasks only)\n" +
		"  status              show the running task\n" +
		"  new NAME            add a task\n" +
		"  start N             start timing task N\n" +
		"  stop [N]            stop timing (task N, or whatever runs)\n" +
		"  rm N | N.M          delete task N or job M of task N\n" +
		"  rename N NAME       rename task N\n" +
		"  quit                stop the running task and exit"
	return s.sendText(text)
}

func (s *Session) handleNew(ctx context.Context, name string) error {
	task, err := s.tracker.CreateTask(ctx, name)
	if err != nil {
		return s.sendError(err)
	}
	log.Printf("[info] task created id=%d", task.ID)
	return s.sendText(fmt.Sprintf("Added task %d: %s", s.tracker.RowCount(tracker.Root), task.Name))
}

func (s *Session) handleStart(ctx context.Context, args string) error {
	addr, err := ParseAddress(args)
	if err != nil {
		return s.sendText("Usage: start N")
	}
	if err := s.tracker.Activate(ctx, addr); err != nil {
		return s.sendError(err)
	}
	return s.sendText(s.summary.Status(s.tracker))
}

func (s *Session) handleStop(ctx context.Context, args string) error {
	if args == "" {
		if err := s.tracker.Stop(ctx); err != nil {
			return s.sendError(err)
		}
		return s.sendText(s.summary.Status(s.tracker))
	}
	addr, err := ParseAddress(args)
	if err != nil {
		return s.sendText("Usage: stop [N]")
	}
	if err := s.tracker.Deactivate(ctx, addr); err != nil {
		return s.sendError(err)
	}
	return s.sendText(s.summary.Status(s.tracker))
}

func (s *Session) handleRename(ctx context.Context, args string) error {
	rawAddr, name, _ := strings.Cut(args, " ")
	addr, err := ParseAddress(rawAddr)
	if err != nil {
		return s.sendText("Usage: rename N NAME")
	}
	if err := s.tracker.Rename(ctx, addr, name); err != nil {
		return s.sendError(err)
	}
	return s.sendText(fmt.Sprintf("Renamed task %s.", FormatAddress(addr)))
}

func (s *Session) askDeleteConfirmation(args string) error {
	addr, err := ParseAddress(args)
	if err != nil {
		return s.sendText("Usage: rm N | N.M")
	}
	ref := s.tracker.Index(addr.Row, tracker.ColName, addr.Parent)
	if !ref.Valid() {
		return s.sendText("No such row.")
	}

	var text string
	if addr.IsTask() {
		text = fmt.Sprintf("Really delete task %q? [y/N]", ref.Task().Name)
	} else {
		start := s.tracker.Data(addr.Row, tracker.ColStart, addr.Parent)
		end := s.tracker.Data(addr.Row, tracker.ColEnd, addr.Parent)
		text = fmt.Sprintf("Really delete job from %s to %s? [y/N]", start.Text, end.Text)
	}
	s.pending = &confirmationRequest{addr: addr}
	return s.sendText(text)
}

func (s *Session) remove(ctx context.Context, addr tracker.Address) error {
	if err := s.tracker.Remove(ctx, addr); err != nil {
		return s.sendError(err)
	}
	return s.sendText(fmt.Sprintf("Deleted %s.", FormatAddress(addr)))
}

// AutoStop commits the running job. It is meant to be posted by a scheduler.
func (s *Session) AutoStop(ctx context.Context) {
	task, _, ok := s.tracker.Active()
	if !ok {
		return
	}
	name := task.Name
	if err := s.tracker.Stop(ctx); err != nil {
		log.Printf("[warn] auto-stop: %v", err)
		return
	}
	log.Printf("[info] auto-stopped task id=%d", task.ID)
	if err := s.sendText(fmt.Sprintf("\nAuto-stopped %s.", name)); err != nil {
		log.Printf("[warn] auto-stop: %v", err)
	}
}

// PrintStatus writes the status line. It is meant to be posted by a scheduler.
func (s *Session) PrintStatus(ctx context.Context) {
	if _, _, ok := s.tracker.Active(); !ok {
		return
	}
	if err := s.sendText("\n" + s.summary.Status(s.tracker)); err != nil {
		log.Printf("[warn] status: %v", err)
	}
}

func (s *Session) sendError(err error) error {
	switch {
	case errors.Is(err, tracker.ErrNotFound):
		return s.sendText("No such row.")
	case errors.Is(err, tracker.ErrValidation):
		return s.sendText(fmt.Sprintf("Rejected: %v", err))
	case errors.Is(err, repository.ErrInvalidName):
		return s.sendText("Task name is too long.")
	default:
		log.Printf("[warn] %v", err)
		return s.sendText(fmt.Sprintf("Error: %v", err))
	}
}

func (s *Session) sendText(text string) error {
	return s.write(text + "\n")
}

func (s *Session) write(text string) error {
	_, err := io.WriteString(s.out, text)
	return err
}

func isConfirmInput(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "y", "yes":
		return true
	}
	return false
}
