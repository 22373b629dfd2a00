package service

import (
	"fmt"
	"strings"

	"tasktimer/internal/tracker"
)

// View is the read side of the tracker the summaries are built from.
type View interface {
	RowCount(parent int) int
	Data(row, column, parent int) tracker.Cell
}

const activeMark = "▶"

// SummaryService builds human-readable listings of the task tree.
type SummaryService struct {
	nameWidth int
}

func NewSummaryService() *SummaryService {
	return &SummaryService{nameWidth: 32}
}

// Render lists every task with its spend. With jobs set, each task's
// intervals follow it, addressed as task.job.
func (s *SummaryService) Render(view View, jobs bool) string {
	rows := view.RowCount(tracker.Root)
	if rows == 0 {
		return "— no tasks yet"
	}

	var builder strings.Builder
	for row := 0; row < rows; row++ {
		name := view.Data(row, tracker.ColName, tracker.Root)
		spend := view.Data(row, tracker.ColStart, tracker.Root)

		mark := " "
		if name.Highlight {
			mark = activeMark
		}
		builder.WriteString(fmt.Sprintf("%s %3d  %-*s  %s\n", mark, row+1, s.nameWidth, shortTitle(name.Text, s.nameWidth), spend.Text))

		if !jobs {
			continue
		}
		for job := 0; job < view.RowCount(row); job++ {
			start := view.Data(job, tracker.ColStart, row)
			end := view.Data(job, tracker.ColEnd, row)
			builder.WriteString(fmt.Sprintf("      %d.%-4d %s — %s\n", row+1, job+1, start.Text, end.Text))
		}
	}
	return strings.TrimRight(builder.String(), "\n")
}

// Status is a one-line report on the active task.
func (s *SummaryService) Status(view View) string {
	for row := 0; row < view.RowCount(tracker.Root); row++ {
		name := view.Data(row, tracker.ColName, tracker.Root)
		if !name.Highlight {
			continue
		}
		spend := view.Data(row, tracker.ColStart, tracker.Root)
		return fmt.Sprintf("%s %s: %s", activeMark, name.Text, spend.Text)
	}
	return "idle"
}

func shortTitle(title string, maxLen int) string {
	clean := strings.TrimSpace(strings.ReplaceAll(title, "\n", " "))
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
