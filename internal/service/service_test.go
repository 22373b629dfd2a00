package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktimer/internal/tracker"
)

type fakeView struct {
	tasks  []string
	spend  []string
	active int
	jobs   map[int][][2]string
}

func (v *fakeView) RowCount(parent int) int {
	if parent == tracker.Root {
		return len(v.tasks)
	}
	return len(v.jobs[parent])
}

func (v *fakeView) Data(row, column, parent int) tracker.Cell {
	if parent == tracker.Root {
		cell := tracker.Cell{Highlight: row == v.active}
		switch column {
		case tracker.ColName:
			cell.Text = v.tasks[row]
		case tracker.ColStart:
			cell.Text = v.spend[row]
		}
		return cell
	}
	job := v.jobs[parent][row]
	switch column {
	case tracker.ColStart:
		return tracker.Cell{Text: job[0]}
	case tracker.ColEnd:
		return tracker.Cell{Text: job[1]}
	}
	return tracker.Cell{}
}

func TestSummaryService_Render(t *testing.T) {
	svc := &SummaryService{nameWidth: 8}

	assert.Equal(t, "— no tasks yet", svc.Render(&fakeView{active: -1}, true))

	view := &fakeView{
		tasks:  []string{"Writing", "A very long task name"},
		spend:  []string{"Spend 0 days, 0 hours 1 minutes 40 sec", "Spend 0 days, 0 hours 0 minutes 0 sec"},
		active: 1,
		jobs:   map[int][][2]string{0: {{"start", "end"}}},
	}

	want := "    1  Writing   Spend 0 days, 0 hours 1 minutes 40 sec\n" +
		"      1.1    start — end\n" +
		"▶   2  A very …  Spend 0 days, 0 hours 0 minutes 0 sec"
	assert.Equal(t, want, svc.Render(view, true))

	assert.NotContains(t, svc.Render(view, false), "start")
}

func TestSummaryService_Status(t *testing.T) {
	svc := NewSummaryService()
	view := &fakeView{
		tasks:  []string{"Writing"},
		spend:  []string{"Spend 0 days, 0 hours 0 minutes 5 sec"},
		active: -1,
	}
	assert.Equal(t, "idle", svc.Status(view))

	view.active = 0
	assert.Equal(t, "▶ Writing: Spend 0 days, 0 hours 0 minutes 5 sec", svc.Status(view))
}

func TestShortTitle(t *testing.T) {
	assert.Equal(t, "abc", shortTitle(" abc ", 5))
	assert.Equal(t, "a b", shortTitle("a\nb", 5))
	assert.Equal(t, "abcd…", shortTitle("abcdefgh", 5))
	assert.Equal(t, "a", shortTitle("abc", 1))
}

func TestBuildDailySpec(t *testing.T) {
	spec, err := buildDailySpec("18:05")
	require.NoError(t, err)
	assert.Equal(t, "0 5 18 * * *", spec)

	_, err = buildDailySpec("6pm")
	assert.Error(t, err)
}

func TestSchedulerService_Register(t *testing.T) {
	s := NewSchedulerService(time.UTC)

	_, err := s.ScheduleDaily("07:30", func() {})
	require.NoError(t, err)
	_, err = s.ScheduleInterval(90*time.Second, func() {})
	require.NoError(t, err)
	_, err = s.ScheduleInterval(0, func() {})
	assert.Error(t, err)
	_, err = s.ScheduleDaily("99:00", func() {})
	assert.Error(t, err)

	assert.Equal(t, 2, s.Entries())

	s.Start()
	s.Stop()
}
