package shell

import (
	"fmt"
	"strconv"
	"strings"

	"tasktimer/internal/tracker"
)

// ParseAddress reads a 1-based row reference: "3" is the third task, "3.2"
// the second job of it.
func ParseAddress(raw string) (tracker.Address, error) {
	raw = strings.TrimSpace(raw)
	taskPart, jobPart, hasJob := strings.Cut(raw, ".")

	taskRow, err := parseRow(taskPart)
	if err != nil {
		return tracker.Address{}, fmt.Errorf("bad row %q", raw)
	}
	if !hasJob {
		return tracker.TaskAddr(taskRow), nil
	}
	jobRow, err := parseRow(jobPart)
	if err != nil {
		return tracker.Address{}, fmt.Errorf("bad row %q", raw)
	}
	return tracker.JobAddr(taskRow, jobRow), nil
}

func parseRow(raw string) (int, error) {
	value, err := strconv.ParseUint(raw, 10, 31)
	if err != nil || value == 0 {
		return 0, fmt.Errorf("invalid row")
	}
	return int(value) - 1, nil
}

func FormatAddress(addr tracker.Address) string {
	if addr.IsTask() {
		return strconv.Itoa(addr.Row + 1)
	}
	return fmt.Sprintf("%d.%d", addr.Parent+1, addr.Row+1)
}
