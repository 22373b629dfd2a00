package model

// Job is one committed interval of a task. Start and End are Unix seconds.
type Job struct {
	ID     uint  `gorm:"primaryKey;autoIncrement"`
	TaskID uint  `gorm:"index;not null"`
	Start  int64 `gorm:"not null"`
	End    int64 `gorm:"not null"`
}

// Duration returns the interval length in seconds.
func (j Job) Duration() int64 {
	return j.End - j.Start
}
