package model

// Task is a row of the task registry.
type Task struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:100;not null"`
	Jobs []Job  `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}
