package models

import (
	"bookify/src/types"
	"time"
)

// JobTask records one run of a scheduled job.
type JobTask struct {
	ID       uint      `gorm:"primarykey" json:"id"`
	Name     string    `gorm:"size:100;index" json:"name"`
	RunsAt   time.Time `json:"runs_at"`
	Status   string    `gorm:"size:20;default:'pending'" json:"status"`
	Affected int64     `json:"affected"`
	Error    *string   `json:"error,omitempty"`

	types.Timestamps
}

const (
	JOB_STATUS_PENDING   = "pending"
	JOB_STATUS_COMPLETED = "completed"
	JOB_STATUS_FAILED    = "failed"
)

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&User{},
		&RoomType{},
		&Room{},
		&RoomImage{},
		&Booking{},
		&Payment{},
		&FavoriteRoom{},
		&RoomFeedback{},
		&BookingTrail{},
		&JobTask{},
	}
}
