package models

import "time"

// ShiftAssignment is a teacher's scheduled working interval on a specific date.
// At most one assignment may exist per (teacher_id, scheduled_date, org_id).
type ShiftAssignment struct {
	ID        string    `db:"id" json:"id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	OrgID     string    `db:"org_id" json:"org_id"`
	Date      time.Time `db:"scheduled_date" json:"scheduled_date"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ShiftFilter narrows down assignment listings. An empty OrgID yields an
// empty result set rather than an unscoped query.
type ShiftFilter struct {
	OrgID      string
	From       time.Time
	To         time.Time
	TeacherIDs []string
}

// DraftAssignment is a ShiftAssignment-shaped working copy held during edit
// mode. IsNew marks entries staged since the snapshot; Confirmed is a
// visual acknowledgement only and does not gate the commit.
type DraftAssignment struct {
	ShiftAssignment
	IsNew     bool `json:"is_new"`
	Confirmed bool `json:"confirmed"`
}

// TeacherWorkload summarises a teacher's committed month.
type TeacherWorkload struct {
	TeacherID string  `json:"teacher_id"`
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	WorkDays  int     `json:"work_days"`
	WorkHours float64 `json:"work_hours"`
}
