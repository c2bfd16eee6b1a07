package models

import "time"

// Lesson feed sources. The planner consumes both read-only.
const (
	LessonSourceRegular = "regular"
	LessonSourceTrial   = "trial"
)

// LessonRecord is a read-only row from one of the two upstream lesson
// feeds. For trial lessons without a linked student the record's own id
// stands in as the student identity.
type LessonRecord struct {
	StudentIdentity string    `db:"student_identity" json:"student_identity"`
	LessonDate      time.Time `db:"lesson_date" json:"lesson_date"`
	TimeSlot        string    `db:"time_slot" json:"time_slot"`
	CourseLabel     string    `db:"course_label" json:"course_label"`
	Source          string    `db:"-" json:"source"`
}
