package models

// CalendarDay annotates one calendar date with its assigned teachers and
// the number of distinct students with a lesson that day.
type CalendarDay struct {
	Date         string    `json:"date"`
	Teachers     []Teacher `json:"teachers"`
	StudentCount int       `json:"student_count"`
}

// MonthlyCalendar is the derived month view. It is regenerated on every
// navigation or refresh, never mutated in place.
type MonthlyCalendar struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []CalendarDay `json:"days"`
}
