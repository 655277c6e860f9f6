package models

import "time"

// Attendance defines the attendance model based on the 'attendance' table.
// At most one row exists per (class, student, day); Date maps to the day
// column, which carries a unique constraint with class_id and student_id.
type Attendance struct {
	ID        int64            `json:"id" db:"id"`
	ClassID   int64            `json:"classId" db:"class_id"`
	StudentID int64            `json:"studentId" db:"student_id"`
	Date      time.Time        `json:"date" db:"day"`
	Status    AttendanceStatus `json:"status" db:"status"`
	Notes     string           `json:"notes,omitempty" db:"notes"`
	MarkedBy  int64            `json:"markedBy" db:"marked_by"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time        `json:"updatedAt" db:"updated_at"`

	// Populated display fields, joined on list/mark
	ClassName    string `json:"className,omitempty"`
	ClassSubject string `json:"classSubject,omitempty"`
	StudentName  string `json:"studentName,omitempty"`
	StudentCode  string `json:"studentCode,omitempty"`
	MarkerName   string `json:"markerName,omitempty"`
	MarkerEmail  string `json:"markerEmail,omitempty"`
}
