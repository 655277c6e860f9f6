package models

import "time"

// Class defines the class model based on the 'classes' table
type Class struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Subject      string    `json:"subject" db:"subject"`
	TeacherID    *int64    `json:"teacherId,omitempty" db:"teacher_id"`
	AcademicYear string    `json:"academicYear,omitempty" db:"academic_year"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	Teacher *User `json:"teacher,omitempty"` // relation, no db tag
}
