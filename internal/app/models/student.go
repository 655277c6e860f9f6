package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID             int64         `json:"id" db:"id"`
	Name           string        `json:"name" db:"name"`
	StudentCode    string        `json:"studentId" db:"student_code"` // human-assigned student ID, unique
	Gender         string        `json:"gender,omitempty" db:"gender"`
	GradeLevel     string        `json:"gradeLevel,omitempty" db:"grade_level"`
	Age            *int          `json:"age,omitempty" db:"age"`
	ParentContact  string        `json:"parentContact,omitempty" db:"parent_contact"`
	Address        string        `json:"address,omitempty" db:"address"`
	Status         StudentStatus `json:"status" db:"status"`
	EnrollmentDate time.Time     `json:"enrollmentDate" db:"enrollment_date"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" db:"updated_at"`
}
