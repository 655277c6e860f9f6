package dto

// CreateClassRequest is the payload for POST /api/classes.
type CreateClassRequest struct {
	Name         string `json:"name"`
	Subject      string `json:"subject"`
	TeacherID    *int64 `json:"teacherId"`
	AcademicYear string `json:"academicYear"`
}

// UpdateClassRequest is the payload for PUT /api/classes. Nil fields are
// left untouched.
type UpdateClassRequest struct {
	ID           int64   `json:"id"`
	Name         *string `json:"name"`
	Subject      *string `json:"subject"`
	TeacherID    *int64  `json:"teacherId"`
	AcademicYear *string `json:"academicYear"`
}
