package dto

// UpdateTeacherRequest is the payload for PUT /api/teachers.
type UpdateTeacherRequest struct {
	ID    int64   `json:"id"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
