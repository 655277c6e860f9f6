package dto

// CreateStudentRequest is the payload for POST /api/students.
type CreateStudentRequest struct {
	Name          string `json:"name"`
	StudentCode   string `json:"studentId"`
	Gender        string `json:"gender"`
	GradeLevel    string `json:"gradeLevel"`
	Age           *int   `json:"age"`
	ParentContact string `json:"parentContact"`
	Address       string `json:"address"`
}

// UpdateStudentRequest is the payload for PUT /api/students. Nil fields are
// left untouched.
type UpdateStudentRequest struct {
	ID            int64   `json:"id"`
	Name          *string `json:"name"`
	StudentCode   *string `json:"studentId"`
	Gender        *string `json:"gender"`
	GradeLevel    *string `json:"gradeLevel"`
	Age           *int    `json:"age"`
	ParentContact *string `json:"parentContact"`
	Address       *string `json:"address"`
	Status        *string `json:"status"`
}
