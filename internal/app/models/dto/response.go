package dto

import "github.com/alijimale/institute-backend/internal/app/models"

// Every endpoint answers with a flat envelope carrying a success flag and,
// on failure, a message. Domain payloads are embedded under their own keys.

// MessageResponse is the minimal success/failure envelope.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Fail builds a failure envelope with the given message.
func Fail(message string) MessageResponse {
	return MessageResponse{Success: false, Message: message}
}

// OK builds a success envelope with the given message.
func OK(message string) MessageResponse {
	return MessageResponse{Success: true, Message: message}
}

// UserInfo is the public projection of a user (no password hash).
type UserInfo struct {
	ID    int64       `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
}

// FromUser converts a user model to its public projection.
func FromUser(u *models.User) *UserInfo {
	if u == nil {
		return nil
	}
	return &UserInfo{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	User    *UserInfo `json:"user"`
}

// SessionResponse is returned by the session introspection endpoint.
type SessionResponse struct {
	Success    bool      `json:"success"`
	IsLoggedIn bool      `json:"isLoggedIn"`
	User       *UserInfo `json:"user"`
}

// AttendanceListResponse wraps a filtered attendance query.
type AttendanceListResponse struct {
	Success    bool                `json:"success"`
	Attendance []models.Attendance `json:"attendance"`
	Count      int                 `json:"count"`
}

// AttendanceResponse wraps a single attendance record after a mutation.
type AttendanceResponse struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message,omitempty"`
	Attendance *models.Attendance `json:"attendance"`
}

// ExamListResponse wraps the role-scoped exam listing.
type ExamListResponse struct {
	Success bool          `json:"success"`
	Exams   []models.Exam `json:"exams"`
}

// ExamResponse wraps a single exam record after upload.
type ExamResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Exam    *models.Exam `json:"exam"`
}

// ExamDeleteResponse reports a deletion including the best-effort blob
// cleanup outcome; metadata deletion succeeds even when BlobDeleted is false.
type ExamDeleteResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	BlobDeleted bool   `json:"blobDeleted"`
}

// StudentListResponse wraps the student listing.
type StudentListResponse struct {
	Success  bool             `json:"success"`
	Students []models.Student `json:"students"`
	Count    int              `json:"count"`
}

// StudentResponse wraps a single student after a mutation.
type StudentResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Student *models.Student `json:"student"`
}

// ClassListResponse wraps the class listing.
type ClassListResponse struct {
	Success bool           `json:"success"`
	Classes []models.Class `json:"classes"`
	Count   int            `json:"count"`
}

// ClassResponse wraps a single class after a mutation.
type ClassResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Class   *models.Class `json:"class"`
}

// TeacherListResponse wraps the teacher listing (users with role TEACHER).
type TeacherListResponse struct {
	Success  bool       `json:"success"`
	Teachers []UserInfo `json:"teachers"`
	Count    int        `json:"count"`
}

// HealthResponse reports dependency health.
type HealthResponse struct {
	Status string `json:"status"`
	DB     bool   `json:"db"`
	Redis  bool   `json:"redis"`
}
