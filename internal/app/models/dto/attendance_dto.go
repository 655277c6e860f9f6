package dto

// MarkAttendanceRequest is the payload for POST /api/attendance.
// ClassID, StudentID and Status are required; Date defaults to now.
type MarkAttendanceRequest struct {
	ClassID   int64  `json:"classId"`
	StudentID int64  `json:"studentId"`
	Status    string `json:"status"`
	Date      string `json:"date"`
	Notes     string `json:"notes"`
}

// UpdateAttendanceRequest is the payload for PUT /api/attendance.
// Only fields present in the request are overwritten.
type UpdateAttendanceRequest struct {
	ID     int64   `json:"id"`
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}
