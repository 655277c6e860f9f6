package models

// Role is the portal-wide user role used for authorization decisions.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleTeacher Role = "TEACHER"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleTeacher:
		return true
	}
	return false
}

// AttendanceStatus is the per-day attendance state of a student in a class.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceExcused AttendanceStatus = "EXCUSED"
)

// Valid reports whether the status is one of the known statuses.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}

// ExamStatus is the review state of an uploaded exam document.
type ExamStatus string

const (
	ExamPending  ExamStatus = "Pending"
	ExamApproved ExamStatus = "Approved"
	ExamRejected ExamStatus = "Rejected"
)

// Valid reports whether the status is one of the known statuses.
func (s ExamStatus) Valid() bool {
	switch s {
	case ExamPending, ExamApproved, ExamRejected:
		return true
	}
	return false
}

// StudentStatus is the enrollment state of a student.
type StudentStatus string

const (
	StudentActive   StudentStatus = "Active"
	StudentPending  StudentStatus = "Pending"
	StudentInactive StudentStatus = "Inactive"
)

// Valid reports whether the status is one of the known statuses.
func (s StudentStatus) Valid() bool {
	switch s {
	case StudentActive, StudentPending, StudentInactive:
		return true
	}
	return false
}
