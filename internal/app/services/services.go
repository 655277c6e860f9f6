package services

// Services defined in this package:
// - AuthService: registration, login and session refresh
// - StudentService: student record CRUD
// - TeacherService: teacher account management
// - ClassService: class CRUD and teacher assignment
// - AttendanceService: per-day attendance upserts and queries
// - ExamService: exam uploads, downloads and review
// - AssistantService: the chat-based registration assistant
