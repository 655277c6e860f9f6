// Package auth holds the access policy. Every permission decision in the
// service layer goes through Authorize so the rules live in one place.
package auth

import (
	"github.com/alijimale/institute-backend/internal/app/models"
	"github.com/alijimale/institute-backend/internal/pkg/apperrors"
)

// Action names a guarded operation.
type Action string

const (
	ActionManageStudents   Action = "students:manage"
	ActionManageClasses    Action = "classes:manage"
	ActionManageTeachers   Action = "teachers:manage"
	ActionMarkAttendance   Action = "attendance:mark"
	ActionManageAttendance Action = "attendance:manage"
	ActionUploadExam       Action = "exams:upload"
	ActionDeleteExam       Action = "exams:delete"
	ActionReviewExam       Action = "exams:review"
	ActionViewAllExams     Action = "exams:view-all"
	ActionUseAssistant     Action = "assistant:use"
)

// Principal identifies the authenticated caller.
type Principal struct {
	UserID int64
	Role   models.Role
}

// Resource describes the target of an action. OwnerID is zero when the
// action has no per-record owner.
type Resource struct {
	OwnerID int64
}

// Authorize decides whether the principal may perform the action on the
// resource. It returns ErrUnauthorized for an empty principal and
// ErrForbidden when the role does not permit the action.
func Authorize(p Principal, action Action, res Resource) error {
	if p.UserID <= 0 || !p.Role.Valid() {
		return apperrors.ErrUnauthorized
	}

	switch action {
	case ActionManageStudents, ActionManageClasses, ActionReviewExam, ActionViewAllExams:
		if p.Role == models.RoleAdmin || p.Role == models.RoleManager {
			return nil
		}

	case ActionManageTeachers:
		if p.Role == models.RoleAdmin {
			return nil
		}

	case ActionMarkAttendance, ActionManageAttendance, ActionUseAssistant:
		// Any authenticated staff role.
		return nil

	case ActionUploadExam:
		// Uploading is a teacher activity; admins and managers review
		// instead. Treated as an identity failure, not a permission one.
		if p.Role == models.RoleTeacher {
			return nil
		}
		return apperrors.ErrUnauthorized

	case ActionDeleteExam:
		if p.Role == models.RoleAdmin || p.Role == models.RoleManager {
			return nil
		}
		if res.OwnerID != 0 && res.OwnerID == p.UserID {
			return nil
		}
	}

	return apperrors.ErrForbidden
}
