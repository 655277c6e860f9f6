package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alijimale/institute-backend/internal/app/models"
	"github.com/alijimale/institute-backend/internal/pkg/apperrors"
)

func TestAuthorize(t *testing.T) {
	admin := Principal{UserID: 1, Role: models.RoleAdmin}
	manager := Principal{UserID: 2, Role: models.RoleManager}
	teacher := Principal{UserID: 3, Role: models.RoleTeacher}

	tests := []struct {
		name      string
		principal Principal
		action    Action
		resource  Resource
		wantErr   error
	}{
		{name: "admin manages students", principal: admin, action: ActionManageStudents},
		{name: "manager manages students", principal: manager, action: ActionManageStudents},
		{name: "teacher cannot manage students", principal: teacher, action: ActionManageStudents, wantErr: apperrors.ErrForbidden},

		{name: "admin manages teachers", principal: admin, action: ActionManageTeachers},
		{name: "manager cannot manage teachers", principal: manager, action: ActionManageTeachers, wantErr: apperrors.ErrForbidden},

		{name: "teacher marks attendance", principal: teacher, action: ActionMarkAttendance},
		{name: "teacher uses assistant", principal: teacher, action: ActionUseAssistant},

		{name: "teacher uploads exams", principal: teacher, action: ActionUploadExam},
		{name: "admin cannot upload exams", principal: admin, action: ActionUploadExam, wantErr: apperrors.ErrUnauthorized},
		{name: "manager cannot upload exams", principal: manager, action: ActionUploadExam, wantErr: apperrors.ErrUnauthorized},

		{name: "teacher cannot view all exams", principal: teacher, action: ActionViewAllExams, wantErr: apperrors.ErrForbidden},
		{name: "manager views all exams", principal: manager, action: ActionViewAllExams},

		{name: "manager deletes any exam", principal: manager, action: ActionDeleteExam, resource: Resource{OwnerID: 99}},
		{name: "teacher deletes own exam", principal: teacher, action: ActionDeleteExam, resource: Resource{OwnerID: 3}},
		{name: "teacher cannot delete another's exam", principal: teacher, action: ActionDeleteExam, resource: Resource{OwnerID: 99}, wantErr: apperrors.ErrForbidden},

		{name: "teacher cannot review exams", principal: teacher, action: ActionReviewExam, wantErr: apperrors.ErrForbidden},
		{name: "admin reviews exams", principal: admin, action: ActionReviewExam},

		{name: "empty principal", principal: Principal{}, action: ActionMarkAttendance, wantErr: apperrors.ErrUnauthorized},
		{name: "unknown role", principal: Principal{UserID: 5, Role: "GUEST"}, action: ActionMarkAttendance, wantErr: apperrors.ErrUnauthorized},
		{name: "unknown action", principal: admin, action: Action("nonsense"), wantErr: apperrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.principal, tt.action, tt.resource)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
