package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/pkg/apperr"
)

func ptr[T any](v T) *T { return &v }

func TestCanDelete(t *testing.T) {
	admin := &entity.User{Role: entity.RoleAdministrator}
	member := &entity.User{Role: entity.RoleStandard}

	err := CanDelete(admin)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
	assert.NoError(t, CanDelete(member))
}

func TestApplyStatusChange(t *testing.T) {
	tests := []struct {
		name       string
		target     entity.User
		change     StatusChange
		wantActive bool
		wantRole   entity.Role
		wantErr    error
	}{
		{
			name:       "deactivate standard user",
			target:     entity.User{Role: entity.RoleStandard, IsActive: true},
			change:     StatusChange{Active: ptr(false)},
			wantActive: false,
			wantRole:   entity.RoleStandard,
		},
		{
			name:    "deactivate administrator",
			target:  entity.User{Role: entity.RoleAdministrator, IsActive: true},
			change:  StatusChange{Active: ptr(false)},
			wantErr: ErrDeactivateAdministrator,
		},
		{
			name:       "activate administrator",
			target:     entity.User{Role: entity.RoleAdministrator, IsActive: false},
			change:     StatusChange{Active: ptr(true)},
			wantActive: true,
			wantRole:   entity.RoleAdministrator,
		},
		{
			name:    "demote administrator",
			target:  entity.User{Role: entity.RoleAdministrator, IsActive: true},
			change:  StatusChange{Role: ptr(entity.RoleStandard)},
			wantErr: ErrDemoteAdministrator,
		},
		{
			name:       "promote standard user",
			target:     entity.User{Role: entity.RoleStandard, IsActive: true},
			change:     StatusChange{Role: ptr(entity.RoleAdministrator)},
			wantActive: true,
			wantRole:   entity.RoleAdministrator,
		},
		{
			name:       "empty change",
			target:     entity.User{Role: entity.RoleStandard, IsActive: false},
			wantActive: false,
			wantRole:   entity.RoleStandard,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active, role, err := ApplyStatusChange(&tt.target, tt.change)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantActive, active)
			assert.Equal(t, tt.wantRole, role)
		})
	}
}
