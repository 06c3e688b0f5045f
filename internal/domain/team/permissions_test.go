package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatrixIsComplete(t *testing.T) {
	require.NoError(t, verifyMatrix(defaultMatrix))
	assert.Len(t, AllPermissions, 19)
	for _, role := range DefaultRoles {
		assert.Len(t, defaultMatrix[role], len(AllPermissions), role)
	}
}

func TestVerifyMatrixDetectsGaps(t *testing.T) {
	gap := map[Role]map[Permission]bool{
		RoleAdmin:      {PermViewLeads: true},
		RoleCommercial: defaultMatrix[RoleCommercial],
		RoleTechnique:  defaultMatrix[RoleTechnique],
	}
	assert.Error(t, verifyMatrix(gap))

	missingRole := map[Role]map[Permission]bool{
		RoleAdmin:     defaultMatrix[RoleAdmin],
		RoleTechnique: defaultMatrix[RoleTechnique],
	}
	assert.Error(t, verifyMatrix(missingRole))
}

func TestParsePermission(t *testing.T) {
	p, err := ParsePermission("exportLeads")
	require.NoError(t, err)
	assert.Equal(t, PermExportLeads, p)

	_, err = ParsePermission("exportleads")
	assert.ErrorIs(t, err, ErrUnknownPermission)
}

func TestDefaultPermissionUnknownRole(t *testing.T) {
	for _, p := range AllPermissions {
		assert.False(t, DefaultPermission("stagiaire", p), p)
	}
	assert.False(t, IsDefaultRole("stagiaire"))
	assert.True(t, IsDefaultRole(RoleTechnique))
}
