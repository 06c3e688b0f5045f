package team

import "fmt"

// Permission is a closed enumeration of team actions.
type Permission string

const (
	PermViewProjects     Permission = "viewProjects"
	PermCreateProjects   Permission = "createProjects"
	PermEditProjects     Permission = "editProjects"
	PermDeleteProjects   Permission = "deleteProjects"
	PermPublishProjects  Permission = "publishProjects"
	PermPostUpdates      Permission = "postUpdates"
	PermManageDocuments  Permission = "manageDocuments"
	PermManageMedia      Permission = "manageMedia"
	PermViewLeads        Permission = "viewLeads"
	PermManageLeads      Permission = "manageLeads"
	PermExportLeads      Permission = "exportLeads"
	PermRespondLeads     Permission = "respondLeads"
	PermViewAnalytics    Permission = "viewAnalytics"
	PermManageTeam       Permission = "manageTeam"
	PermManageRoles      Permission = "manageRoles"
	PermViewBilling      Permission = "viewBilling"
	PermManageBilling    Permission = "manageBilling"
	PermEditProfile      Permission = "editProfile"
	PermManageCompliance Permission = "manageCompliance"
)

var AllPermissions = []Permission{
	PermViewProjects,
	PermCreateProjects,
	PermEditProjects,
	PermDeleteProjects,
	PermPublishProjects,
	PermPostUpdates,
	PermManageDocuments,
	PermManageMedia,
	PermViewLeads,
	PermManageLeads,
	PermExportLeads,
	PermRespondLeads,
	PermViewAnalytics,
	PermManageTeam,
	PermManageRoles,
	PermViewBilling,
	PermManageBilling,
	PermEditProfile,
	PermManageCompliance,
}

var knownPermissions = func() map[Permission]bool {
	m := make(map[Permission]bool, len(AllPermissions))
	for _, p := range AllPermissions {
		m[p] = true
	}
	return m
}()

func (p Permission) IsKnown() bool {
	return knownPermissions[p]
}

// ParsePermission rejects names outside the enumeration.
func ParsePermission(raw string) (Permission, error) {
	p := Permission(raw)
	if !p.IsKnown() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPermission, raw)
	}
	return p, nil
}

// Role names a team member's function. Custom names are allowed; only the
// default roles carry built-in permissions.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleCommercial Role = "commercial"
	RoleTechnique  Role = "technique"
)

var DefaultRoles = []Role{RoleAdmin, RoleCommercial, RoleTechnique}

// defaultMatrix lists every permission for every default role.
var defaultMatrix = map[Role]map[Permission]bool{
	RoleAdmin: {
		PermViewProjects:     true,
		PermCreateProjects:   true,
		PermEditProjects:     true,
		PermDeleteProjects:   true,
		PermPublishProjects:  true,
		PermPostUpdates:      true,
		PermManageDocuments:  true,
		PermManageMedia:      true,
		PermViewLeads:        true,
		PermManageLeads:      true,
		PermExportLeads:      true,
		PermRespondLeads:     true,
		PermViewAnalytics:    true,
		PermManageTeam:       true,
		PermManageRoles:      true,
		PermViewBilling:      true,
		PermManageBilling:    false,
		PermEditProfile:      true,
		PermManageCompliance: true,
	},
	RoleCommercial: {
		PermViewProjects:     true,
		PermCreateProjects:   false,
		PermEditProjects:     false,
		PermDeleteProjects:   false,
		PermPublishProjects:  false,
		PermPostUpdates:      false,
		PermManageDocuments:  false,
		PermManageMedia:      false,
		PermViewLeads:        true,
		PermManageLeads:      true,
		PermExportLeads:      true,
		PermRespondLeads:     true,
		PermViewAnalytics:    true,
		PermManageTeam:       false,
		PermManageRoles:      false,
		PermViewBilling:      false,
		PermManageBilling:    false,
		PermEditProfile:      false,
		PermManageCompliance: false,
	},
	RoleTechnique: {
		PermViewProjects:     true,
		PermCreateProjects:   true,
		PermEditProjects:     true,
		PermDeleteProjects:   false,
		PermPublishProjects:  false,
		PermPostUpdates:      true,
		PermManageDocuments:  true,
		PermManageMedia:      true,
		PermViewLeads:        false,
		PermManageLeads:      false,
		PermExportLeads:      false,
		PermRespondLeads:     false,
		PermViewAnalytics:    true,
		PermManageTeam:       false,
		PermManageRoles:      false,
		PermViewBilling:      false,
		PermManageBilling:    false,
		PermEditProfile:      false,
		PermManageCompliance: false,
	},
}

func init() {
	if err := verifyMatrix(defaultMatrix); err != nil {
		panic(err)
	}
}

func verifyMatrix(m map[Role]map[Permission]bool) error {
	for _, role := range DefaultRoles {
		row, ok := m[role]
		if !ok {
			return fmt.Errorf("team: default role %q has no permission row", role)
		}
		for _, p := range AllPermissions {
			if _, ok := row[p]; !ok {
				return fmt.Errorf("team: default role %q does not list %q", role, p)
			}
		}
		if len(row) != len(AllPermissions) {
			return fmt.Errorf("team: default role %q lists unknown permissions", role)
		}
	}
	return nil
}

// DefaultPermission is false for unknown roles and unknown permissions.
func DefaultPermission(role Role, p Permission) bool {
	return defaultMatrix[role][p]
}

// IsDefaultRole reports whether role has a built-in matrix row.
func IsDefaultRole(role Role) bool {
	_, ok := defaultMatrix[role]
	return ok
}
