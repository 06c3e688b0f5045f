package team

type AddMemberRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Role   string `json:"role" validate:"required,max=64"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,max=64"`
}

// UpsertRoleRequest is a sparse override keyed by permission name.
type UpsertRoleRequest struct {
	Permissions map[string]bool `json:"permissions" validate:"required"`
}

type RoleResponse struct {
	Name        string              `json:"name"`
	Default     bool                `json:"default"`
	Override    map[string]bool     `json:"override,omitempty"`
	Permissions map[Permission]bool `json:"permissions"`
}
