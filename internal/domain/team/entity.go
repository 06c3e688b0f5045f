package team

import "time"

// TeamRole is a per-promoteur sparse override of a role's permissions.
// Keys absent from Permissions fall back to the default matrix.
type TeamRole struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	PromoteurID uint            `gorm:"column:promoteur_id;not null;uniqueIndex:idx_team_roles_promoteur_name" json:"promoteur_id"`
	Name        string          `gorm:"column:name;not null;uniqueIndex:idx_team_roles_promoteur_name" json:"name"`
	Permissions map[string]bool `gorm:"column:permissions;type:json;serializer:json" json:"permissions"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (TeamRole) TableName() string { return "team_roles" }
