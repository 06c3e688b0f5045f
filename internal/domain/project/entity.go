package project

import (
	"time"

	"gorm.io/gorm"
)

// Type is the kind of real-estate programme.
type Type string

const (
	TypeVilla    Type = "villa"
	TypeImmeuble Type = "immeuble"
)

func (t Type) IsValid() bool {
	return t == TypeVilla || t == TypeImmeuble
}

// PublicationStatus of a project listing.
type PublicationStatus string

const (
	StatusDraft     PublicationStatus = "draft"
	StatusPublished PublicationStatus = "published"
	StatusSuspended PublicationStatus = "suspended"
	StatusArchived  PublicationStatus = "archived"
)

// Stage is the construction lifecycle stage.
type Stage string

const (
	StagePlanning     Stage = "planning"
	StagePermits      Stage = "permits"
	StageConstruction Stage = "construction"
	StageFinishing    Stage = "finishing"
	StageDelivered    Stage = "delivered"
)

func (s Stage) IsValid() bool {
	switch s {
	case StagePlanning, StagePermits, StageConstruction, StageFinishing, StageDelivered:
		return true
	}
	return false
}

// MediaKind classifies project media. Videos have their own quota.
type MediaKind string

const (
	MediaPhoto  MediaKind = "photo"
	MediaPlan   MediaKind = "plan"
	MediaVideo  MediaKind = "video"
	MediaRender MediaKind = "render"
)

func (k MediaKind) IsValid() bool {
	switch k {
	case MediaPhoto, MediaPlan, MediaVideo, MediaRender:
		return true
	}
	return false
}

// Document kinds expected on every project.
const (
	DocPermisConstruire     = "permis_construire"
	DocTitrePropriete       = "titre_propriete"
	DocGarantieFinanciere   = "garantie_financiere"
	DocAssuranceDommagesOuv = "assurance_dommages_ouvrage"
)

// RequiredDocumentKinds is the denominator of document completeness.
var RequiredDocumentKinds = []string{
	DocPermisConstruire,
	DocTitrePropriete,
	DocGarantieFinanciere,
	DocAssuranceDommagesOuv,
}

// Key fields whose changes must be explained to buyers.
const (
	FieldPrice        = "price"
	FieldDeliveryDate = "delivery_date"
	FieldSurface      = "surface"
	FieldUnitCount    = "unit_count"
)

// Project is a real-estate programme owned by exactly one promoteur.
type Project struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	PromoteurID       uint              `gorm:"column:promoteur_id;index;not null" json:"promoteur_id"`
	Title             string            `gorm:"column:title;not null" json:"title"`
	Type              Type              `gorm:"column:type;not null" json:"type"`
	PublicationStatus PublicationStatus `gorm:"column:publication_status;default:'draft';index" json:"publication_status"`
	Stage             Stage             `gorm:"column:stage;default:'planning'" json:"stage"`
	City              string            `gorm:"column:city" json:"city,omitempty"`
	PriceFrom         float64           `gorm:"column:price_from" json:"price_from"`
	Surface           float64           `gorm:"column:surface" json:"surface"`
	UnitCount         int               `gorm:"column:unit_count" json:"unit_count"`
	HasRiskDisclosure bool              `gorm:"column:has_risk_disclosure;default:false" json:"has_risk_disclosure"`
	DeliveryDate      *time.Time        `gorm:"column:delivery_date" json:"delivery_date,omitempty"`
	SuspendedReason   string            `gorm:"column:suspended_reason" json:"suspended_reason,omitempty"`
	TrustScore        int               `gorm:"column:trust_score;default:0" json:"trust_score"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	DeletedAt         gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) IsSuspended() bool { return p.PublicationStatus == StatusSuspended }

// Update is a progress post on a project. PromoteurID is denormalised for monthly quotas.
type Update struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProjectID   uint      `gorm:"column:project_id;index;not null" json:"project_id"`
	PromoteurID uint      `gorm:"column:promoteur_id;index;not null" json:"promoteur_id"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Body        string    `gorm:"column:body;type:text" json:"body"`
	MediaCount  int       `gorm:"column:media_count;default:0" json:"media_count"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (Update) TableName() string { return "project_updates" }

type Document struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"column:project_id;index;not null" json:"project_id"`
	Kind      string    `gorm:"column:kind;not null" json:"kind"`
	URL       string    `gorm:"column:url;not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func (Document) TableName() string { return "project_documents" }

type Media struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"column:project_id;index;not null" json:"project_id"`
	Kind      MediaKind `gorm:"column:kind;not null" json:"kind"`
	URL       string    `gorm:"column:url;not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func (Media) TableName() string { return "project_media" }

// Change logs an edit of a key field. An empty Reason marks it unexplained.
type Change struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"column:project_id;index;not null" json:"project_id"`
	Field     string    `gorm:"column:field;not null" json:"field"`
	OldValue  string    `gorm:"column:old_value" json:"old_value"`
	NewValue  string    `gorm:"column:new_value" json:"new_value"`
	Reason    string    `gorm:"column:reason" json:"reason,omitempty"`
	ChangedAt time.Time `gorm:"column:changed_at" json:"changed_at"`
}

func (Change) TableName() string { return "project_changes" }
