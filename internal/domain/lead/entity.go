package lead

import (
	"time"

	"github.com/google/uuid"
)

// Status of a lead in the promoteur's sales pipeline.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
	StatusConverted Status = "converted"
	StatusLost      Status = "lost"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusConverted, StatusLost:
		return true
	}
	return false
}

// Lead is a buyer enquiry on a project. Reference is the public identifier.
type Lead struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Reference   uuid.UUID `gorm:"column:reference;type:uuid;uniqueIndex;not null" json:"reference"`
	PromoteurID uint      `gorm:"column:promoteur_id;index;not null" json:"promoteur_id"`
	ProjectID   uint      `gorm:"column:project_id;index;not null" json:"project_id"`

	BuyerName  string `gorm:"column:buyer_name;not null" json:"buyer_name"`
	BuyerEmail string `gorm:"column:buyer_email" json:"buyer_email,omitempty"`
	BuyerPhone string `gorm:"column:buyer_phone" json:"buyer_phone,omitempty"`

	Financing Financing `gorm:"column:financing" json:"financing,omitempty"`
	Timeframe Timeframe `gorm:"column:timeframe" json:"timeframe,omitempty"`
	Budget    float64   `gorm:"column:budget" json:"budget,omitempty"`
	Message   string    `gorm:"column:message;type:text" json:"message,omitempty"`

	Tier   Tier   `gorm:"column:tier;index" json:"tier,omitempty"`
	Status Status `gorm:"column:status;default:'new';index" json:"status"`

	RespondedAt *time.Time `gorm:"column:responded_at" json:"responded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Lead) TableName() string { return "leads" }

func (l *Lead) Signals() Signals {
	return Signals{Financing: l.Financing, Timeframe: l.Timeframe, Budget: l.Budget, Message: l.Message}
}

// ResponseTime is zero until the promoteur first responds.
func (l *Lead) ResponseTime() time.Duration {
	if l.RespondedAt == nil {
		return 0
	}
	return l.RespondedAt.Sub(l.CreatedAt)
}
