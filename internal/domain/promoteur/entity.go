package promoteur

import "time"

// KYCStatus tracks identity verification of the organisation.
type KYCStatus string

const (
	KYCNone      KYCStatus = "none"
	KYCSubmitted KYCStatus = "submitted"
	KYCVerified  KYCStatus = "verified"
)

// FinancialProofLevel is the strength of the financial guarantees supplied.
type FinancialProofLevel string

const (
	ProofNone   FinancialProofLevel = "none"
	ProofBasic  FinancialProofLevel = "basic"
	ProofMedium FinancialProofLevel = "medium"
	ProofHigh   FinancialProofLevel = "high"
)

// Rank orders proof levels none < basic < medium < high. Unknown values rank as none.
func (l FinancialProofLevel) Rank() int {
	switch l {
	case ProofBasic:
		return 1
	case ProofMedium:
		return 2
	case ProofHigh:
		return 3
	}
	return 0
}

// IsValid reports whether l is one of the four known levels.
func (l FinancialProofLevel) IsValid() bool {
	switch l {
	case ProofNone, ProofBasic, ProofMedium, ProofHigh:
		return true
	}
	return false
}

// ComplianceStatus is the platform compliance state of a promoteur.
type ComplianceStatus string

const (
	CompliancePending      ComplianceStatus = "pending"
	ComplianceCompliant    ComplianceStatus = "compliant"
	ComplianceNonCompliant ComplianceStatus = "non_compliant"
	ComplianceSuspended    ComplianceStatus = "suspended"
)

func (c ComplianceStatus) IsValid() bool {
	switch c {
	case CompliancePending, ComplianceCompliant, ComplianceNonCompliant, ComplianceSuspended:
		return true
	}
	return false
}

// ChecklistItem is one onboarding step.
type ChecklistItem struct {
	Code        string     `json:"code"`
	Label       string     `json:"label"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// BadgeAward records that a badge was earned. BadgeID is unique per promoteur.
type BadgeAward struct {
	BadgeID  uint      `json:"badgeId"`
	EarnedAt time.Time `json:"earnedAt"`
}

// TeamMember is a delegated user of the organisation. UserID is unique per promoteur.
type TeamMember struct {
	UserID   int64     `json:"userId"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Promoteur is a property-developer organisation profile.
// TrustScore, OnboardingProgress and OnboardingCompleted are derived values.
type Promoteur struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OwnerUserID int64  `gorm:"column:owner_user_id;uniqueIndex;not null" json:"owner_user_id"`
	CompanyName string `gorm:"column:company_name;not null" json:"company_name"`
	Plan        string `gorm:"column:plan;default:'starter'" json:"plan"`

	ComplianceStatus    ComplianceStatus    `gorm:"column:compliance_status;default:'pending'" json:"compliance_status"`
	KYCStatus           KYCStatus           `gorm:"column:kyc_status;default:'none'" json:"kyc_status"`
	FinancialProofLevel FinancialProofLevel `gorm:"column:financial_proof_level;default:'none'" json:"financial_proof_level"`
	Restrictions        int                 `gorm:"column:restrictions;default:0" json:"restrictions"`

	TrustScore int `gorm:"column:trust_score;default:0" json:"trust_score"`

	OnboardingChecklist []ChecklistItem `gorm:"column:onboarding_checklist;type:json;serializer:json" json:"onboarding_checklist"`
	OnboardingProgress  int             `gorm:"column:onboarding_progress;default:0" json:"onboarding_progress"`
	OnboardingCompleted bool            `gorm:"column:onboarding_completed;default:false" json:"onboarding_completed"`

	Badges      []BadgeAward `gorm:"column:badges;type:json;serializer:json" json:"badges"`
	TeamMembers []TeamMember `gorm:"column:team_members;type:json;serializer:json" json:"team_members"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Promoteur) TableName() string { return "promoteurs" }

// IsOwner reports whether userID is the owning account.
func (p *Promoteur) IsOwner(userID int64) bool {
	return userID != 0 && p.OwnerUserID == userID
}

// FindTeamMember returns the member entry of userID, or nil.
func (p *Promoteur) FindTeamMember(userID int64) *TeamMember {
	for i := range p.TeamMembers {
		if p.TeamMembers[i].UserID == userID {
			return &p.TeamMembers[i]
		}
	}
	return nil
}

// HasBadge reports whether badgeID is already held.
func (p *Promoteur) HasBadge(badgeID uint) bool {
	for _, b := range p.Badges {
		if b.BadgeID == badgeID {
			return true
		}
	}
	return false
}

// IsSuspended is true when compliance blocks quota-consuming actions.
func (p *Promoteur) IsSuspended() bool {
	return p.ComplianceStatus == ComplianceSuspended
}
