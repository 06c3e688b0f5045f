package badge

import "time"

type Category string

const (
	CategoryVerification Category = "verification"
	CategoryReputation   Category = "reputation"
	CategoryEngagement   Category = "engagement"
	CategoryActivity     Category = "activity"
)

// Metric names a fact a rule can test.
type Metric string

const (
	MetricKYCVerified           Metric = "kycVerified"
	MetricFinancialProofLevel   Metric = "financialProofLevel"
	MetricOnboardingCompleted   Metric = "onboardingCompleted"
	MetricProjectCount          Metric = "projectCount"
	MetricPublishedProjectCount Metric = "publishedProjectCount"
	MetricTrustScore            Metric = "trustScore"
	MetricRecentUpdates         Metric = "recentUpdates"
	MetricDocumentCompleteness  Metric = "documentCompleteness"
	MetricAvgResponseHours      Metric = "avgResponseHours"
	MetricRestrictions          Metric = "restrictions"
)

type Op string

const (
	OpGTE Op = "gte"
	OpLTE Op = "lte"
	OpEQ  Op = "eq"
)

type Rule struct {
	Metric Metric  `json:"metric"`
	Op     Op      `json:"op"`
	Value  float64 `json:"value"`
}

// Criteria is a conjunction of rules stored as data on the badge.
type Criteria struct {
	Rules []Rule `json:"rules"`
}

// Badge is a catalog entry. Code is unique.
type Badge struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Code              string    `gorm:"column:code;uniqueIndex;not null" json:"code"`
	Name              string    `gorm:"column:name;not null" json:"name"`
	Description       string    `gorm:"column:description" json:"description"`
	Category          Category  `gorm:"column:category;not null" json:"category"`
	CategoryMaxWeight int       `gorm:"column:category_max_weight;default:0" json:"category_max_weight"`
	Criteria          Criteria  `gorm:"column:criteria;type:json;serializer:json" json:"criteria"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Badge) TableName() string { return "badges" }

// Event is an award or removal handed to the Notifier.
type Event struct {
	ID          string    `json:"id"`
	PromoteurID uint      `json:"promoteurId"`
	Badge       Badge     `json:"badge"`
	Reason      string    `json:"reason,omitempty"`
	At          time.Time `json:"at"`
}
