package project

import "time"

type CreateProjectRequest struct {
	Title             string     `json:"title" binding:"required"`
	Type              Type       `json:"type" binding:"required"`
	City              string     `json:"city"`
	PriceFrom         float64    `json:"price_from"`
	Surface           float64    `json:"surface"`
	UnitCount         int        `json:"unit_count"`
	HasRiskDisclosure bool       `json:"has_risk_disclosure"`
	DeliveryDate      *time.Time `json:"delivery_date"`
}

type AddUpdateRequest struct {
	Title      string `json:"title" binding:"required"`
	Body       string `json:"body"`
	MediaCount int    `json:"media_count"`
}

type AddDocumentRequest struct {
	Kind string `json:"kind" binding:"required"`
	URL  string `json:"url" binding:"required"`
}

type AddMediaRequest struct {
	Kind MediaKind `json:"kind" binding:"required"`
	URL  string    `json:"url" binding:"required"`
}

// UpdateKeyFieldsRequest edits key fields; Reason explains the change to buyers.
type UpdateKeyFieldsRequest struct {
	Title             *string    `json:"title"`
	PriceFrom         *float64   `json:"price_from"`
	Surface           *float64   `json:"surface"`
	UnitCount         *int       `json:"unit_count"`
	DeliveryDate      *time.Time `json:"delivery_date"`
	HasRiskDisclosure *bool      `json:"has_risk_disclosure"`
	Stage             *Stage     `json:"stage"`
	Reason            string     `json:"reason"`
}

type SuspendRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// KeyFieldsResponse returns the project and the change log entries just written.
type KeyFieldsResponse struct {
	Project *Project `json:"project"`
	Changes []Change `json:"changes"`
}
