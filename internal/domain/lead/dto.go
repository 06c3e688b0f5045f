package lead

import "time"

// SubmitLeadRequest is the public enquiry form.
type SubmitLeadRequest struct {
	BuyerName  string  `json:"buyer_name" validate:"required,max=200"`
	BuyerEmail string  `json:"buyer_email" validate:"required_without=BuyerPhone,omitempty,email"`
	BuyerPhone string  `json:"buyer_phone" validate:"required_without=BuyerEmail,omitempty,max=32"`
	Financing  string  `json:"financing" validate:"max=64"`
	Timeframe  string  `json:"timeframe" validate:"max=64"`
	Budget     float64 `json:"budget" validate:"gte=0"`
	Message    string  `json:"message" validate:"max=5000"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=new contacted qualified converted lost"`
}

// SubmitLeadResponse is what the buyer sees. The tier stays internal.
type SubmitLeadResponse struct {
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}

type LeadListResponse struct {
	Leads       []Lead `json:"leads"`
	Total       int    `json:"total"`
	TiersHidden bool   `json:"tiers_hidden"`
}
