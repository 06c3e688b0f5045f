package lead

import "strings"

// Tier is the buyer intent classification, A being the hottest.
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
)

// Financing is how the buyer intends to pay.
type Financing string

const (
	FinancingCash        Financing = "cash"
	FinancingPreapproved Financing = "mortgage_preapproved"
	FinancingMortgage    Financing = "mortgage"
	FinancingUnknown     Financing = ""
)

// Timeframe is the buyer's declared purchase horizon.
type Timeframe string

const (
	TimeframeImmediate Timeframe = "immediate"
	Timeframe3Months   Timeframe = "within_3_months"
	Timeframe6Months   Timeframe = "within_6_months"
	Timeframe12Months  Timeframe = "within_12_months"
	TimeframeExploring Timeframe = "exploring"
)

// Signals are the declared intent inputs of a lead.
type Signals struct {
	Financing Financing `json:"financing"`
	Timeframe Timeframe `json:"timeframe"`
	Budget    float64   `json:"budget"`
	Message   string    `json:"message"`
}

var financingAliases = map[string]Financing{
	"cash":                 FinancingCash,
	"comptant":             FinancingCash,
	"mortgage_preapproved": FinancingPreapproved,
	"preapproved":          FinancingPreapproved,
	"accord_principe":      FinancingPreapproved,
	"mortgage":             FinancingMortgage,
	"credit":               FinancingMortgage,
	"pret":                 FinancingMortgage,
}

var timeframeAliases = map[string]Timeframe{
	"immediate":        TimeframeImmediate,
	"immediat":         TimeframeImmediate,
	"within_3_months":  Timeframe3Months,
	"3_months":         Timeframe3Months,
	"within_6_months":  Timeframe6Months,
	"6_months":         Timeframe6Months,
	"within_12_months": Timeframe12Months,
	"12_months":        Timeframe12Months,
	"exploring":        TimeframeExploring,
}

// NormalizeFinancing maps free-form input onto a known value, or FinancingUnknown.
func NormalizeFinancing(raw string) Financing {
	return financingAliases[strings.ToLower(strings.TrimSpace(raw))]
}

// NormalizeTimeframe maps free-form input onto a known value, or TimeframeExploring.
func NormalizeTimeframe(raw string) Timeframe {
	if t, ok := timeframeAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return t
	}
	return TimeframeExploring
}

func financingPoints(f Financing) int {
	switch NormalizeFinancing(string(f)) {
	case FinancingCash:
		return 35
	case FinancingPreapproved:
		return 25
	case FinancingMortgage:
		return 15
	}
	return 0
}

func timeframePoints(t Timeframe) int {
	switch NormalizeTimeframe(string(t)) {
	case TimeframeImmediate:
		return 30
	case Timeframe3Months:
		return 22
	case Timeframe6Months:
		return 14
	case Timeframe12Months:
		return 6
	}
	return 0
}

func budgetPoints(budget float64) int {
	switch {
	case budget >= 500_000:
		return 20
	case budget >= 250_000:
		return 14
	case budget >= 100_000:
		return 8
	case budget > 0:
		return 3
	}
	return 0
}

func messagePoints(message string) int {
	words := len(strings.Fields(message))
	switch {
	case words >= 40:
		return 15
	case words >= 15:
		return 10
	case words >= 5:
		return 5
	}
	return 0
}

// Points sums the non-negative contribution of each signal.
func Points(s Signals) int {
	return financingPoints(s.Financing) + timeframePoints(s.Timeframe) + budgetPoints(s.Budget) + messagePoints(s.Message)
}

// Classify maps signals to a tier. It is monotonic in every signal and always
// returns one of A, B, C or D.
func Classify(s Signals) Tier {
	points := Points(s)
	switch {
	case points >= 70:
		return TierA
	case points >= 45:
		return TierB
	case points >= 20:
		return TierC
	}
	return TierD
}
