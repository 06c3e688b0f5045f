package trustscore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid trust score configuration")

type FinancialProofWeights struct {
	None   int `yaml:"none" json:"none"`
	Basic  int `yaml:"basic" json:"basic"`
	Medium int `yaml:"medium" json:"medium"`
	High   int `yaml:"high" json:"high"`
}

// PromoteurWeights tune the promoteur score. Caps bound each component.
type PromoteurWeights struct {
	KYCVerified           int                   `yaml:"kycVerified" json:"kycVerified"`
	KYCSubmitted          int                   `yaml:"kycSubmitted" json:"kycSubmitted"`
	OnboardingCompleted   int                   `yaml:"onboardingCompleted" json:"onboardingCompleted"`
	FinancialProof        FinancialProofWeights `yaml:"financialProof" json:"financialProof"`
	PerProject            int                   `yaml:"perProject" json:"perProject"`
	ProjectCap            int                   `yaml:"projectCap" json:"projectCap"`
	PerRecentUpdate       int                   `yaml:"perRecentUpdate" json:"perRecentUpdate"`
	UpdateCap             int                   `yaml:"updateCap" json:"updateCap"`
	UpdateWindowDays      int                   `yaml:"updateWindowDays" json:"updateWindowDays"`
	DocumentCap           int                   `yaml:"documentCap" json:"documentCap"`
	ResponseCap           int                   `yaml:"responseCap" json:"responseCap"`
	ResponseFastHours     float64               `yaml:"responseFastHours" json:"responseFastHours"`
	ResponseSlowHours     float64               `yaml:"responseSlowHours" json:"responseSlowHours"`
	PerBadge              int                   `yaml:"perBadge" json:"perBadge"`
	BadgeCap              int                   `yaml:"badgeCap" json:"badgeCap"`
	RestrictionPenalty    int                   `yaml:"restrictionPenalty" json:"restrictionPenalty"`
	RestrictionPenaltyCap int                   `yaml:"restrictionPenaltyCap" json:"restrictionPenaltyCap"`
}

type ProjectWeights struct {
	PhotoMinVilla            int `yaml:"photoMinVilla" json:"photoMinVilla"`
	PhotoMinImmeuble         int `yaml:"photoMinImmeuble" json:"photoMinImmeuble"`
	PhotoWeight              int `yaml:"photoWeight" json:"photoWeight"`
	PlanWeight               int `yaml:"planWeight" json:"planWeight"`
	PerRecentUpdate          int `yaml:"perRecentUpdate" json:"perRecentUpdate"`
	UpdateFrequencyCap       int `yaml:"updateFrequencyCap" json:"updateFrequencyCap"`
	UpdateWindowDays         int `yaml:"updateWindowDays" json:"updateWindowDays"`
	PerQualityUpdate         int `yaml:"perQualityUpdate" json:"perQualityUpdate"`
	UpdateQualityCap         int `yaml:"updateQualityCap" json:"updateQualityCap"`
	QualityUpdateMinBody     int `yaml:"qualityUpdateMinBody" json:"qualityUpdateMinBody"`
	DocumentCap              int `yaml:"documentCap" json:"documentCap"`
	RiskDisclosure           int `yaml:"riskDisclosure" json:"riskDisclosure"`
	DeliveryDate             int `yaml:"deliveryDate" json:"deliveryDate"`
	PerLead                  int `yaml:"perLead" json:"perLead"`
	EngagementCap            int `yaml:"engagementCap" json:"engagementCap"`
	UnexplainedChangePenalty int `yaml:"unexplainedChangePenalty" json:"unexplainedChangePenalty"`
	UnexplainedChangeCap     int `yaml:"unexplainedChangeCap" json:"unexplainedChangeCap"`
	SuspendedPenalty         int `yaml:"suspendedPenalty" json:"suspendedPenalty"`
}

// Config is built once at startup and shared read-only.
type Config struct {
	Promoteur PromoteurWeights `yaml:"promoteur" json:"promoteur"`
	Project   ProjectWeights   `yaml:"project" json:"project"`
}

func DefaultConfig() Config {
	return Config{
		Promoteur: PromoteurWeights{
			KYCVerified:           20,
			KYCSubmitted:          8,
			OnboardingCompleted:   10,
			FinancialProof:        FinancialProofWeights{None: 0, Basic: 5, Medium: 10, High: 15},
			PerProject:            3,
			ProjectCap:            15,
			PerRecentUpdate:       2,
			UpdateCap:             10,
			UpdateWindowDays:      30,
			DocumentCap:           10,
			ResponseCap:           10,
			ResponseFastHours:     4,
			ResponseSlowHours:     72,
			PerBadge:              2,
			BadgeCap:              10,
			RestrictionPenalty:    10,
			RestrictionPenaltyCap: 50,
		},
		Project: ProjectWeights{
			PhotoMinVilla:            6,
			PhotoMinImmeuble:         10,
			PhotoWeight:              15,
			PlanWeight:               10,
			PerRecentUpdate:          5,
			UpdateFrequencyCap:       15,
			UpdateWindowDays:         30,
			PerQualityUpdate:         5,
			UpdateQualityCap:         10,
			QualityUpdateMinBody:     120,
			DocumentCap:              20,
			RiskDisclosure:           10,
			DeliveryDate:             5,
			PerLead:                  1,
			EngagementCap:            15,
			UnexplainedChangePenalty: 10,
			UnexplainedChangeCap:     30,
			SuspendedPenalty:         40,
		},
	}
}

// ParseConfig decodes YAML over the defaults, so a file may tune a subset of weights.
func ParseConfig(raw []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return DefaultConfig(), fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

func LoadConfigFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return ParseConfig(raw)
}

// Validate rejects negative weights and orderings that would break monotonicity.
func (c Config) Validate() error {
	p := c.Promoteur
	for name, v := range map[string]int{
		"promoteur.kycVerified":           p.KYCVerified,
		"promoteur.kycSubmitted":          p.KYCSubmitted,
		"promoteur.onboardingCompleted":   p.OnboardingCompleted,
		"promoteur.financialProof.none":   p.FinancialProof.None,
		"promoteur.perProject":            p.PerProject,
		"promoteur.projectCap":            p.ProjectCap,
		"promoteur.perRecentUpdate":       p.PerRecentUpdate,
		"promoteur.updateCap":             p.UpdateCap,
		"promoteur.updateWindowDays":      p.UpdateWindowDays,
		"promoteur.documentCap":           p.DocumentCap,
		"promoteur.responseCap":           p.ResponseCap,
		"promoteur.perBadge":              p.PerBadge,
		"promoteur.badgeCap":              p.BadgeCap,
		"promoteur.restrictionPenalty":    p.RestrictionPenalty,
		"promoteur.restrictionPenaltyCap": p.RestrictionPenaltyCap,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s is negative", ErrInvalidConfig, name)
		}
	}
	if p.KYCSubmitted > p.KYCVerified {
		return fmt.Errorf("%w: kycSubmitted exceeds kycVerified", ErrInvalidConfig)
	}
	fp := p.FinancialProof
	if fp.None > fp.Basic || fp.Basic > fp.Medium || fp.Medium > fp.High {
		return fmt.Errorf("%w: financialProof weights must not decrease with level", ErrInvalidConfig)
	}
	if p.ResponseFastHours < 0 || p.ResponseSlowHours <= p.ResponseFastHours {
		return fmt.Errorf("%w: responseSlowHours must exceed responseFastHours", ErrInvalidConfig)
	}

	pr := c.Project
	for name, v := range map[string]int{
		"project.photoMinVilla":            pr.PhotoMinVilla,
		"project.photoMinImmeuble":         pr.PhotoMinImmeuble,
		"project.photoWeight":              pr.PhotoWeight,
		"project.planWeight":               pr.PlanWeight,
		"project.perRecentUpdate":          pr.PerRecentUpdate,
		"project.updateFrequencyCap":       pr.UpdateFrequencyCap,
		"project.updateWindowDays":         pr.UpdateWindowDays,
		"project.perQualityUpdate":         pr.PerQualityUpdate,
		"project.updateQualityCap":         pr.UpdateQualityCap,
		"project.qualityUpdateMinBody":     pr.QualityUpdateMinBody,
		"project.documentCap":              pr.DocumentCap,
		"project.riskDisclosure":           pr.RiskDisclosure,
		"project.deliveryDate":             pr.DeliveryDate,
		"project.perLead":                  pr.PerLead,
		"project.engagementCap":            pr.EngagementCap,
		"project.unexplainedChangePenalty": pr.UnexplainedChangePenalty,
		"project.unexplainedChangeCap":     pr.UnexplainedChangeCap,
		"project.suspendedPenalty":         pr.SuspendedPenalty,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s is negative", ErrInvalidConfig, name)
		}
	}
	return nil
}
