package promoteur

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Onboarding step codes, in display order.
const (
	StepCompanyProfile   = "company_profile"
	StepLogo             = "logo"
	StepKYCDocuments     = "kyc_documents"
	StepFinancialProof   = "financial_proof"
	StepFirstProject     = "first_project"
	StepFirstPublication = "first_publication"
	StepTeamInvite       = "team_invite"
)

// selfServiceSteps can be completed from the dashboard. Every other step is
// completed by the state change it tracks.
var selfServiceSteps = map[string]bool{
	StepCompanyProfile: true,
	StepLogo:           true,
}

// IsSelfService reports whether the promoteur may tick code by hand.
func IsSelfService(code string) bool {
	return selfServiceSteps[code]
}

// DefaultChecklist returns the checklist given to every new promoteur.
func DefaultChecklist() []ChecklistItem {
	return []ChecklistItem{
		{Code: StepCompanyProfile, Label: "Compléter le profil société"},
		{Code: StepLogo, Label: "Ajouter un logo"},
		{Code: StepKYCDocuments, Label: "Envoyer les pièces KYC"},
		{Code: StepFinancialProof, Label: "Fournir une preuve de solidité financière"},
		{Code: StepFirstProject, Label: "Créer un premier programme"},
		{Code: StepFirstPublication, Label: "Publier un programme"},
		{Code: StepTeamInvite, Label: "Inviter un membre de l'équipe"},
	}
}

// Recalculate derives OnboardingProgress and OnboardingCompleted from the checklist.
// An empty checklist yields progress 0 and is never considered completed.
func Recalculate(p *Promoteur) {
	total := len(p.OnboardingChecklist)
	if total == 0 {
		p.OnboardingProgress = 0
		p.OnboardingCompleted = false
		return
	}
	completed := 0
	for _, item := range p.OnboardingChecklist {
		if item.Completed {
			completed++
		}
	}
	p.OnboardingProgress = int(math.Round(100 * float64(completed) / float64(total)))
	p.OnboardingCompleted = completed == total
}

// FindChecklistItem looks an item up by code first, then by position when
// codeOrIndex is a non-negative integer within the checklist bounds.
func FindChecklistItem(p *Promoteur, codeOrIndex string) *ChecklistItem {
	key := strings.TrimSpace(codeOrIndex)
	for i := range p.OnboardingChecklist {
		if p.OnboardingChecklist[i].Code == key {
			return &p.OnboardingChecklist[i]
		}
	}
	idx, err := strconv.Atoi(key)
	if err != nil || idx < 0 || idx >= len(p.OnboardingChecklist) {
		return nil
	}
	return &p.OnboardingChecklist[idx]
}

// CompleteItem marks an item completed and recalculates progress.
// It returns false when the item was already completed; the first completedAt is kept.
func CompleteItem(p *Promoteur, codeOrIndex string, now time.Time) (bool, error) {
	item := FindChecklistItem(p, codeOrIndex)
	if item == nil {
		return false, ErrChecklistItemNotFound
	}
	changed := false
	if !item.Completed {
		item.Completed = true
		at := now
		item.CompletedAt = &at
		changed = true
	}
	Recalculate(p)
	return changed, nil
}
