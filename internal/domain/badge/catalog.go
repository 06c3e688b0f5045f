package badge

// DefaultBadges is the starter catalog seeded at boot.
func DefaultBadges() []Badge {
	return []Badge{
		{
			Code:              "kyc_verifie",
			Name:              "Identité vérifiée",
			Description:       "Le promoteur a fait vérifier son identité et sa société.",
			Category:          CategoryVerification,
			CategoryMaxWeight: 20,
			Criteria:          Criteria{Rules: []Rule{{Metric: MetricKYCVerified, Op: OpEQ, Value: 1}}},
		},
		{
			Code:              "financement_solide",
			Name:              "Financement solide",
			Description:       "Preuve de capacité financière de niveau moyen ou supérieur.",
			Category:          CategoryVerification,
			CategoryMaxWeight: 20,
			Criteria:          Criteria{Rules: []Rule{{Metric: MetricFinancialProofLevel, Op: OpGTE, Value: 2}}},
		},
		{
			Code:              "onboarding_complet",
			Name:              "Profil complet",
			Description:       "Toutes les étapes d'intégration sont terminées.",
			Category:          CategoryEngagement,
			CategoryMaxWeight: 10,
			Criteria:          Criteria{Rules: []Rule{{Metric: MetricOnboardingCompleted, Op: OpEQ, Value: 1}}},
		},
		{
			Code:              "reactif",
			Name:              "Réactif",
			Description:       "Répond aux acheteurs en moins de 24 heures en moyenne.",
			Category:          CategoryEngagement,
			CategoryMaxWeight: 10,
			Criteria:          Criteria{Rules: []Rule{{Metric: MetricAvgResponseHours, Op: OpLTE, Value: 24}}},
		},
		{
			Code:              "batisseur",
			Name:              "Bâtisseur",
			Description:       "Au moins trois programmes publiés.",
			Category:          CategoryActivity,
			CategoryMaxWeight: 10,
			Criteria:          Criteria{Rules: []Rule{{Metric: MetricPublishedProjectCount, Op: OpGTE, Value: 3}}},
		},
		{
			Code:              "promoteur_fiable",
			Name:              "Promoteur fiable",
			Description:       "Score de confiance élevé sans restriction active.",
			Category:          CategoryReputation,
			CategoryMaxWeight: 20,
			Criteria: Criteria{Rules: []Rule{
				{Metric: MetricTrustScore, Op: OpGTE, Value: 70},
				{Metric: MetricRestrictions, Op: OpEQ, Value: 0},
			}},
		},
		{
			Code:              "transparence",
			Name:              "Transparence",
			Description:       "Dossier documentaire complet et chantier suivi régulièrement.",
			Category:          CategoryReputation,
			CategoryMaxWeight: 20,
			Criteria: Criteria{Rules: []Rule{
				{Metric: MetricDocumentCompleteness, Op: OpGTE, Value: 100},
				{Metric: MetricRecentUpdates, Op: OpGTE, Value: 2},
			}},
		},
	}
}
