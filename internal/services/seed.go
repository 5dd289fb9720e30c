package services

var budgetOptions = []string{"Moins de 50€", "Entre 50€ et 100€", "Entre 100€ et 200€", "Plus de 200€"}

// DefaultSections is the questionnaire installed on first run.
func DefaultSections() []Section {
	return []Section{
		{
			ID:          1,
			Title:       "Informations générales",
			Description: "Veuillez nous indiquer votre situation actuelle concernant la protection sociale",
			Questions: []Question{
				{ID: 1, Text: "1- Quelle est votre profession ?", Options: []string{"Médecin", "Kinésithérapeute", "Pharmacien", "Professionnel juridique (précisez : avocat, notaire, autre)"}, HasOther: true},
				{ID: 2, Text: "2- Depuis combien de temps exercez-vous cette profession ?", Options: []string{"1ans", "5ans", "10ans"}, HasOther: true},
				{ID: 3, Text: "3- Travaillez-vous en libéral exclusivement ou en mixte (libéral et salarié) ?", Options: []string{"libéral", "mixte"}, HasOther: true},
			},
		},
		{
			ID:          2,
			Title:       "Prévisions budgétaires",
			Description: "1- Parlez-moi de votre prévoyance individuelle, Mutuelle santé et de votre Retraite",
			Questions: []Question{
				{ID: 4, Text: "2- Disposez-vous actuellement d’un contrat de prévoyance individuelle ?", Options: []string{"Oui", "Non"}},
				{ID: 5, Text: "3- Quel budget mensuel prévoyez-vous ou affectez-vous actuellement à votre contrat de prévoyance individuelle ?", Options: append([]string{}, budgetOptions...)},
				{ID: 6, Text: "4- Disposez-vous actuellement d’une mutuelle santé ?", Options: []string{"Oui", "Non"}},
				{ID: 7, Text: "5- Quel budget mensuel prévoyez-vous ou affectez-vous actuellement à votre contrat de mutuelle santé ?", Options: append([]string{}, budgetOptions...)},
				{ID: 8, Text: "6- Disposez-vous actuellement d’un contrat retraite spécifique, en plus des cotisations obligatoires ?", Options: []string{"Oui", "Non"}},
				{ID: 9, Text: "7- Quel budget mensuel prévoyez-vous ou affectez-vous actuellement à votre contrat retraite ?", Options: append([]string{}, budgetOptions...)},
			},
		},
		{
			ID:          3,
			Title:       "Aperçu des priorités",
			Description: "Parlez-moi de votre prévoyance individuelle, Mutuelle santé et de votre Retraite",
			Questions: []Question{
				{ID: 10, Text: "1- Parmi les trois catégories (prévoyance, mutuelle santé, retraite), laquelle est votre priorité principale ?", Options: []string{"Prévoyance individuelle", "Mutuelle santé", "Retraite"}, AllowMultiple: true},
				{ID: 11, Text: "2- Souhaitez-vous des informations supplémentaires ou un accompagnement pour optimiser votre protection sociale et votre retraite ?", Options: []string{"Oui", "Non"}, HasOther: true},
			},
		},
	}
}
