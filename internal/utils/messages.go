package utils

// User-facing messages. The survey is French-only; keys keep call sites readable.
var messages = map[string]string{
	"health.ok":             "ok",
	"login.missing_fields":  "Veuillez remplir tous les champs",
	"login.invalid_phone":   "Numéro de téléphone invalide",
	"login.admin_refused":   "Identifiants administrateur incorrects",
	"auth.required":         "Authentification requise",
	"auth.admin_required":   "Accès réservé aux administrateurs",
	"question.no_options":   "Veuillez ajouter au moins une option de réponse",
	"question.unknown":      "Question inconnue",
	"question.duplicate_id": "Identifiant de question en double",
	"answer.none":           "Aucune réponse",
	"answer.other":          "Autre",
	"survey.submitted":      "Le questionnaire a déjà été envoyé",
	"survey.unknown_option": "Option de réponse inconnue",
	"survey.single_choice":  "Une seule réponse est possible pour cette question",
	"export.empty":          "Aucune réponse à exporter",
	"export.col_name":       "Nom",
	"export.col_phone":      "Téléphone",
	"export.col_submitted":  "Date de soumission",
}

// T returns the message for key, or the key itself when it is unknown.
func T(key string) string {
	if v, ok := messages[key]; ok {
		return v
	}
	return key
}
