package entity

import "time"

// Types d'alerte générés par le moteur.
const (
	AlertTypeStock  = "stock"  // rupture ou stock faible
	AlertTypeExpiry = "expiry" // produit périmé ou proche de la péremption
	AlertTypeCredit = "credit" // créance client élevée
)

// Sévérités d'alerte.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
)

// Alert est une donnée dérivée éphémère: régénérée en bloc à chaque passage du
// moteur (suppression puis insertion), jamais fusionnée avec l'état précédent.
// Seules les actions utilisateur (lu, suppression) la modifient entre deux passages.
type Alert struct {
	ID         string
	UserID     string
	Type       string // stock | expiry | credit
	Severity   string // critical | warning
	Title      string
	Message    string
	Read       bool
	ProductID  *string // produit déclencheur (alertes stock et expiry)
	CustomerID *string // client déclencheur (alertes credit)
	CreatedAt  time.Time
}
