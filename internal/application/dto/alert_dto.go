package dto

import "time"

// AlertResponse représentation d'une alerte dans l'API.
type AlertResponse struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`     // stock | expiry | credit
	Severity   string    `json:"severity"` // critical | warning
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Read       bool      `json:"read"`
	ProductID  *string   `json:"product_id,omitempty"`
	CustomerID *string   `json:"customer_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AlertListResponse alertes courantes de l'utilisateur.
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
	Total int             `json:"total"`
}

// AlertRefreshResponse résultat d'une régénération (POST /api/alerts/refresh).
type AlertRefreshResponse struct {
	Generated int             `json:"generated"` // nombre d'alertes produites par ce passage
	Critical  int             `json:"critical"`
	Warning   int             `json:"warning"`
	Items     []AlertResponse `json:"items"`
}
